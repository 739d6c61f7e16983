package main

import (
	"os"

	"github.com/Sujeet-Kumar0/Coffee-Serverless-App/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
