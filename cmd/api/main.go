package main

import (
	"go.uber.org/fx"

	"github.com/Sujeet-Kumar0/Coffee-Serverless-App/internal/app"
)

func main() {
	fx.New(app.Module).Run()
}
