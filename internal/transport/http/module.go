package http

import (
	"go.uber.org/fx"

	ordertransport "github.com/Sujeet-Kumar0/Coffee-Serverless-App/internal/transport/http/order"
)

// Module aggregates all HTTP transport handlers.
var Module = fx.Options(
	ordertransport.Module,
)
