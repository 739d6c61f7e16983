package order

import (
	"go.uber.org/fx"

	"github.com/labstack/echo/v4"

	"github.com/Sujeet-Kumar0/Coffee-Serverless-App/internal/config"
	service "github.com/Sujeet-Kumar0/Coffee-Serverless-App/internal/service/order"
)

// Module wires HTTP order handlers.
var Module = fx.Options(
	fx.Provide(func(svc *service.Service, cfg config.Config) *Handler {
		return NewHandler(svc, cfg)
	}),
	fx.Invoke(func(e *echo.Echo, h *Handler) {
		Register(e, h)
	}),
)
