package order

import (
	"go.uber.org/fx"

	service "github.com/Sujeet-Kumar0/Coffee-Serverless-App/internal/service/order"
)

// Module provides the order repository to Fx, exposed through the service
// layer's store interface so tests can substitute a fake.
var Module = fx.Provide(
	fx.Annotate(NewRepository, fx.As(new(service.Repository))),
)
