package seeder

import (
	"context"

	"github.com/uptrace/bun"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Sujeet-Kumar0/Coffee-Serverless-App/internal/database"
	"github.com/Sujeet-Kumar0/Coffee-Serverless-App/internal/entity"
)

// Module provides the seeder to Fx.
var Module = fx.Provide(New)

// Seeder performs database seeding for local/dev setups.
type Seeder struct {
	db     *bun.DB
	logger *zap.Logger
}

// New constructs a Seeder backed by the primary database connection.
func New(conns *database.Connections, logger *zap.Logger) *Seeder {
	return &Seeder{db: conns.Writer, logger: logger}
}

// Orders seeds example coffee orders if they are missing.
func (s *Seeder) Orders(ctx context.Context) error {
	samples := []*entity.Order{
		entity.NewOrder("Ada Lovelace", []entity.OrderItem{
			{Name: "Flat White", Price: 4.5, Quantity: 1},
			{Name: "Croissant", Price: 3.0, Quantity: 2},
		}),
		entity.NewOrder("Grace Hopper", []entity.OrderItem{
			{Name: "Espresso", Price: 2.5, Quantity: 2, Options: []string{"double"}},
		}),
	}

	for _, sample := range samples {
		order := sample
		_, err := s.db.NewInsert().Model(order).
			On("CONFLICT (order_id) DO NOTHING").
			Exec(ctx)
		if err != nil {
			return err
		}
	}

	if s.logger != nil {
		s.logger.Info("seeded orders", zap.Int("count", len(samples)))
	}
	return nil
}
