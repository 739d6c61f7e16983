package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Sujeet-Kumar0/Coffee-Serverless-App/internal/cache"
	"github.com/Sujeet-Kumar0/Coffee-Serverless-App/internal/config"
	"github.com/Sujeet-Kumar0/Coffee-Serverless-App/internal/dto"
	"github.com/Sujeet-Kumar0/Coffee-Serverless-App/internal/entity"
	"github.com/Sujeet-Kumar0/Coffee-Serverless-App/internal/messaging"
	"github.com/Sujeet-Kumar0/Coffee-Serverless-App/internal/plan"
	"github.com/Sujeet-Kumar0/Coffee-Serverless-App/pkg/errorbank"
	"github.com/Sujeet-Kumar0/Coffee-Serverless-App/pkg/pagekey"
)

var serviceTracer = otel.Tracer("github.com/Sujeet-Kumar0/Coffee-Serverless-App/service/order")

// Repository is the store collaborator the service depends on.
type Repository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	Update(ctx context.Context, id string, p plan.Plan) (*entity.Order, error)
	Delete(ctx context.Context, id string) error
	Scan(ctx context.Context, startKey pagekey.Key, limit int) ([]entity.Order, pagekey.Key, error)
}

// Service encapsulates business logic around orders.
type Service struct {
	repo      Repository
	cache     cache.Store
	cacheTTL  time.Duration
	pageSize  int
	logger    *zap.Logger
	publisher messaging.Client
	messaging messagingConfig
}

// messagingConfig contains messaging specific knobs we care about.
type messagingConfig struct {
	enabled bool
	topic   string
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Repository Repository
	Cache      cache.Store
	Config     config.Config
	Logger     *zap.Logger
	Publisher  messaging.Client
}

// NewService wires a new Service instance.
func NewService(p Params) *Service {
	pageSize := p.Config.App.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}
	return &Service{
		repo:      p.Repository,
		cache:     p.Cache,
		cacheTTL:  p.Config.Cache.DefaultTTL,
		pageSize:  pageSize,
		logger:    p.Logger,
		publisher: p.Publisher,
		messaging: messagingConfig{
			enabled: p.Config.Messaging.Enabled,
			topic:   p.Config.Messaging.Kafka.Topic,
		},
	}
}

// Create builds and persists a new order from an already validated request.
func (s *Service) Create(ctx context.Context, req dto.CreateOrderRequest) (*entity.Order, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.Create", trace.WithAttributes(attribute.Int("order.items", len(req.Items))))
	defer span.End()

	order := entity.NewOrder(req.CustomerName, req.Items)

	if err := s.repo.Create(ctx, order); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("Could not create order", errorbank.WithCause(err))
	}

	if err := s.storeInCache(ctx, order); err != nil {
		s.warn("orders cache write failed", order.ID, err)
	}

	s.publishEvent(ctx, ActionCreated, order)
	return order, nil
}

// Get retrieves an order by id, consulting cache when available.
func (s *Service) Get(ctx context.Context, id string) (*entity.Order, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.Get", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	if order, err := s.getFromCache(ctx, id); err == nil {
		return order, nil
	} else if err != nil && !errors.Is(err, cache.ErrCacheMiss) {
		s.warn("orders cache read failed", id, err)
	}

	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, errorbank.NotFound("Order not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("Could not retrieve order", errorbank.WithCause(err))
	}

	if err := s.storeInCache(ctx, order); err != nil {
		s.warn("orders cache write failed", id, err)
	}

	return order, nil
}

// List scans one page of orders starting after the given continuation key.
// The returned key is nil when there are no further pages.
func (s *Service) List(ctx context.Context, startKey pagekey.Key) ([]entity.Order, pagekey.Key, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.List", trace.WithAttributes(attribute.Int("page.size", s.pageSize)))
	defer span.End()

	orders, next, err := s.repo.Scan(ctx, startKey, s.pageSize)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, nil, errorbank.Internal("Could not list orders", errorbank.WithCause(err))
	}
	return orders, next, nil
}

// Update applies a partial update to an existing order and returns the
// post-update record. The existence check and the write are two separate
// store calls; a concurrent delete in between loses (last writer wins).
func (s *Service) Update(ctx context.Context, id string, req dto.UpdateOrderRequest) (*entity.Order, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.Update", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, errorbank.NotFound("Order not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("Could not update order", errorbank.WithCause(err))
	}

	p := plan.Compile(req, time.Now())

	order, err := s.repo.Update(ctx, id, p)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, errorbank.NotFound("Order not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("Could not update order", errorbank.WithCause(err))
	}

	if err := s.storeInCache(ctx, order); err != nil {
		s.warn("orders cache write failed", id, err)
	}

	s.publishEvent(ctx, ActionUpdated, order)
	return order, nil
}

// Delete removes an existing order. Missing orders report not found before
// any write happens.
func (s *Service) Delete(ctx context.Context, id string) error {
	ctx, span := serviceTracer.Start(ctx, "OrderService.Delete", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return errorbank.NotFound("Order not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return errorbank.Internal("Could not delete order", errorbank.WithCause(err))
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return errorbank.Internal("Could not delete order", errorbank.WithCause(err))
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, s.cacheKey(id)); err != nil {
			s.warn("orders cache delete failed", id, err)
		}
	}

	s.publishEvent(ctx, ActionDeleted, existing)
	return nil
}

func (s *Service) warn(msg, id string, err error) {
	if s.logger != nil {
		s.logger.Warn(msg, zap.String("id", id), zap.Error(err))
	}
}

func (s *Service) publishEvent(ctx context.Context, action string, order *entity.Order) {
	if !s.messaging.enabled || s.publisher == nil {
		return
	}
	event := OrderEvent{
		Action:       action,
		OrderID:      order.ID,
		CustomerName: order.CustomerName,
		Status:       string(order.Status),
		TotalPrice:   order.TotalPrice,
		OccurredAt:   time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("marshal order event", zap.Error(err))
		}
		return
	}
	if err := s.publisher.Publish(ctx, []byte(fmt.Sprintf("order-%s", order.ID)), payload); err != nil {
		if s.logger != nil {
			s.logger.Error("publish order event", zap.String("action", action), zap.Error(err))
		}
	}
}

func (s *Service) cacheKey(id string) string {
	return fmt.Sprintf("orders:%s", id)
}

func (s *Service) getFromCache(ctx context.Context, id string) (*entity.Order, error) {
	if s.cache == nil {
		return nil, cache.ErrCacheMiss
	}
	bytes, err := s.cache.Get(ctx, s.cacheKey(id))
	if err != nil {
		return nil, err
	}
	var order entity.Order
	if err := json.Unmarshal(bytes, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *Service) storeInCache(ctx context.Context, order *entity.Order) error {
	if s.cache == nil || order == nil {
		return nil
	}
	bytes, err := json.Marshal(order)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, s.cacheKey(order.ID), bytes, s.cacheTTL)
}

// Event actions emitted on the order lifecycle topic.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// OrderEvent is emitted whenever an order is created, updated, or deleted.
type OrderEvent struct {
	Action       string    `json:"action"`
	OrderID      string    `json:"orderId"`
	CustomerName string    `json:"customerName"`
	Status       string    `json:"status"`
	TotalPrice   float64   `json:"totalPrice"`
	OccurredAt   time.Time `json:"occurredAt"`
}
