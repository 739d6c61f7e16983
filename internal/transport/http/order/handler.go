package order

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sujeet-Kumar0/Coffee-Serverless-App/internal/config"
	"github.com/Sujeet-Kumar0/Coffee-Serverless-App/internal/dto"
	"github.com/Sujeet-Kumar0/Coffee-Serverless-App/internal/entity"
	"github.com/Sujeet-Kumar0/Coffee-Serverless-App/internal/presentation/http/response"
	"github.com/Sujeet-Kumar0/Coffee-Serverless-App/pkg/errorbank"
	"github.com/Sujeet-Kumar0/Coffee-Serverless-App/pkg/pagekey"
)

var httpTracer = otel.Tracer("github.com/Sujeet-Kumar0/Coffee-Serverless-App/transport/http/order")

// Service is the order orchestration surface the handlers drive.
type Service interface {
	Create(ctx context.Context, req dto.CreateOrderRequest) (*entity.Order, error)
	Get(ctx context.Context, id string) (*entity.Order, error)
	List(ctx context.Context, startKey pagekey.Key) ([]entity.Order, pagekey.Key, error)
	Update(ctx context.Context, id string, req dto.UpdateOrderRequest) (*entity.Order, error)
	Delete(ctx context.Context, id string) error
}

// Handler exposes order endpoints over HTTP.
type Handler struct {
	svc   Service
	debug bool
}

// NewHandler constructs an order Handler.
func NewHandler(svc Service, cfg config.Config) *Handler {
	return &Handler{svc: svc, debug: cfg.App.Debug}
}

// Register routes with provided Echo instance.
func Register(e *echo.Echo, h *Handler) {
	g := e.Group("/orders")
	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:orderId", h.getByID)
	g.PUT("/:orderId", h.update)
	g.PATCH("/:orderId", h.update)
	g.DELETE("/:orderId", h.delete)
}

func (h *Handler) create(c echo.Context) error {
	b := h.builder(c)

	var payload dto.CreateOrderRequest
	if err := c.Bind(&payload); err != nil {
		return b.WithError(errorbank.BadRequest("Missing required fields: customerName and items are required", errorbank.WithCause(err))).Build()
	}
	if payload.CustomerName == "" || len(payload.Items) == 0 {
		return b.WithError(errorbank.BadRequest("Missing required fields: customerName and items are required")).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.create", trace.WithAttributes(
		attribute.Int("order.items", len(payload.Items)),
	))
	defer span.End()

	order, err := h.svc.Create(ctx, payload)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithStatus(http.StatusCreated).
		WithMessage("Order created successfully").
		WithField("order", toDTO(order)).
		Build()
}

func (h *Handler) getByID(c echo.Context) error {
	b := h.builder(c)

	id := c.Param("orderId")
	if id == "" {
		return b.WithError(errorbank.BadRequest("Missing order ID")).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.getByID", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	order, err := h.svc.Get(ctx, id)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithField("order", toDTO(order)).Build()
}

func (h *Handler) list(c echo.Context) error {
	b := h.builder(c)

	startKey, err := pagekey.Decode(c.QueryParam("lastKey"))
	if err != nil {
		return b.WithError(errorbank.BadRequest("Invalid pagination key", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.list")
	defer span.End()

	orders, nextKey, err := h.svc.List(ctx, startKey)
	if err != nil {
		return b.WithError(err).Build()
	}

	encoded, err := pagekey.Encode(nextKey)
	if err != nil {
		return b.WithError(errorbank.Internal("Could not list orders", errorbank.WithCause(err))).Build()
	}

	// nextKey is rendered as null when there are no further pages.
	var next any
	if encoded != "" {
		next = encoded
	}

	list := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		list = append(list, toDTO(&orders[i]))
	}

	return b.WithField("count", len(list)).
		WithField("orders", list).
		WithField("nextKey", next).
		Build()
}

func (h *Handler) update(c echo.Context) error {
	b := h.builder(c)

	id := c.Param("orderId")
	if id == "" {
		return b.WithError(errorbank.BadRequest("Missing order ID")).Build()
	}

	var payload dto.UpdateOrderRequest
	if err := c.Bind(&payload); err != nil {
		return b.WithError(errorbank.BadRequest("Invalid request body", errorbank.WithCause(err))).Build()
	}
	if payload.Status != "" && !entity.Status(payload.Status).Valid() {
		return b.WithError(errorbank.BadRequest("Invalid order status", errorbank.WithDetail("status", payload.Status))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.update", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	order, err := h.svc.Update(ctx, id, payload)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithMessage("Order updated successfully").
		WithField("order", toDTO(order)).
		Build()
}

func (h *Handler) delete(c echo.Context) error {
	b := h.builder(c)

	id := c.Param("orderId")
	if id == "" {
		return b.WithError(errorbank.BadRequest("Missing order ID")).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.delete", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	if err := h.svc.Delete(ctx, id); err != nil {
		return b.WithError(err).Build()
	}

	return b.WithMessage("Order deleted successfully").Build()
}

func (h *Handler) builder(c echo.Context) *response.Builder {
	return response.New(c).Debug(h.debug)
}

func toDTO(order *entity.Order) dto.OrderResponse {
	return dto.OrderResponse{
		OrderID:      order.ID,
		CustomerName: order.CustomerName,
		Items:        order.Items,
		Status:       string(order.Status),
		TotalPrice:   order.TotalPrice,
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
	}
}
