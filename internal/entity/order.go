package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ErrNotFound is returned when a referenced order does not exist.
var ErrNotFound = errors.New("order not found")

// Status enumerates the lifecycle states of an order.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether the status is one of the known values.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPreparing, StatusReady, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// OrderItem is a single line item of an order.
type OrderItem struct {
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Quantity int      `json:"quantity"`
	Options  []string `json:"options,omitempty"`
}

// Order represents a customer order stored in the orders table.
type Order struct {
	bun.BaseModel `bun:"table:orders"`

	ID           string      `bun:"order_id,pk" json:"orderId"`
	CustomerName string      `bun:"customer_name" json:"customerName"`
	Items        []OrderItem `bun:"items,type:jsonb" json:"items"`
	Status       Status      `bun:"status" json:"status"`
	TotalPrice   float64     `bun:"total_price" json:"totalPrice"`
	CreatedAt    time.Time   `bun:"created_at,nullzero,notnull" json:"createdAt"`
	UpdatedAt    time.Time   `bun:"updated_at,nullzero" json:"updatedAt"`
}

// TotalPrice sums price*quantity over the given items.
func TotalPrice(items []OrderItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// NewOrder builds a fresh order from an already validated creation request.
// The caller guarantees a non-empty customer name and at least one item.
func NewOrder(customerName string, items []OrderItem) *Order {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &Order{
		ID:           uuid.NewString(),
		CustomerName: customerName,
		Items:        items,
		Status:       StatusPending,
		TotalPrice:   TotalPrice(items),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
