package dto

import (
	"time"

	"github.com/Sujeet-Kumar0/Coffee-Serverless-App/internal/entity"
)

// CreateOrderRequest is the payload accepted when placing a new order.
type CreateOrderRequest struct {
	CustomerName string             `json:"customerName"`
	Items        []entity.OrderItem `json:"items"`
}

// UpdateOrderRequest carries the optional fields of a partial order update.
// Absent (zero) fields are left untouched in storage.
type UpdateOrderRequest struct {
	CustomerName string             `json:"customerName,omitempty"`
	Status       string             `json:"status,omitempty"`
	Items        []entity.OrderItem `json:"items,omitempty"`
}

// OrderResponse represents an order as exposed via transport layers.
type OrderResponse struct {
	OrderID      string             `json:"orderId"`
	CustomerName string             `json:"customerName"`
	Items        []entity.OrderItem `json:"items"`
	Status       string             `json:"status"`
	TotalPrice   float64            `json:"totalPrice"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}
