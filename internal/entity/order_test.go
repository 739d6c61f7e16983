package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrder(t *testing.T) {
	items := []OrderItem{
		{Name: "Flat White", Price: 4.5, Quantity: 2},
		{Name: "Croissant", Price: 3.0, Quantity: 1, Options: []string{"warm"}},
	}

	order := NewOrder("John Doe", items)

	_, err := uuid.Parse(order.ID)
	require.NoError(t, err)

	assert.Equal(t, "John Doe", order.CustomerName)
	assert.Equal(t, items, order.Items)
	assert.Equal(t, StatusPending, order.Status)
	assert.InDelta(t, 12.0, order.TotalPrice, 1e-9)
	assert.Equal(t, order.CreatedAt, order.UpdatedAt)
	assert.Equal(t, order.CreatedAt.UTC(), order.CreatedAt)
}

func TestNewOrderUniqueIDs(t *testing.T) {
	items := []OrderItem{{Name: "Espresso", Price: 2.5, Quantity: 1}}

	first := NewOrder("A", items)
	second := NewOrder("B", items)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestTotalPrice(t *testing.T) {
	tests := []struct {
		name  string
		items []OrderItem
		want  float64
	}{
		{name: "empty", items: nil, want: 0},
		{name: "single", items: []OrderItem{{Price: 4.5, Quantity: 2}}, want: 9.0},
		{
			name: "mixed",
			items: []OrderItem{
				{Price: 2.5, Quantity: 2},
				{Price: 1.5, Quantity: 3},
			},
			want: 9.5,
		},
		{name: "zero_quantity", items: []OrderItem{{Price: 10, Quantity: 0}}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, TotalPrice(tt.items), 1e-9)
		})
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusPreparing, StatusReady, StatusCompleted, StatusCancelled} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, Status("shipped").Valid())
	assert.False(t, Status("").Valid())
}
