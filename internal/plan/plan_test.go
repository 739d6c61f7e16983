package plan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sujeet-Kumar0/Coffee-Serverless-App/internal/dto"
	"github.com/Sujeet-Kumar0/Coffee-Serverless-App/internal/entity"
)

func TestCompileAlwaysBumpsUpdatedAt(t *testing.T) {
	now := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

	p := Compile(dto.UpdateOrderRequest{}, now)

	require.Len(t, p.Assignments(), 1)
	assert.Equal(t, ColUpdatedAt, p.Assignments()[0].Column)
	assert.Equal(t, now, p.Assignments()[0].Value)
}

func TestCompileOptionalFields(t *testing.T) {
	now := time.Now()
	items := []entity.OrderItem{
		{Name: "Latte", Price: 4.0, Quantity: 2},
		{Name: "Mocha", Price: 5.5, Quantity: 1},
	}

	tests := []struct {
		name        string
		req         dto.UpdateOrderRequest
		wantColumns []string
	}{
		{
			name:        "customer_name_only",
			req:         dto.UpdateOrderRequest{CustomerName: "Jane"},
			wantColumns: []string{ColUpdatedAt, ColCustomerName},
		},
		{
			name:        "status_only",
			req:         dto.UpdateOrderRequest{Status: "ready"},
			wantColumns: []string{ColUpdatedAt, ColStatus},
		},
		{
			name:        "items_recompute_total",
			req:         dto.UpdateOrderRequest{Items: items},
			wantColumns: []string{ColUpdatedAt, ColItems, ColTotalPrice},
		},
		{
			name: "all_fields",
			req: dto.UpdateOrderRequest{
				CustomerName: "Jane",
				Status:       "completed",
				Items:        items,
			},
			wantColumns: []string{ColUpdatedAt, ColCustomerName, ColStatus, ColItems, ColTotalPrice},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Compile(tt.req, now)

			var columns []string
			for _, a := range p.Assignments() {
				columns = append(columns, a.Column)
			}
			assert.Equal(t, tt.wantColumns, columns)
		})
	}
}

func TestCompileTotalPriceFollowsNewItems(t *testing.T) {
	now := time.Now()
	items := []entity.OrderItem{
		{Name: "Espresso", Price: 2.5, Quantity: 2},
		{Name: "Cookie", Price: 1.5, Quantity: 3},
	}

	p := Compile(dto.UpdateOrderRequest{Items: items}, now)

	var total any
	for _, a := range p.Assignments() {
		if a.Column == ColTotalPrice {
			total = a.Value
		}
	}
	require.NotNil(t, total)
	assert.InDelta(t, 9.5, total.(float64), 1e-9)
}

func TestCompileTotalPriceAbsentWithoutItems(t *testing.T) {
	p := Compile(dto.UpdateOrderRequest{CustomerName: "Jane", Status: "ready"}, time.Now())

	assert.False(t, p.Has(ColTotalPrice))
	assert.False(t, p.Has(ColItems))
}
