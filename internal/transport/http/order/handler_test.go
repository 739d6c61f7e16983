package order

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sujeet-Kumar0/Coffee-Serverless-App/internal/config"
	"github.com/Sujeet-Kumar0/Coffee-Serverless-App/internal/dto"
	"github.com/Sujeet-Kumar0/Coffee-Serverless-App/internal/entity"
	"github.com/Sujeet-Kumar0/Coffee-Serverless-App/pkg/errorbank"
	"github.com/Sujeet-Kumar0/Coffee-Serverless-App/pkg/pagekey"
)

type mockService struct {
	createFn func(ctx context.Context, req dto.CreateOrderRequest) (*entity.Order, error)
	getFn    func(ctx context.Context, id string) (*entity.Order, error)
	listFn   func(ctx context.Context, startKey pagekey.Key) ([]entity.Order, pagekey.Key, error)
	updateFn func(ctx context.Context, id string, req dto.UpdateOrderRequest) (*entity.Order, error)
	deleteFn func(ctx context.Context, id string) error
}

func (m *mockService) Create(ctx context.Context, req dto.CreateOrderRequest) (*entity.Order, error) {
	return m.createFn(ctx, req)
}

func (m *mockService) Get(ctx context.Context, id string) (*entity.Order, error) {
	return m.getFn(ctx, id)
}

func (m *mockService) List(ctx context.Context, startKey pagekey.Key) ([]entity.Order, pagekey.Key, error) {
	return m.listFn(ctx, startKey)
}

func (m *mockService) Update(ctx context.Context, id string, req dto.UpdateOrderRequest) (*entity.Order, error) {
	return m.updateFn(ctx, id, req)
}

func (m *mockService) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

func newContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestCreateOrderHandler(t *testing.T) {
	sample := entity.NewOrder("John Doe", []entity.OrderItem{{Name: "Latte", Price: 4.0, Quantity: 2}})

	tests := []struct {
		name       string
		body       string
		createFn   func(ctx context.Context, req dto.CreateOrderRequest) (*entity.Order, error)
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "missing_fields",
			body:       `{"customerName":"","items":[]}`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Missing required fields: customerName and items are required",
		},
		{
			name: "success",
			body: `{"customerName":"John Doe","items":[{"name":"Latte","price":4.0,"quantity":2}]}`,
			createFn: func(ctx context.Context, req dto.CreateOrderRequest) (*entity.Order, error) {
				assert.Equal(t, "John Doe", req.CustomerName)
				require.Len(t, req.Items, 1)
				return sample, nil
			},
			wantStatus: http.StatusCreated,
			wantMsg:    "Order created successfully",
		},
		{
			name: "store_error",
			body: `{"customerName":"John Doe","items":[{"name":"Latte","price":4.0,"quantity":2}]}`,
			createFn: func(ctx context.Context, req dto.CreateOrderRequest) (*entity.Order, error) {
				return nil, errorbank.Internal("Could not create order")
			},
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Could not create order",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&mockService{createFn: tt.createFn}, config.Config{})
			c, rec := newContext(t, http.MethodPost, "/orders", tt.body)

			require.NoError(t, h.create(c))

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, tt.wantMsg, body["message"])
			if tt.wantStatus == http.StatusCreated {
				order, ok := body["order"].(map[string]any)
				require.True(t, ok)
				assert.Equal(t, sample.ID, order["orderId"])
			}
		})
	}
}

func TestGetOrderHandler(t *testing.T) {
	sample := entity.NewOrder("Jane", []entity.OrderItem{{Name: "Mocha", Price: 5.0, Quantity: 1}})

	t.Run("missing_id", func(t *testing.T) {
		h := NewHandler(&mockService{}, config.Config{})
		c, rec := newContext(t, http.MethodGet, "/orders/", "")

		require.NoError(t, h.getByID(c))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Missing order ID", decodeBody(t, rec)["message"])
	})

	t.Run("not_found", func(t *testing.T) {
		h := NewHandler(&mockService{
			getFn: func(ctx context.Context, id string) (*entity.Order, error) {
				return nil, errorbank.NotFound("Order not found")
			},
		}, config.Config{})
		c, rec := newContext(t, http.MethodGet, "/orders/order1", "")
		c.SetParamNames("orderId")
		c.SetParamValues("order1")

		require.NoError(t, h.getByID(c))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Order not found", decodeBody(t, rec)["message"])
	})

	t.Run("success", func(t *testing.T) {
		h := NewHandler(&mockService{
			getFn: func(ctx context.Context, id string) (*entity.Order, error) {
				assert.Equal(t, sample.ID, id)
				return sample, nil
			},
		}, config.Config{})
		c, rec := newContext(t, http.MethodGet, "/orders/"+sample.ID, "")
		c.SetParamNames("orderId")
		c.SetParamValues(sample.ID)

		require.NoError(t, h.getByID(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		order, ok := decodeBody(t, rec)["order"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, sample.ID, order["orderId"])
		assert.Equal(t, "Jane", order["customerName"])
	})
}

func TestListOrdersHandler(t *testing.T) {
	page := []entity.Order{
		*entity.NewOrder("A", []entity.OrderItem{{Name: "Espresso", Price: 2.5, Quantity: 1}}),
		*entity.NewOrder("B", []entity.OrderItem{{Name: "Latte", Price: 4.0, Quantity: 1}}),
	}

	t.Run("first_page_no_more_results", func(t *testing.T) {
		h := NewHandler(&mockService{
			listFn: func(ctx context.Context, startKey pagekey.Key) ([]entity.Order, pagekey.Key, error) {
				assert.Nil(t, startKey)
				return page, nil, nil
			},
		}, config.Config{})
		c, rec := newContext(t, http.MethodGet, "/orders", "")

		require.NoError(t, h.list(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, float64(2), body["count"])
		assert.Len(t, body["orders"], 2)
		assert.Contains(t, body, "nextKey")
		assert.Nil(t, body["nextKey"])
	})

	t.Run("cursor_round_trip", func(t *testing.T) {
		nextKey := pagekey.Key{"orderId": "order14"}
		h := NewHandler(&mockService{
			listFn: func(ctx context.Context, startKey pagekey.Key) ([]entity.Order, pagekey.Key, error) {
				assert.Equal(t, pagekey.Key{"orderId": "order4"}, startKey)
				return page, nextKey, nil
			},
		}, config.Config{})

		raw := url.QueryEscape(`{"orderId":"order4"}`)
		c, rec := newContext(t, http.MethodGet, "/orders?lastKey="+raw, "")

		require.NoError(t, h.list(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)

		encoded, err := pagekey.Encode(nextKey)
		require.NoError(t, err)
		assert.Equal(t, encoded, body["nextKey"])
	})

	t.Run("malformed_cursor", func(t *testing.T) {
		h := NewHandler(&mockService{}, config.Config{})
		c, rec := newContext(t, http.MethodGet, "/orders?lastKey=not-json", "")

		require.NoError(t, h.list(c))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid pagination key", decodeBody(t, rec)["message"])
	})

	t.Run("store_error", func(t *testing.T) {
		h := NewHandler(&mockService{
			listFn: func(ctx context.Context, startKey pagekey.Key) ([]entity.Order, pagekey.Key, error) {
				return nil, nil, errorbank.Internal("Could not list orders")
			},
		}, config.Config{})
		c, rec := newContext(t, http.MethodGet, "/orders", "")

		require.NoError(t, h.list(c))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Could not list orders", decodeBody(t, rec)["message"])
	})
}

func TestUpdateOrderHandler(t *testing.T) {
	sample := entity.NewOrder("Jane", []entity.OrderItem{{Name: "Mocha", Price: 5.0, Quantity: 1}})

	t.Run("missing_id", func(t *testing.T) {
		h := NewHandler(&mockService{}, config.Config{})
		c, rec := newContext(t, http.MethodPut, "/orders/", `{"status":"ready"}`)

		require.NoError(t, h.update(c))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Missing order ID", decodeBody(t, rec)["message"])
	})

	t.Run("invalid_status", func(t *testing.T) {
		h := NewHandler(&mockService{}, config.Config{})
		c, rec := newContext(t, http.MethodPut, "/orders/order1", `{"status":"shipped"}`)
		c.SetParamNames("orderId")
		c.SetParamValues("order1")

		require.NoError(t, h.update(c))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid order status", decodeBody(t, rec)["message"])
	})

	t.Run("not_found", func(t *testing.T) {
		h := NewHandler(&mockService{
			updateFn: func(ctx context.Context, id string, req dto.UpdateOrderRequest) (*entity.Order, error) {
				return nil, errorbank.NotFound("Order not found")
			},
		}, config.Config{})
		c, rec := newContext(t, http.MethodPut, "/orders/missing", `{"status":"ready"}`)
		c.SetParamNames("orderId")
		c.SetParamValues("missing")

		require.NoError(t, h.update(c))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Order not found", decodeBody(t, rec)["message"])
	})

	t.Run("success", func(t *testing.T) {
		updated := *sample
		updated.Status = entity.StatusReady
		h := NewHandler(&mockService{
			updateFn: func(ctx context.Context, id string, req dto.UpdateOrderRequest) (*entity.Order, error) {
				assert.Equal(t, sample.ID, id)
				assert.Equal(t, "ready", req.Status)
				return &updated, nil
			},
		}, config.Config{})
		c, rec := newContext(t, http.MethodPut, "/orders/"+sample.ID, `{"status":"ready"}`)
		c.SetParamNames("orderId")
		c.SetParamValues(sample.ID)

		require.NoError(t, h.update(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "Order updated successfully", body["message"])
		order, ok := body["order"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "ready", order["status"])
	})
}

func TestDeleteOrderHandler(t *testing.T) {
	t.Run("missing_id", func(t *testing.T) {
		h := NewHandler(&mockService{}, config.Config{})
		c, rec := newContext(t, http.MethodDelete, "/orders/", "")

		require.NoError(t, h.delete(c))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Missing order ID", decodeBody(t, rec)["message"])
	})

	t.Run("not_found", func(t *testing.T) {
		h := NewHandler(&mockService{
			deleteFn: func(ctx context.Context, id string) error {
				return errorbank.NotFound("Order not found")
			},
		}, config.Config{})
		c, rec := newContext(t, http.MethodDelete, "/orders/missing", "")
		c.SetParamNames("orderId")
		c.SetParamValues("missing")

		require.NoError(t, h.delete(c))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("success", func(t *testing.T) {
		h := NewHandler(&mockService{
			deleteFn: func(ctx context.Context, id string) error {
				assert.Equal(t, "order1", id)
				return nil
			},
		}, config.Config{})
		c, rec := newContext(t, http.MethodDelete, "/orders/order1", "")
		c.SetParamNames("orderId")
		c.SetParamValues("order1")

		require.NoError(t, h.delete(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Order deleted successfully", decodeBody(t, rec)["message"])
	})
}

func TestErrorDetailOnlyInDebugMode(t *testing.T) {
	cause := errorbank.Internal("Could not retrieve order", errorbank.WithCause(assert.AnError))

	svc := &mockService{
		getFn: func(ctx context.Context, id string) (*entity.Order, error) {
			return nil, cause
		},
	}

	t.Run("production", func(t *testing.T) {
		h := NewHandler(svc, config.Config{})
		c, rec := newContext(t, http.MethodGet, "/orders/order1", "")
		c.SetParamNames("orderId")
		c.SetParamValues("order1")

		require.NoError(t, h.getByID(c))

		body := decodeBody(t, rec)
		assert.NotContains(t, body, "error")
		assert.NotContains(t, body, "stack")
	})

	t.Run("debug", func(t *testing.T) {
		h := NewHandler(svc, config.Config{App: config.App{Debug: true}})
		c, rec := newContext(t, http.MethodGet, "/orders/order1", "")
		c.SetParamNames("orderId")
		c.SetParamValues("order1")

		require.NoError(t, h.getByID(c))

		body := decodeBody(t, rec)
		assert.Equal(t, assert.AnError.Error(), body["error"])
		assert.Contains(t, body, "stack")
	})
}
