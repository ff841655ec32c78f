package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bookstall-be/internal/book"
	"bookstall-be/internal/cart"
	"bookstall-be/internal/metrics"
	"bookstall-be/internal/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCartService is a mock of cart.Service
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) Load(ctx context.Context) ([]*cart.CartItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*cart.CartItem), args.Error(1)
}

func (m *MockCartService) Add(ctx context.Context, bookID string, quantity int) (*cart.CartItem, error) {
	args := m.Called(ctx, bookID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.CartItem), args.Error(1)
}

func (m *MockCartService) UpdateQuantity(ctx context.Context, itemID string, quantity int) error {
	args := m.Called(ctx, itemID, quantity)
	return args.Error(0)
}

func (m *MockCartService) Remove(ctx context.Context, itemID string) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

func (m *MockCartService) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockOrderService is a mock of order.Service
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) PlaceOrder(ctx context.Context, params order.PlaceOrderParams) (*order.PlaceOrderResult, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.PlaceOrderResult), args.Error(1)
}

func (m *MockOrderService) History(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderService) GetDetail(ctx context.Context, orderID string) (*order.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) SellerOrders(ctx context.Context) ([]*order.SellerOrder, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.SellerOrder), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, orderID string, status order.Status) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *MockOrderService) Dashboard(ctx context.Context) (*order.SellerStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.SellerStats), args.Error(1)
}

// MockBookService is a mock of book.Service
type MockBookService struct {
	mock.Mock
}

func (m *MockBookService) Browse(ctx context.Context, opts book.ListOptions) ([]*book.Book, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*book.Book), args.Error(1)
}

func (m *MockBookService) GetByID(ctx context.Context, bookID string) (*book.Book, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*book.Book), args.Error(1)
}

func (m *MockBookService) ListOwn(ctx context.Context, opts book.ListOptions) ([]*book.Book, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*book.Book), args.Error(1)
}

func (m *MockBookService) Add(ctx context.Context, input book.NewBookInput) (*book.Book, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*book.Book), args.Error(1)
}

func (m *MockBookService) Edit(ctx context.Context, input book.UpdateBookInput) (*book.Book, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*book.Book), args.Error(1)
}

func (m *MockBookService) Remove(ctx context.Context, bookID string) error {
	args := m.Called(ctx, bookID)
	return args.Error(0)
}

func cartLine(bookID, title, sellerID string, qty int, price float64) *cart.CartItem {
	return &cart.CartItem{
		ID:       "item-" + bookID,
		BookID:   bookID,
		Quantity: qty,
		Book:     &book.Book{ID: bookID, Title: title, SellerID: sellerID, Price: price},
	}
}

func TestPlaceOrderHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		carts := new(MockCartService)
		orders := new(MockOrderService)
		api := NewHandler(Deps{Carts: carts, Orders: orders, Checkout: &metrics.Checkout{}})

		carts.On("Load", mock.Anything).Return([]*cart.CartItem{
			cartLine("book-a", "A", "seller-1", 2, 10.00),
			cartLine("book-b", "B", "seller-2", 1, 5.00),
		}, nil).Once()

		expectedItems := []order.CheckoutItem{
			{BookID: "book-a", Title: "A", SellerID: "seller-1", Quantity: 2, Price: 10.00},
			{BookID: "book-b", Title: "B", SellerID: "seller-2", Quantity: 1, Price: 5.00},
		}
		orders.On("PlaceOrder", mock.Anything, order.PlaceOrderParams{
			Items:   expectedItems,
			Total:   25.00,
			Address: "1 Main St",
			PhoneNo: "555-0100",
		}).Return(&order.PlaceOrderResult{OrderID: "order-1", Total: 25.00}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(
			`{"total": 25.00, "address": "1 Main St", "phone_no": "555-0100"}`))
		rec := httptest.NewRecorder()
		api.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)

		var resp checkoutResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "order-1", resp.OrderID)
		assert.Equal(t, 25.00, resp.Total)
		assert.Equal(t, "book-a", resp.FirstBookID)
		assert.Empty(t, resp.Warnings)
		orders.AssertExpectations(t)
	})

	t.Run("Success - non-fatal failures surface as warnings", func(t *testing.T) {
		carts := new(MockCartService)
		orders := new(MockOrderService)
		api := NewHandler(Deps{Carts: carts, Orders: orders, Checkout: &metrics.Checkout{}})

		carts.On("Load", mock.Anything).Return([]*cart.CartItem{
			cartLine("book-a", "A", "seller-1", 1, 10.00),
		}, nil).Once()
		orders.On("PlaceOrder", mock.Anything, mock.Anything).
			Return(&order.PlaceOrderResult{
				OrderID:      "order-1",
				Total:        10.00,
				CartClearErr: order.ErrCartClearFailed,
			}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(`{"total": 10.00}`))
		rec := httptest.NewRecorder()
		api.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)

		var resp checkoutResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Warnings, 1)
		assert.Contains(t, resp.Warnings[0], "cart")
	})

	t.Run("Error - insufficient stock maps to 409 with detail", func(t *testing.T) {
		carts := new(MockCartService)
		orders := new(MockOrderService)
		api := NewHandler(Deps{Carts: carts, Orders: orders, Checkout: &metrics.Checkout{}})

		carts.On("Load", mock.Anything).Return([]*cart.CartItem{
			cartLine("book-c", "C", "seller-1", 5, 8.00),
		}, nil).Once()
		orders.On("PlaceOrder", mock.Anything, mock.Anything).
			Return(nil, &order.InsufficientStockError{Title: "C", Available: 2}).Once()

		req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(`{"total": 40.00}`))
		rec := httptest.NewRecorder()
		api.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "not enough stock for C")
	})

	t.Run("Error - malformed body", func(t *testing.T) {
		api := NewHandler(Deps{Checkout: &metrics.Checkout{}})

		req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(`{"total": `))
		rec := httptest.NewRecorder()
		api.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCartHandlers(t *testing.T) {
	t.Run("POST /cart/items - Success", func(t *testing.T) {
		carts := new(MockCartService)
		api := NewHandler(Deps{Carts: carts, Checkout: &metrics.Checkout{}})

		carts.On("Add", mock.Anything, "book-1", 2).
			Return(cartLine("book-1", "A", "seller-1", 2, 10.00), nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/cart/items",
			strings.NewReader(`{"book_id": "book-1", "quantity": 2}`))
		rec := httptest.NewRecorder()
		api.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("POST /cart/items - insufficient stock maps to 409", func(t *testing.T) {
		carts := new(MockCartService)
		api := NewHandler(Deps{Carts: carts, Checkout: &metrics.Checkout{}})

		carts.On("Add", mock.Anything, "book-1", 9).
			Return(nil, cart.ErrInsufficientStock).Once()

		req := httptest.NewRequest(http.MethodPost, "/cart/items",
			strings.NewReader(`{"book_id": "book-1", "quantity": 9}`))
		rec := httptest.NewRecorder()
		api.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("PUT /cart/items/{id} - Success", func(t *testing.T) {
		carts := new(MockCartService)
		api := NewHandler(Deps{Carts: carts, Checkout: &metrics.Checkout{}})

		carts.On("UpdateQuantity", mock.Anything, "item-1", 3).Return(nil).Once()

		req := httptest.NewRequest(http.MethodPut, "/cart/items/item-1",
			strings.NewReader(`{"quantity": 3}`))
		rec := httptest.NewRecorder()
		api.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		carts.AssertExpectations(t)
	})

	t.Run("GET /cart - unauthenticated maps to 401", func(t *testing.T) {
		carts := new(MockCartService)
		api := NewHandler(Deps{Carts: carts, Checkout: &metrics.Checkout{}})

		carts.On("Load", mock.Anything).Return(nil, cart.ErrNotAuthenticated).Once()

		req := httptest.NewRequest(http.MethodGet, "/cart", nil)
		rec := httptest.NewRecorder()
		api.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestBookHandlers(t *testing.T) {
	t.Run("GET /books - query options forwarded", func(t *testing.T) {
		books := new(MockBookService)
		api := NewHandler(Deps{Books: books, Checkout: &metrics.Checkout{}})

		books.On("Browse", mock.Anything, book.ListOptions{Search: "go", Limit: 5, Page: 2}).
			Return([]*book.Book{{ID: "book-1", Title: "Go in Action"}}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/books?search=go&limit=5&page=2", nil)
		rec := httptest.NewRecorder()
		api.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Go in Action")
		books.AssertExpectations(t)
	})

	t.Run("GET /books/{id} - not found maps to 404", func(t *testing.T) {
		books := new(MockBookService)
		api := NewHandler(Deps{Books: books, Checkout: &metrics.Checkout{}})

		books.On("GetByID", mock.Anything, "missing").Return(nil, book.ErrBookNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/books/missing", nil)
		rec := httptest.NewRecorder()
		api.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("POST /books - non-seller maps to 403", func(t *testing.T) {
		books := new(MockBookService)
		api := NewHandler(Deps{Books: books, Checkout: &metrics.Checkout{}})

		books.On("Add", mock.Anything, mock.Anything).Return(nil, book.ErrNotSeller).Once()

		req := httptest.NewRequest(http.MethodPost, "/books",
			strings.NewReader(`{"title": "X", "price": 1, "stock": 1}`))
		rec := httptest.NewRecorder()
		api.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestOrderHandlers(t *testing.T) {
	t.Run("PUT /orders/{id}/status - Success", func(t *testing.T) {
		orders := new(MockOrderService)
		api := NewHandler(Deps{Orders: orders, Checkout: &metrics.Checkout{}})

		orders.On("UpdateStatus", mock.Anything, "order-1", order.StatusShipped).Return(nil).Once()

		req := httptest.NewRequest(http.MethodPut, "/orders/order-1/status",
			strings.NewReader(`{"status": "Shipped"}`))
		rec := httptest.NewRecorder()
		api.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		orders.AssertExpectations(t)
	})

	t.Run("PUT /orders/{id}/status - invalid transition maps to 409", func(t *testing.T) {
		orders := new(MockOrderService)
		api := NewHandler(Deps{Orders: orders, Checkout: &metrics.Checkout{}})

		orders.On("UpdateStatus", mock.Anything, "order-1", order.StatusPending).
			Return(order.ErrInvalidTransition).Once()

		req := httptest.NewRequest(http.MethodPut, "/orders/order-1/status",
			strings.NewReader(`{"status": "Pending"}`))
		rec := httptest.NewRecorder()
		api.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("GET /orders/{id} - foreign order maps to 403", func(t *testing.T) {
		orders := new(MockOrderService)
		api := NewHandler(Deps{Orders: orders, Checkout: &metrics.Checkout{}})

		orders.On("GetDetail", mock.Anything, "order-9").Return(nil, order.ErrUnauthorized).Once()

		req := httptest.NewRequest(http.MethodGet, "/orders/order-9", nil)
		rec := httptest.NewRecorder()
		api.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestHealthHandler(t *testing.T) {
	checkout := &metrics.Checkout{}
	checkout.Placed.Add(3)
	checkout.Failed.Inc()

	api := NewHandler(Deps{Checkout: checkout})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	api.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, 3, body["orders_placed"])
	assert.EqualValues(t, 1, body["checkouts_failed"])
}

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unauthenticated", order.ErrNotAuthenticated, http.StatusUnauthorized},
		{"not seller", order.ErrNotSeller, http.StatusForbidden},
		{"order not found", order.ErrOrderNotFound, http.StatusNotFound},
		{"checkout in flight", order.ErrCheckoutInFlight, http.StatusConflict},
		{"empty cart", order.ErrEmptyCart, http.StatusBadRequest},
		{"total mismatch", order.ErrTotalMismatch, http.StatusBadRequest},
		{"wrapped items failure", errors.New("boom"), http.StatusInternalServerError},
		{"order creation failed", order.ErrOrderCreationFailed, http.StatusBadGateway},
		{"backend unavailable", order.ErrBackendUnavailable, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeServiceError(rec, tt.err)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
