// Package httpapi exposes the storefront's operations over REST. It is the
// caller surface the mobile clients talk to; all business rules live in the
// domain services.
package httpapi

import (
	"net/http"

	"bookstall-be/internal/address"
	"bookstall-be/internal/book"
	"bookstall-be/internal/cart"
	"bookstall-be/internal/metrics"
	"bookstall-be/internal/order"
	"bookstall-be/internal/review"
	"bookstall-be/internal/user"
)

// handler bundles HTTP endpoints for the application services.
type handler struct {
	users     user.Service
	books     book.Service
	carts     cart.Service
	addresses address.Service
	orders    order.Service
	reviews   review.Service
	checkout  *metrics.Checkout
}

type Deps struct {
	Users     user.Service
	Books     book.Service
	Carts     cart.Service
	Addresses address.Service
	Orders    order.Service
	Reviews   review.Service
	Checkout  *metrics.Checkout
}

// NewHandler returns a mux exposing the core REST API.
func NewHandler(deps Deps) http.Handler {
	h := &handler{
		users:     deps.Users,
		books:     deps.Books,
		carts:     deps.Carts,
		addresses: deps.Addresses,
		orders:    deps.Orders,
		reviews:   deps.Reviews,
		checkout:  deps.Checkout,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", h.health)

	mux.HandleFunc("POST /auth/register", h.register)
	mux.HandleFunc("POST /auth/login", h.login)
	mux.HandleFunc("GET /auth/me", h.me)

	mux.HandleFunc("GET /books", h.browseBooks)
	mux.HandleFunc("GET /books/{id}", h.getBook)
	mux.HandleFunc("POST /books", h.addBook)
	mux.HandleFunc("PUT /books/{id}", h.editBook)
	mux.HandleFunc("DELETE /books/{id}", h.removeBook)
	mux.HandleFunc("GET /books/{id}/reviews", h.bookReviews)

	mux.HandleFunc("GET /cart", h.getCart)
	mux.HandleFunc("POST /cart/items", h.addToCart)
	mux.HandleFunc("PUT /cart/items/{id}", h.updateCartItem)
	mux.HandleFunc("DELETE /cart/items/{id}", h.removeCartItem)
	mux.HandleFunc("DELETE /cart", h.clearCart)

	mux.HandleFunc("GET /addresses", h.listAddresses)
	mux.HandleFunc("POST /addresses", h.createAddress)
	mux.HandleFunc("DELETE /addresses/{id}", h.deleteAddress)

	mux.HandleFunc("POST /checkout", h.placeOrder)
	mux.HandleFunc("GET /orders", h.orderHistory)
	mux.HandleFunc("GET /orders/{id}", h.orderDetail)
	mux.HandleFunc("PUT /orders/{id}/status", h.updateOrderStatus)

	mux.HandleFunc("GET /seller/books", h.sellerBooks)
	mux.HandleFunc("GET /seller/orders", h.sellerOrders)
	mux.HandleFunc("GET /seller/dashboard", h.sellerDashboard)

	mux.HandleFunc("POST /reviews", h.createReview)

	return mux
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":           "ok",
		"orders_placed":    h.checkout.Placed.Load(),
		"checkouts_failed": h.checkout.Failed.Load(),
	})
}
