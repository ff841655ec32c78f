package httpapi

import (
	"net/http"

	"bookstall-be/internal/order"
)

type checkoutResponse struct {
	OrderID string  `json:"order_id"`
	Total   float64 `json:"total"`

	// Warnings carry the non-fatal step failures (address save, cart
	// clear); the order itself stands.
	Warnings []string `json:"warnings,omitempty"`

	// FirstBookID lets the client prompt for a review of the first
	// purchased book.
	FirstBookID string `json:"first_book_id,omitempty"`
}

// placeOrder reloads the buyer's live cart server-side and hands its lines
// to the workflow together with the client's precomputed total.
func (h *handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Total     float64 `json:"total"`
		AddressID *string `json:"address_id"`
		Address   string  `json:"address"`
		PhoneNo   string  `json:"phone_no"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	items, err := h.carts.Load(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	checkoutItems := make([]order.CheckoutItem, 0, len(items))
	for _, item := range items {
		checkoutItems = append(checkoutItems, order.CheckoutItem{
			BookID:   item.BookID,
			Title:    item.Book.Title,
			SellerID: item.Book.SellerID,
			Quantity: item.Quantity,
			Price:    item.Book.Price,
		})
	}

	result, err := h.orders.PlaceOrder(r.Context(), order.PlaceOrderParams{
		Items:     checkoutItems,
		Total:     payload.Total,
		AddressID: payload.AddressID,
		Address:   payload.Address,
		PhoneNo:   payload.PhoneNo,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := checkoutResponse{
		OrderID: result.OrderID,
		Total:   result.Total,
	}
	if result.AddressErr != nil {
		resp.Warnings = append(resp.Warnings, result.AddressErr.Error())
	}
	if result.CartClearErr != nil {
		resp.Warnings = append(resp.Warnings, result.CartClearErr.Error())
	}
	if len(checkoutItems) > 0 {
		resp.FirstBookID = checkoutItems[0].BookID
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *handler) orderHistory(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.History(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *handler) orderDetail(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.GetDetail(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.orders.UpdateStatus(r.Context(), r.PathValue("id"), order.Status(payload.Status)); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) sellerOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.SellerOrders(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *handler) sellerDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.orders.Dashboard(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
