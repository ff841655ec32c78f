package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"bookstall-be/internal/address"
	"bookstall-be/internal/book"
	"bookstall-be/internal/cart"
	"bookstall-be/internal/order"
	"bookstall-be/internal/review"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func decodeJSON(body io.Reader, dst any) error {
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// writeServiceError maps domain errors onto HTTP statuses. Fatal checkout
// errors keep their specific messages so the client can show the buyer what
// actually went wrong.
func writeServiceError(w http.ResponseWriter, err error) {
	var insufficient *order.InsufficientStockError
	if errors.As(err, &insufficient) {
		writeError(w, http.StatusConflict, err)
		return
	}

	switch {
	case errors.Is(err, cart.ErrNotAuthenticated),
		errors.Is(err, order.ErrNotAuthenticated),
		errors.Is(err, address.ErrNotAuthenticated),
		errors.Is(err, review.ErrNotAuthenticated):
		writeError(w, http.StatusUnauthorized, err)

	case errors.Is(err, book.ErrNotSeller),
		errors.Is(err, order.ErrNotSeller),
		errors.Is(err, order.ErrUnauthorized):
		writeError(w, http.StatusForbidden, err)

	case errors.Is(err, book.ErrBookNotFound),
		errors.Is(err, cart.ErrCartItemNotFound),
		errors.Is(err, address.ErrAddressNotFound),
		errors.Is(err, order.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, err)

	case errors.Is(err, cart.ErrInsufficientStock),
		errors.Is(err, order.ErrCheckoutInFlight),
		errors.Is(err, order.ErrInvalidTransition):
		writeError(w, http.StatusConflict, err)

	case errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, order.ErrEmptyCart),
		errors.Is(err, order.ErrTotalMismatch),
		errors.Is(err, book.ErrEmptyTitle),
		errors.Is(err, book.ErrNegativePrice),
		errors.Is(err, book.ErrNegativeStock),
		errors.Is(err, address.ErrEmptyFields),
		errors.Is(err, review.ErrInvalidRating):
		writeError(w, http.StatusBadRequest, err)

	case errors.Is(err, order.ErrOrderCreationFailed),
		errors.Is(err, order.ErrOrderItemsFailed),
		errors.Is(err, order.ErrStockUpdateFailed),
		errors.Is(err, order.ErrBackendUnavailable):
		writeError(w, http.StatusBadGateway, err)

	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}
