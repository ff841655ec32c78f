package order

import (
	"errors"
	"fmt"
)

var (
	// -- Authentication/Authorization --
	ErrNotAuthenticated = errors.New("user not authenticated")
	ErrNotSeller        = errors.New("only sellers can manage order status")
	ErrUnauthorized     = errors.New("cannot access others' orders")

	// -- Pre-conditions --
	ErrEmptyCart         = errors.New("cart is empty")
	ErrCheckoutInFlight  = errors.New("checkout already in progress")
	ErrTotalMismatch     = errors.New("submitted total does not match item prices")
	ErrInvalidTransition = errors.New("order status transition not allowed")
	ErrOrderNotFound     = errors.New("order not found")

	// -- Fatal workflow steps --
	ErrOrderCreationFailed = errors.New("order creation failed")
	ErrOrderItemsFailed    = errors.New("order items insertion failed")
	ErrStockUpdateFailed   = errors.New("stock update failed")

	// -- Non-fatal workflow steps --
	ErrAddressPersistFailed = errors.New("address persistence failed")
	ErrCartClearFailed      = errors.New("cart clearing failed")

	// -- Transport --
	ErrBackendUnavailable = errors.New("backend unavailable")
)

// InsufficientStockError names the offending book and what is actually left,
// so the caller can render a message better than "something failed".
type InsufficientStockError struct {
	Title     string
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock for %s: only %d available", e.Title, e.Available)
}
