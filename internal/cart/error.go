package cart

import "errors"

var (
	// -- Authentication/Authorization --
	ErrNotAuthenticated = errors.New("user not authenticated")

	// -- Validation & Input --
	ErrInvalidQuantity = errors.New("quantity must be at least one")

	// -- Resource State --
	ErrCartItemNotFound  = errors.New("cart item not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)
