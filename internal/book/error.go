package book

import "errors"

var (
	// -- Authentication/Authorization --
	ErrNotSeller = errors.New("only sellers can manage books")

	// -- Validation & Input --
	ErrEmptyTitle    = errors.New("title is required")
	ErrNegativePrice = errors.New("price must not be negative")
	ErrNegativeStock = errors.New("stock must not be negative")

	// -- Resource State --
	ErrBookNotFound = errors.New("book not found")

	// -- Stock mutation --
	ErrStockConflict = errors.New("stock below requested quantity")
)
