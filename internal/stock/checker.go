// Package stock holds the shared pre-condition gate used before every cart
// mutation and at the head of checkout: fetch the live stock, compare to the
// requested quantity.
package stock

import (
	"context"

	"bookstall-be/internal/logger"

	"go.uber.org/zap"
)

// Reader is the single read the checker needs. book.Repository satisfies it.
type Reader interface {
	StockOf(ctx context.Context, bookID string) (int, error)
}

type Checker struct {
	books Reader
}

func NewChecker(books Reader) *Checker {
	return &Checker{books: books}
}

// Available returns the live stock for a book.
func (c *Checker) Available(ctx context.Context, bookID string) (int, error) {
	return c.books.StockOf(ctx, bookID)
}

// Sufficient reports whether the live stock covers qty. A read failure is
// treated as insufficient: when stock cannot be confirmed, the gate stays
// closed.
func (c *Checker) Sufficient(ctx context.Context, bookID string, qty int) bool {
	stock, err := c.books.StockOf(ctx, bookID)
	if err != nil {
		logger.FromCtx(ctx).Warn("stock check failed, treating as insufficient",
			zap.String("book_id", bookID),
			zap.Error(err),
		)
		return false
	}
	return stock >= qty
}
