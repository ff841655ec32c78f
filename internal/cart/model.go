package cart

import (
	"time"

	"bookstall-be/internal/book"
)

type CartItem struct {
	ID        string    `json:"id"`
	BuyerID   string    `json:"buyer_id"`
	BookID    string    `json:"book_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Book is populated on joined reads.
	Book *book.Book `json:"book,omitempty"`
}

type UpsertParams struct {
	BuyerID  string
	BookID   string
	Quantity int
}
