package review

import "time"

type Review struct {
	ID        string    `json:"id"`
	BookID    string    `json:"book_id"`
	BuyerID   string    `json:"buyer_id"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateReviewInput struct {
	BookID  string
	Rating  int
	Comment *string
}
