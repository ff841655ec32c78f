package book

import "time"

type Book struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      *string   `json:"author,omitempty"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	SellerID    string    `json:"seller_id"`
	ImageURL    *string   `json:"image_url,omitempty"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type NewBookInput struct {
	Title       string
	Author      *string
	Price       float64
	Stock       int
	ImageURL    *string
	Description *string
}

type UpdateBookInput struct {
	BookID      string
	Title       string
	Author      *string
	Price       float64
	Stock       int
	ImageURL    *string
	Description *string
}

type ListOptions struct {
	Search   string
	SellerID string
	Limit    int32
	Page     int32
}
