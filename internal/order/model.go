package order

import "time"

type Status string

const (
	StatusPending   Status = "Pending"
	StatusShipped   Status = "Shipped"
	StatusDelivered Status = "Delivered"
	StatusCancelled Status = "Cancelled"
)

// Transitions is the allowed status graph. The source system accepted any
// transition from any status; that behavior is recoverable by configuring a
// permissive table, but is never the default.
type Transitions map[Status][]Status

// DefaultTransitions: Delivered and Cancelled are terminal.
var DefaultTransitions = Transitions{
	StatusPending: {StatusShipped, StatusCancelled},
	StatusShipped: {StatusDelivered, StatusCancelled},
}

func (t Transitions) Allowed(from, to Status) bool {
	for _, next := range t[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Order struct {
	ID         string      `json:"id"`
	BuyerID    string      `json:"buyer_id"`
	TotalPrice float64     `json:"total_price"`
	Status     Status      `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
	Items      []OrderItem `json:"items,omitempty"`
}

// OrderItem captures the book's price at order time, decoupled from the
// current book price.
type OrderItem struct {
	ID       string  `json:"id"`
	OrderID  string  `json:"order_id"`
	BookID   string  `json:"book_id"`
	SellerID string  `json:"seller_id"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`

	BookTitle string `json:"book_title,omitempty"`
}

// SellerOrder is an order as seen by one seller: buyer contact plus only the
// items that belong to that seller.
type SellerOrder struct {
	Order
	BuyerName  string `json:"buyer_name"`
	BuyerEmail string `json:"buyer_email"`
}

type SellerStats struct {
	BookCount int     `json:"book_count"`
	UnitsSold int     `json:"units_sold"`
	Revenue   float64 `json:"revenue"`
}

// CheckoutItem is one cart line handed to PlaceOrder by the caller.
type CheckoutItem struct {
	BookID   string
	Title    string
	SellerID string
	Quantity int
	Price    float64
}

type PlaceOrderParams struct {
	Items []CheckoutItem
	Total float64

	// AddressID selects a previously saved address. When nil the submitted
	// Address/PhoneNo pair is persisted as a new row after the order commits.
	AddressID *string
	Address   string
	PhoneNo   string
}

// PlaceOrderResult reports a committed checkout. AddressErr and CartClearErr
// carry the non-fatal step failures; the order stands either way.
type PlaceOrderResult struct {
	OrderID string  `json:"order_id"`
	Total   float64 `json:"total"`

	AddressErr   error `json:"-"`
	CartClearErr error `json:"-"`
}
