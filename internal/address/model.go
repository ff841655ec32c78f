package address

import "time"

type Address struct {
	ID        string    `json:"id"`
	BuyerID   string    `json:"buyer_id"`
	Address   string    `json:"address"`
	PhoneNo   string    `json:"phone_no"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateAddressInput struct {
	Address string
	PhoneNo string
}
