package models

import (
	"github.com/AminovSarvarbek/telegramshopfront/helper"
)

// CartLine is one product in the cart. At most one line exists per product
// id; the quantity is always at least 1.
type CartLine struct {
	ID       int64        `json:"id"`
	Name     string       `json:"name"`
	Price    helper.Cents `json:"price"`
	Quantity int          `json:"quantity"`
}

// Subtotal is price times quantity for this line.
func (l CartLine) Subtotal() helper.Cents {
	return l.Price * helper.Cents(l.Quantity)
}
