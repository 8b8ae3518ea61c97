package models

import (
	"time"

	"github.com/AminovSarvarbek/telegramshopfront/helper"
)

type OrderStatus string

const (
	StatusNew        OrderStatus = "new"
	StatusProcessing OrderStatus = "processing"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

// OrderRequest is the body of POST /orders. User is nil when no identity
// could be established; the backend decides whether to accept such orders.
type OrderRequest struct {
	Items []CartLine   `json:"items"`
	Total helper.Cents `json:"total"`
	User  *Identity    `json:"user"`
}

// Order is a placed order as returned by GET /admin/orders.
type Order struct {
	ID        string       `json:"id"`
	Items     []CartLine   `json:"items"`
	Total     helper.Cents `json:"total"`
	User      *Identity    `json:"user,omitempty"`
	Status    OrderStatus  `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
}
