package models

// APIResponse is the common envelope the backend wraps replies in.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// OrderResponse is the reply to POST /orders.
type OrderResponse struct {
	APIResponse
	OrderID string `json:"orderId,omitempty"`
}

// AdminVerifyResponse is the reply to POST /admin/verify and /admin/login.
type AdminVerifyResponse struct {
	APIResponse
	IsAdmin bool `json:"isAdmin"`
}
