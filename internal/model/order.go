package model

import "time"

// OrderCustomer identifies who placed an order.
type OrderCustomer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// OrderItem is a single line of an order as submitted by the storefront.
type OrderItem struct {
	ProductID int64   `json:"id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"qty"`
}

// Order represents an order in the database. Customer and Items are stored
// as JSON text columns.
type Order struct {
	ID        int64
	Customer  OrderCustomer
	Items     []OrderItem
	Total     float64
	CreatedAt time.Time
}

// CreateOrderRequest represents an order submission.
type CreateOrderRequest struct {
	Customer OrderCustomer `json:"customer"`
	Items    []OrderItem   `json:"items"`
	Total    float64       `json:"total"`
}

// CreateOrderResponse acknowledges a stored order.
type CreateOrderResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// OrderResponse represents an order in API responses.
type OrderResponse struct {
	ID        int64         `json:"id"`
	Customer  OrderCustomer `json:"customer"`
	Items     []OrderItem   `json:"items"`
	Total     float64       `json:"total"`
	CreatedAt time.Time     `json:"created_at"`
}
