// model/order.go
package model

import "time"

type OrderStatus string

const (
	OrderPaid OrderStatus = "PAID"
)

// Order is an immutable snapshot taken at checkout from the user's
// approved purchase requests. The request list stays the source of
// truth for lifecycle state; orders only record what was bought.
type Order struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	Status      OrderStatus `json:"status"`
	TotalAmount float64     `json:"total_amount"`
	Items       []OrderItem `json:"items,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

type OrderItem struct {
	ID        string  `json:"id"`
	OrderID   string  `json:"order_id"`
	BookID    string  `json:"book_id"`
	Title     string  `json:"title"`
	UnitPrice float64 `json:"unit_price"`
}
