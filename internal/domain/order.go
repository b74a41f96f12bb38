package domain

import "time"

const OrderStatusCreated = "created"

// Order is a confirmed purchase. Orders are written once, after payment
// succeeds, together with all of their items.
type Order struct {
	ID          int64
	CustomerID  string
	Status      string
	TotalAmount float64
	CreatedAt   time.Time
}

// OrderItem is one line of an order.
type OrderItem struct {
	OrderID  int64
	SKU      string
	Quantity int
	Price    float64
}
