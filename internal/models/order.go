package models

import (
	"time"
)

// Order is a committed customer order. TotalPrice is fixed at creation time
// and always equals the sum of quantity * unit price over its line items.
type Order struct {
	ID         uint         `gorm:"primaryKey" json:"id"`
	Reference  string       `gorm:"uniqueIndex;not null" json:"reference"`
	CustomerID uint         `gorm:"not null" json:"customer_id"`
	Customer   User         `json:"-"`
	TotalPrice float64      `gorm:"not null" json:"total_price"`
	Pizzas     []OrderPizza `gorm:"foreignKey:OrderID" json:"pizzas"`
	CreatedAt  time.Time    `json:"created_at"`
}

// OrderPizza is a single order line: one pizza with a quantity.
// UnitPrice captures the price at the time of order so the order total can be
// reconstructed per line later, even if catalog prices change.
type OrderPizza struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"not null;index" json:"order_id"`
	PizzaID   uint    `gorm:"not null" json:"pizza_id"`
	Pizza     Pizza   `json:"pizza"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	UnitPrice float64 `gorm:"not null" json:"unit_price"`
}
