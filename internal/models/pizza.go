package models

import (
	"time"
)

// PizzaSize represents one of the catalog's pizza sizes. The multiplier is
// applied to a pizza's base price; weight is informational only.
type PizzaSize struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	Name       string  `gorm:"uniqueIndex;not null" json:"name"`
	Weight     int     `json:"weight"`
	Multiplier float64 `gorm:"not null" json:"multiplier"`
}

// Pizza represents a pizza with its properties.
// BasePrice is in currency minor units, before any size multiplier.
// A nil UserID means the pizza is a stock pizza visible to everyone;
// otherwise it is a custom pizza visible only to its owner.
type Pizza struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	Name        string            `gorm:"not null" json:"name"`
	Description string            `json:"description"`
	BasePrice   int               `gorm:"not null" json:"base_price"`
	SizeID      *uint             `json:"size_id,omitempty"`
	Size        *PizzaSize        `json:"size,omitempty"`
	UserID      *uint             `json:"user_id,omitempty"`
	Ingredients []PizzaIngredient `gorm:"foreignKey:PizzaID" json:"ingredients"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// PizzaIngredient links a pizza to one of its ingredients with a quantity.
type PizzaIngredient struct {
	PizzaID      uint       `gorm:"primaryKey" json:"pizza_id"`
	IngredientID uint       `gorm:"primaryKey" json:"ingredient_id"`
	Ingredient   Ingredient `json:"ingredient"`
	Quantity     int        `gorm:"not null;default:1" json:"quantity"`
}

// SelectedIngredient is one entry of a customer's customization.
type SelectedIngredient struct {
	Ingredient Ingredient `json:"ingredient"`
	Quantity   int        `json:"quantity"`
}

// PricedSelection is the computed view of a pizza plus a customization:
// the full per-size price table after ingredient adjustments and the price
// of the currently selected size. It is built per request and never persisted.
type PricedSelection struct {
	Pizza       Pizza                `json:"pizza"`
	Size        string               `json:"size"`
	Ingredients []SelectedIngredient `json:"ingredients"`
	Prices      map[string]int       `json:"prices"`
	Price       int                  `json:"price"`
}
