package models

// IngredientType classifies ingredients for grouping on the customization
// screen. It is a fixed enumeration; pricing logic never consumes it.
type IngredientType string

const (
	IngredientTypeSauce     IngredientType = "Sauce"
	IngredientTypeCheese    IngredientType = "Cheese"
	IngredientTypeMeat      IngredientType = "Meat"
	IngredientTypeFruit     IngredientType = "Fruit"
	IngredientTypeVegetable IngredientType = "Vegetable"
	IngredientTypeEdge      IngredientType = "Edge"
)

// IngredientTypes lists every valid classification in display order.
var IngredientTypes = []IngredientType{
	IngredientTypeSauce,
	IngredientTypeCheese,
	IngredientTypeMeat,
	IngredientTypeFruit,
	IngredientTypeVegetable,
	IngredientTypeEdge,
}

// Valid reports whether t is one of the enumerated ingredient types.
func (t IngredientType) Valid() bool {
	for _, known := range IngredientTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Ingredient represents a catalog ingredient.
type Ingredient struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `json:"description"`
	Type        IngredientType `json:"type,omitempty"`
}
