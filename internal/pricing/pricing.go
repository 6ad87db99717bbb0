package pricing

import (
	"math"

	"github.com/pizzamate/pizza-mate-api/internal/models"
)

// Pricing policy constants. Prices are integers in currency minor units.
const (
	// UnitIngredientCost is the price change per ingredient unit added to or
	// removed from a pizza's baseline ingredient set.
	UnitIngredientCost = 10

	// CustomPizzaBaseFee is the flat fee for a from-scratch custom pizza,
	// before per-ingredient costs.
	CustomPizzaBaseFee = 158
)

// PriceTable computes the price of a pizza for every size in the catalog:
// round(basePrice * multiplier) per size, rounded half up. It is a pure
// function of its inputs; callers pass the current size catalog on every call
// so the table always reflects the latest multipliers.
func PriceTable(basePrice int, sizes []models.PizzaSize) map[string]int {
	table := make(map[string]int, len(sizes))
	for _, size := range sizes {
		table[size.Name] = roundHalfUp(float64(basePrice) * size.Multiplier)
	}
	return table
}

// AdjustForDelta returns a copy of table shifted by the ingredient delta:
// (selectedTotal - baseIngredientCount) * UnitIngredientCost, applied
// uniformly to every size entry. A zero delta leaves all prices unchanged.
// Negative results are not clamped; clamping, if wanted, is the caller's call.
func AdjustForDelta(table map[string]int, baseIngredientCount, selectedTotal int) map[string]int {
	delta := selectedTotal - baseIngredientCount
	adjusted := make(map[string]int, len(table))
	for name, price := range table {
		adjusted[name] = price + delta*UnitIngredientCost
	}
	return adjusted
}

// CustomPizzaBasePrice computes the base price of a from-scratch custom pizza
// from its ingredient count. This is a separate pricing path from the
// size-multiplier table and must not be combined with it.
func CustomPizzaBasePrice(ingredientCount int) int {
	return CustomPizzaBaseFee + ingredientCount*UnitIngredientCost
}

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
