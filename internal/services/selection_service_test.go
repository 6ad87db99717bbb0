package services

import (
	"strconv"
	"testing"

	"github.com/pizzamate/pizza-mate-api/internal/models"
	"github.com/pizzamate/pizza-mate-api/internal/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveIngredientQuantities(t *testing.T) {
	db := setupTestDB(t)
	_, ingredients := seedCatalog(t, db)
	selection := NewSelectionService(NewPizzaService(db))

	id0 := strconv.Itoa(int(ingredients[0].ID))
	id1 := strconv.Itoa(int(ingredients[1].ID))

	t.Run("parses submitted quantities", func(t *testing.T) {
		resolved, err := selection.ResolveIngredientQuantities(
			[]string{id0, id1},
			map[string]string{id0: "2", id1: "3"},
		)
		require.NoError(t, err)
		assert.Equal(t, map[uint]int{ingredients[0].ID: 2, ingredients[1].ID: 3}, resolved)
	})

	t.Run("missing quantity defaults to 1", func(t *testing.T) {
		resolved, err := selection.ResolveIngredientQuantities(
			[]string{id0, id1},
			map[string]string{id1: "4"},
		)
		require.NoError(t, err)
		assert.Equal(t, 1, resolved[ingredients[0].ID])
		assert.Equal(t, 4, resolved[ingredients[1].ID])
	})

	t.Run("unknown ingredient fails the whole resolution", func(t *testing.T) {
		resolved, err := selection.ResolveIngredientQuantities(
			[]string{id0, "9999"},
			map[string]string{},
		)
		var notFound *models.NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "ingredient", notFound.Resource)
		assert.Nil(t, resolved)
	})

	t.Run("non-numeric quantity is a validation error", func(t *testing.T) {
		_, err := selection.ResolveIngredientQuantities(
			[]string{id0},
			map[string]string{id0: "lots"},
		)
		var validation *models.ValidationError
		require.ErrorAs(t, err, &validation)
	})

	t.Run("non-numeric ingredient id is a validation error", func(t *testing.T) {
		_, err := selection.ResolveIngredientQuantities(
			[]string{"mozzarella"},
			map[string]string{},
		)
		var validation *models.ValidationError
		require.ErrorAs(t, err, &validation)
	})
}

func TestResolveSelection(t *testing.T) {
	db := setupTestDB(t)
	pizza, ingredients := seedCatalog(t, db)
	selection := NewSelectionService(NewPizzaService(db))

	id0 := strconv.Itoa(int(ingredients[0].ID))
	id1 := strconv.Itoa(int(ingredients[1].ID))
	id2 := strconv.Itoa(int(ingredients[2].ID))

	t.Run("unchanged selection keeps base prices", func(t *testing.T) {
		// Margarita ships with 2 ingredients; selecting the same two at
		// quantity 1 is a zero delta.
		resolved, err := selection.ResolveSelection(pizza.ID, "", []string{id0, id1}, nil)
		require.NoError(t, err)

		assert.Equal(t, map[string]int{"Small": 100, "Medium": 150, "Big": 200}, resolved.Prices)
		assert.Equal(t, DefaultSizeName, resolved.Size)
		assert.Equal(t, 100, resolved.Price)
	})

	t.Run("extra ingredient units shift every size", func(t *testing.T) {
		resolved, err := selection.ResolveSelection(pizza.ID, "Medium",
			[]string{id0, id1, id2},
			map[string]string{id2: "2"},
		)
		require.NoError(t, err)

		// 4 selected units against a baseline of 2: +2 * unit cost
		shift := 2 * pricing.UnitIngredientCost
		assert.Equal(t, map[string]int{
			"Small":  100 + shift,
			"Medium": 150 + shift,
			"Big":    200 + shift,
		}, resolved.Prices)
		assert.Equal(t, 150+shift, resolved.Price)
		assert.Len(t, resolved.Ingredients, 3)
	})

	t.Run("removing ingredients lowers every size", func(t *testing.T) {
		resolved, err := selection.ResolveSelection(pizza.ID, "Small", []string{id0}, nil)
		require.NoError(t, err)

		shift := pricing.UnitIngredientCost
		assert.Equal(t, 100-shift, resolved.Prices["Small"])
		assert.Equal(t, 150-shift, resolved.Prices["Medium"])
	})

	t.Run("unknown pizza", func(t *testing.T) {
		_, err := selection.ResolveSelection(9999, "", nil, nil)
		var notFound *models.NotFoundError
		require.ErrorAs(t, err, &notFound)
	})

	t.Run("unknown size", func(t *testing.T) {
		_, err := selection.ResolveSelection(pizza.ID, "Colossal", []string{id0, id1}, nil)
		var notFound *models.NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "size", notFound.Resource)
	})
}
