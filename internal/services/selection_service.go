package services

import (
	"strconv"

	"github.com/pizzamate/pizza-mate-api/internal/models"
	"github.com/pizzamate/pizza-mate-api/internal/pricing"
)

// DefaultSizeName is the size highlighted when the client does not pick one.
const DefaultSizeName = "Small"

// SelectionService turns raw client-submitted customization data into a
// validated, priced view of a pizza
type SelectionService interface {
	// ResolveIngredientQuantities validates the submitted ingredient ids
	// against the catalog and parses their quantities. A missing quantity
	// defaults to 1. An unknown ingredient fails the whole resolution.
	ResolveIngredientQuantities(selectedIDs []string, rawQuantities map[string]string) (map[uint]int, error)
	// ResolveSelection composes quantity resolution with the pricing engine
	// to produce the full priced view of a customized pizza
	ResolveSelection(pizzaID uint, sizeName string, selectedIDs []string, rawQuantities map[string]string) (models.PricedSelection, error)
}

type selectionService struct {
	catalog PizzaService
}

// NewSelectionService creates a new instance of SelectionService
func NewSelectionService(catalog PizzaService) SelectionService {
	return &selectionService{catalog: catalog}
}

func (s *selectionService) ResolveIngredientQuantities(selectedIDs []string, rawQuantities map[string]string) (map[uint]int, error) {
	resolved := make(map[uint]int, len(selectedIDs))
	for _, rawID := range selectedIDs {
		id, err := strconv.ParseUint(rawID, 10, 32)
		if err != nil {
			return nil, models.NewValidationError("ingredient id", "must be numeric, got "+strconv.Quote(rawID))
		}

		ingredient, err := s.catalog.GetIngredientByID(uint(id))
		if err != nil {
			return nil, err
		}

		quantity := 1
		if raw, ok := rawQuantities[rawID]; ok {
			quantity, err = strconv.Atoi(raw)
			if err != nil {
				return nil, models.NewValidationError("quantity", "must be numeric, got "+strconv.Quote(raw))
			}
			if quantity < 0 {
				return nil, models.NewValidationError("quantity", "must not be negative")
			}
		}
		resolved[ingredient.ID] = quantity
	}
	return resolved, nil
}

func (s *selectionService) ResolveSelection(pizzaID uint, sizeName string, selectedIDs []string, rawQuantities map[string]string) (models.PricedSelection, error) {
	pizza, err := s.catalog.GetPizzaByID(pizzaID)
	if err != nil {
		return models.PricedSelection{}, err
	}

	quantities, err := s.ResolveIngredientQuantities(selectedIDs, rawQuantities)
	if err != nil {
		return models.PricedSelection{}, err
	}

	table, err := s.catalog.PriceTable(pizza)
	if err != nil {
		return models.PricedSelection{}, err
	}

	// The adjustment compares total selected units against the number of
	// ingredients the pizza ships with, and shifts every size's price by the
	// same amount.
	selectedTotal := 0
	for _, quantity := range quantities {
		selectedTotal += quantity
	}
	prices := pricing.AdjustForDelta(table, len(pizza.Ingredients), selectedTotal)

	if sizeName == "" {
		sizeName = DefaultSizeName
	}
	price, ok := prices[sizeName]
	if !ok {
		return models.PricedSelection{}, models.NewNotFoundError("size", sizeName)
	}

	// Keep the client's submission order; quantities is a lookup structure.
	ingredients := make([]models.SelectedIngredient, 0, len(selectedIDs))
	seen := make(map[uint]bool, len(selectedIDs))
	for _, rawID := range selectedIDs {
		id64, _ := strconv.ParseUint(rawID, 10, 32)
		id := uint(id64)
		if seen[id] {
			continue
		}
		seen[id] = true
		ingredient, err := s.catalog.GetIngredientByID(id)
		if err != nil {
			return models.PricedSelection{}, err
		}
		ingredients = append(ingredients, models.SelectedIngredient{
			Ingredient: ingredient,
			Quantity:   quantities[id],
		})
	}

	return models.PricedSelection{
		Pizza:       pizza,
		Size:        sizeName,
		Ingredients: ingredients,
		Prices:      prices,
		Price:       price,
	}, nil
}
