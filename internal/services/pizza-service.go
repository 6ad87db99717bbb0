package services

import (
	"errors"
	"strings"

	"github.com/pizzamate/pizza-mate-api/internal/models"
	"github.com/pizzamate/pizza-mate-api/internal/pricing"
	"gorm.io/gorm"
)

// PizzaService provides read and write access to the pizza catalog
type PizzaService interface {
	// GetAllPizzas retrieves the pizzas visible to a viewer: stock pizzas
	// plus, when viewerID is non-nil, that user's own custom pizzas.
	// A non-empty name filters by substring match.
	GetAllPizzas(viewerID *uint, name string) ([]models.Pizza, error)
	// GetPizzaByID retrieves a pizza with its size and ingredients
	GetPizzaByID(id uint) (models.Pizza, error)
	// GetIngredientByID retrieves a single ingredient
	GetIngredientByID(id uint) (models.Ingredient, error)
	// GetAllSizes retrieves the current size catalog
	GetAllSizes() ([]models.PizzaSize, error)
	// GetIngredientsByType retrieves all ingredients grouped by their classification
	GetIngredientsByType() (map[models.IngredientType][]models.Ingredient, error)
	// PriceTable computes the pizza's price for every size in the catalog
	PriceTable(pizza models.Pizza) (map[string]int, error)
	// CreateCustomPizza builds an owner-visible pizza from scratch; its base
	// price is derived from the ingredient count, not from a size table
	CreateCustomPizza(ownerID uint, name, description string, ingredientIDs []uint) (models.Pizza, error)
	// CreatePizza creates a new stock pizza in the catalog
	CreatePizza(pizza models.Pizza) (models.Pizza, error)
	// UpdatePizza updates an existing pizza in the catalog
	UpdatePizza(pizza models.Pizza) (models.Pizza, error)
	// DeletePizza deletes a pizza from the catalog by its ID
	DeletePizza(id uint) error
	// CreateIngredient adds an ingredient to the catalog
	CreateIngredient(ingredient models.Ingredient) (models.Ingredient, error)
	// CreateSize adds a size to the catalog
	CreateSize(size models.PizzaSize) (models.PizzaSize, error)
}

// pizzaService is the implementation of the PizzaService interface
type pizzaService struct {
	db *gorm.DB
}

// NewPizzaService creates a new instance of PizzaService
func NewPizzaService(db *gorm.DB) PizzaService {
	return &pizzaService{db: db}
}

func (s *pizzaService) GetAllPizzas(viewerID *uint, name string) ([]models.Pizza, error) {
	var pizzas []models.Pizza
	query := s.db.Preload("Size").Preload("Ingredients.Ingredient")
	if viewerID != nil {
		query = query.Where("user_id IS NULL OR user_id = ?", *viewerID)
	} else {
		query = query.Where("user_id IS NULL")
	}
	if name != "" {
		query = query.Where("name LIKE ?", "%"+name+"%")
	}
	if err := query.Find(&pizzas).Error; err != nil {
		return nil, err
	}
	return pizzas, nil
}

func (s *pizzaService) GetPizzaByID(id uint) (models.Pizza, error) {
	var pizza models.Pizza
	err := s.db.Preload("Size").Preload("Ingredients.Ingredient").First(&pizza, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Pizza{}, models.NewNotFoundError("pizza", id)
		}
		return models.Pizza{}, err
	}
	return pizza, nil
}

func (s *pizzaService) GetIngredientByID(id uint) (models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.First(&ingredient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Ingredient{}, models.NewNotFoundError("ingredient", id)
		}
		return models.Ingredient{}, err
	}
	return ingredient, nil
}

func (s *pizzaService) GetAllSizes() ([]models.PizzaSize, error) {
	var sizes []models.PizzaSize
	if err := s.db.Order("multiplier asc").Find(&sizes).Error; err != nil {
		return nil, err
	}
	return sizes, nil
}

func (s *pizzaService) GetIngredientsByType() (map[models.IngredientType][]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if err := s.db.Order("name asc").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	grouped := make(map[models.IngredientType][]models.Ingredient)
	for _, ingredient := range ingredients {
		grouped[ingredient.Type] = append(grouped[ingredient.Type], ingredient)
	}
	return grouped, nil
}

// PriceTable re-reads the size catalog on every call so prices always follow
// the latest multipliers; computed tables are never cached.
func (s *pizzaService) PriceTable(pizza models.Pizza) (map[string]int, error) {
	sizes, err := s.GetAllSizes()
	if err != nil {
		return nil, err
	}
	return pricing.PriceTable(pizza.BasePrice, sizes), nil
}

func (s *pizzaService) CreateCustomPizza(ownerID uint, name, description string, ingredientIDs []uint) (models.Pizza, error) {
	if strings.TrimSpace(name) == "" {
		return models.Pizza{}, models.NewValidationError("name", "must not be empty")
	}
	if len(ingredientIDs) == 0 {
		return models.Pizza{}, models.NewValidationError("ingredients", "at least one ingredient is required")
	}

	// Validate every ingredient before writing anything
	lines := make([]models.PizzaIngredient, 0, len(ingredientIDs))
	for _, id := range ingredientIDs {
		ingredient, err := s.GetIngredientByID(id)
		if err != nil {
			return models.Pizza{}, err
		}
		lines = append(lines, models.PizzaIngredient{IngredientID: ingredient.ID, Quantity: 1})
	}

	pizza := models.Pizza{
		Name:        name,
		Description: description,
		BasePrice:   pricing.CustomPizzaBasePrice(len(ingredientIDs)),
		UserID:      &ownerID,
		Ingredients: lines,
	}
	if err := s.db.Create(&pizza).Error; err != nil {
		return models.Pizza{}, models.NewStorageError("create custom pizza", err)
	}
	return s.GetPizzaByID(pizza.ID)
}

func (s *pizzaService) CreatePizza(pizza models.Pizza) (models.Pizza, error) {
	if err := s.db.Create(&pizza).Error; err != nil {
		return models.Pizza{}, err
	}
	return pizza, nil
}

func (s *pizzaService) UpdatePizza(pizza models.Pizza) (models.Pizza, error) {
	if err := s.db.Save(&pizza).Error; err != nil {
		return models.Pizza{}, err
	}
	return pizza, nil
}

func (s *pizzaService) DeletePizza(id uint) error {
	if err := s.db.Delete(&models.Pizza{}, id).Error; err != nil {
		return err
	}
	return nil
}

func (s *pizzaService) CreateIngredient(ingredient models.Ingredient) (models.Ingredient, error) {
	if ingredient.Type != "" && !ingredient.Type.Valid() {
		return models.Ingredient{}, models.NewValidationError("type", "unknown ingredient type")
	}
	if err := s.db.Create(&ingredient).Error; err != nil {
		return models.Ingredient{}, err
	}
	return ingredient, nil
}

func (s *pizzaService) CreateSize(size models.PizzaSize) (models.PizzaSize, error) {
	if size.Multiplier <= 0 {
		return models.PizzaSize{}, models.NewValidationError("multiplier", "must be positive")
	}
	if err := s.db.Create(&size).Error; err != nil {
		return models.PizzaSize{}, err
	}
	return size, nil
}
