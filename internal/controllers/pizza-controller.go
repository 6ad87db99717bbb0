package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pizzamate/pizza-mate-api/internal/models"
	"github.com/pizzamate/pizza-mate-api/internal/services"
)

// PizzaController handles HTTP requests related to the pizza catalog
type PizzaController interface {
	// GetAllPizzas retrieves the pizzas visible to the caller
	GetAllPizzas(c *gin.Context)
	// GetPizzaByID retrieves a pizza by its ID
	GetPizzaByID(c *gin.Context)
	// GetPriceTable retrieves a pizza's price for every catalog size
	GetPriceTable(c *gin.Context)
	// CustomizePizza resolves a customization and returns the adjusted prices
	CustomizePizza(c *gin.Context)
	// GetIngredients retrieves the ingredient catalog grouped by type
	GetIngredients(c *gin.Context)
	// GetSizes retrieves the size catalog
	GetSizes(c *gin.Context)
	// CreateCustomPizza builds a from-scratch pizza for the caller
	CreateCustomPizza(c *gin.Context)
	// CreatePizza creates a new stock pizza (admin)
	CreatePizza(c *gin.Context)
	// UpdatePizza updates an existing pizza (admin)
	UpdatePizza(c *gin.Context)
	// DeletePizza deletes a pizza by its ID (admin)
	DeletePizza(c *gin.Context)
	// CreateIngredient adds an ingredient to the catalog (admin)
	CreateIngredient(c *gin.Context)
	// CreateSize adds a size to the catalog (admin)
	CreateSize(c *gin.Context)
}

type controller struct {
	catalog   services.PizzaService
	selection services.SelectionService
}

// NewPizzaController creates a new instance of PizzaController
func NewPizzaController(catalog services.PizzaService, selection services.SelectionService) *controller {
	return &controller{catalog: catalog, selection: selection}
}

func pizzaIDParam(ctx *gin.Context) (uint, bool) {
	id, existId := ctx.Params.Get("id")
	if !existId {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pizza ID"})
		return 0, false
	}
	pizzaId, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pizza ID format"})
		return 0, false
	}
	return uint(pizzaId), true
}

// GetAllPizzas godoc
// @Summary Get all pizzas
// @Description Get the pizzas visible to the caller: stock pizzas plus the caller's own custom pizzas when authenticated
// @Tags pizzas
// @Accept json
// @Produce json
// @Param name query string false "Filter by pizza name (partial match)"
// @Success 200 {array} models.Pizza
// @Failure 500 {object} models.APIError
// @Router /api/v1/public/pizzas [get]
func (c *controller) GetAllPizzas(ctx *gin.Context) {
	name := ctx.Query("name")

	var viewerID *uint
	if id, ok := currentUserID(ctx); ok {
		viewerID = &id
	}

	pizzas, err := c.catalog.GetAllPizzas(viewerID, name)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve pizzas"})
		return
	}
	ctx.JSON(http.StatusOK, pizzas)
}

// GetPizzaByID godoc
// @Summary Get pizza by ID
// @Description Get a single pizza by its ID
// @Tags pizzas
// @Accept json
// @Produce json
// @Param id path int true "Pizza ID"
// @Success 200 {object} models.Pizza
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/v1/public/pizzas/{id} [get]
func (c *controller) GetPizzaByID(ctx *gin.Context) {
	pizzaId, ok := pizzaIDParam(ctx)
	if !ok {
		return
	}

	pizza, err := c.catalog.GetPizzaByID(pizzaId)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, pizza)
}

// GetPriceTable godoc
// @Summary Get a pizza's price table
// @Description Get the pizza's price for every size in the catalog, recomputed from the current multipliers
// @Tags pizzas
// @Accept json
// @Produce json
// @Param id path int true "Pizza ID"
// @Success 200 {object} map[string]int
// @Failure 404 {object} models.APIError
// @Router /api/v1/public/pizzas/{id}/prices [get]
func (c *controller) GetPriceTable(ctx *gin.Context) {
	pizzaId, ok := pizzaIDParam(ctx)
	if !ok {
		return
	}

	pizza, err := c.catalog.GetPizzaByID(pizzaId)
	if err != nil {
		respondError(ctx, err)
		return
	}

	table, err := c.catalog.PriceTable(pizza)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute prices"})
		return
	}
	ctx.JSON(http.StatusOK, table)
}

// CustomizeRequest is the payload for resolving a pizza customization.
// Quantities is keyed by ingredient id; a selected ingredient missing from it
// defaults to quantity 1.
type CustomizeRequest struct {
	Size        string            `json:"size"`
	Ingredients []string          `json:"ingredients"`
	Quantities  map[string]string `json:"quantities"`
}

// CustomizePizza godoc
// @Summary Resolve a pizza customization
// @Description Validate the selected ingredients and quantities and return the adjusted price table for the pizza
// @Tags pizzas
// @Accept json
// @Produce json
// @Param id path int true "Pizza ID"
// @Param selection body CustomizeRequest true "Selected ingredients and quantities"
// @Success 200 {object} models.PricedSelection
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/v1/public/pizzas/{id}/customize [post]
func (c *controller) CustomizePizza(ctx *gin.Context) {
	pizzaId, ok := pizzaIDParam(ctx)
	if !ok {
		return
	}

	var req CustomizeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	selection, err := c.selection.ResolveSelection(pizzaId, req.Size, req.Ingredients, req.Quantities)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, selection)
}

// GetIngredients godoc
// @Summary Get the ingredient catalog
// @Description Get all ingredients grouped by their classification
// @Tags catalog
// @Accept json
// @Produce json
// @Success 200 {object} map[string][]models.Ingredient
// @Failure 500 {object} models.APIError
// @Router /api/v1/public/ingredients [get]
func (c *controller) GetIngredients(ctx *gin.Context) {
	grouped, err := c.catalog.GetIngredientsByType()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve ingredients"})
		return
	}
	ctx.JSON(http.StatusOK, grouped)
}

// GetSizes godoc
// @Summary Get the size catalog
// @Tags catalog
// @Accept json
// @Produce json
// @Success 200 {array} models.PizzaSize
// @Failure 500 {object} models.APIError
// @Router /api/v1/public/sizes [get]
func (c *controller) GetSizes(ctx *gin.Context) {
	sizes, err := c.catalog.GetAllSizes()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve sizes"})
		return
	}
	ctx.JSON(http.StatusOK, sizes)
}

// CustomPizzaRequest is the payload for building a from-scratch pizza.
type CustomPizzaRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Ingredients []uint `json:"ingredients" binding:"required"`
}

// CreateCustomPizza godoc
// @Summary Create a custom pizza
// @Description Build a from-scratch pizza owned by the caller; its base price is derived from the ingredient count
// @Tags pizzas
// @Accept json
// @Produce json
// @Param pizza body CustomPizzaRequest true "Custom pizza"
// @Success 201 {object} models.Pizza
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/pizzas/custom [post]
func (c *controller) CreateCustomPizza(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CustomPizzaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	pizza, err := c.catalog.CreateCustomPizza(userID, req.Name, req.Description, req.Ingredients)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, pizza)
}

// CreatePizza godoc
// @Summary Create a new stock pizza
// @Description Create a new stock pizza with the input payload
// @Tags admin
// @Accept json
// @Produce json
// @Param pizza body models.Pizza true "Pizza object"
// @Success 201 {object} models.Pizza
// @Failure 400 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/admin/pizzas [post]
func (c *controller) CreatePizza(ctx *gin.Context) {
	var pizza models.Pizza
	if err := ctx.ShouldBindJSON(&pizza); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if pizza.BasePrice < 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Base price must not be negative"})
		return
	}

	createdPizza, err := c.catalog.CreatePizza(pizza)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create pizza"})
		return
	}
	ctx.JSON(http.StatusCreated, createdPizza)
}

// UpdatePizza godoc
// @Summary Update a pizza
// @Description Update a pizza with the input payload
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Pizza ID"
// @Param pizza body models.Pizza true "Pizza object"
// @Success 200 {object} models.Pizza
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/admin/pizzas/{id} [put]
func (c *controller) UpdatePizza(ctx *gin.Context) {
	pizzaId, ok := pizzaIDParam(ctx)
	if !ok {
		return
	}

	existing, err := c.catalog.GetPizzaByID(pizzaId)
	if err != nil {
		respondError(ctx, err)
		return
	}

	var pizza models.Pizza
	if err := ctx.ShouldBindJSON(&pizza); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	// Ensure the ID from URL is used
	pizza.ID = pizzaId
	// Preserve the original owner
	pizza.UserID = existing.UserID

	updatedPizza, err := c.catalog.UpdatePizza(pizza)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update pizza"})
		return
	}
	ctx.JSON(http.StatusOK, updatedPizza)
}

// DeletePizza godoc
// @Summary Delete a pizza
// @Description Delete a pizza by its ID
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Pizza ID"
// @Success 204
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/admin/pizzas/{id} [delete]
func (c *controller) DeletePizza(ctx *gin.Context) {
	pizzaId, ok := pizzaIDParam(ctx)
	if !ok {
		return
	}

	if _, err := c.catalog.GetPizzaByID(pizzaId); err != nil {
		respondError(ctx, err)
		return
	}

	if err := c.catalog.DeletePizza(pizzaId); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete pizza"})
		return
	}
	ctx.JSON(http.StatusNoContent, nil)
}

// CreateIngredient godoc
// @Summary Add an ingredient to the catalog
// @Tags admin
// @Accept json
// @Produce json
// @Param ingredient body models.Ingredient true "Ingredient object"
// @Success 201 {object} models.Ingredient
// @Failure 400 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/admin/ingredients [post]
func (c *controller) CreateIngredient(ctx *gin.Context) {
	var ingredient models.Ingredient
	if err := ctx.ShouldBindJSON(&ingredient); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	created, err := c.catalog.CreateIngredient(ingredient)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, created)
}

// CreateSize godoc
// @Summary Add a size to the catalog
// @Tags admin
// @Accept json
// @Produce json
// @Param size body models.PizzaSize true "Size object"
// @Success 201 {object} models.PizzaSize
// @Failure 400 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/admin/sizes [post]
func (c *controller) CreateSize(ctx *gin.Context) {
	var size models.PizzaSize
	if err := ctx.ShouldBindJSON(&size); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	created, err := c.catalog.CreateSize(size)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, created)
}
