package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pizzamate/pizza-mate-api/internal/models"
	"github.com/pizzamate/pizza-mate-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.PizzaSize{},
		&models.Ingredient{},
		&models.Pizza{},
		&models.PizzaIngredient{},
		&models.Order{},
		&models.OrderPizza{},
	)
	require.NoError(t, err)

	return db
}

type testFixture struct {
	db       *gorm.DB
	router   *gin.Engine
	pizza    models.Pizza
	sauce    models.Ingredient
	cheese   models.Ingredient
	customer models.User
}

// setupTestRouter wires the real services behind a router with a stub auth
// middleware that injects the fixture customer.
func setupTestRouter(t *testing.T) *testFixture {
	db := setupTestDB(t)

	for _, size := range []models.PizzaSize{
		{Name: "Small", Weight: 300, Multiplier: 1.0},
		{Name: "Medium", Weight: 500, Multiplier: 1.5},
		{Name: "Big", Weight: 700, Multiplier: 2.0},
	} {
		require.NoError(t, db.Create(&size).Error)
	}

	sauce := models.Ingredient{Name: "Tomato Sauce", Type: models.IngredientTypeSauce}
	cheese := models.Ingredient{Name: "Mozzarella", Type: models.IngredientTypeCheese}
	require.NoError(t, db.Create(&sauce).Error)
	require.NoError(t, db.Create(&cheese).Error)

	pizza := models.Pizza{
		Name:      "Margarita",
		BasePrice: 100,
		Ingredients: []models.PizzaIngredient{
			{IngredientID: sauce.ID, Quantity: 1},
			{IngredientID: cheese.ID, Quantity: 1},
		},
	}
	require.NoError(t, db.Create(&pizza).Error)

	customer := models.User{Email: "customer@example.com", Password: "hashed", Role: "user"}
	require.NoError(t, db.Create(&customer).Error)

	catalog := services.NewPizzaService(db)
	selection := services.NewSelectionService(catalog)
	orders := services.NewOrderService(db, catalog)

	pizzaController := NewPizzaController(catalog, selection)
	orderController := NewOrderController(orders)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	public := router.Group("/api/v1/public")
	public.GET("/pizzas", pizzaController.GetAllPizzas)
	public.GET("/pizzas/:id/prices", pizzaController.GetPriceTable)
	public.POST("/pizzas/:id/customize", pizzaController.CustomizePizza)

	protected := router.Group("/api/v1/protected")
	protected.Use(func(c *gin.Context) {
		c.Set("userID", customer.ID)
		c.Set("userRole", customer.Role)
		c.Next()
	})
	protected.POST("/orders", orderController.PlaceOrder)
	protected.GET("/orders", orderController.GetMyOrders)

	return &testFixture{
		db:       db,
		router:   router,
		pizza:    pizza,
		sauce:    sauce,
		cheese:   cheese,
		customer: customer,
	}
}

func TestGetPriceTableEndpoint(t *testing.T) {
	f := setupTestRouter(t)

	req := httptest.NewRequest("GET", fmt.Sprintf("/api/v1/public/pizzas/%d/prices", f.pizza.ID), nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var table map[string]int
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &table))
	assert.Equal(t, map[string]int{"Small": 100, "Medium": 150, "Big": 200}, table)
}

func TestGetPriceTableEndpointUnknownPizza(t *testing.T) {
	f := setupTestRouter(t)

	req := httptest.NewRequest("GET", "/api/v1/public/pizzas/9999/prices", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCustomizeEndpoint(t *testing.T) {
	f := setupTestRouter(t)

	body := CustomizeRequest{
		Size:        "Medium",
		Ingredients: []string{fmt.Sprint(f.sauce.ID), fmt.Sprint(f.cheese.ID)},
		Quantities:  map[string]string{fmt.Sprint(f.cheese.ID): "2"},
	}
	payload, _ := json.Marshal(body)

	req := httptest.NewRequest("POST", fmt.Sprintf("/api/v1/public/pizzas/%d/customize", f.pizza.ID), bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var selection models.PricedSelection
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &selection))

	// 3 units against a baseline of 2: every size shifts by one unit cost
	assert.Equal(t, 160, selection.Prices["Medium"])
	assert.Equal(t, 110, selection.Prices["Small"])
	assert.Equal(t, "Medium", selection.Size)
	assert.Equal(t, 160, selection.Price)
}

func TestCustomizeEndpointUnknownIngredient(t *testing.T) {
	f := setupTestRouter(t)

	body := CustomizeRequest{Ingredients: []string{"9999"}}
	payload, _ := json.Marshal(body)

	req := httptest.NewRequest("POST", fmt.Sprintf("/api/v1/public/pizzas/%d/customize", f.pizza.ID), bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var apiErr models.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	assert.Equal(t, models.ErrNotFound, apiErr.Code)
}

func TestPlaceOrderEndpoint(t *testing.T) {
	f := setupTestRouter(t)

	body := PlaceOrderRequest{PizzaID: f.pizza.ID, Quantity: 2, UnitPrice: 10.50}
	payload, _ := json.Marshal(body)

	req := httptest.NewRequest("POST", "/api/v1/protected/orders", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var order models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	assert.Equal(t, 21.00, order.TotalPrice)
	require.Len(t, order.Pizzas, 1)
	assert.Equal(t, 2, order.Pizzas[0].Quantity)
}

func TestPlaceOrderEndpointRejectsNegativeQuantity(t *testing.T) {
	f := setupTestRouter(t)

	body := PlaceOrderRequest{PizzaID: f.pizza.ID, Quantity: -2, UnitPrice: 10.50}
	payload, _ := json.Marshal(body)

	req := httptest.NewRequest("POST", "/api/v1/protected/orders", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetMyOrdersEndpoint(t *testing.T) {
	f := setupTestRouter(t)

	body := PlaceOrderRequest{PizzaID: f.pizza.ID, Quantity: 1, UnitPrice: 100}
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", "/api/v1/protected/orders", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	req = httptest.NewRequest("GET", "/api/v1/protected/orders", nil)
	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var orders []models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	assert.Len(t, orders, 1)
}
