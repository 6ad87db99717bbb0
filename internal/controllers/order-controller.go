package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pizzamate/pizza-mate-api/internal/services"
)

// OrderController handles HTTP requests related to orders
type OrderController interface {
	// PlaceOrder commits a priced selection as a persisted order
	PlaceOrder(c *gin.Context)
	// GetMyOrders retrieves the caller's orders
	GetMyOrders(c *gin.Context)
}

type orderController struct {
	service services.OrderService
}

// NewOrderController creates a new instance of OrderController
func NewOrderController(service services.OrderService) *orderController {
	return &orderController{service: service}
}

// PlaceOrderRequest carries the full priced selection on the confirm step.
// There is no server-side draft state between proposing a price and
// confirming the order.
type PlaceOrderRequest struct {
	PizzaID   uint    `json:"pizza_id" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required"`
	UnitPrice float64 `json:"unit_price"`
}

// PlaceOrder godoc
// @Summary Place an order
// @Description Atomically create an order and its line item; on any persistence failure nothing is stored
// @Tags orders
// @Accept json
// @Produce json
// @Param order body PlaceOrderRequest true "Pizza, quantity and unit price"
// @Success 201 {object} models.Order
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Failure 503 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/orders [post]
func (oc *orderController) PlaceOrder(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req PlaceOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	order, err := oc.service.PlaceOrder(userID, req.PizzaID, req.Quantity, req.UnitPrice)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, order)
}

// GetMyOrders godoc
// @Summary Get the caller's orders
// @Tags orders
// @Accept json
// @Produce json
// @Success 200 {array} models.Order
// @Failure 500 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/orders [get]
func (oc *orderController) GetMyOrders(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	orders, err := oc.service.GetOrdersByCustomer(userID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve orders"})
		return
	}
	ctx.JSON(http.StatusOK, orders)
}
