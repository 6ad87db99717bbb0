package services

import (
	"github.com/google/uuid"
	"github.com/pizzamate/pizza-mate-api/internal/metrics"
	"github.com/pizzamate/pizza-mate-api/internal/models"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// OrderService converts a priced selection into a persisted order
type OrderService interface {
	// PlaceOrder atomically creates an order with a single line item.
	// The order and its line either both persist or neither does.
	PlaceOrder(customerID, pizzaID uint, quantity int, unitPrice float64) (models.Order, error)
	// GetOrdersByCustomer retrieves a customer's orders, newest first
	GetOrdersByCustomer(customerID uint) ([]models.Order, error)
}

// orderService is the implementation of the OrderService interface
type orderService struct {
	db      *gorm.DB
	catalog PizzaService
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(db *gorm.DB, catalog PizzaService) OrderService {
	return &orderService{db: db, catalog: catalog}
}

func (s *orderService) PlaceOrder(customerID, pizzaID uint, quantity int, unitPrice float64) (models.Order, error) {
	if quantity <= 0 {
		return models.Order{}, models.NewValidationError("quantity", "must be a positive integer")
	}
	if unitPrice < 0 {
		return models.Order{}, models.NewValidationError("unit_price", "must not be negative")
	}

	pizza, err := s.catalog.GetPizzaByID(pizzaID)
	if err != nil {
		return models.Order{}, err
	}

	order := models.Order{
		Reference:  uuid.NewString(),
		CustomerID: customerID,
		TotalPrice: unitPrice * float64(quantity),
	}

	// Order and line item commit together or not at all.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		line := models.OrderPizza{
			OrderID:   order.ID,
			PizzaID:   pizza.ID,
			Quantity:  quantity,
			UnitPrice: unitPrice,
		}
		return tx.Create(&line).Error
	})
	if err != nil {
		metrics.OrdersTotal.WithLabelValues("failed").Inc()
		log.WithFields(log.Fields{
			"customer_id": customerID,
			"pizza_id":    pizzaID,
		}).WithError(err).Warn("Order placement rolled back")
		return models.Order{}, models.NewStorageError("place order", err)
	}

	metrics.OrdersTotal.WithLabelValues("placed").Inc()
	metrics.OrderAmount.Observe(order.TotalPrice)
	log.WithFields(log.Fields{
		"order_id":    order.ID,
		"reference":   order.Reference,
		"customer_id": customerID,
		"total_price": order.TotalPrice,
	}).Info("Order placed")

	return s.getOrder(order.ID)
}

func (s *orderService) GetOrdersByCustomer(customerID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.
		Preload("Pizzas.Pizza").
		Where("customer_id = ?", customerID).
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *orderService) getOrder(id uint) (models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Pizzas.Pizza").First(&order, id).Error; err != nil {
		return models.Order{}, err
	}
	return order, nil
}
