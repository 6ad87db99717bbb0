package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/pizzamate/pizza-mate-api/docs" // Import generated docs
	"github.com/pizzamate/pizza-mate-api/internal/config"
	"github.com/pizzamate/pizza-mate-api/internal/controllers"
	"github.com/pizzamate/pizza-mate-api/internal/database"
	"github.com/pizzamate/pizza-mate-api/internal/metrics"
	"github.com/pizzamate/pizza-mate-api/internal/middleware"
	"github.com/pizzamate/pizza-mate-api/internal/models"
	"github.com/pizzamate/pizza-mate-api/internal/services"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/swaggo/files"
	"github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

var (
	db              *gorm.DB
	pizzaService    services.PizzaService
	orderService    services.OrderService
	userService     services.UserService
	pizzaController controllers.PizzaController
	orderController controllers.OrderController
	authController  *controllers.AuthController
	configuration   *config.Config
)

// @title Pizza Mate API
// @version 1.0
// @description Pizza storefront API with size-based pricing, ingredient customization and atomic order placement
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load environment variables
	loadDotenvFile()

	// Initialize logger
	setUpLogger()

	// Load configuration
	configuration = loadConfig()

	// Set JWT secret from configuration
	middleware.SetJWTSecret(configuration.JWTSecret)

	// Initialize database connection
	setupDatabase(configuration)

	// Initialize services and controllers
	pizzaService = services.NewPizzaService(db)
	selectionService := services.NewSelectionService(pizzaService)
	orderService = services.NewOrderService(db, pizzaService)
	userService = services.NewUserService(db)
	pizzaController = controllers.NewPizzaController(pizzaService, selectionService)
	orderController = controllers.NewOrderController(orderService)
	authController = controllers.NewAuthController(userService, configuration.JWTSecret)

	// Initialize Gin router
	var router *gin.Engine = setupRouter()

	// Start the server
	log.Infof("Starting server on %s:%d", configuration.Host, configuration.Port)
	router.Run(fmt.Sprintf("%v:%d", configuration.Host, configuration.Port))
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter and sets the log level based on the environment
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	environment := config.GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(log.DebugLevel)
	case "production":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	log.Info("Loading configuration from environment variables")
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	log.Infof("Configuration loaded: %+v", conf)
	return conf
}

// setupDatabase initializes the database connection and returns a gorm.DB instance
func setupDatabase(conf *config.Config) *gorm.DB {
	var err error
	db, err = database.InitDatabase(database.FromAppConfig(conf))
	checkPanicErr(err)

	// Migrate the schema
	err = db.AutoMigrate(
		&models.User{},
		&models.PizzaSize{},
		&models.Ingredient{},
		&models.Pizza{},
		&models.PizzaIngredient{},
		&models.Order{},
		&models.OrderPizza{},
	)
	checkPanicErr(err)

	// Seed only if the catalog is empty
	var count int64
	db.Model(&models.Pizza{}).Count(&count)
	if count == 0 {
		log.Info("Database is empty, seeding initial data")
		seedDatabase()
	} else {
		log.Info("Database already seeded with initial data")
	}
	return db
}

// seedDatabase seeds the database with the canonical size catalog, a starter
// ingredient set and a few stock pizzas
func seedDatabase() {
	log.Info("Seeding database with initial data")

	sizes := []models.PizzaSize{
		{Name: "Small", Weight: 300, Multiplier: 1.0},
		{Name: "Medium", Weight: 500, Multiplier: 1.5},
		{Name: "Big", Weight: 700, Multiplier: 2.0},
	}
	for i := range sizes {
		db.Create(&sizes[i])
	}

	ingredients := []models.Ingredient{
		{Name: "Tomato Sauce", Description: "Classic tomato base", Type: models.IngredientTypeSauce},
		{Name: "Mozzarella", Description: "Fresh mozzarella", Type: models.IngredientTypeCheese},
		{Name: "Pepperoni", Description: "Spicy pepperoni slices", Type: models.IngredientTypeMeat},
		{Name: "Pineapple", Description: "Pineapple chunks", Type: models.IngredientTypeFruit},
		{Name: "Bell Peppers", Description: "Sliced bell peppers", Type: models.IngredientTypeVegetable},
		{Name: "Olives", Description: "Black olives", Type: models.IngredientTypeVegetable},
		{Name: "Cheese Edge", Description: "Cheese-filled crust", Type: models.IngredientTypeEdge},
	}
	for i := range ingredients {
		db.Create(&ingredients[i])
	}

	byName := make(map[string]uint, len(ingredients))
	for _, ingredient := range ingredients {
		byName[ingredient.Name] = ingredient.ID
	}

	pizzas := []struct {
		name        string
		description string
		basePrice   int
		ingredients []string
	}{
		{"Margarita", "Tomato sauce, mozzarella and basil", 100, []string{"Tomato Sauce", "Mozzarella"}},
		{"Pepperoni", "Loaded with pepperoni", 120, []string{"Tomato Sauce", "Mozzarella", "Pepperoni"}},
		{"Veggie", "Garden vegetables", 110, []string{"Tomato Sauce", "Mozzarella", "Bell Peppers", "Olives"}},
	}
	for _, seed := range pizzas {
		pizza := models.Pizza{
			Name:        seed.name,
			Description: seed.description,
			BasePrice:   seed.basePrice,
		}
		for _, name := range seed.ingredients {
			pizza.Ingredients = append(pizza.Ingredients, models.PizzaIngredient{
				IngredientID: byName[name],
				Quantity:     1,
			})
		}
		db.Create(&pizza)
	}
	log.Info("Database seeded successfully")
}

// setupRouter initializes the Gin router and sets up the routes
// It returns the configured router
func setupRouter() *gin.Engine {
	// Initialize Gin router
	router := gin.Default()

	// Collect request metrics for every route
	router.Use(metrics.PrometheusMiddleware())

	// Define routes
	setupRoutes(router)

	return router
}

// setupRoutes defines the routes for the Gin router
func setupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", healthCheckHandler)

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authController.Register)
			auth.POST("/login", authController.Login)
		}

		publicApi := v1.Group("/public")
		{
			publicApi.GET("/pizzas", pizzaController.GetAllPizzas)
			publicApi.GET("/pizzas/:id", pizzaController.GetPizzaByID)
			publicApi.GET("/pizzas/:id/prices", pizzaController.GetPriceTable)
			publicApi.POST("/pizzas/:id/customize", pizzaController.CustomizePizza)
			publicApi.GET("/ingredients", pizzaController.GetIngredients)
			publicApi.GET("/sizes", pizzaController.GetSizes)
		}

		// Protected routes (requires JWT authentication)
		protectedApi := v1.Group("/protected")
		protectedApi.Use(middleware.JWTAuth())
		{
			protectedApi.GET("/pizzas", pizzaController.GetAllPizzas)
			protectedApi.POST("/pizzas/custom", pizzaController.CreateCustomPizza)
			protectedApi.POST("/orders", orderController.PlaceOrder)
			protectedApi.GET("/orders", orderController.GetMyOrders)

			adminApi := protectedApi.Group("/admin")
			adminApi.Use(middleware.RequireRole("admin"))
			{
				adminApi.POST("/pizzas", pizzaController.CreatePizza)
				adminApi.PUT("/pizzas/:id", pizzaController.UpdatePizza)
				adminApi.DELETE("/pizzas/:id", pizzaController.DeletePizza)
				adminApi.POST("/ingredients", pizzaController.CreateIngredient)
				adminApi.POST("/sizes", pizzaController.CreateSize)
			}
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "pizza-mate-api",
	})
}
