package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"finpet/internal/classifier"
	"finpet/internal/config"
	"finpet/internal/database"
	"finpet/internal/handlers"
	"finpet/internal/logger"
	"finpet/internal/middleware"
	"finpet/internal/services"
	"finpet/internal/validator"
)

// @title           FinPet API
// @version         1.0
// @description     FinPet is a gamified personal finance tracker: expenses are classified into needs and wants, and saving habits feed a virtual pet that levels up and earns rewards.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db)
	petService := services.NewPetService(db)
	fundService := services.NewFundService(db, petService)
	expenseService := services.NewExpenseService(db, classifier.New(), petService, fundService)
	goalService := services.NewGoalService(db, petService)
	insightService := services.NewInsightService(db, petService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	expenseHandler := handlers.NewExpenseHandler(expenseService, auditService)
	fundHandler := handlers.NewFundHandler(fundService, auditService)
	goalHandler := handlers.NewGoalHandler(goalService, auditService)
	petHandler := handlers.NewPetHandler(petService, auditService)
	insightHandler := handlers.NewInsightHandler(insightService, auditService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)
	protected.PUT("/profile/zen-mode", authHandler.UpdateZenMode)
	protected.PUT("/profile/wants-budget", authHandler.UpdateWantsBudget)

	// Expense routes
	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.GetExpenses)

	// Fund routes
	funds := protected.Group("/funds")
	funds.GET("/balance", fundHandler.GetBalance)
	funds.POST("/deposits", fundHandler.CreateDeposit)
	funds.GET("/deposits", fundHandler.GetDeposits)
	funds.POST("/adjust", fundHandler.AdjustBalance)

	// Goal routes
	goals := protected.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoals)
	goals.GET("/:id", goalHandler.GetGoal)
	goals.POST("/:id/contribute", goalHandler.Contribute)

	// Pet routes
	pet := protected.Group("/pet")
	pet.GET("", petHandler.GetPet)
	pet.PUT("/name", petHandler.RenamePet)
	pet.GET("/rewards", petHandler.GetRewards)

	// Insight routes
	insights := protected.Group("/insights")
	insights.GET("/budget", insightHandler.GetBudgetStatus)
	insights.POST("/budget/claim", insightHandler.ClaimBudgetReward)
	insights.GET("/summary", insightHandler.GetSummary)
	insights.GET("/tips", insightHandler.GetTips)

	log.Infof("Starting FinPet backend server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
