package router

import (
	"database/sql"
	"net/http"

	"cleanstride_backend/internal/handlers"
	"cleanstride_backend/internal/middleware"
	"cleanstride_backend/internal/repositories"
	"cleanstride_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB) {
	// Initialize Repositories
	profileRepo := repositories.NewProfileRepository(db)
	serviceRepo := repositories.NewServiceRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)

	// Initialize Services
	authService := services.NewAuthService(profileRepo, db)
	catalogService := services.NewCatalogService(serviceRepo, db)
	orderService := services.NewOrderService(orderRepo, serviceRepo, notificationRepo, db)
	paymentService := services.NewPaymentService(paymentRepo, orderRepo, notificationRepo, db)
	reportService := services.NewReportService(orderRepo, db)
	notificationService := services.NewNotificationService(notificationRepo, db)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	profileHandler := handlers.NewProfileHandler(authService)
	serviceHandler := handlers.NewServiceHandler(catalogService)
	orderHandler := handlers.NewOrderHandler(orderService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	reportHandler := handlers.NewReportHandler(reportService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	apiV1 := engine.Group("/api/v1")

	apiV1.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	SetupAuthRoutes(apiV1, authHandler)

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupServiceRoutes(authenticated, serviceHandler)
		SetupOrderRoutes(authenticated, orderHandler)
		SetupPaymentRoutes(authenticated, paymentHandler)
		SetupReportRoutes(authenticated, reportHandler)
		SetupNotificationRoutes(authenticated, notificationHandler)
		SetupProfileRoutes(authenticated, profileHandler)
	}
}
