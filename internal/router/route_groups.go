package router

import (
	"cleanstride_backend/internal/handlers"
	"cleanstride_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up the authentication routes.
func SetupAuthRoutes(apiGroup *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	authRoutes := apiGroup.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/refresh-token", authHandler.Refresh)

		authRequiredRoutes := authRoutes.Group("")
		authRequiredRoutes.Use(middleware.AuthMiddleware())
		{
			authRequiredRoutes.POST("/logout", authHandler.Logout)
			authRequiredRoutes.GET("/me", authHandler.GetMe)
			authRequiredRoutes.PUT("/me", authHandler.UpdateMe)
		}
	}
}

// SetupServiceRoutes sets up the service catalog routes. Reads are open to
// every authenticated role; writes are admin only.
func SetupServiceRoutes(authenticatedGroup *gin.RouterGroup, serviceHandler *handlers.ServiceHandler) {
	serviceRoutes := authenticatedGroup.Group("/services")
	{
		serviceRoutes.GET("", serviceHandler.GetServices)
		serviceRoutes.GET("/:id", serviceHandler.GetServiceByID)

		adminRoutes := serviceRoutes.Group("")
		adminRoutes.Use(middleware.RoleAuthMiddleware("admin"))
		{
			adminRoutes.POST("", serviceHandler.CreateService)
			adminRoutes.PUT("/:id", serviceHandler.UpdateService)
			adminRoutes.DELETE("/:id", serviceHandler.DeleteService)
		}
	}
}

// SetupOrderRoutes sets up the order routes. Customers create and read their
// own orders; status updates are restricted to operational roles.
func SetupOrderRoutes(authenticatedGroup *gin.RouterGroup, orderHandler *handlers.OrderHandler) {
	orderRoutes := authenticatedGroup.Group("/orders")
	{
		orderRoutes.POST("", middleware.RoleAuthMiddleware("customer", "admin"), orderHandler.CreateOrder)
		orderRoutes.GET("", orderHandler.GetOrders)
		orderRoutes.GET("/:id", orderHandler.GetOrderByID)
		orderRoutes.GET("/:id/tracking", orderHandler.GetOrderTracking)
		orderRoutes.PATCH("/:id/status",
			middleware.RoleAuthMiddleware("admin", "courier", "workshop_staff"),
			orderHandler.UpdateOrderStatus)
	}
}

// SetupPaymentRoutes sets up the payment routes.
func SetupPaymentRoutes(authenticatedGroup *gin.RouterGroup, paymentHandler *handlers.PaymentHandler) {
	paymentRoutes := authenticatedGroup.Group("/payments")
	{
		paymentRoutes.POST("", middleware.RoleAuthMiddleware("customer", "admin"), paymentHandler.RecordPayment)
		paymentRoutes.GET("", paymentHandler.GetPayments)
		paymentRoutes.GET("/:id", middleware.RoleAuthMiddleware("admin", "courier"), paymentHandler.GetPaymentByID)
		paymentRoutes.PATCH("/:id/settle",
			middleware.RoleAuthMiddleware("admin", "courier"),
			paymentHandler.SettlePayment)
		paymentRoutes.PATCH("/:id/refund",
			middleware.RoleAuthMiddleware("admin"),
			paymentHandler.RefundPayment)
	}
}

// SetupReportRoutes sets up the reporting routes. The order report is open
// to all roles (non-admins are scoped to their own orders); the dashboard is
// operational.
func SetupReportRoutes(authenticatedGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	reportRoutes := authenticatedGroup.Group("/reports")
	{
		reportRoutes.GET("/orders", reportHandler.GetOrderReport)
	}
	authenticatedGroup.GET("/dashboard/summary",
		middleware.RoleAuthMiddleware("admin", "workshop_staff"),
		reportHandler.GetDashboardSummary)
}

// SetupNotificationRoutes sets up the notification routes.
func SetupNotificationRoutes(authenticatedGroup *gin.RouterGroup, notificationHandler *handlers.NotificationHandler) {
	notificationRoutes := authenticatedGroup.Group("/notifications")
	{
		notificationRoutes.GET("", notificationHandler.GetNotifications)
		notificationRoutes.PATCH("/:id/read", notificationHandler.MarkRead)
		notificationRoutes.POST("/read-all", notificationHandler.MarkAllRead)
	}
}

// SetupProfileRoutes sets up the admin account management routes.
func SetupProfileRoutes(authenticatedGroup *gin.RouterGroup, profileHandler *handlers.ProfileHandler) {
	profileRoutes := authenticatedGroup.Group("/profiles")
	profileRoutes.Use(middleware.RoleAuthMiddleware("admin"))
	{
		profileRoutes.POST("", profileHandler.CreateProfile)
		profileRoutes.GET("", profileHandler.GetProfiles)
		profileRoutes.GET("/:id", profileHandler.GetProfileByID)
		profileRoutes.PATCH("/:id/active", profileHandler.SetProfileActive)
		profileRoutes.PATCH("/:id/role", profileHandler.SetProfileRole)
	}
}
