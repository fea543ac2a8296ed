package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"stockmanager/controllers"
)

// New builds the gin engine with recovery, request logging and every route.
func New(h *controllers.Handlers, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(zapLoggerMiddleware(logger))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	RegisterRoutes(router, h, logger)

	logger.Info("router initialized")
	return router
}

// RegisterRoutes mounts the /api routes; all but register and login need a bearer token.
func RegisterRoutes(router *gin.Engine, h *controllers.Handlers, logger *zap.Logger) {
	api := router.Group("/api")
	{
		api.POST("/auth/register", h.Register)
		api.POST("/auth/login", h.Login)
	}

	secured := api.Group("")
	secured.Use(authMiddleware(h, logger))
	{
		// Auth routes
		secured.POST("/auth/logout", h.Logout)
		secured.GET("/auth/me", h.Me)
		secured.PUT("/auth/profile", h.UpdateProfile)
		secured.PUT("/auth/password", h.ChangePassword)

		// Stock item routes
		secured.GET("/stock-items", h.ListStockItems)
		secured.POST("/stock-items", h.CreateStockItem)
		secured.GET("/stock-items/:id", h.GetStockItem)
		secured.PUT("/stock-items/:id", h.UpdateStockItem)
		secured.DELETE("/stock-items/:id", h.DeleteStockItem)

		// Supplier routes
		secured.GET("/suppliers", h.ListSuppliers)
		secured.POST("/suppliers", h.CreateSupplier)
		secured.GET("/suppliers/:id", h.GetSupplier)
		secured.PUT("/suppliers/:id", h.UpdateSupplier)
		secured.DELETE("/suppliers/:id", h.DeleteSupplier)

		// Analytics routes
		secured.GET("/analytics/total-value", h.GetTotalValue)
		secured.GET("/analytics/low-stock", h.GetLowStockAlerts)
		secured.GET("/analytics/value-by-supplier", h.GetValueBySupplier)
		secured.GET("/analytics/inventory-levels", h.GetInventoryLevels)
		secured.GET("/analytics/category-breakdown", h.GetCategoryBreakdown)
		secured.GET("/analytics/monthly-sales", h.GetMonthlySales)
		secured.GET("/analytics/dashboard", h.GetDashboard)
		secured.GET("/analytics/charts/:series", h.GetChart)
	}
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
