// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/superettejemai/backoffice/internal/config"
	"github.com/superettejemai/backoffice/internal/handlers"
	"github.com/superettejemai/backoffice/internal/middleware"
	"github.com/superettejemai/backoffice/internal/services"
	"github.com/superettejemai/backoffice/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	// Initialize services
	auditService := services.NewAuditService(db)
	stockService := services.NewStockService()
	authService := services.NewAuthService(db, cfg)
	productService := services.NewProductService(db, auditService)
	orderService := services.NewOrderService(db, stockService, auditService)
	factureService := services.NewFactureService(db, stockService, auditService)
	backupService, err := services.NewBackupService(db, cfg)
	if err != nil {
		return nil, err
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService)
	orderHandler := handlers.NewOrderHandler(orderService)
	factureHandler := handlers.NewFactureHandler(factureService)
	adminHandler := handlers.NewAdminHandler(auditService, backupService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.GeneralRateLimit(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	v1 := r.Group("/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.LoginRateLimit(cfg.RateLimit.LoginPerMinute), authHandler.Login)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		products := v1.Group("/products")
		products.Use(middleware.AuthRequired())
		{
			products.GET("", productHandler.GetProducts)
			products.POST("", productHandler.CreateProduct)
			products.GET("/:id", productHandler.GetProduct)
			products.PUT("/:id", productHandler.UpdateProduct)
			products.DELETE("/:id", productHandler.DeleteProduct)
		}

		orders := v1.Group("/orders")
		orders.Use(middleware.AuthRequired())
		{
			orders.POST("", orderHandler.CreateOrder)
			orders.GET("", orderHandler.ListOrders)
			orders.GET("/:id/items", orderHandler.GetOrderItems)
		}

		factures := v1.Group("/factures")
		factures.Use(middleware.AuthRequired())
		{
			factures.POST("", factureHandler.CreateFacture)
			factures.GET("", factureHandler.ListFactures)
			factures.GET("/:id", factureHandler.GetFacture)
			factures.PUT("/:id", factureHandler.UpdateFacture)
			factures.POST("/:id/confirm", factureHandler.ConfirmFacture)
			factures.POST("/:id/cancel", factureHandler.CancelFacture)
		}

		v1.GET("/audit-logs", middleware.AuthRequired(), middleware.AdminRequired(), adminHandler.GetAuditLogs)

		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.POST("/backup", adminHandler.CreateBackup)
		}
	}

	return r, nil
}
