// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/centremall/mall-backend/internal/config"
	"github.com/centremall/mall-backend/internal/handlers"
	"github.com/centremall/mall-backend/internal/middleware"
	"github.com/centremall/mall-backend/internal/services"
	"github.com/centremall/mall-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	// Initialize services
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}

	notificationService := services.NewNotificationService(db)
	authService := services.NewAuthService(db, cfg)
	userService := services.NewUserService(db, notificationService)
	categoryService := services.NewCategoryService(db)
	shopService := services.NewShopService(db, notificationService)
	productService := services.NewProductService(db, storageService)
	dashboardService := services.NewDashboardService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	shopHandler := handlers.NewShopHandler(shopService)
	productHandler := handlers.NewProductHandler(productService, shopService)
	adminHandler := handlers.NewAdminHandler(dashboardService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.Frontend.BaseURL))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.RequestLogMiddleware())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// Locally stored product images
	r.Static(cfg.Uploads.PublicPrefix, cfg.Uploads.Dir)

	api := r.Group("/api")
	{
		// Authentication routes
		auth := api.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/register-boutique", authHandler.RegisterBoutique)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", middleware.AuthRequired(), authHandler.Refresh)
			auth.GET("/me", middleware.AuthRequired(), authHandler.Me)
		}

		// Category routes
		categories := api.Group("/categories")
		{
			categories.GET("", middleware.OptionalAuth(), categoryHandler.List)
			categories.GET("/:id", categoryHandler.Get)

			protected := categories.Group("")
			protected.Use(middleware.AuthRequired(), middleware.AdminRequired())
			{
				protected.POST("", categoryHandler.Create)
				protected.PUT("/:id", categoryHandler.Update)
				protected.DELETE("/:id", categoryHandler.Delete)
			}
		}

		// Shop routes
		shops := api.Group("/shops")
		{
			shops.GET("", shopHandler.List)
			shops.GET("/my-shop", middleware.AuthRequired(), shopHandler.MyShop)
			shops.GET("/:id", shopHandler.Get)
			shops.PUT("/:id", middleware.AuthRequired(), shopHandler.Update)

			admin := shops.Group("")
			admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
			{
				admin.GET("/all", shopHandler.ListAll)
				admin.GET("/pending", shopHandler.ListPending)
				admin.POST("", shopHandler.Create)
				admin.PATCH("/:id/approve", shopHandler.Approve)
				admin.PATCH("/:id/reject", shopHandler.Reject)
				admin.PATCH("/:id/suspend", shopHandler.Suspend)
				admin.DELETE("/:id", shopHandler.Delete)
			}
		}

		// Product routes
		products := api.Group("/products")
		{
			products.GET("", middleware.OptionalAuth(), productHandler.List)
			products.GET("/my-products", middleware.AuthRequired(), productHandler.MyProducts)
			products.GET("/stats", middleware.AuthRequired(), productHandler.Stats)
			products.GET("/:id", productHandler.Get)

			protected := products.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("", middleware.UploadRateLimit(), productHandler.Create)
				protected.PUT("/:id", middleware.UploadRateLimit(), productHandler.Update)
				protected.PATCH("/:id/stock", productHandler.UpdateStock)
				protected.PATCH("/:id/promotion", productHandler.UpdatePromotion)
				protected.DELETE("/:id", productHandler.Delete)
			}
		}

		// Notification routes
		notifications := api.Group("/notifications")
		notifications.Use(middleware.AuthRequired())
		{
			notifications.GET("", notificationHandler.List)
			notifications.PATCH("/:id/read", notificationHandler.MarkRead)
		}

		// User management, admin only
		users := api.Group("/users")
		users.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			users.GET("", userHandler.List)
			users.GET("/boutiques/pending", userHandler.ListPendingBoutiques)
			users.PATCH("/boutiques/:id/approve", userHandler.ApproveBoutique)
			users.PATCH("/boutiques/:id/reject", userHandler.RejectBoutique)
			users.GET("/:id", userHandler.Get)
			users.PUT("/:id", userHandler.Update)
			users.DELETE("/:id", userHandler.Delete)
		}

		// Admin dashboard
		admin := api.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			dashboard := admin.Group("/dashboard")
			{
				dashboard.GET("/stats", adminHandler.DashboardStats)
				dashboard.GET("/activities", adminHandler.RecentActivities)
				dashboard.GET("/stats/categories", adminHandler.ShopStatsByCategory)
				dashboard.GET("/stats/orders-by-day", adminHandler.OrdersByDay)
				dashboard.GET("/stats/revenue-by-month", adminHandler.RevenueByMonth)
				dashboard.GET("/stats/orders-by-month", adminHandler.OrdersByMonth)
			}
		}
	}

	return r, nil
}
