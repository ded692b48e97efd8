// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/heaponte4/aerea/internal/config"
	"github.com/heaponte4/aerea/internal/events"
	"github.com/heaponte4/aerea/internal/handlers"
	"github.com/heaponte4/aerea/internal/middleware"
	"github.com/heaponte4/aerea/internal/models"
	"github.com/heaponte4/aerea/internal/services"
	"github.com/heaponte4/aerea/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	// Initialize services
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}
	bus := events.NewBus()
	denylist := services.NewRedisDenylist(cfg.Redis)

	authService := services.NewAuthService(db, cfg, denylist)
	propertyService := services.NewPropertyService(db, bus)
	catalogService := services.NewCatalogService(db)
	assignmentService := services.NewAssignmentService(db, bus)
	jobService := services.NewJobService(db, storageService, bus)
	orderService := services.NewOrderService(db, bus)
	customerService := services.NewCustomerService(db)
	photographerService := services.NewPhotographerService(db)
	paymentService := services.NewPaymentService(db, bus)
	mediaService := services.NewMediaService(db, storageService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	propertyHandler := handlers.NewPropertyHandler(propertyService, assignmentService, mediaService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	assignmentHandler := handlers.NewAssignmentHandler(assignmentService)
	jobHandler := handlers.NewJobHandler(jobService)
	orderHandler := handlers.NewOrderHandler(orderService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	photographerHandler := handlers.NewPhotographerHandler(photographerService, jobService, paymentService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	mediaHandler := handlers.NewMediaHandler(mediaService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	api := r.Group("/api")
	{
		// Authentication routes
		auth := api.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", middleware.AuthRequired(), authHandler.Logout)
			auth.POST("/refresh", authHandler.Refresh)
			auth.GET("/me", middleware.AuthRequired(), authHandler.Me)
		}

		// Everything below requires authentication
		protected := api.Group("")
		protected.Use(middleware.AuthRequired())

		properties := protected.Group("/properties")
		{
			properties.POST("", propertyHandler.Create)
			properties.GET("", propertyHandler.List)
			properties.GET("/:id", propertyHandler.Get)
			properties.PUT("/:id", propertyHandler.Update)
			properties.DELETE("/:id", propertyHandler.Delete)
			properties.GET("/:id/services", propertyHandler.ListServices)
			properties.GET("/:id/media", propertyHandler.ListMedia)
		}

		catalog := protected.Group("/services")
		{
			catalog.GET("", catalogHandler.ListServices)
			catalog.GET("/addons", catalogHandler.ListAddons)
			catalog.GET("/:id", catalogHandler.GetService)

			catalog.POST("", middleware.AdminRequired(), catalogHandler.CreateService)
			catalog.POST("/addons", middleware.AdminRequired(), catalogHandler.CreateAddon)
			catalog.PUT("/:id", middleware.AdminRequired(), catalogHandler.UpdateService)
			catalog.DELETE("/:id", middleware.AdminRequired(), catalogHandler.DeleteService)
		}

		protected.GET("/templates", catalogHandler.ListTemplates)

		assignments := protected.Group("/property-services")
		{
			assignments.POST("", assignmentHandler.Assign)
			assignments.GET("", assignmentHandler.List)
			assignments.GET("/:id", assignmentHandler.Get)
			assignments.POST("/:id/schedule", assignmentHandler.Schedule)
			assignments.POST("/:id/complete", assignmentHandler.Complete)
			assignments.DELETE("/:id", assignmentHandler.Delete)
		}

		jobs := protected.Group("/jobs")
		{
			jobs.GET("", jobHandler.List)
			jobs.GET("/:id", jobHandler.Get)
			jobs.PUT("/:id", jobHandler.Update)
			jobs.POST("/:id/start", jobHandler.Start)
			jobs.POST("/:id/cancel", jobHandler.Cancel)
			jobs.POST("/:id/upload", middleware.UploadRateLimit(), jobHandler.Upload)
			jobs.POST("/:id/deliver", jobHandler.Deliver)
			jobs.DELETE("/:id", middleware.AdminRequired(), jobHandler.Delete)
		}

		orders := protected.Group("/orders")
		{
			orders.POST("", orderHandler.Create)
			orders.GET("", orderHandler.List)
			orders.GET("/:id", orderHandler.Get)
			orders.PATCH("/:id/status", orderHandler.UpdateStatus)
			orders.DELETE("/:id", orderHandler.Delete)
		}

		customers := protected.Group("/customers")
		{
			customers.POST("", customerHandler.Create)
			customers.GET("", customerHandler.List)
			customers.GET("/:id", customerHandler.Get)
			customers.PUT("/:id", customerHandler.Update)
			customers.DELETE("/:id", customerHandler.Delete)
		}

		photographers := protected.Group("/photographers")
		{
			photographers.GET("", photographerHandler.List)
			photographers.GET("/jobs", middleware.RoleRequired(models.RolePhotographer), photographerHandler.MyJobs)
			photographers.GET("/payments", middleware.RoleRequired(models.RolePhotographer), photographerHandler.MyPayments)
			photographers.GET("/:id", photographerHandler.Get)
			photographers.PUT("/:id", photographerHandler.UpdateProfile)
			photographers.DELETE("/:id", middleware.AdminRequired(), photographerHandler.Delete)
		}

		payments := protected.Group("/payments")
		{
			payments.GET("", paymentHandler.List)
			payments.GET("/:id", paymentHandler.Get)
			payments.PATCH("/:id/status", middleware.AdminRequired(), paymentHandler.UpdateStatus)
		}

		media := protected.Group("/media")
		{
			media.POST("/upload", middleware.UploadRateLimit(), mediaHandler.Upload)
			media.GET("", mediaHandler.List)
			media.GET("/:id", mediaHandler.Get)
			media.DELETE("/:id", mediaHandler.Delete)
		}
	}

	// Static file serving (for development)
	if cfg.Environment == "development" {
		r.Static("/uploads", cfg.Storage.LocalRoot)
	}

	return r, nil
}
