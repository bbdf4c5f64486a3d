// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/forma3d/catalog-backend/internal/config"
	"github.com/forma3d/catalog-backend/internal/handlers"
	"github.com/forma3d/catalog-backend/internal/media"
	"github.com/forma3d/catalog-backend/internal/middleware"
	"github.com/forma3d/catalog-backend/internal/services"
)

func Initialize(db *gorm.DB, cfg *config.Config, store media.Store) *gin.Engine {
	// Initialize services
	mediaService := services.NewMediaService(db, store)
	categoryService := services.NewCategoryService(db)
	productService := services.NewProductService(db)

	// Initialize handlers
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	productHandler := handlers.NewProductHandler(productService)
	uploadHandler := handlers.NewUploadHandler(mediaService, productService, cfg)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Category routes
		categories := v1.Group("/categories")
		{
			categories.GET("", categoryHandler.GetCategories)
			categories.GET("/:id", categoryHandler.GetCategory)
			categories.POST("", categoryHandler.CreateCategory)
			categories.PUT("/:id", categoryHandler.UpdateCategory)
			categories.DELETE("/:id", categoryHandler.DeleteCategory)
		}

		// Product routes
		products := v1.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.GET("/:id", productHandler.GetProduct)
			products.POST("", productHandler.CreateProduct)
			products.PUT("/:id", productHandler.UpdateProduct)
			products.DELETE("/:id", productHandler.DeleteProduct)
			products.POST("/images", middleware.UploadRateLimit(), uploadHandler.UploadProductImages)
		}

		// Upload routes
		uploads := v1.Group("/uploads")
		uploads.Use(middleware.UploadRateLimit())
		{
			uploads.POST("", uploadHandler.UploadFile)
			uploads.DELETE("/*fileId", uploadHandler.DeleteFile)
		}
	}

	return r
}
