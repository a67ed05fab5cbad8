package routes

import (
	"github.com/gin-gonic/gin"
	productcontroller "github.com/kimseho1/shopmall-api/controllers/product"
	"gorm.io/gorm"
)

// SetupCatalogRoutes registers the public product browsing endpoints.
func SetupCatalogRoutes(r *gin.Engine, db *gorm.DB) {
	products := r.Group("/api/products")
	{
		products.GET("", productcontroller.GetProducts(db))
		products.GET("/search", productcontroller.SearchProducts(db))
		products.GET("/:id", productcontroller.GetProductByID(db))
	}
	r.GET("/api/categories", productcontroller.GetCategories(db))
}
