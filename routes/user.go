package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/kimseho1/shopmall-api/controllers/cart"
	uploadControllers "github.com/kimseho1/shopmall-api/controllers/upload"
	userControllers "github.com/kimseho1/shopmall-api/controllers/user"
	"github.com/kimseho1/shopmall-api/middleware"
	"gorm.io/gorm"
)

// SetupUserRoutes registers the JWT-protected "/api/*" endpoints.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	api := r.Group("/api")
	api.Use(middleware.ValidateToken)
	{
		// ──────────────── Profile ────────────────
		api.GET("/users/me", userControllers.GetUser(db))
		api.PUT("/users/me", userControllers.UpdateUser(db))
		api.DELETE("/users/me", userControllers.DeleteUser(db))

		// ──────────────── Shopping Cart ────────────────
		cart := api.Group("/cart")
		{
			cart.GET("", cartControllers.GetUserCart(db))
			cart.POST("", cartControllers.AddToCart(db))
			cart.GET("/total", cartControllers.GetTotal(db))
			cart.PUT("/:id", cartControllers.UpdateCartItem(db))
			cart.DELETE("/:id", cartControllers.RemoveCartItem(db))
			cart.DELETE("", cartControllers.ClearUserCart(db))
		}

		// ──────────────── Image Upload ────────────────
		api.POST("/upload", uploadControllers.UploadImage())
	}
}
