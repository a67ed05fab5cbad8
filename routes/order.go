package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/kimseho1/shopmall-api/controllers/order"
	"github.com/kimseho1/shopmall-api/middleware"
	"gorm.io/gorm"
)

// SetupOrderRoutes registers checkout and order history endpoints plus
// the realtime order feed.
func SetupOrderRoutes(r *gin.Engine, db *gorm.DB) {
	orders := r.Group("/api/orders")
	orders.Use(middleware.ValidateToken)
	{
		// Checkout: takes the cart snapshot, runs the order transaction
		orders.POST("", orderControllers.PlaceOrderHandler(db))

		orders.GET("", orderControllers.GetUserOrdersHandler(db))
		orders.GET("/:id", orderControllers.GetOrderByIDHandler(db))
		orders.DELETE("/:id", orderControllers.DeleteOrderHandler(db))
	}

	// websocket endpoint for real-time order updates (admin dashboard)
	r.GET("/ws/orders", middleware.ValidateAPIKey, orderControllers.OrderFeedHandler)
}
