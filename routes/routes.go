package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up all route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Public auth + catalog routes (no middleware)
	SetupAuthRoutes(r, db)
	SetupCatalogRoutes(r, db)

	// JWT-protected user routes
	SetupUserRoutes(r, db)

	// API-key-protected admin routes
	SetupAdminRoutes(r, db)

	SetupOrderRoutes(r, db)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
