package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/kimseho1/shopmall-api/auth"
	"github.com/kimseho1/shopmall-api/middleware"
	"github.com/kimseho1/shopmall-api/models"
	"github.com/kimseho1/shopmall-api/routes"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	log.Println("Starting shopmall-api...")

	// Load environment variables
	_ = godotenv.Load()

	// Init DB
	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	if os.Getenv("SEED_DATA") == "true" {
		if err := seedData(db); err != nil {
			log.Printf("Seeding failed: %v", err)
		}
	}

	// Gin setup
	r := gin.Default()
	r.Use(middleware.Metrics())

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup routes
	routes.SetupRoutes(r, db)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase() *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("DB connection failed: %v", err)
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect DB: %v", err)
	}
	return db
}

// seedData inserts demo rows on an empty database.
func seedData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	products := []models.Product{
		{Name: "MacBook Pro 14", Description: "Apple M3 Pro, 18GB RAM, 512GB SSD", Price: decimal.NewFromInt(2890000), StockQuantity: 15, Category: "Electronics"},
		{Name: "AirPods Pro", Description: "Active noise cancelling wireless earbuds", Price: decimal.NewFromInt(359000), StockQuantity: 50, Category: "Electronics"},
		{Name: "Galaxy Watch 6", Description: "Health monitoring, GPS, water resistant", Price: decimal.NewFromInt(429000), StockQuantity: 30, Category: "Electronics"},
		{Name: "Mechanical Keyboard", Description: "Mechanical switches, RGB backlight", Price: decimal.NewFromInt(189000), StockQuantity: 25, Category: "Peripherals"},
		{Name: "4K Monitor 27\"", Description: "IPS panel, USB-C, HDR400", Price: decimal.NewFromInt(549000), StockQuantity: 12, Category: "Peripherals"},
	}
	if err := db.Create(&products).Error; err != nil {
		return err
	}

	hash, err := auth.HashPassword("password123")
	if err != nil {
		return err
	}
	user := models.User{Email: "test1@example.com", PasswordHash: hash, Name: "Kim Chulsoo", Phone: "010-1234-5678"}
	if err := db.Create(&user).Error; err != nil {
		return err
	}

	log.Printf("Seeded %d products and 1 demo user", len(products))
	return nil
}
