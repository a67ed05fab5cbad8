package productcontroller

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/kimseho1/shopmall-api/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}))
	return db
}

func createProduct(t *testing.T, db *gorm.DB, stock int) models.Product {
	t.Helper()
	product := models.Product{
		Name:          "Widget",
		Price:         decimal.NewFromInt(1000),
		StockQuantity: stock,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func TestCheckStock(t *testing.T) {
	db := setupTestDB(t)

	// Missing product: unavailable, not an error
	available, stock, err := CheckStock(db, 12345)
	require.NoError(t, err)
	assert.False(t, available)
	assert.Zero(t, stock)

	p := createProduct(t, db, 3)
	available, stock, err = CheckStock(db, p.ID)
	require.NoError(t, err)
	assert.True(t, available)
	assert.Equal(t, 3, stock)

	empty := createProduct(t, db, 0)
	available, stock, err = CheckStock(db, empty.ID)
	require.NoError(t, err)
	assert.False(t, available, "zero stock is unavailable")
	assert.Zero(t, stock)
}

func TestDecrementStockFloor(t *testing.T) {
	db := setupTestDB(t)
	p := createProduct(t, db, 5)

	// Over-ask leaves stock untouched
	ok, err := DecrementStock(db, p.ID, 6)
	require.NoError(t, err)
	assert.False(t, ok)
	var got models.Product
	require.NoError(t, db.First(&got, p.ID).Error)
	assert.Equal(t, 5, got.StockQuantity)

	// Exact ask drains to zero
	ok, err = DecrementStock(db, p.ID, 5)
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, db.First(&got, p.ID).Error)
	assert.Equal(t, 0, got.StockQuantity)

	// Nothing left: stock never goes negative
	ok, err = DecrementStock(db, p.ID, 1)
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, db.First(&got, p.ID).Error)
	assert.Equal(t, 0, got.StockQuantity)
}

func TestDecrementStockNeverOversells(t *testing.T) {
	db := setupTestDB(t)
	p := createProduct(t, db, 6)

	// Ten single-unit claims against six units: exactly six win.
	succeeded := 0
	for i := 0; i < 10; i++ {
		ok, err := DecrementStock(db, p.ID, 1)
		require.NoError(t, err)
		if ok {
			succeeded++
		}
	}
	assert.Equal(t, 6, succeeded)

	var got models.Product
	require.NoError(t, db.First(&got, p.ID).Error)
	assert.Equal(t, 0, got.StockQuantity)
}

func TestDecrementStockMissingProduct(t *testing.T) {
	db := setupTestDB(t)

	ok, err := DecrementStock(db, 999, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}
