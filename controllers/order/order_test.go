package orderControllers

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	cartControllers "github.com/kimseho1/shopmall-api/controllers/cart"
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
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{Email: email, PasswordHash: "x", Name: "Test User"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createProduct(t *testing.T, db *gorm.DB, name string, price int64, stock int) models.Product {
	t.Helper()
	product := models.Product{
		Name:          name,
		Price:         decimal.NewFromInt(price),
		StockQuantity: stock,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func addToCart(t *testing.T, db *gorm.DB, userID, productID uint, qty int) {
	t.Helper()
	_, err := cartControllers.AddCartItem(db, userID, productID, qty)
	require.NoError(t, err)
}

func validRequest() PlaceOrderRequest {
	return PlaceOrderRequest{
		ShippingAddress: "123 Teheran-ro, Gangnam-gu, Seoul",
		PaymentMethod:   "credit_card",
	}
}

func TestPlaceOrderSuccess(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "buyer@example.com")
	p1 := createProduct(t, db, "Keyboard", 1000, 10)
	p2 := createProduct(t, db, "Mouse", 500, 5)
	addToCart(t, db, user.ID, p1.ID, 2)
	addToCart(t, db, user.ID, p2.ID, 1)

	receipt, err := PlaceOrder(db, user.ID, validRequest())
	require.NoError(t, err)
	require.NotNil(t, receipt)
	assert.True(t, receipt.TotalAmount.Equal(decimal.NewFromInt(2500)),
		"expected total 2500, got %s", receipt.TotalAmount)
	assert.Equal(t, "Credit Card", receipt.PaymentMethod)
	assert.NotEmpty(t, receipt.TransactionID)

	var order models.Order
	require.NoError(t, db.First(&order, receipt.OrderID).Error)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(2500)))
	assert.Equal(t, user.ID, order.UserID)

	// The snapshot is newest-first, so the mouse line lands before the
	// keyboard line.
	var items []models.OrderItem
	require.NoError(t, db.Where("order_id = ?", order.ID).Order("id").Find(&items).Error)
	require.Len(t, items, 2)
	assert.Equal(t, p2.ID, items[0].ProductID)
	assert.True(t, items[0].Price.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, p1.ID, items[1].ProductID)
	assert.True(t, items[1].Price.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, 2, items[1].Quantity)

	// Stock decremented per line
	var got1, got2 models.Product
	require.NoError(t, db.First(&got1, p1.ID).Error)
	require.NoError(t, db.First(&got2, p2.ID).Error)
	assert.Equal(t, 8, got1.StockQuantity)
	assert.Equal(t, 4, got2.StockQuantity)

	// Cart cleared after commit
	lines, err := cartControllers.GetCartItems(db, user.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "buyer@example.com")

	_, err := PlaceOrder(db, user.ID, validRequest())
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestPlaceOrderValidation(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "buyer@example.com")
	p := createProduct(t, db, "Keyboard", 1000, 10)
	addToCart(t, db, user.ID, p.ID, 1)

	cases := []struct {
		name string
		req  PlaceOrderRequest
	}{
		{"short address", PlaceOrderRequest{ShippingAddress: "too short", PaymentMethod: "credit_card"}},
		{"symbols only address", PlaceOrderRequest{ShippingAddress: "!!!???...---___===", PaymentMethod: "credit_card"}},
		{"unknown payment method", PlaceOrderRequest{ShippingAddress: "123 Teheran-ro, Gangnam-gu, Seoul", PaymentMethod: "cheque"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := PlaceOrder(db, user.ID, tc.req)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)

			// Nothing mutated
			var orderCount int64
			require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
			assert.Zero(t, orderCount)
			var got models.Product
			require.NoError(t, db.First(&got, p.ID).Error)
			assert.Equal(t, 10, got.StockQuantity)
		})
	}
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "buyer@example.com")
	p := createProduct(t, db, "Keyboard", 1000, 1)
	addToCart(t, db, user.ID, p.ID, 2)

	_, err := PlaceOrder(db, user.ID, validRequest())
	var stockErr *OutOfStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, p.ID, stockErr.ProductID)

	// Cart untouched, no order, stock unchanged
	lines, err := cartControllers.GetCartItems(db, user.ID)
	require.NoError(t, err)
	assert.Len(t, lines, 1)
	var orderCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	assert.Zero(t, orderCount)
	var got models.Product
	require.NoError(t, db.First(&got, p.ID).Error)
	assert.Equal(t, 1, got.StockQuantity)
}

// createOrder is exercised directly here to bypass the advisory
// pre-check: the snapshot claims more units than stock holds, the way a
// racing checkout would after both pre-checks passed.
func TestCreateOrderRollsBackCompletely(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "buyer@example.com")
	p1 := createProduct(t, db, "Keyboard", 1000, 10)
	p2 := createProduct(t, db, "Mouse", 500, 1)

	lines := []cartControllers.CartLine{
		{ProductID: p1.ID, Quantity: 1, Name: p1.Name, Price: p1.Price},
		{ProductID: p2.ID, Quantity: 2, Name: p2.Name, Price: p2.Price},
	}

	_, err := createOrder(db, user.ID, decimal.NewFromInt(2000),
		"123 Teheran-ro, Gangnam-gu, Seoul", "Credit Card", lines)
	var stockErr *OutOfStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, p2.ID, stockErr.ProductID)

	// The first line's insert and decrement must have been rolled back
	// along with everything else.
	var orderCount, itemCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&itemCount).Error)
	assert.Zero(t, orderCount)
	assert.Zero(t, itemCount)

	var got1, got2 models.Product
	require.NoError(t, db.First(&got1, p1.ID).Error)
	require.NoError(t, db.First(&got2, p2.ID).Error)
	assert.Equal(t, 10, got1.StockQuantity)
	assert.Equal(t, 1, got2.StockQuantity)
}

func TestLastUnitCheckout(t *testing.T) {
	db := setupTestDB(t)
	userA := createUser(t, db, "a@example.com")
	userB := createUser(t, db, "b@example.com")
	p := createProduct(t, db, "Limited Edition", 1000, 1)
	addToCart(t, db, userA.ID, p.ID, 1)
	addToCart(t, db, userB.ID, p.ID, 1)

	receipt, err := PlaceOrder(db, userA.ID, validRequest())
	require.NoError(t, err)
	assert.True(t, receipt.TotalAmount.Equal(decimal.NewFromInt(1000)))

	var got models.Product
	require.NoError(t, db.First(&got, p.ID).Error)
	assert.Equal(t, 0, got.StockQuantity)

	// B raced for the same unit and loses: out-of-stock, cart intact,
	// no order created.
	_, err = PlaceOrder(db, userB.ID, validRequest())
	var stockErr *OutOfStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, p.ID, stockErr.ProductID)

	linesB, err := cartControllers.GetCartItems(db, userB.ID)
	require.NoError(t, err)
	assert.Len(t, linesB, 1)

	var ordersB int64
	require.NoError(t, db.Model(&models.Order{}).Where("user_id = ?", userB.ID).Count(&ordersB).Error)
	assert.Zero(t, ordersB)

	require.NoError(t, db.First(&got, p.ID).Error)
	assert.Equal(t, 0, got.StockQuantity)
}

func TestOrderTotalFrozenAfterPriceChange(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "buyer@example.com")
	p := createProduct(t, db, "Keyboard", 1000, 10)
	addToCart(t, db, user.ID, p.ID, 2)

	receipt, err := PlaceOrder(db, user.ID, validRequest())
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", p.ID).
		Update("price", decimal.NewFromInt(9999)).Error)

	var order models.Order
	require.NoError(t, db.First(&order, receipt.OrderID).Error)
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(2000)),
		"order total must not follow catalog price changes")

	items, err := GetOrderItems(db, order.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].Price.Equal(decimal.NewFromInt(1000)),
		"line item price must stay frozen")
	assert.True(t, items[0].Subtotal.Equal(decimal.NewFromInt(2000)))
	assert.Equal(t, "Keyboard", items[0].ProductName)
}

func TestGetOrdersByUserPagination(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "buyer@example.com")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 25; i++ {
		order := models.Order{
			UserID:          user.ID,
			TotalAmount:     decimal.NewFromInt(int64(1000 + i)),
			Status:          models.OrderStatusPending,
			ShippingAddress: "123 Teheran-ro, Gangnam-gu, Seoul",
			PaymentMethod:   "Credit Card",
			CreatedAt:       base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(&order).Error)
	}

	page, err := GetOrdersByUser(db, user.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(25), page.Total)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Orders, 10)
	// Newest first: the last created order leads
	assert.True(t, page.Orders[0].TotalAmount.Equal(decimal.NewFromInt(1024)))

	page3, err := GetOrdersByUser(db, user.ID, 3, 10)
	require.NoError(t, err)
	assert.Len(t, page3.Orders, 5)
}

func TestUpdateOrderStatus(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "buyer@example.com")
	order := models.Order{
		UserID:          user.ID,
		TotalAmount:     decimal.NewFromInt(1000),
		Status:          models.OrderStatusPending,
		ShippingAddress: "123 Teheran-ro, Gangnam-gu, Seoul",
		PaymentMethod:   "Credit Card",
	}
	require.NoError(t, db.Create(&order).Error)

	_, err := UpdateOrderStatus(db, order.ID, "teleported")
	require.Error(t, err)

	updated, err := UpdateOrderStatus(db, order.ID, "shipped")
	require.NoError(t, err)
	assert.True(t, updated)

	var got models.Order
	require.NoError(t, db.First(&got, order.ID).Error)
	assert.Equal(t, models.OrderStatusShipped, got.Status)

	updated, err = UpdateOrderStatus(db, 9999, "shipped")
	require.NoError(t, err)
	assert.False(t, updated)
}

func TestDeleteOrderPolicy(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "buyer@example.com")
	other := createUser(t, db, "other@example.com")
	p := createProduct(t, db, "Keyboard", 1000, 10)
	addToCart(t, db, user.ID, p.ID, 1)

	receipt, err := PlaceOrder(db, user.ID, validRequest())
	require.NoError(t, err)

	// Pending orders are not deletable
	err = DeleteOrder(db, receipt.OrderID, user.ID)
	require.ErrorIs(t, err, ErrNotCancelled)

	// Someone else's order looks like not-found
	_, err = UpdateOrderStatus(db, receipt.OrderID, "cancelled")
	require.NoError(t, err)
	err = DeleteOrder(db, receipt.OrderID, other.ID)
	require.ErrorIs(t, err, ErrOrderNotFound)

	// Cancelled + owner: gone, line items included
	require.NoError(t, DeleteOrder(db, receipt.OrderID, user.ID))
	_, err = GetOrderByID(db, receipt.OrderID, nil)
	require.ErrorIs(t, err, ErrOrderNotFound)
	var itemCount int64
	require.NoError(t, db.Model(&models.OrderItem{}).Where("order_id = ?", receipt.OrderID).Count(&itemCount).Error)
	assert.Zero(t, itemCount)
}

func TestGetOrderByIDOwnerScope(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "buyer@example.com")
	other := createUser(t, db, "other@example.com")
	p := createProduct(t, db, "Keyboard", 1000, 10)
	addToCart(t, db, user.ID, p.ID, 1)

	receipt, err := PlaceOrder(db, user.ID, validRequest())
	require.NoError(t, err)

	got, err := GetOrderByID(db, receipt.OrderID, &user.ID)
	require.NoError(t, err)
	assert.Equal(t, receipt.OrderID, got.ID)

	_, err = GetOrderByID(db, receipt.OrderID, &other.ID)
	require.ErrorIs(t, err, ErrOrderNotFound)

	// Unscoped lookup still finds it
	got, err = GetOrderByID(db, receipt.OrderID, nil)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.UserID)
}
