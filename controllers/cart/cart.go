package cartControllers

import (
	"errors"
	"time"

	"github.com/kimseho1/shopmall-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartLine is a cart item joined with the live product row. Price and
// stock always reflect the current catalog, unlike order line items
// which freeze the price at checkout.
type CartLine struct {
	CartItemID    uint            `gorm:"column:cart_item_id" json:"cart_item_id"`
	ProductID     uint            `gorm:"column:product_id" json:"product_id"`
	Quantity      int             `gorm:"column:quantity" json:"quantity"`
	Name          string          `gorm:"column:name" json:"name"`
	Price         decimal.Decimal `gorm:"column:price" json:"price"`
	ImageURL      string          `gorm:"column:image_url" json:"image_url"`
	StockQuantity int             `gorm:"column:stock_quantity" json:"stock_quantity"`
	AddedAt       time.Time       `gorm:"column:added_at" json:"added_at"`
	Subtotal      decimal.Decimal `gorm:"-" json:"subtotal"`
}

// GetCartItems returns the user's cart lines, most recently added first.
func GetCartItems(db *gorm.DB, userID uint) ([]CartLine, error) {
	var lines []CartLine
	err := db.Table("cart_items").
		Select(`cart_items.id AS cart_item_id, cart_items.product_id, cart_items.quantity,
			cart_items.created_at AS added_at, products.name, products.price,
			products.image_url, products.stock_quantity`).
		Joins("JOIN products ON products.id = cart_items.product_id").
		Where("cart_items.user_id = ?", userID).
		Order("cart_items.created_at DESC, cart_items.id DESC").
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}

	for i := range lines {
		lines[i].Subtotal = lines[i].Price.Mul(decimal.NewFromInt(int64(lines[i].Quantity)))
	}
	return lines, nil
}

// AddCartItem adds a product to the cart, or bumps the quantity when a
// line for (user, product) already exists. Returns the cart item id.
// Quantity is assumed pre-validated (>= 1) by the handler.
func AddCartItem(db *gorm.DB, userID, productID uint, quantity int) (uint, error) {
	var item models.CartItem
	err := db.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, err
		}
		item = models.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
		if err := db.Create(&item).Error; err != nil {
			return 0, err
		}
		return item.ID, nil
	}

	item.Quantity += quantity
	if err := db.Save(&item).Error; err != nil {
		return 0, err
	}
	return item.ID, nil
}

// UpdateCartItemQuantity sets a line's quantity. The update is scoped to
// the owning user; a false return means no matching row, which callers
// map to not-found rather than an error.
func UpdateCartItemQuantity(db *gorm.DB, userID, cartItemID uint, quantity int) (bool, error) {
	result := db.Model(&models.CartItem{}).
		Where("id = ? AND user_id = ?", cartItemID, userID).
		Update("quantity", quantity)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeleteCartItem removes a line, scoped to the owning user.
func DeleteCartItem(db *gorm.DB, userID, cartItemID uint) (bool, error) {
	result := db.Where("id = ? AND user_id = ?", cartItemID, userID).Delete(&models.CartItem{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ClearCart deletes every line for the user. An already-empty cart is
// still a success.
func ClearCart(db *gorm.DB, userID uint) error {
	return db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}

// GetCartTotal sums price*quantity across the cart against current
// catalog prices. itemCount is the number of lines, not units.
func GetCartTotal(db *gorm.DB, userID uint) (decimal.Decimal, int, error) {
	lines, err := GetCartItems(db, userID)
	if err != nil {
		return decimal.Zero, 0, err
	}

	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal)
	}
	return total, len(lines), nil
}
