package productcontroller

import (
	"errors"

	"github.com/kimseho1/shopmall-api/models"
	"gorm.io/gorm"
)

// CheckStock reports availability for a product. A missing product is
// reported as unavailable with stock 0, not as an error; callers that
// need a distinct not-found must look the product up themselves.
func CheckStock(db *gorm.DB, productID uint) (available bool, stock int, err error) {
	var product models.Product
	if err := db.Select("stock_quantity").First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, 0, nil
		}
		return false, 0, err
	}
	return product.StockQuantity > 0, product.StockQuantity, nil
}

// DecrementStock subtracts quantity from a product's stock in a single
// conditional UPDATE. It succeeds only when the current stock covers the
// requested quantity, so two racing checkouts of the last unit cannot
// both pass; the check-and-set never happens as a read-modify-write in
// the application. Pass a transaction handle to run it inside a larger
// unit of work.
func DecrementStock(db *gorm.DB, productID uint, quantity int) (bool, error) {
	result := db.Model(&models.Product{}).
		Where("id = ? AND stock_quantity >= ?", productID, quantity).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", quantity))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
