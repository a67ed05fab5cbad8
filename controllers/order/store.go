package orderControllers

import (
	"errors"
	"fmt"
	"math"

	"github.com/kimseho1/shopmall-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderPage is the pagination envelope for order listings.
type OrderPage struct {
	Orders     []models.Order `json:"orders"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	TotalPages int            `json:"total_pages"`
}

// OrderLineView is an order line joined with the live product for
// display. Price is always the frozen line price, never the current
// catalog price.
type OrderLineView struct {
	OrderItemID uint            `gorm:"column:order_item_id" json:"order_item_id"`
	OrderID     uint            `gorm:"column:order_id" json:"order_id"`
	ProductID   uint            `gorm:"column:product_id" json:"product_id"`
	Quantity    int             `gorm:"column:quantity" json:"quantity"`
	Price       decimal.Decimal `gorm:"column:price" json:"price"`
	ProductName string          `gorm:"column:product_name" json:"product_name"`
	ImageURL    string          `gorm:"column:image_url" json:"image_url"`
	Subtotal    decimal.Decimal `gorm:"-" json:"subtotal"`
}

// GetOrderByID fetches one order, optionally scoped to an owner for
// authorization. Returns ErrOrderNotFound when no row matches.
func GetOrderByID(db *gorm.DB, orderID uint, ownerUserID *uint) (*models.Order, error) {
	query := db.Where("id = ?", orderID)
	if ownerUserID != nil {
		query = query.Where("user_id = ?", *ownerUserID)
	}

	var order models.Order
	if err := query.First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// GetOrdersByUser lists a user's orders newest first. Page and limit are
// validated by the handler.
func GetOrdersByUser(db *gorm.DB, userID uint, page, limit int) (*OrderPage, error) {
	query := db.Model(&models.Order{}).Where("user_id = ?", userID)
	return paginateOrders(query, page, limit)
}

// GetAllOrders lists every order, optionally filtered by status.
func GetAllOrders(db *gorm.DB, page, limit int, status string) (*OrderPage, error) {
	query := db.Model(&models.Order{})
	if status != "" {
		if !models.OrderStatus(status).Valid() {
			return nil, fmt.Errorf("invalid order status: %s", status)
		}
		query = query.Where("status = ?", status)
	}
	return paginateOrders(query, page, limit)
}

func paginateOrders(query *gorm.DB, page, limit int) (*OrderPage, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var orders []models.Order
	if err := query.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&orders).Error; err != nil {
		return nil, err
	}

	return &OrderPage{
		Orders:     orders,
		Total:      total,
		Page:       page,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

// GetOrderItems returns an order's line items joined with the current
// product name and image for display.
func GetOrderItems(db *gorm.DB, orderID uint) ([]OrderLineView, error) {
	var items []OrderLineView
	err := db.Table("order_items").
		Select(`order_items.id AS order_item_id, order_items.order_id,
			order_items.product_id, order_items.quantity, order_items.price,
			products.name AS product_name, products.image_url`).
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("order_items.order_id = ?", orderID).
		Order("order_items.id").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}

	for i := range items {
		items[i].Subtotal = items[i].Price.Mul(decimal.NewFromInt(int64(items[i].Quantity)))
	}
	return items, nil
}

// UpdateOrderStatus sets an order's status after validating it against
// the closed status set. Any-to-any overwrite is allowed; transition
// tightening would go here.
func UpdateOrderStatus(db *gorm.DB, orderID uint, status string) (bool, error) {
	newStatus := models.OrderStatus(status)
	if !newStatus.Valid() {
		return false, fmt.Errorf("invalid order status: %s", status)
	}

	result := db.Model(&models.Order{}).Where("id = ?", orderID).Update("status", newStatus)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeleteOrder removes an order and its line items. Only the owning
// user's cancelled orders qualify; anything else is a policy violation.
func DeleteOrder(db *gorm.DB, orderID, userID uint) error {
	order, err := GetOrderByID(db, orderID, &userID)
	if err != nil {
		return err
	}
	if order.Status != models.OrderStatusCancelled {
		return ErrNotCancelled
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, orderID).Error
	})
}
