package orderControllers

import (
	"errors"
	"net/http"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	cartControllers "github.com/kimseho1/shopmall-api/controllers/cart"
	productcontroller "github.com/kimseho1/shopmall-api/controllers/product"
	"github.com/kimseho1/shopmall-api/middleware"
	"github.com/kimseho1/shopmall-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PlaceOrderRequest struct {
	ShippingAddress string `json:"shipping_address" binding:"required"`
	PaymentMethod   string `json:"payment_method" binding:"required"`
}

// OrderReceipt is what a successful checkout returns to the caller.
type OrderReceipt struct {
	OrderID       uint            `json:"order_id"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentMethod string          `json:"payment_method"`
	TransactionID string          `json:"transaction_id"`
}

const (
	minAddressLen = 10
	maxAddressLen = 500
)

// validateShippingAddress trims and checks the address text. It must be
// 10-500 characters and contain at least one letter or digit.
func validateShippingAddress(address string) (string, error) {
	trimmed := strings.TrimSpace(address)
	if len([]rune(trimmed)) < minAddressLen {
		return "", validationErr("shipping address must be at least %d characters", minAddressLen)
	}
	if len([]rune(trimmed)) > maxAddressLen {
		return "", validationErr("shipping address cannot exceed %d characters", maxAddressLen)
	}
	for _, r := range trimmed {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return trimmed, nil
		}
	}
	return "", validationErr("shipping address must contain letters or digits")
}

// snapshotTotal sums price*quantity over the cart snapshot.
func snapshotTotal(lines []cartControllers.CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

// createOrder is the atomic unit of work behind checkout: insert the
// order header, then per snapshot line insert the line item with its
// frozen price and conditionally decrement stock. Any decrement failure
// or storage fault aborts the whole transaction, so no header, line item
// or stock change from this call is ever observable on failure.
//
// The caller's stock pre-check is advisory only; the conditional
// decrement here is the authority that prevents overselling under
// concurrent checkouts.
func createOrder(db *gorm.DB, userID uint, total decimal.Decimal, shippingAddress, paymentLabel string, lines []cartControllers.CartLine) (uint, error) {
	var orderID uint
	err := db.Transaction(func(tx *gorm.DB) error {
		order := models.Order{
			UserID:          userID,
			TotalAmount:     total,
			Status:          models.OrderStatusPending,
			ShippingAddress: shippingAddress,
			PaymentMethod:   paymentLabel,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, line := range lines {
			item := models.OrderItem{
				OrderID:   order.ID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Price:     line.Price,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}

			ok, err := productcontroller.DecrementStock(tx, line.ProductID, line.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				// A concurrent checkout consumed the stock after our
				// pre-check. Abort everything.
				return &OutOfStockError{ProductID: line.ProductID, ProductName: line.Name}
			}
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return orderID, nil
}

// PlaceOrder runs the whole checkout flow for a user: validate inputs,
// snapshot the cart, advisory stock pre-check, simulated payment, the
// atomic order transaction, then clear the cart. The cart is only
// cleared after the transaction commits; on any failure it is left
// untouched.
//
// Not idempotent: calling it twice places two orders. The client gates
// duplicate submission.
func PlaceOrder(db *gorm.DB, userID uint, req PlaceOrderRequest) (*OrderReceipt, error) {
	address, err := validateShippingAddress(req.ShippingAddress)
	if err != nil {
		return nil, err
	}
	methodKey, methodLabel, err := validatePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	lines, err := cartControllers.GetCartItems(db, userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, validationErr("cart is empty")
	}

	// Advisory pre-check. Improves the error message and skips doomed
	// transactions, but the in-transaction decrement stays the
	// authority on correctness.
	for _, line := range lines {
		available, stock, err := productcontroller.CheckStock(db, line.ProductID)
		if err != nil {
			return nil, err
		}
		if !available || stock < line.Quantity {
			return nil, &OutOfStockError{ProductID: line.ProductID, ProductName: line.Name}
		}
	}

	total := snapshotTotal(lines)
	if !total.IsPositive() {
		return nil, validationErr("order total is not valid")
	}

	transactionID, err := processPayment(total, methodKey, userID)
	if err != nil {
		return nil, err
	}

	orderID, err := createOrder(db, userID, total, address, methodLabel, lines)
	if err != nil {
		return nil, err
	}

	// Checkout took its snapshot; the cart's job is done. A failure here
	// leaves a stale cart next to a fully consistent order.
	if err := cartControllers.ClearCart(db, userID); err != nil {
		return nil, err
	}

	return &OrderReceipt{
		OrderID:       orderID,
		TotalAmount:   total,
		PaymentMethod: methodLabel,
		TransactionID: transactionID,
	}, nil
}

// POST /api/orders
func PlaceOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		receipt, err := PlaceOrder(db, userID, req)
		if err != nil {
			var vErr *ValidationError
			var stockErr *OutOfStockError
			switch {
			case errors.As(err, &vErr):
				c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Reason})
			case errors.As(err, &stockErr):
				c.JSON(http.StatusBadRequest, gin.H{
					"error":      stockErr.Error(),
					"product_id": stockErr.ProductID,
				})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Order processing failed"})
			}
			return
		}

		var placed models.Order
		if db.First(&placed, receipt.OrderID).Error == nil {
			broadcastNewOrder(placed)
		}

		c.JSON(http.StatusCreated, gin.H{
			"order_id":       receipt.OrderID,
			"total_amount":   receipt.TotalAmount,
			"payment_method": receipt.PaymentMethod,
			"message":        "Order placed successfully",
		})
	}
}
