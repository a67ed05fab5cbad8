package orderControllers

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Supported payment method keys and their display labels. The label is
// what gets frozen onto the order row.
var paymentMethods = map[string]string{
	"credit_card":     "Credit Card",
	"debit_card":      "Debit Card",
	"bank_transfer":   "Bank Transfer",
	"virtual_account": "Virtual Account",
	"mobile_payment":  "Mobile Payment",
	"kakao_pay":       "KakaoPay",
	"naver_pay":       "NaverPay",
	"paypal":          "PayPal",
}

// validatePaymentMethod normalizes a method key and resolves its label.
func validatePaymentMethod(method string) (key, label string, err error) {
	key = strings.ToLower(strings.TrimSpace(method))
	label, ok := paymentMethods[key]
	if !ok {
		return "", "", validationErr("unsupported payment method: %s", method)
	}
	return key, label, nil
}

// processPayment simulates charging the customer. There is no gateway
// behind it: any positive amount with a recognized method succeeds and
// yields a transaction id. A real integration replaces this function
// without touching the order engine.
func processPayment(amount decimal.Decimal, methodKey string, userID uint) (string, error) {
	if !amount.IsPositive() {
		return "", validationErr("payment amount must be positive")
	}
	if _, ok := paymentMethods[methodKey]; !ok {
		return "", validationErr("unsupported payment method: %s", methodKey)
	}
	return fmt.Sprintf("TXN_%d_%d", time.Now().UnixMilli(), userID), nil
}
