package orderControllers

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePaymentMethod(t *testing.T) {
	key, label, err := validatePaymentMethod("  Credit_Card ")
	require.NoError(t, err)
	assert.Equal(t, "credit_card", key)
	assert.Equal(t, "Credit Card", label)

	_, _, err = validatePaymentMethod("cheque")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestProcessPayment(t *testing.T) {
	txnID, err := processPayment(decimal.NewFromInt(1000), "kakao_pay", 7)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(txnID, "TXN_"))

	_, err = processPayment(decimal.Zero, "kakao_pay", 7)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)

	_, err = processPayment(decimal.NewFromInt(-100), "kakao_pay", 7)
	require.ErrorAs(t, err, &vErr)

	_, err = processPayment(decimal.NewFromInt(1000), "barter", 7)
	require.ErrorAs(t, err, &vErr)
}

func TestValidateShippingAddress(t *testing.T) {
	addr, err := validateShippingAddress("  123 Teheran-ro, Gangnam-gu, Seoul  ")
	require.NoError(t, err)
	assert.Equal(t, "123 Teheran-ro, Gangnam-gu, Seoul", addr)

	// Korean addresses count runes, not bytes
	_, err = validateShippingAddress("서울시 강남구 테헤란로 123")
	require.NoError(t, err)

	var vErr *ValidationError
	_, err = validateShippingAddress("short")
	require.ErrorAs(t, err, &vErr)

	_, err = validateShippingAddress(strings.Repeat("a", 501))
	require.ErrorAs(t, err, &vErr)

	_, err = validateShippingAddress("!!!???...---___===")
	require.ErrorAs(t, err, &vErr)
}
