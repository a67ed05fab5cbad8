package orderControllers

import (
	"errors"
	"fmt"
)

var (
	ErrOrderNotFound = errors.New("order not found")

	// ErrNotCancelled guards order deletion: only cancelled orders may
	// be removed.
	ErrNotCancelled = errors.New("only cancelled orders can be deleted")
)

// ValidationError covers failures rejected before any transaction
// begins: empty cart, malformed shipping address, unknown payment
// method. Nothing has been mutated when one is returned.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationErr(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// OutOfStockError names the product whose stock could not cover the
// requested quantity, either at the advisory pre-check or at the
// authoritative conditional decrement inside the transaction. The
// caller can prompt the user to adjust quantity rather than retry.
type OutOfStockError struct {
	ProductID   uint
	ProductName string
}

func (e *OutOfStockError) Error() string {
	if e.ProductName != "" {
		return fmt.Sprintf("insufficient stock for product %q", e.ProductName)
	}
	return fmt.Sprintf("insufficient stock for product %d", e.ProductID)
}
