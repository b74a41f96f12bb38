package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrInvalidItems         = errors.New("invalid items")
	ErrCustomerIDRequired   = errors.New("customer_id required")
	ErrPaymentDeclined      = errors.New("payment declined")
	ErrInventoryUnavailable = errors.New("inventory service unavailable")
	ErrPaymentUnavailable   = errors.New("payment service unavailable")
)

// InsufficientStockError reports the first SKU that could not be reserved.
type InsufficientStockError struct {
	SKU string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s", e.SKU)
}
