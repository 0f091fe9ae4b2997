package service

import (
	"errors"
	"fmt"
)

var (
	ErrCartEmpty           = errors.New("cart is empty")
	ErrOrderNotFound       = errors.New("order not found")
	ErrOrderNotCancellable = errors.New("order can no longer be cancelled")
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrPaymentNotPending   = errors.New("payment is not pending")
)

// BookUnavailableError names the offending book so the whole checkout can
// abort with a descriptive message.
type BookUnavailableError struct {
	Title  string
	Reason string
}

func (e *BookUnavailableError) Error() string {
	return fmt.Sprintf("%q %s", e.Title, e.Reason)
}

func newUnavailable(title string) *BookUnavailableError {
	return &BookUnavailableError{Title: title, Reason: "is no longer available"}
}

func newInsufficientStock(title string) *BookUnavailableError {
	return &BookUnavailableError{Title: title, Reason: "has insufficient stock"}
}
