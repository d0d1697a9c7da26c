package order

import "errors"

var (
	ErrEmptyOrder        = errors.New("no order items")
	ErrInvalidQuantity   = errors.New("quantity must be greater than zero")
	ErrInsufficientStock = errors.New("not enough stock")
	ErrOrderNotFound     = errors.New("order not found")
	ErrNotAuthorized     = errors.New("not authorized to view this order")
	ErrInvalidStatus     = errors.New("invalid status")
)
