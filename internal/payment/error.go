package payment

import (
	"errors"
	"fmt"
)

var (
	ErrGatewayNotConfigured = errors.New("payment gateway not configured")
	ErrInvalidAmount        = errors.New("amount is required and must be positive")
	ErrMissingFields        = errors.New("missing required payment information")
	ErrSignatureMismatch    = errors.New("payment verification failed: invalid signature")
)

// GatewayError carries the upstream gateway message. No local retry is
// performed, the client is expected to retry.
type GatewayError struct {
	Message string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway error: %s", e.Message)
}
