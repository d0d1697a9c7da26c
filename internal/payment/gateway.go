package payment

import "context"

// Gateway creates payment intents on a remote payment processor.
type Gateway interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*GatewayOrder, error)
}
