package payment

import (
	"context"
	"math"
	"time"

	"groshop-be/internal/logger"
	"groshop-be/internal/metrics"
	"groshop-be/internal/order"
	"groshop-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type VerifyParams struct {
	OrderID        uuid.UUID
	PaymentID      string
	GatewayOrderID string
	Signature      string
}

type Service interface {
	CreatePaymentIntent(ctx context.Context, amount float64, currency, receipt string) (*GatewayOrder, error)
	VerifyAndSettle(ctx context.Context, params VerifyParams) (*order.Order, error)
}

type service struct {
	gateway    Gateway
	keySecret  string
	configured bool
	orders     order.Repository
}

// NewService wires the gateway client constructed at process start. When
// credentials were absent, configured=false and gateway calls degrade to
// a per-request configuration error.
func NewService(gateway Gateway, keyID, keySecret string, orders order.Repository) Service {
	return &service{
		gateway:    gateway,
		keySecret:  keySecret,
		configured: keyID != "" && keySecret != "",
		orders:     orders,
	}
}

// CreatePaymentIntent creates a gateway order. The gateway only accepts
// integral amounts, so the requested minor-unit amount is rounded to the
// nearest integer before submission.
func (s *service) CreatePaymentIntent(ctx context.Context, amount float64, currency, receipt string) (*GatewayOrder, error) {
	log := logger.FromCtx(ctx)

	if !s.configured {
		log.Error("payment intent requested but gateway is not configured")
		return nil, ErrGatewayNotConfigured
	}

	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	if currency == "" {
		currency = "INR"
	}
	if receipt == "" {
		receipt = utils.GenerateReceiptNumber()
	}

	rounded := int64(math.Round(amount))

	gwOrder, err := s.gateway.CreateOrder(ctx, rounded, currency, receipt)
	if err != nil {
		log.Error("gateway order creation failed", zap.Error(err))
		return nil, err
	}

	return gwOrder, nil
}

// VerifyAndSettle validates the gateway callback signature and records
// the settlement against the order: isPaid, paidAt, paymentResult and a
// move to "approved" so status tracking keeps a step after payment.
// Settling an already-paid order is a no-op returning the order as is.
func (s *service) VerifyAndSettle(ctx context.Context, params VerifyParams) (*order.Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("order_id", params.OrderID.String()),
		zap.String("payment_id", params.PaymentID),
	)

	if params.OrderID == uuid.Nil || params.PaymentID == "" ||
		params.GatewayOrderID == "" || params.Signature == "" {
		return nil, ErrMissingFields
	}

	if err := VerifySignature(s.keySecret, params.GatewayOrderID, params.PaymentID, params.Signature); err != nil {
		metrics.PaymentsFailed.Inc()
		log.Warn("payment signature mismatch")
		return nil, err
	}

	o, err := s.orders.GetOrderByID(ctx, params.OrderID)
	if err != nil {
		return nil, err
	}

	if o.IsPaid {
		log.Info("order already settled, skipping")
		return o, nil
	}

	now := time.Now()
	result := order.PaymentResult{
		PaymentID:    params.PaymentID,
		Status:       "completed",
		UpdateTime:   now,
		EmailAddress: utils.GetUserEmailFromContext(ctx),
	}

	updated, err := s.orders.MarkPaid(ctx, params.OrderID, result, now)
	if err != nil {
		log.Error("failed to mark order paid", zap.Error(err))
		return nil, err
	}

	metrics.PaymentsOK.Inc()
	log.Info("payment settled",
		zap.String("gateway_order_id", params.GatewayOrderID),
		zap.String("status", string(updated.Status)),
	)

	return updated, nil
}
