package payment

import (
	"context"
	"testing"
	"time"

	"groshop-be/internal/order"
	"groshop-be/internal/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*GatewayOrder, error) {
	args := m.Called(ctx, amount, currency, receipt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*GatewayOrder), args.Error(1)
}

type MockOrderRepo struct {
	mock.Mock
}

func (m *MockOrderRepo) CreateOrder(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepo) GetOrderByID(ctx context.Context, orderID uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]order.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepo) ListAllWithOwner(ctx context.Context) ([]order.OrderWithOwner, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.OrderWithOwner), args.Error(1)
}

func (m *MockOrderRepo) UpdateStatus(ctx context.Context, orderID uuid.UUID, status order.OrderStatus, shippedAt, deliveredAt *time.Time) (*order.Order, error) {
	args := m.Called(ctx, orderID, status, shippedAt, deliveredAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepo) MarkPaid(ctx context.Context, orderID uuid.UUID, result order.PaymentResult, paidAt time.Time) (*order.Order, error) {
	args := m.Called(ctx, orderID, result, paidAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

const testSecret = "rzp_test_secret"

// --- CreatePaymentIntent ---

func TestService_CreatePaymentIntent(t *testing.T) {
	ctx := context.Background()

	t.Run("NotConfigured", func(t *testing.T) {
		svc := NewService(new(MockGateway), "", "", new(MockOrderRepo))

		_, err := svc.CreatePaymentIntent(ctx, 100, "INR", "")
		assert.ErrorIs(t, err, ErrGatewayNotConfigured)
	})

	t.Run("InvalidAmount", func(t *testing.T) {
		gw := new(MockGateway)
		svc := NewService(gw, "key", testSecret, new(MockOrderRepo))

		_, err := svc.CreatePaymentIntent(ctx, 0, "INR", "")
		assert.ErrorIs(t, err, ErrInvalidAmount)

		_, err = svc.CreatePaymentIntent(ctx, -5, "INR", "")
		assert.ErrorIs(t, err, ErrInvalidAmount)

		gw.AssertNotCalled(t, "CreateOrder")
	})

	t.Run("RoundsToIntegerMinorUnits", func(t *testing.T) {
		gw := new(MockGateway)
		svc := NewService(gw, "key", testSecret, new(MockOrderRepo))

		gw.On("CreateOrder", mock.Anything, int64(151), "INR", "RCPT-9").
			Return(&GatewayOrder{ID: "order_abc", Amount: 151, Currency: "INR", Receipt: "RCPT-9"}, nil)

		gwOrder, err := svc.CreatePaymentIntent(ctx, 150.75, "INR", "RCPT-9")
		require.NoError(t, err)
		assert.Equal(t, int64(151), gwOrder.Amount)
		gw.AssertExpectations(t)
	})

	t.Run("DefaultsCurrencyAndReceipt", func(t *testing.T) {
		gw := new(MockGateway)
		svc := NewService(gw, "key", testSecret, new(MockOrderRepo))

		gw.On("CreateOrder", mock.Anything, int64(500), "INR",
			mock.MatchedBy(func(receipt string) bool { return receipt != "" })).
			Return(&GatewayOrder{ID: "order_def", Amount: 500, Currency: "INR"}, nil)

		_, err := svc.CreatePaymentIntent(ctx, 500, "", "")
		require.NoError(t, err)
		gw.AssertExpectations(t)
	})

	t.Run("GatewayFailurePropagates", func(t *testing.T) {
		gw := new(MockGateway)
		svc := NewService(gw, "key", testSecret, new(MockOrderRepo))

		gw.On("CreateOrder", mock.Anything, int64(100), "INR", "r").
			Return(nil, &GatewayError{Message: "upstream down"})

		_, err := svc.CreatePaymentIntent(ctx, 100, "INR", "r")
		var gwErr *GatewayError
		assert.ErrorAs(t, err, &gwErr)
	})
}

// --- VerifyAndSettle ---

func TestService_VerifyAndSettle(t *testing.T) {
	userID := uuid.New()
	ctx := utils.SetUserContext(context.Background(), userID, "buyer@example.com", false)

	orderID := uuid.New()
	gatewayOrderID := "order_abc123"
	paymentID := "pay_xyz789"

	pending := &order.Order{
		ID:     orderID,
		UserID: userID,
		Total:  decimal.RequireFromString("406.00"),
		Status: order.StatusPending,
	}

	validParams := func() VerifyParams {
		return VerifyParams{
			OrderID:        orderID,
			PaymentID:      paymentID,
			GatewayOrderID: gatewayOrderID,
			Signature:      sign(testSecret, gatewayOrderID, paymentID),
		}
	}

	t.Run("MissingFields", func(t *testing.T) {
		orders := new(MockOrderRepo)
		svc := NewService(new(MockGateway), "key", testSecret, orders)

		cases := []VerifyParams{
			{},
			{OrderID: orderID, PaymentID: paymentID, GatewayOrderID: gatewayOrderID},
			{OrderID: orderID, PaymentID: paymentID, Signature: "sig"},
			{OrderID: orderID, GatewayOrderID: gatewayOrderID, Signature: "sig"},
			{PaymentID: paymentID, GatewayOrderID: gatewayOrderID, Signature: "sig"},
		}
		for _, params := range cases {
			_, err := svc.VerifyAndSettle(ctx, params)
			assert.ErrorIs(t, err, ErrMissingFields)
		}
		orders.AssertNotCalled(t, "GetOrderByID")
	})

	t.Run("SignatureMismatch_DoesNotTouchOrder", func(t *testing.T) {
		orders := new(MockOrderRepo)
		svc := NewService(new(MockGateway), "key", testSecret, orders)

		params := validParams()
		params.Signature = sign("wrong-secret", gatewayOrderID, paymentID)

		_, err := svc.VerifyAndSettle(ctx, params)
		assert.ErrorIs(t, err, ErrSignatureMismatch)
		orders.AssertNotCalled(t, "GetOrderByID")
		orders.AssertNotCalled(t, "MarkPaid")
	})

	t.Run("OrderNotFound", func(t *testing.T) {
		orders := new(MockOrderRepo)
		svc := NewService(new(MockGateway), "key", testSecret, orders)

		orders.On("GetOrderByID", mock.Anything, orderID).
			Return(nil, order.ErrOrderNotFound)

		_, err := svc.VerifyAndSettle(ctx, validParams())
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})

	t.Run("Success", func(t *testing.T) {
		orders := new(MockOrderRepo)
		svc := NewService(new(MockGateway), "key", testSecret, orders)

		paidAt := time.Now()
		settled := &order.Order{
			ID:     orderID,
			UserID: userID,
			Status: order.StatusApproved,
			IsPaid: true,
			PaidAt: &paidAt,
			PaymentResult: &order.PaymentResult{
				PaymentID:    paymentID,
				Status:       "completed",
				EmailAddress: "buyer@example.com",
			},
		}

		orders.On("GetOrderByID", mock.Anything, orderID).Return(pending, nil)
		orders.On("MarkPaid", mock.Anything, orderID,
			mock.MatchedBy(func(result order.PaymentResult) bool {
				return result.PaymentID == paymentID &&
					result.Status == "completed" &&
					result.EmailAddress == "buyer@example.com"
			}),
			mock.AnythingOfType("time.Time")).
			Return(settled, nil)

		got, err := svc.VerifyAndSettle(ctx, validParams())
		require.NoError(t, err)
		assert.True(t, got.IsPaid)
		assert.Equal(t, order.StatusApproved, got.Status)
		assert.NotNil(t, got.PaidAt)
		orders.AssertExpectations(t)
	})

	t.Run("AlreadyPaid_NoOp", func(t *testing.T) {
		orders := new(MockOrderRepo)
		svc := NewService(new(MockGateway), "key", testSecret, orders)

		paidAt := time.Now()
		alreadyPaid := &order.Order{
			ID:     orderID,
			UserID: userID,
			Status: order.StatusApproved,
			IsPaid: true,
			PaidAt: &paidAt,
		}

		orders.On("GetOrderByID", mock.Anything, orderID).Return(alreadyPaid, nil)

		got, err := svc.VerifyAndSettle(ctx, validParams())
		require.NoError(t, err)
		assert.Equal(t, alreadyPaid, got)
		orders.AssertNotCalled(t, "MarkPaid")
	})
}
