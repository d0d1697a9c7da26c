package order

import (
	"context"
	"time"

	"groshop-be/internal/logger"
	"groshop-be/internal/metrics"
	"groshop-be/internal/product"
	"groshop-be/internal/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service interface {
	CreateOrder(ctx context.Context, userID uuid.UUID, lines []OrderLineInput, address ShippingAddress, method PaymentMethod) (*Order, error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (*Order, error)
	ListMyOrders(ctx context.Context, userID uuid.UUID) ([]Order, error)
	ListAllOrders(ctx context.Context) ([]OrderWithOwner, error)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status OrderStatus) (*Order, error)
}

type service struct {
	repo     Repository
	products product.Repository
}

func NewService(repo Repository, products product.Repository) Service {
	return &service{repo: repo, products: products}
}

// CreateOrder reserves inventory for every line and persists the order in
// "pending" status. Availability is validated across all lines before
// anything is written; the commit itself re-checks stock with conditional
// decrements inside one transaction, so a failing line never leaves
// earlier lines decremented.
func (s *service) CreateOrder(ctx context.Context, userID uuid.UUID, lines []OrderLineInput, address ShippingAddress, method PaymentMethod) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOrder"),
		zap.String("user_id", userID.String()),
		zap.Int("line_count", len(lines)),
	)

	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}

	// Read pass: validate availability and lock in current prices.
	items := make([]OrderItem, 0, len(lines))
	total := decimal.Zero

	for i, line := range lines {
		logLine := log.With(
			zap.Int("index", i),
			zap.String("product_id", line.ProductID.String()),
			zap.Int("quantity", line.Quantity),
		)

		if line.Quantity <= 0 {
			logLine.Warn("invalid quantity")
			return nil, ErrInvalidQuantity
		}

		p, err := s.products.FindByID(ctx, line.ProductID)
		if err != nil {
			logLine.Warn("failed to load product for checkout", zap.Error(err))
			return nil, err
		}

		if p.Stock < line.Quantity {
			logLine.Warn("insufficient stock", zap.Int("stock", p.Stock))
			return nil, ErrInsufficientStock
		}

		item := OrderItem{
			ID:        uuid.New(),
			ProductID: p.ID,
			Title:     p.Title,
			Quantity:  line.Quantity,
			Price:     p.Price,
		}
		total = total.Add(item.Subtotal())
		items = append(items, item)
	}

	o := &Order{
		ID:              uuid.New(),
		UserID:          userID,
		Items:           items,
		Total:           total,
		ShippingAddress: address,
		PaymentMethod:   method,
		Status:          StatusPending,
		CreatedAt:       time.Now(),
	}

	if err := s.repo.CreateOrder(ctx, o); err != nil {
		log.Error("failed to create order", zap.Error(err))
		return nil, err
	}

	metrics.OrdersCreated.Inc()
	log.Info("order created",
		zap.String("order_id", o.ID.String()),
		zap.String("total", total.String()),
	)

	return o, nil
}

// GetOrder returns the order if the caller owns it or is an admin.
func (s *service) GetOrder(ctx context.Context, orderID uuid.UUID) (*Order, error) {
	o, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	userID, _ := utils.GetUserIDFromContext(ctx)
	if o.UserID != userID && !utils.IsAdminFromContext(ctx) {
		return nil, ErrNotAuthorized
	}

	return o, nil
}

func (s *service) ListMyOrders(ctx context.Context, userID uuid.UUID) ([]Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) ListAllOrders(ctx context.Context) ([]OrderWithOwner, error) {
	return s.repo.ListAllWithOwner(ctx)
}

// UpdateOrderStatus sets any recognized status; transitions are not
// validated against the current state, this is an administrative
// override. Delivery and shipping timestamps are stamped here.
func (s *service) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status OrderStatus) (*Order, error) {
	log := logger.FromCtx(ctx)

	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	var shippedAt, deliveredAt *time.Time
	now := time.Now()
	switch status {
	case StatusShipped:
		shippedAt = &now
	case StatusDelivered:
		deliveredAt = &now
	}

	o, err := s.repo.UpdateStatus(ctx, orderID, status, shippedAt, deliveredAt)
	if err != nil {
		return nil, err
	}

	log.Info("order status updated",
		zap.String("order_id", orderID.String()),
		zap.String("status", string(status)),
	)
	return o, nil
}
