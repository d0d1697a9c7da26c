package admin

import (
	"context"

	"groshop-be/internal/logger"
	"groshop-be/internal/metrics"
	"groshop-be/internal/order"

	"go.uber.org/zap"
)

type DashboardStats struct {
	TotalOrders    int64                  `json:"totalOrders"`
	TotalProducts  int64                  `json:"totalProducts"`
	TotalUsers     int64                  `json:"totalUsers"`
	TotalRevenue   string                 `json:"totalRevenue"`
	RecentOrders   []order.OrderWithOwner `json:"recentOrders"`
	OrdersCreated  uint64                 `json:"ordersCreated"`
	PaymentsOK     uint64                 `json:"paymentsOk"`
	PaymentsFailed uint64                 `json:"paymentsFailed"`
	UptimeSeconds  int64                  `json:"uptimeSeconds"`
}

type Service interface {
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	log := logger.FromCtx(ctx)

	totalOrders, err := s.repo.CountOrders(ctx)
	if err != nil {
		return nil, err
	}

	totalProducts, err := s.repo.CountProducts(ctx)
	if err != nil {
		return nil, err
	}

	totalUsers, err := s.repo.CountCustomers(ctx)
	if err != nil {
		return nil, err
	}

	revenue, err := s.repo.TotalRevenue(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.repo.RecentOrders(ctx, 5)
	if err != nil {
		return nil, err
	}

	log.Debug("dashboard stats collected",
		zap.Int64("total_orders", totalOrders),
		zap.Int64("total_users", totalUsers),
	)

	return &DashboardStats{
		TotalOrders:    totalOrders,
		TotalProducts:  totalProducts,
		TotalUsers:     totalUsers,
		TotalRevenue:   revenue,
		RecentOrders:   recent,
		OrdersCreated:  metrics.OrdersCreated.Load(),
		PaymentsOK:     metrics.PaymentsOK.Load(),
		PaymentsFailed: metrics.PaymentsFailed.Load(),
		UptimeSeconds:  int64(metrics.Uptime().Seconds()),
	}, nil
}
