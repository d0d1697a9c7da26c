package admin

import (
	"context"
	"database/sql"

	"groshop-be/internal/logger"
	"groshop-be/internal/order"

	"go.uber.org/zap"
)

type Repository interface {
	CountOrders(ctx context.Context) (int64, error)
	CountProducts(ctx context.Context) (int64, error)
	CountCustomers(ctx context.Context) (int64, error)
	TotalRevenue(ctx context.Context) (string, error)
	RecentOrders(ctx context.Context, limit int) ([]order.OrderWithOwner, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CountOrders(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&n)
	return n, err
}

func (r *repository) CountProducts(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n)
	return n, err
}

func (r *repository) CountCustomers(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE is_admin = FALSE`).Scan(&n)
	return n, err
}

// TotalRevenue sums paid orders that progressed past pending.
func (r *repository) TotalRevenue(ctx context.Context) (string, error) {
	var total string
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(total), 0)
		FROM orders
		WHERE is_paid = TRUE
		  AND status IN ('approved', 'processing', 'shipped', 'on the way', 'delivered')
	`).Scan(&total)
	return total, err
}

func (r *repository) RecentOrders(ctx context.Context, limit int) ([]order.OrderWithOwner, error) {
	log := logger.FromCtx(ctx)

	rows, err := r.db.QueryContext(ctx, `
		SELECT o.id, o.user_id, o.total, o.status, o.is_paid, o.created_at, u.name
		FROM orders o
		JOIN users u ON u.id = o.user_id
		ORDER BY o.created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		log.Error("failed to query recent orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []order.OrderWithOwner
	for rows.Next() {
		var o order.OrderWithOwner
		if err := rows.Scan(&o.ID, &o.UserID, &o.Total, &o.Status, &o.IsPaid, &o.CreatedAt, &o.Owner.Name); err != nil {
			return nil, err
		}
		o.Owner.ID = o.UserID
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
