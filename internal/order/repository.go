package order

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"groshop-be/internal/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	CreateOrder(ctx context.Context, o *Order) error
	GetOrderByID(ctx context.Context, orderID uuid.UUID) (*Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Order, error)
	ListAllWithOwner(ctx context.Context) ([]OrderWithOwner, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status OrderStatus, shippedAt, deliveredAt *time.Time) (*Order, error)
	MarkPaid(ctx context.Context, orderID uuid.UUID, result PaymentResult, paidAt time.Time) (*Order, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// CreateOrder persists the order, its items and the matching inventory
// decrements in a single transaction. Each decrement is conditional on
// remaining stock, so a concurrent checkout that drained a product
// aborts the whole order instead of overselling.
func (r *repository) CreateOrder(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrder"),
		zap.String("order_id", o.ID.String()),
		zap.Int("item_count", len(o.Items)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (
			id, user_id, total, status,
			address, city, postal_code, phone,
			payment_method, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		o.ID,
		o.UserID,
		o.Total,
		o.Status,
		o.ShippingAddress.Address,
		o.ShippingAddress.City,
		o.ShippingAddress.PostalCode,
		o.ShippingAddress.Phone,
		o.PaymentMethod,
		o.CreatedAt,
	)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return err
	}

	for i, item := range o.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (
				id, order_id, product_id, title, quantity, price
			) VALUES ($1,$2,$3,$4,$5,$6)
		`,
			item.ID,
			o.ID,
			item.ProductID,
			item.Title,
			item.Quantity,
			item.Price,
		)
		if err != nil {
			log.Error("failed to insert order item",
				zap.Int("item_index", i),
				zap.String("product_id", item.ProductID.String()),
				zap.Error(err),
			)
			return err
		}

		res, err := tx.ExecContext(ctx, `
			UPDATE products
			SET stock = stock - $1
			WHERE id = $2 AND stock >= $1
		`, item.Quantity, item.ProductID)
		if err != nil {
			log.Error("failed to decrement stock",
				zap.String("product_id", item.ProductID.String()),
				zap.Error(err),
			)
			return err
		}

		affected, _ := res.RowsAffected()
		if affected == 0 {
			log.Warn("stock ran out during checkout",
				zap.String("product_id", item.ProductID.String()),
				zap.Int("quantity", item.Quantity),
			)
			return ErrInsufficientStock
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit order transaction", zap.Error(err))
		return err
	}

	committed = true
	log.Info("order transaction committed")
	return nil
}

const orderColumns = `
	id, user_id, total, status,
	address, city, postal_code, phone,
	payment_method, is_paid, paid_at,
	payment_id, payment_status, payment_update_time, payment_email,
	shipped_at, delivered_at, created_at
`

func scanOrder(row interface{ Scan(...any) error }) (*Order, error) {
	var o Order
	var method sql.NullString
	var payID, payStatus, payEmail sql.NullString
	var payUpdate sql.NullTime

	err := row.Scan(
		&o.ID, &o.UserID, &o.Total, &o.Status,
		&o.ShippingAddress.Address, &o.ShippingAddress.City,
		&o.ShippingAddress.PostalCode, &o.ShippingAddress.Phone,
		&method, &o.IsPaid, &o.PaidAt,
		&payID, &payStatus, &payUpdate, &payEmail,
		&o.ShippedAt, &o.DeliveredAt, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	o.PaymentMethod = PaymentMethod(method.String)
	if payID.Valid {
		o.PaymentResult = &PaymentResult{
			PaymentID:    payID.String,
			Status:       payStatus.String,
			UpdateTime:   payUpdate.Time,
			EmailAddress: payEmail.String,
		}
	}
	return &o, nil
}

func (r *repository) GetOrderByID(ctx context.Context, orderID uuid.UUID) (*Order, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, orderID)

	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := r.loadItems(ctx, []uuid.UUID{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return o, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []Order
	var ids []uuid.UUID
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}
	return orders, nil
}

func (r *repository) ListAllWithOwner(ctx context.Context) ([]OrderWithOwner, error) {
	log := logger.FromCtx(ctx).With(zap.String("method", "ListAllWithOwner"))

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			o.id, o.user_id, o.total, o.status,
			o.address, o.city, o.postal_code, o.phone,
			o.payment_method, o.is_paid, o.paid_at,
			o.payment_id, o.payment_status, o.payment_update_time, o.payment_email,
			o.shipped_at, o.delivered_at, o.created_at,
			u.name
		FROM orders o
		JOIN users u ON u.id = o.user_id
		ORDER BY o.created_at DESC
	`)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var result []OrderWithOwner
	var ids []uuid.UUID
	for rows.Next() {
		var o Order
		var ownerName string
		var method sql.NullString
		var payID, payStatus, payEmail sql.NullString
		var payUpdate sql.NullTime

		err := rows.Scan(
			&o.ID, &o.UserID, &o.Total, &o.Status,
			&o.ShippingAddress.Address, &o.ShippingAddress.City,
			&o.ShippingAddress.PostalCode, &o.ShippingAddress.Phone,
			&method, &o.IsPaid, &o.PaidAt,
			&payID, &payStatus, &payUpdate, &payEmail,
			&o.ShippedAt, &o.DeliveredAt, &o.CreatedAt,
			&ownerName,
		)
		if err != nil {
			log.Error("failed to scan order row", zap.Error(err))
			return nil, err
		}

		o.PaymentMethod = PaymentMethod(method.String)
		if payID.Valid {
			o.PaymentResult = &PaymentResult{
				PaymentID:    payID.String,
				Status:       payStatus.String,
				UpdateTime:   payUpdate.Time,
				EmailAddress: payEmail.String,
			}
		}

		result = append(result, OrderWithOwner{
			Order: o,
			Owner: OwnerRef{ID: o.UserID, Name: ownerName},
		})
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range result {
		result[i].Items = items[result[i].ID]
	}

	log.Info("list all orders success", zap.Int("count", len(result)))
	return result, nil
}

func (r *repository) loadItems(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]OrderItem, error) {
	items := make(map[uuid.UUID][]OrderItem)
	if len(orderIDs) == 0 {
		return items, nil
	}

	ids := make([]string, len(orderIDs))
	for i, id := range orderIDs {
		ids[i] = id.String()
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, title, quantity, price
		FROM order_items
		WHERE order_id = ANY($1)
	`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Title, &item.Quantity, &item.Price); err != nil {
			return nil, err
		}
		items[item.OrderID] = append(items[item.OrderID], item)
	}
	return items, rows.Err()
}

func (r *repository) UpdateStatus(ctx context.Context, orderID uuid.UUID, status OrderStatus, shippedAt, deliveredAt *time.Time) (*Order, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $2,
		    shipped_at = COALESCE($3, shipped_at),
		    delivered_at = COALESCE($4, delivered_at)
		WHERE id = $1
	`, orderID, status, shippedAt, deliveredAt)
	if err != nil {
		return nil, err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return nil, ErrOrderNotFound
	}

	return r.GetOrderByID(ctx, orderID)
}

func (r *repository) MarkPaid(ctx context.Context, orderID uuid.UUID, result PaymentResult, paidAt time.Time) (*Order, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET is_paid = TRUE,
		    paid_at = $2,
		    payment_method = $3,
		    payment_id = $4,
		    payment_status = $5,
		    payment_update_time = $6,
		    payment_email = $7,
		    status = $8
		WHERE id = $1
	`, orderID, paidAt, MethodRazorpay,
		result.PaymentID, result.Status, result.UpdateTime, result.EmailAddress,
		StatusApproved)
	if err != nil {
		return nil, err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return nil, ErrOrderNotFound
	}

	return r.GetOrderByID(ctx, orderID)
}
