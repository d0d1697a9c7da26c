package product

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

type Repository interface {
	GetAll(ctx context.Context) ([]Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (Product, error)
	Create(ctx context.Context, p Product) (Product, error)
	Update(ctx context.Context, p Product) (Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetAll(ctx context.Context) ([]Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, description, image, category, price, stock, created_at
		FROM products ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Image, &p.Category, &p.Price, &p.Stock, &p.CreatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (Product, error) {
	var p Product
	err := r.db.QueryRowContext(ctx, `
		SELECT id, title, description, image, category, price, stock, created_at
		FROM products WHERE id = $1
	`, id).Scan(&p.ID, &p.Title, &p.Description, &p.Image, &p.Category, &p.Price, &p.Stock, &p.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *repository) Create(ctx context.Context, p Product) (Product, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO products (id, title, description, image, category, price, stock)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, uuid.New(), p.Title, p.Description, p.Image, p.Category, p.Price, p.Stock).
		Scan(&p.ID, &p.CreatedAt)
	return p, err
}

func (r *repository) Update(ctx context.Context, p Product) (Product, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET title = $2, description = $3, image = $4, category = $5, price = $6, stock = $7
		WHERE id = $1
	`, p.ID, p.Title, p.Description, p.Image, p.Category, p.Price, p.Stock)
	if err != nil {
		return Product{}, err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return Product{}, ErrProductNotFound
	}
	return p, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}
