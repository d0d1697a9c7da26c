package product

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productRows(products ...Product) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "title", "description", "image", "category", "price", "stock", "created_at"})
	for _, p := range products {
		rows.AddRow(p.ID, p.Title, p.Description, p.Image, p.Category, p.Price.String(), p.Stock, p.CreatedAt)
	}
	return rows
}

func TestRepository_GetAll(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	category := "staples"
	mock.ExpectQuery(`SELECT .+ FROM products ORDER BY created_at DESC`).
		WillReturnRows(productRows(
			Product{ID: uuid.New(), Title: "Rice", Category: &category, Price: decimal.NewFromInt(349), Stock: 40, CreatedAt: time.Now()},
			Product{ID: uuid.New(), Title: "Milk", Price: decimal.RequireFromString("54.50"), Stock: 12, CreatedAt: time.Now()},
		))

	products, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Rice", products[0].Title)
	assert.True(t, products[1].Price.Equal(decimal.RequireFromString("54.50")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .+ FROM products WHERE id = \$1`).
			WithArgs(id).
			WillReturnRows(productRows(Product{ID: id, Title: "Rice", Price: decimal.NewFromInt(349), Stock: 40, CreatedAt: time.Now()}))

		p, err := repo.FindByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, id, p.ID)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .+ FROM products WHERE id = \$1`).
			WithArgs(id).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.FindByID(context.Background(), id)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	in := Product{Title: "Rice", Price: decimal.NewFromInt(349), Stock: 40}
	newID := uuid.New()

	mock.ExpectQuery(`INSERT INTO products`).
		WithArgs(sqlmock.AnyArg(), "Rice", nil, nil, nil, in.Price, 40).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(newID, time.Now()))

	created, err := repo.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, newID, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	id := uuid.New()
	in := Product{ID: id, Title: "Rice", Price: decimal.NewFromInt(299), Stock: 12}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE products`).
			WithArgs(id, "Rice", nil, nil, nil, in.Price, 12).
			WillReturnResult(sqlmock.NewResult(0, 1))

		updated, err := repo.Update(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, in, updated)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec(`UPDATE products`).
			WithArgs(id, "Rice", nil, nil, nil, in.Price, 12).
			WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := repo.Update(context.Background(), in)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM products WHERE id = \$1`).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), id))
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM products WHERE id = \$1`).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(context.Background(), id), ErrProductNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
