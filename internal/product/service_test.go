package product

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetAll(ctx context.Context) ([]Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Product), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id uuid.UUID) (Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Product), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, p Product) (Product, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(Product), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, p Product) (Product, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(Product), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		in := Product{Title: "Basmati Rice 5kg", Price: decimal.RequireFromString("349.50"), Stock: 40}
		out := in
		out.ID = uuid.New()

		repo.On("Create", mock.Anything, in).Return(out, nil)

		created, err := svc.Create(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, out.ID, created.ID)
		repo.AssertExpectations(t)
	})

	t.Run("NegativePrice", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.Create(ctx, Product{Title: "Bad", Price: decimal.NewFromInt(-1)})
		assert.ErrorIs(t, err, ErrInvalidPrice)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("NegativeStock", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.Create(ctx, Product{Title: "Bad", Price: decimal.NewFromInt(10), Stock: -3})
		assert.ErrorIs(t, err, ErrInvalidStock)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("ZeroPriceAllowed", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		in := Product{Title: "Free Sample", Price: decimal.Zero, Stock: 5}
		repo.On("Create", mock.Anything, in).Return(in, nil)

		_, err := svc.Create(ctx, in)
		assert.NoError(t, err)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		in := Product{ID: id, Title: "Basmati Rice 5kg", Price: decimal.NewFromInt(299), Stock: 12}
		repo.On("Update", mock.Anything, in).Return(in, nil)

		updated, err := svc.Update(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, in, updated)
	})

	t.Run("Validation", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.Update(ctx, Product{ID: id, Price: decimal.NewFromInt(-5)})
		assert.ErrorIs(t, err, ErrInvalidPrice)
		repo.AssertNotCalled(t, "Update")
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		in := Product{ID: id, Title: "Gone", Price: decimal.NewFromInt(5)}
		repo.On("Update", mock.Anything, in).Return(Product{}, ErrProductNotFound)

		_, err := svc.Update(ctx, in)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestService_Reads(t *testing.T) {
	ctx := context.Background()

	t.Run("GetAll", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetAll", mock.Anything).Return([]Product{
			{ID: uuid.New(), Title: "Milk 1L"},
			{ID: uuid.New(), Title: "Bread"},
		}, nil)

		all, err := svc.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		id := uuid.New()
		repo.On("FindByID", mock.Anything, id).Return(Product{}, ErrProductNotFound)

		_, err := svc.GetByID(ctx, id)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("GetAll_Error", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetAll", mock.Anything).Return(nil, errors.New("db down"))

		_, err := svc.GetAll(ctx)
		assert.EqualError(t, err, "db down")
	})
}

func TestService_Delete(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	id := uuid.New()
	repo.On("Delete", mock.Anything, id).Return(nil)

	assert.NoError(t, svc.Delete(context.Background(), id))
	repo.AssertExpectations(t)
}
