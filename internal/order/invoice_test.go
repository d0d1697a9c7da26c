package order

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderInvoice(t *testing.T) {
	now := time.Now()
	o := &Order{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Items: []OrderItem{
			{Title: "Basmati Rice", Quantity: 2, Price: decimal.RequireFromString("120.50")},
			{Title: "Milk 1L", Quantity: 3, Price: decimal.RequireFromString("55.00")},
		},
		Total: decimal.RequireFromString("406.00"),
		ShippingAddress: ShippingAddress{
			Address:    "12 Market Road",
			City:       "Mumbai",
			PostalCode: "400001",
			Phone:      "+919800000000",
		},
		PaymentMethod: MethodRazorpay,
		Status:        StatusApproved,
		IsPaid:        true,
		PaidAt:        &now,
		CreatedAt:     now,
	}

	pdf, err := RenderInvoice(o, "Asha Kumar", "asha@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestRenderInvoice_UnpaidWithoutTitles(t *testing.T) {
	o := &Order{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Items: []OrderItem{
			{Quantity: 1, Price: decimal.RequireFromString("600.00")},
		},
		Total:         decimal.RequireFromString("600.00"),
		PaymentMethod: MethodCOD,
		Status:        StatusPending,
		CreatedAt:     time.Now(),
	}

	pdf, err := RenderInvoice(o, "Asha Kumar", "asha@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
}
