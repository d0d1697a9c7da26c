package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusApproved   OrderStatus = "approved"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusOnTheWay   OrderStatus = "on the way"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

var validStatuses = map[OrderStatus]bool{
	StatusPending:    true,
	StatusApproved:   true,
	StatusProcessing: true,
	StatusShipped:    true,
	StatusOnTheWay:   true,
	StatusDelivered:  true,
	StatusCancelled:  true,
}

func (s OrderStatus) IsValid() bool {
	return validStatuses[s]
}

type PaymentMethod string

const (
	MethodRazorpay PaymentMethod = "Razorpay"
	MethodCOD      PaymentMethod = "COD"
)

type ShippingAddress struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Phone      string `json:"phone"`
}

// PaymentResult records the gateway confirmation against an order.
type PaymentResult struct {
	PaymentID    string    `json:"id"`
	Status       string    `json:"status"`
	UpdateTime   time.Time `json:"update_time"`
	EmailAddress string    `json:"email_address"`
}

type OrderItem struct {
	ID        uuid.UUID       `json:"id"`
	OrderID   uuid.UUID       `json:"orderId"`
	ProductID uuid.UUID       `json:"productId"`
	Title     string          `json:"title"`
	Quantity  int             `json:"quantity"`
	// Price is the unit price captured at order time; later catalog
	// changes never touch it.
	Price decimal.Decimal `json:"price"`
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Order struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"userId"`
	Items           []OrderItem     `json:"items"`
	Total           decimal.Decimal `json:"total"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	Status          OrderStatus     `json:"status"`
	IsPaid          bool            `json:"isPaid"`
	PaidAt          *time.Time      `json:"paidAt,omitempty"`
	PaymentResult   *PaymentResult  `json:"paymentResult,omitempty"`
	ShippedAt       *time.Time      `json:"shippedAt,omitempty"`
	DeliveredAt     *time.Time      `json:"deliveredAt,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// OwnerRef is the minimal owner identity attached to admin listings.
type OwnerRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type OrderWithOwner struct {
	Order
	Owner OwnerRef `json:"user"`
}

// OrderLineInput is one requested line of a checkout.
type OrderLineInput struct {
	ProductID uuid.UUID
	Quantity  int
}
