package payment

import (
	"errors"
	"net/http"

	"groshop-be/internal/order"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

type createIntentRequest struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Receipt  string  `json:"receipt"`
}

type verifyRequest struct {
	PaymentID      string `json:"razorpay_payment_id"`
	GatewayOrderID string `json:"razorpay_order_id"`
	Signature      string `json:"razorpay_signature"`
	OrderID        string `json:"orderId"`
}

func (h *Handler) CreateIntent(c *gin.Context) {
	var req createIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payment data"})
		return
	}

	gwOrder, err := h.svc.CreatePaymentIntent(c.Request.Context(), req.Amount, req.Currency, req.Receipt)
	if err != nil {
		var gwErr *GatewayError
		switch {
		case errors.Is(err, ErrGatewayNotConfigured):
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Payment service not configured properly. Please contact support."})
		case errors.Is(err, ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Amount is required"})
		case errors.As(err, &gwErr):
			c.JSON(http.StatusBadGateway, gin.H{"message": gwErr.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gwOrder)
}

func (h *Handler) Verify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required payment information"})
		return
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required payment information"})
		return
	}

	o, err := h.svc.VerifyAndSettle(c.Request.Context(), VerifyParams{
		OrderID:        orderID,
		PaymentID:      req.PaymentID,
		GatewayOrderID: req.GatewayOrderID,
		Signature:      req.Signature,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required payment information"})
		case errors.Is(err, ErrSignatureMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Payment verification failed: Invalid signature"})
		case errors.Is(err, order.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Payment verification failed"})
		}
		return
	}

	c.JSON(http.StatusOK, o)
}
