package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"paydash/internal/service"
)

// PaymentHandler handles HTTP requests for payments.
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// CreatePaymentRequest is the HTTP request body for recording a payment.
// Amount accepts a JSON number or a numeric string.
type CreatePaymentRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Receiver string          `json:"receiver"`
	Status   string          `json:"status"`
	Method   string          `json:"method"`
}

// CreatePayment handles POST /payments
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	payment, err := h.paymentService.CreatePayment(c.Request.Context(), service.CreatePaymentRequest{
		Amount:   req.Amount,
		Receiver: req.Receiver,
		Method:   req.Method,
		Status:   req.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, payment)
}

// ListPayments handles GET /payments
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	payments, err := h.paymentService.ListPayments(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, payments)
}

// GetPayment handles GET /payments/:id
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	payment, err := h.paymentService.GetPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, payment)
}

// Stats handles GET /payments/stats
func (h *PaymentHandler) Stats(c *gin.Context) {
	stats, err := h.paymentService.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, stats)
}
