package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stitchline/tailorflow-api/internal/application/service"
	"github.com/stitchline/tailorflow-api/internal/domain/enum"
	"github.com/stitchline/tailorflow-api/internal/presentation/http/dto/response"
)

// PaymentHandler handles payment-related HTTP requests
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// RecordPaymentRequest is the payment recording payload. Accepts JSON or
// form encoding.
type RecordPaymentRequest struct {
	OrderID       uuid.UUID `json:"order_id" form:"order_id" binding:"required"`
	Amount        float64   `json:"amount" form:"amount" binding:"required"`
	PaymentMethod string    `json:"payment_method" form:"payment_method" binding:"required"`
	TransactionID *string   `json:"transaction_id" form:"transaction_id"`
	Notes         *string   `json:"notes" form:"notes"`
}

// RecordPaymentResponse is the payment recording result
type RecordPaymentResponse struct {
	Success       bool      `json:"success"`
	PaymentID     uuid.UUID `json:"payment_id"`
	PaymentNumber string    `json:"payment_number"`
	Message       string    `json:"message"`
}

// Record handles recording a payment against an order
func (h *PaymentHandler) Record(c *gin.Context) {
	var req RecordPaymentRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	method, err := enum.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		response.BadRequest(c, "Unknown payment method")
		return
	}

	payment, err := h.paymentService.RecordPayment(c.Request.Context(), &service.RecordPaymentInput{
		OrderID:       req.OrderID,
		Amount:        req.Amount,
		Method:        method,
		TransactionID: req.TransactionID,
		Notes:         req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(201, RecordPaymentResponse{
		Success:       true,
		PaymentID:     payment.ID,
		PaymentNumber: payment.PaymentNumber,
		Message:       "Payment recorded successfully",
	})
}

// ListByOrder handles listing the payments recorded against an order
func (h *PaymentHandler) ListByOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	payments, err := h.paymentService.ListByOrder(c.Request.Context(), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payments retrieved successfully", payments)
}

// Delete handles administratively removing a payment
func (h *PaymentHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid payment ID")
		return
	}

	if err := h.paymentService.DeletePayment(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
