package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "debtplanner/internal/errors"
	"debtplanner/internal/models"
	"debtplanner/internal/pagination"
	"debtplanner/internal/services"
)

// PaymentHandler handles payments made toward a debt.
type PaymentHandler struct {
	paymentService services.PaymentServicer
	auditService   services.AuditServicer
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService services.PaymentServicer, auditService services.AuditServicer) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, auditService: auditService}
}

// RecordPaymentRequest represents a payment toward a debt. Amount is in cents.
type RecordPaymentRequest struct {
	Amount int64   `json:"amount" binding:"required,gt=0,cents"`
	PaidAt *string `json:"paid_at"`
	Note   string  `json:"note" binding:"max=500"`
}

// PaymentListResponse is a page of payments plus the debt's total paid in
// cents.
type PaymentListResponse struct {
	pagination.PageResponse[models.DebtPayment]
	TotalPaid int64 `json:"total_paid"`
}

// RecordPayment records a payment and reduces the debt's balance
// @Summary     Record a payment
// @Description Record a payment toward a debt. The debt's balance is reduced by the amount; paid_at defaults to now.
// @Tags        payments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string               true "Debt ID"
// @Param       request body RecordPaymentRequest true "Payment details"
// @Success     201 {object} models.DebtPayment "Payment recorded"
// @Failure     400 {object} ErrorResponse "Invalid input or payment exceeds balance"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Debt not found"
// @Router      /debts/{id}/payments [post]
func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	debtID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	paidAt, err := parseOptionalTime(req.PaidAt, "paid_at")
	if err != nil {
		respondWithError(c, err)
		return
	}
	var at time.Time
	if paidAt != nil {
		at = *paidAt
	}

	payment, err := h.paymentService.RecordPayment(userID, debtID, req.Amount, at, req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditRecordPayment, services.ResourcePayment, payment.ID, c.ClientIP(),
		map[string]interface{}{"debt_id": debtID, "amount": req.Amount})

	c.JSON(http.StatusCreated, gin.H{"payment": payment})
}

// GetDebtPayments lists the payments made toward a debt
// @Summary     List payments
// @Description Get paginated payments for a debt, newest first, with the total paid so far
// @Tags        payments
// @Produce     json
// @Security    BearerAuth
// @Param       id        path  string true  "Debt ID"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} PaymentListResponse "Paginated payments"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Debt not found"
// @Router      /debts/{id}/payments [get]
func (h *PaymentHandler) GetDebtPayments(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	debtID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.paymentService.GetDebtPayments(userID, debtID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	totalPaid, err := h.paymentService.GetTotalPaid(userID, debtID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, PaymentListResponse{PageResponse: *result, TotalPaid: totalPaid})
}
