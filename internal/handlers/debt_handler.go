package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "debtplanner/internal/errors"
	"debtplanner/internal/pagination"
	"debtplanner/internal/services"
)

// DebtHandler handles debt-related requests.
type DebtHandler struct {
	debtService    services.DebtServicer
	plannerService services.PlannerServicer
	auditService   services.AuditServicer
}

// NewDebtHandler creates a new DebtHandler.
func NewDebtHandler(debtService services.DebtServicer, plannerService services.PlannerServicer, auditService services.AuditServicer) *DebtHandler {
	return &DebtHandler{debtService: debtService, plannerService: plannerService, auditService: auditService}
}

// CreateDebtRequest represents the request payload for creating a debt.
// Money is in cents; rates are annual percentages.
type CreateDebtRequest struct {
	Name             string  `json:"name" binding:"required,min=1,max=100"`
	Description      string  `json:"description" binding:"max=500"`
	Balance          int64   `json:"balance" binding:"cents"`
	InterestRate     float64 `json:"interest_rate" binding:"gte=0,lte=100"`
	MinimumPayment   int64   `json:"minimum_payment" binding:"cents"`
	Currency         string  `json:"currency" binding:"omitempty,iso4217"`
	IsGoldLoan       bool    `json:"is_gold_loan"`
	FinalPayoffDate  *string `json:"final_payoff_date"`
	InterestIncluded bool    `json:"interest_included"`
	OriginalRate     float64 `json:"original_rate" binding:"gte=0,lte=100"`
}

// UpdateDebtRequest represents the request payload for updating a debt.
type UpdateDebtRequest struct {
	Name             *string  `json:"name" binding:"omitempty,min=1,max=100"`
	Description      *string  `json:"description" binding:"omitempty,max=500"`
	Balance          *int64   `json:"balance" binding:"omitempty,cents"`
	InterestRate     *float64 `json:"interest_rate" binding:"omitempty,gte=0,lte=100"`
	MinimumPayment   *int64   `json:"minimum_payment" binding:"omitempty,cents"`
	IsActive         *bool    `json:"is_active"`
	IsGoldLoan       *bool    `json:"is_gold_loan"`
	FinalPayoffDate  *string  `json:"final_payoff_date"`
	InterestIncluded *bool    `json:"interest_included"`
	OriginalRate     *float64 `json:"original_rate" binding:"omitempty,gte=0,lte=100"`
}

// CreateDebt handles the creation of a new debt
// @Summary     Create a debt
// @Description Create a new debt for the authenticated user. Gold loans may carry a final payoff date; interest-included debts carry the rate the balance was computed at.
// @Tags        debts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateDebtRequest true "Debt details"
// @Success     201 {object} models.Debt "Debt created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /debts [post]
func (h *DebtHandler) CreateDebt(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	finalPayoff, err := parseOptionalTime(req.FinalPayoffDate, "final_payoff_date")
	if err != nil {
		respondWithError(c, err)
		return
	}

	debt, err := h.debtService.CreateDebt(userID, services.DebtInput{
		Name:             req.Name,
		Description:      req.Description,
		Balance:          req.Balance,
		InterestRate:     req.InterestRate,
		MinimumPayment:   req.MinimumPayment,
		Currency:         req.Currency,
		IsGoldLoan:       req.IsGoldLoan,
		FinalPayoffDate:  finalPayoff,
		InterestIncluded: req.InterestIncluded,
		OriginalRate:     req.OriginalRate,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditCreateDebt, services.ResourceDebt, debt.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "balance": req.Balance, "is_gold_loan": req.IsGoldLoan})

	c.JSON(http.StatusCreated, gin.H{"debt": debt})
}

// GetUserDebts lists the authenticated user's debts
// @Summary     List debts
// @Description Get paginated debts for the authenticated user, oldest first
// @Tags        debts
// @Produce     json
// @Security    BearerAuth
// @Param       is_active query bool false "Filter by active flag"
// @Param       page      query int  false "Page number (default 1)"
// @Param       page_size query int  false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Debt] "Paginated debts"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /debts [get]
func (h *DebtHandler) GetUserDebts(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	isActive, err := parseOptionalBool(c, "is_active")
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.debtService.GetUserDebts(userID, page, isActive)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetDebtByID returns a single debt
// @Summary     Get a debt
// @Tags        debts
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Debt ID"
// @Success     200 {object} models.Debt "Debt"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Debt not found"
// @Router      /debts/{id} [get]
func (h *DebtHandler) GetDebtByID(c *gin.Context) {
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

	debt, err := h.debtService.GetDebtByID(userID, debtID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"debt": debt})
}

// UpdateDebt applies a partial update to a debt
// @Summary     Update a debt
// @Description Update any subset of a debt's fields. Turning off is_gold_loan clears the final payoff date; turning off interest_included clears the original rate.
// @Tags        debts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string            true "Debt ID"
// @Param       request body UpdateDebtRequest true "Fields to update"
// @Success     200 {object} models.Debt "Updated debt"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Debt not found"
// @Router      /debts/{id} [put]
func (h *DebtHandler) UpdateDebt(c *gin.Context) {
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

	var req UpdateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	finalPayoff, err := parseOptionalTime(req.FinalPayoffDate, "final_payoff_date")
	if err != nil {
		respondWithError(c, err)
		return
	}

	debt, err := h.debtService.UpdateDebt(userID, debtID, services.DebtUpdateFields{
		Name:             req.Name,
		Description:      req.Description,
		Balance:          req.Balance,
		InterestRate:     req.InterestRate,
		MinimumPayment:   req.MinimumPayment,
		IsActive:         req.IsActive,
		IsGoldLoan:       req.IsGoldLoan,
		FinalPayoffDate:  finalPayoff,
		InterestIncluded: req.InterestIncluded,
		OriginalRate:     req.OriginalRate,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditUpdateDebt, services.ResourceDebt, debt.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "balance": req.Balance, "is_active": req.IsActive})

	c.JSON(http.StatusOK, gin.H{"debt": debt})
}

// DeleteDebt soft-deletes a debt and its payments
// @Summary     Delete a debt
// @Tags        debts
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Debt ID"
// @Success     200 {object} map[string]string "Debt deleted"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Debt not found"
// @Router      /debts/{id} [delete]
func (h *DebtHandler) DeleteDebt(c *gin.Context) {
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

	if err := h.debtService.DeleteDebt(userID, debtID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditDeleteDebt, services.ResourceDebt, debtID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Debt deleted successfully"})
}

// GetDebtPayoff estimates the payoff of one debt at its minimum payment
// @Summary     Debt payoff estimate
// @Description Months to pay off the debt at its minimum payment, progress so far and projected payoff date. Gold loans with a final payoff date report the months left until that date.
// @Tags        debts
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Debt ID"
// @Success     200 {object} services.DebtPayoffSummary "Payoff estimate"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Debt not found"
// @Router      /debts/{id}/payoff [get]
func (h *DebtHandler) GetDebtPayoff(c *gin.Context) {
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

	summary, err := h.plannerService.GetDebtPayoff(userID, debtID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payoff": summary})
}
