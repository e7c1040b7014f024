package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "debtplanner/internal/errors"
	"debtplanner/internal/pagination"
	"debtplanner/internal/services"
)

// FundingHandler handles one-time funding requests.
type FundingHandler struct {
	fundingService services.FundingServicer
	auditService   services.AuditServicer
}

// NewFundingHandler creates a new FundingHandler.
func NewFundingHandler(fundingService services.FundingServicer, auditService services.AuditServicer) *FundingHandler {
	return &FundingHandler{fundingService: fundingService, auditService: auditService}
}

// CreateFundingRequest represents a scheduled lump-sum payment. Amount is in
// cents.
type CreateFundingRequest struct {
	Amount      int64  `json:"amount" binding:"required,gt=0,cents"`
	PaymentDate string `json:"payment_date" binding:"required"`
	Currency    string `json:"currency" binding:"omitempty,iso4217"`
	Note        string `json:"note" binding:"max=500"`
}

// UpdateFundingRequest represents the fields of a pending funding that may
// change.
type UpdateFundingRequest struct {
	Amount      *int64  `json:"amount" binding:"omitempty,gt=0,cents"`
	PaymentDate *string `json:"payment_date"`
	Note        *string `json:"note" binding:"omitempty,max=500"`
}

// CreateFunding schedules a one-time funding
// @Summary     Create a one-time funding
// @Description Schedule a lump sum that is added to the plan budget in the month of its payment date
// @Tags        fundings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateFundingRequest true "Funding details"
// @Success     201 {object} models.OneTimeFunding "Funding created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /fundings [post]
func (h *FundingHandler) CreateFunding(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateFundingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	paymentDate, err := parseFlexibleTime(req.PaymentDate)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "payment_date: "+err.Error()))
		return
	}

	funding, err := h.fundingService.CreateFunding(userID, req.Amount, paymentDate, req.Currency, req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditCreateFunding, services.ResourceFunding, funding.ID, c.ClientIP(),
		map[string]interface{}{"amount": req.Amount, "payment_date": req.PaymentDate})

	c.JSON(http.StatusCreated, gin.H{"funding": funding})
}

// GetUserFundings lists the user's one-time fundings
// @Summary     List one-time fundings
// @Description Get paginated fundings ordered by payment date
// @Tags        fundings
// @Produce     json
// @Security    BearerAuth
// @Param       is_applied query bool false "Filter by applied flag"
// @Param       page       query int  false "Page number (default 1)"
// @Param       page_size  query int  false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.OneTimeFunding] "Paginated fundings"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /fundings [get]
func (h *FundingHandler) GetUserFundings(c *gin.Context) {
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
	isApplied, err := parseOptionalBool(c, "is_applied")
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.fundingService.GetUserFundings(userID, page, isApplied)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetFundingByID returns one funding
// @Summary     Get a one-time funding
// @Tags        fundings
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Funding ID"
// @Success     200 {object} models.OneTimeFunding "Funding"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     404 {object} ErrorResponse "Funding not found"
// @Router      /fundings/{id} [get]
func (h *FundingHandler) GetFundingByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	fundingID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	funding, err := h.fundingService.GetFundingByID(userID, fundingID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"funding": funding})
}

// UpdateFunding changes a pending funding
// @Summary     Update a one-time funding
// @Description Applied fundings cannot be changed
// @Tags        fundings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string               true "Funding ID"
// @Param       request body UpdateFundingRequest true "Fields to update"
// @Success     200 {object} models.OneTimeFunding "Updated funding"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Funding not found"
// @Failure     409 {object} ErrorResponse "Funding already applied"
// @Router      /fundings/{id} [put]
func (h *FundingHandler) UpdateFunding(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	fundingID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateFundingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	paymentDate, err := parseOptionalTime(req.PaymentDate, "payment_date")
	if err != nil {
		respondWithError(c, err)
		return
	}

	funding, err := h.fundingService.UpdateFunding(userID, fundingID, services.FundingUpdateFields{
		Amount:      req.Amount,
		PaymentDate: paymentDate,
		Note:        req.Note,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditUpdateFunding, services.ResourceFunding, funding.ID, c.ClientIP(),
		map[string]interface{}{"amount": req.Amount, "payment_date": req.PaymentDate})

	c.JSON(http.StatusOK, gin.H{"funding": funding})
}

// DeleteFunding removes a pending funding
// @Summary     Delete a one-time funding
// @Tags        fundings
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Funding ID"
// @Success     200 {object} map[string]string "Funding deleted"
// @Failure     404 {object} ErrorResponse "Funding not found"
// @Failure     409 {object} ErrorResponse "Funding already applied"
// @Router      /fundings/{id} [delete]
func (h *FundingHandler) DeleteFunding(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	fundingID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.fundingService.DeleteFunding(userID, fundingID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditDeleteFunding, services.ResourceFunding, fundingID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Funding deleted successfully"})
}
