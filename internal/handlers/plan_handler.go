package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "debtplanner/internal/errors"
	"debtplanner/internal/pagination"
	"debtplanner/internal/services"
)

// PlanHandler serves payoff plans and their history.
type PlanHandler struct {
	plannerService  services.PlannerServicer
	snapshotService services.PlanSnapshotServicer
	auditService    services.AuditServicer
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(plannerService services.PlannerServicer, snapshotService services.PlanSnapshotServicer, auditService services.AuditServicer) *PlanHandler {
	return &PlanHandler{plannerService: plannerService, snapshotService: snapshotService, auditService: auditService}
}

// PlanRequestBody selects the strategy and budget of a plan. Omitted fields
// use the saved plan settings. MonthlyBudget is in cents.
type PlanRequestBody struct {
	Strategy        string `json:"strategy" binding:"omitempty,payoff_strategy"`
	MonthlyBudget   *int64 `json:"monthly_budget" binding:"omitempty,cents"`
	IncludeSchedule bool   `json:"include_schedule"`
}

// bindPlanRequest reads an optional plan body. An empty body means saved
// settings.
func bindPlanRequest(c *gin.Context) (services.PlanRequest, error) {
	var body PlanRequestBody
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		return services.PlanRequest{}, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	return services.PlanRequest{
		Strategy:        body.Strategy,
		MonthlyBudget:   body.MonthlyBudget,
		IncludeSchedule: body.IncludeSchedule,
	}, nil
}

// GetStrategies lists the payoff strategies
// @Summary     List payoff strategies
// @Tags        plans
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} payoff.Strategy "Strategies"
// @Router      /plans/strategies [get]
func (h *PlanHandler) GetStrategies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"strategies": h.plannerService.Strategies()})
}

// Compare contrasts minimum payments with the accelerated plan
// @Summary     Compare payoff plans
// @Description Simulate paying only minimums and paying the monthly budget with the chosen strategy, including scheduled one-time fundings, and report months and interest saved
// @Tags        plans
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body PlanRequestBody false "Plan overrides"
// @Success     200 {object} services.PlanComparison "Comparison"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /plans/compare [post]
func (h *PlanHandler) Compare(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	req, err := bindPlanRequest(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	comparison, err := h.plannerService.Compare(c.Request.Context(), userID, req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comparison": comparison})
}

// Simulate runs the accelerated plan on its own
// @Summary     Simulate a payoff plan
// @Description Run the chosen strategy at the monthly budget and return per-debt payoff dates, redistributions and optionally the month-by-month schedule
// @Tags        plans
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body PlanRequestBody false "Plan overrides"
// @Success     200 {object} services.PlanSimulation "Simulation"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /plans/simulate [post]
func (h *PlanHandler) Simulate(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	req, err := bindPlanRequest(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	simulation, err := h.plannerService.Simulate(c.Request.Context(), userID, req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"simulation": simulation})
}

// RecordSnapshot stores the current comparison in the user's history
// @Summary     Record a plan snapshot
// @Tags        plans
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body PlanRequestBody false "Plan overrides"
// @Success     201 {object} models.PlanSnapshot "Snapshot recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     422 {object} ErrorResponse "No active debts"
// @Router      /plans/snapshots [post]
func (h *PlanHandler) RecordSnapshot(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	req, err := bindPlanRequest(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	snapshot, err := h.snapshotService.RecordSnapshot(c.Request.Context(), userID, req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditRecordSnapshot, services.ResourcePlanSnapshot, snapshot.ID, c.ClientIP(),
		map[string]interface{}{"strategy": snapshot.Strategy, "monthly_budget": snapshot.MonthlyBudget})

	c.JSON(http.StatusCreated, gin.H{"snapshot": snapshot})
}

// GetSnapshots lists recorded plan snapshots in a date range
// @Summary     Get plan snapshots
// @Description Get paginated plan snapshots for a date range, newest first
// @Tags        plans
// @Produce     json
// @Security    BearerAuth
// @Param       from_date query string true  "Start date (RFC3339 or YYYY-MM-DD)"
// @Param       to_date   query string true  "End date (RFC3339 or YYYY-MM-DD)"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.PlanSnapshot] "Paginated snapshots"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /plans/snapshots [get]
func (h *PlanHandler) GetSnapshots(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	fromStr := c.Query("from_date")
	if fromStr == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "from_date is required"))
		return
	}
	from, err := parseFlexibleTime(fromStr)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	toStr := c.Query("to_date")
	if toStr == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "to_date is required"))
		return
	}
	to, err := parseFlexibleTime(toStr)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	if to.Before(from) {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "to_date must not be before from_date"))
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.snapshotService.GetSnapshots(userID, from, to, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
