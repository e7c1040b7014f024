package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "debtplanner/internal/errors"
	"debtplanner/internal/logger"
	"debtplanner/internal/metrics"
	"debtplanner/internal/services"
)

// PipelineHandler serves the scheduled jobs that run across all users.
type PipelineHandler struct {
	fundingService  services.FundingServicer
	snapshotService services.PlanSnapshotServicer
	metrics         *metrics.Metrics
	now             func() time.Time
}

// NewPipelineHandler creates a new PipelineHandler. m may be nil.
func NewPipelineHandler(fundingService services.FundingServicer, snapshotService services.PlanSnapshotServicer, m *metrics.Metrics) *PipelineHandler {
	return &PipelineHandler{
		fundingService:  fundingService,
		snapshotService: snapshotService,
		metrics:         m,
		now:             time.Now,
	}
}

// SettleFundingsRequest sets the settlement time. It defaults to now.
type SettleFundingsRequest struct {
	AsOf *time.Time `json:"as_of"`
}

// ComputeSnapshotsRequest represents the request payload for computing snapshots.
type ComputeSnapshotsRequest struct {
	RecordedAt time.Time `json:"recorded_at" binding:"required"`
}

// SettleFundings marks past-due one-time fundings as applied
// @Summary     Settle due fundings
// @Description Mark every unapplied funding dated before the settlement day as applied (pipeline endpoint)
// @Tags        pipeline
// @Accept      json
// @Produce     json
// @Param       X-API-Key header   string                 true  "Pipeline API key"
// @Param       request   body     SettleFundingsRequest  false "Settlement time"
// @Success     200       {object} map[string]int         "Fundings settled count"
// @Failure     400       {object} ErrorResponse          "Invalid input"
// @Failure     401       {object} ErrorResponse          "Invalid API key"
// @Failure     503       {object} ErrorResponse          "Pipeline not configured"
// @Router      /pipeline/fundings/settle [post]
func (h *PipelineHandler) SettleFundings(c *gin.Context) {
	var req SettleFundingsRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	asOf := h.now()
	if req.AsOf != nil {
		asOf = *req.AsOf
	}

	count, err := h.fundingService.SettleDueFundings(asOf.UTC())
	if err != nil {
		respondWithError(c, err)
		return
	}
	h.metrics.AddFundingsSettled(count)
	logger.Named("pipeline").Infow("fundings settled", "count", count, "as_of", asOf)

	c.JSON(http.StatusOK, gin.H{"fundings_settled": count})
}

// ComputeSnapshots handles computing and recording plan snapshots.
// @Summary     Compute plan snapshots
// @Description Compute and record a plan snapshot for every user with active debts (pipeline endpoint)
// @Tags        pipeline
// @Accept      json
// @Produce     json
// @Param       X-API-Key  header   string                   true "Pipeline API key"
// @Param       request    body     ComputeSnapshotsRequest  true "Snapshot parameters"
// @Success     200        {object} map[string]int           "Snapshots recorded count"
// @Failure     400        {object} ErrorResponse            "Invalid input"
// @Failure     401        {object} ErrorResponse            "Invalid API key"
// @Failure     503        {object} ErrorResponse            "Pipeline not configured"
// @Router      /pipeline/snapshots [post]
func (h *PipelineHandler) ComputeSnapshots(c *gin.Context) {
	var req ComputeSnapshotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	count, err := h.snapshotService.ComputeAndRecordSnapshots(c.Request.Context(), req.RecordedAt)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"snapshots_recorded": count})
}
