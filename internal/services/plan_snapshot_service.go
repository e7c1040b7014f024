package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "debtplanner/internal/errors"
	"debtplanner/internal/metrics"
	"debtplanner/internal/models"
	"debtplanner/internal/pagination"
)

// planSnapshotService records plan comparison history.
type planSnapshotService struct {
	db      *gorm.DB
	planner PlannerServicer
	metrics *metrics.Metrics
}

// NewPlanSnapshotService creates a new PlanSnapshotServicer.
func NewPlanSnapshotService(db *gorm.DB, planner PlannerServicer, m *metrics.Metrics) PlanSnapshotServicer {
	return &planSnapshotService{db: db, planner: planner, metrics: m}
}

// RecordSnapshot compares the user's current plan and stores the result.
func (s *planSnapshotService) RecordSnapshot(ctx context.Context, userID string, req PlanRequest) (*models.PlanSnapshot, error) {
	return s.record(ctx, userID, req, time.Now().UTC())
}

func (s *planSnapshotService) record(ctx context.Context, userID string, req PlanRequest, recordedAt time.Time) (*models.PlanSnapshot, error) {
	var totalBalance int64
	var debtCount int64
	active := s.db.Model(&models.Debt{}).Scopes(models.OwnedBy(userID), models.ActiveOnly)
	if err := active.Session(&gorm.Session{}).
		Select("COALESCE(SUM(balance), 0)").
		Scan(&totalBalance).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := active.Session(&gorm.Session{}).Count(&debtCount).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	// Users without active debts have no plan to record.
	if debtCount == 0 {
		return nil, apperrors.ErrNoDebts
	}

	// Snapshots never carry a schedule.
	req.IncludeSchedule = false
	c, err := s.planner.Compare(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	snapshot := &models.PlanSnapshot{
		UserID:              userID,
		RecordedAt:          recordedAt,
		Strategy:            string(c.Strategy),
		MonthlyBudget:       c.MonthlyBudget,
		TotalBalance:        totalBalance,
		DebtCount:           int(debtCount),
		BaselineMonths:      c.BaselineMonths,
		AcceleratedMonths:   c.AcceleratedMonths,
		BaselineInterest:    c.BaselineInterest,
		AcceleratedInterest: c.AcceleratedInterest,
		MonthsSaved:         c.MonthsSaved,
		InterestSaved:       c.InterestSaved,
		PayoffDate:          c.PayoffDate,
		Outcome:             string(c.AcceleratedOutcome),
	}
	if err := s.db.Create(snapshot).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.metrics.AddSnapshotsRecorded(1)
	return snapshot, nil
}

// ComputeAndRecordSnapshots records a snapshot for every user with active
// debts, using each user's saved plan settings. Users already recorded at
// recordedAt are skipped so a retried run does not duplicate rows.
func (s *planSnapshotService) ComputeAndRecordSnapshots(ctx context.Context, recordedAt time.Time) (int, error) {
	var userIDs []string
	if err := s.db.Model(&models.Debt{}).
		Scopes(models.ActiveOnly).
		Distinct("user_id").
		Pluck("user_id", &userIDs).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	count := 0
	for _, userID := range userIDs {
		if err := ctx.Err(); err != nil {
			return count, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		var existing int64
		if err := s.db.Model(&models.PlanSnapshot{}).
			Where("user_id = ? AND recorded_at = ?", userID, recordedAt).
			Count(&existing).Error; err != nil {
			return count, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if existing > 0 {
			continue
		}

		if _, err := s.record(ctx, userID, PlanRequest{}, recordedAt); err != nil {
			// Users whose debts changed mid-run are skipped.
			if errors.Is(err, apperrors.ErrUserNotFound) || errors.Is(err, apperrors.ErrNoDebts) {
				continue
			}
			return count, err
		}
		count++
	}

	return count, nil
}

// GetSnapshots returns paginated snapshots for a user within a date range.
func (s *planSnapshotService) GetSnapshots(
	userID string,
	from, to time.Time,
	page pagination.PageRequest,
) (*pagination.PageResponse[models.PlanSnapshot], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.PlanSnapshot{}).
		Where("user_id = ? AND recorded_at >= ? AND recorded_at <= ?", userID, from, to)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var snapshots []models.PlanSnapshot
	if err := base.Order("recorded_at DESC").Scopes(pagination.Paginate(page)).Find(&snapshots).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(snapshots, page.Page, page.PageSize, totalItems)
	return &result, nil
}
