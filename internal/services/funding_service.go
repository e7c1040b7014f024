package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "debtplanner/internal/errors"
	"debtplanner/internal/models"
	"debtplanner/internal/pagination"
)

// fundingService manages one-time fundings.
type fundingService struct {
	db *gorm.DB
}

// NewFundingService creates a new FundingServicer.
func NewFundingService(db *gorm.DB) FundingServicer {
	return &fundingService{db: db}
}

// CreateFunding schedules a lump-sum payment.
func (s *fundingService) CreateFunding(userID string, amount int64, paymentDate time.Time, currency, note string) (*models.OneTimeFunding, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "funding amount must be positive")
	}
	if paymentDate.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "payment date is required")
	}
	if currency == "" {
		currency = "USD"
	}

	funding := &models.OneTimeFunding{
		UserID:      userID,
		Amount:      amount,
		PaymentDate: paymentDate,
		Currency:    currency,
		Note:        note,
	}
	if err := s.db.Create(funding).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return funding, nil
}

// GetUserFundings lists fundings by payment date, optionally filtered by
// applied state.
func (s *fundingService) GetUserFundings(userID string, page pagination.PageRequest, isApplied *bool) (*pagination.PageResponse[models.OneTimeFunding], error) {
	page.Defaults()

	base := s.db.Model(&models.OneTimeFunding{}).Scopes(models.OwnedBy(userID))
	if isApplied != nil {
		base = base.Where("is_applied = ?", *isApplied)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var fundings []models.OneTimeFunding
	if err := base.Order("payment_date ASC").Scopes(pagination.Paginate(page)).Find(&fundings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(fundings, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetFundingByID retrieves a funding by ID for a specific user.
func (s *fundingService) GetFundingByID(userID, fundingID string) (*models.OneTimeFunding, error) {
	var funding models.OneTimeFunding
	if err := s.db.Where("id = ? AND user_id = ?", fundingID, userID).First(&funding).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFundingNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &funding, nil
}

// UpdateFunding changes a funding that has not been applied yet.
func (s *fundingService) UpdateFunding(userID, fundingID string, fields FundingUpdateFields) (*models.OneTimeFunding, error) {
	funding, err := s.GetFundingByID(userID, fundingID)
	if err != nil {
		return nil, err
	}
	if funding.IsApplied {
		return nil, apperrors.ErrFundingApplied
	}

	updates := make(map[string]interface{})
	if fields.Amount != nil {
		if *fields.Amount <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "funding amount must be positive")
		}
		updates["amount"] = *fields.Amount
	}
	if fields.PaymentDate != nil {
		if fields.PaymentDate.IsZero() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "payment date is invalid")
		}
		updates["payment_date"] = *fields.PaymentDate
	}
	if fields.Note != nil {
		updates["note"] = *fields.Note
	}

	if len(updates) > 0 {
		if err := s.db.Model(funding).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := s.db.Where("id = ?", funding.ID).First(funding).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return funding, nil
}

// DeleteFunding removes a funding that has not been applied yet.
func (s *fundingService) DeleteFunding(userID, fundingID string) error {
	funding, err := s.GetFundingByID(userID, fundingID)
	if err != nil {
		return err
	}
	if funding.IsApplied {
		return apperrors.ErrFundingApplied
	}
	if err := s.db.Delete(funding).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetPendingFundings returns the unapplied fundings dated on or after now's
// calendar day, ordered by date.
func (s *fundingService) GetPendingFundings(userID string, now time.Time) ([]models.OneTimeFunding, error) {
	var fundings []models.OneTimeFunding
	if err := s.db.Where("user_id = ? AND is_applied = ? AND payment_date >= ?", userID, false, startOfDay(now)).
		Order("payment_date ASC").
		Find(&fundings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return fundings, nil
}

// SettleDueFundings marks every unapplied funding dated before now's calendar
// day as applied and returns how many were settled.
func (s *fundingService) SettleDueFundings(now time.Time) (int, error) {
	result := s.db.Model(&models.OneTimeFunding{}).
		Where("is_applied = ? AND payment_date < ?", false, startOfDay(now)).
		Updates(map[string]interface{}{
			"is_applied": true,
			"applied_at": now,
		})
	if result.Error != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	return int(result.RowsAffected), nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
