package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "debtplanner/internal/errors"
	"debtplanner/internal/models"
	"debtplanner/internal/pagination"
)

// debtService handles debt-related business logic.
type debtService struct {
	db *gorm.DB
}

// NewDebtService creates a new DebtServicer.
func NewDebtService(db *gorm.DB) DebtServicer {
	return &debtService{db: db}
}

// CreateDebt creates a new debt for a user.
func (s *debtService) CreateDebt(userID string, input DebtInput) (*models.Debt, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "debt name is required")
	}
	if err := validateDebtNumbers(input.Balance, input.InterestRate, input.MinimumPayment, input.OriginalRate); err != nil {
		return nil, err
	}
	if input.IsGoldLoan && input.FinalPayoffDate != nil && input.FinalPayoffDate.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "final payoff date is invalid")
	}

	currency := input.Currency
	if currency == "" {
		currency = "USD"
	}

	debt := &models.Debt{
		UserID:           userID,
		Name:             name,
		Description:      input.Description,
		Balance:          input.Balance,
		InterestRate:     input.InterestRate,
		MinimumPayment:   input.MinimumPayment,
		Currency:         currency,
		IsActive:         true,
		IsGoldLoan:       input.IsGoldLoan,
		FinalPayoffDate:  input.FinalPayoffDate,
		InterestIncluded: input.InterestIncluded,
		OriginalRate:     input.OriginalRate,
	}

	if err := s.db.Create(debt).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return debt, nil
}

// GetUserDebts retrieves a paginated list of debts for a user. A nil isActive
// lists active debts only.
func (s *debtService) GetUserDebts(userID string, page pagination.PageRequest, isActive *bool) (*pagination.PageResponse[models.Debt], error) {
	page.Defaults()

	active := true
	if isActive != nil {
		active = *isActive
	}

	var totalItems int64
	base := s.db.Model(&models.Debt{}).Where("user_id = ? AND is_active = ?", userID, active)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var debts []models.Debt
	if err := base.Order("created_at ASC, id ASC").Scopes(pagination.Paginate(page)).Find(&debts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(debts, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetDebtByID retrieves a debt by ID for a specific user.
func (s *debtService) GetDebtByID(userID, debtID string) (*models.Debt, error) {
	var debt models.Debt
	if err := s.db.Where("id = ? AND user_id = ?", debtID, userID).First(&debt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDebtNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &debt, nil
}

// UpdateDebt applies the non-nil fields to a debt.
func (s *debtService) UpdateDebt(userID, debtID string, fields DebtUpdateFields) (*models.Debt, error) {
	debt, err := s.GetDebtByID(userID, debtID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if fields.Name != nil {
		name := strings.TrimSpace(*fields.Name)
		if name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "debt name cannot be empty")
		}
		updates["name"] = name
	}
	if fields.Description != nil {
		updates["description"] = *fields.Description
	}
	if fields.Balance != nil {
		updates["balance"] = *fields.Balance
	}
	if fields.InterestRate != nil {
		updates["interest_rate"] = *fields.InterestRate
	}
	if fields.MinimumPayment != nil {
		updates["minimum_payment"] = *fields.MinimumPayment
	}
	if fields.IsActive != nil {
		updates["is_active"] = *fields.IsActive
	}

	// Kind-specific fields are resolved against the merged state so a loan
	// that stops being gold also loses its maturity date.
	gold := debt.IsGoldLoan
	if fields.IsGoldLoan != nil {
		gold = *fields.IsGoldLoan
		updates["is_gold_loan"] = gold
	}
	if !gold {
		updates["final_payoff_date"] = nil
	} else if fields.FinalPayoffDate != nil {
		updates["final_payoff_date"] = *fields.FinalPayoffDate
	}

	included := debt.InterestIncluded
	if fields.InterestIncluded != nil {
		included = *fields.InterestIncluded
		updates["metadata_interest_included"] = included
	}
	if !included {
		updates["metadata_original_rate"] = 0
	} else if fields.OriginalRate != nil {
		updates["metadata_original_rate"] = *fields.OriginalRate
	}

	if err := validateDebtNumbers(
		valueOr(fields.Balance, debt.Balance),
		valueOr(fields.InterestRate, debt.InterestRate),
		valueOr(fields.MinimumPayment, debt.MinimumPayment),
		valueOr(fields.OriginalRate, debt.OriginalRate),
	); err != nil {
		return nil, err
	}

	if err := s.db.Model(debt).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	// Reload to get fresh data
	if err := s.db.Where("id = ?", debt.ID).First(debt).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return debt, nil
}

// DeleteDebt soft-deletes a debt and its payments.
func (s *debtService) DeleteDebt(userID, debtID string) error {
	debt, err := s.GetDebtByID(userID, debtID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("debt_id = ? AND user_id = ?", debt.ID, userID).Delete(&models.DebtPayment{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(debt).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// GetActiveDebts returns every active debt of a user, oldest first. This is
// the snapshot handed to the planner.
func (s *debtService) GetActiveDebts(userID string) ([]models.Debt, error) {
	var debts []models.Debt
	if err := s.db.Scopes(models.OwnedBy(userID), models.ActiveOnly).
		Order("created_at ASC, id ASC").
		Find(&debts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return debts, nil
}

func validateDebtNumbers(balance int64, rate float64, minimum int64, originalRate float64) error {
	switch {
	case balance < 0:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "balance cannot be negative")
	case minimum < 0:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "minimum payment cannot be negative")
	case rate < 0 || rate > 100:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "interest rate must be between 0 and 100")
	case originalRate < 0 || originalRate > 100:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "original rate must be between 0 and 100")
	}
	return nil
}

func valueOr[T any](p *T, fallback T) T {
	if p != nil {
		return *p
	}
	return fallback
}
