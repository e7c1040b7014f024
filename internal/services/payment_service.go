package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "debtplanner/internal/errors"
	"debtplanner/internal/models"
	"debtplanner/internal/pagination"
)

// paymentService records payments against debts.
type paymentService struct {
	db *gorm.DB
}

// NewPaymentService creates a new PaymentServicer.
func NewPaymentService(db *gorm.DB) PaymentServicer {
	return &paymentService{db: db}
}

// RecordPayment stores a payment and reduces the debt balance in one
// transaction. A zero paidAt means now.
func (s *paymentService) RecordPayment(userID, debtID string, amount int64, paidAt time.Time, note string) (*models.DebtPayment, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "payment amount must be positive")
	}
	if paidAt.IsZero() {
		paidAt = time.Now()
	}

	payment := &models.DebtPayment{
		UserID: userID,
		DebtID: debtID,
		Amount: amount,
		PaidAt: paidAt,
		Note:   note,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var debt models.Debt
		if err := tx.Where("id = ? AND user_id = ? AND is_active = ?", debtID, userID, true).First(&debt).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrDebtNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if amount > debt.Balance {
			return apperrors.ErrPaymentExceedsBalance
		}

		// The balance guard holds against payments committed since the read.
		res := tx.Model(&models.Debt{}).
			Where("id = ? AND balance >= ?", debt.ID, amount).
			Update("balance", gorm.Expr("balance - ?", amount))
		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrPaymentExceedsBalance
		}

		if err := tx.Create(payment).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return payment, nil
}

// GetDebtPayments lists a debt's payments, newest first.
func (s *paymentService) GetDebtPayments(userID, debtID string, page pagination.PageRequest) (*pagination.PageResponse[models.DebtPayment], error) {
	page.Defaults()

	if err := s.ensureDebt(userID, debtID); err != nil {
		return nil, err
	}

	var totalItems int64
	base := s.db.Model(&models.DebtPayment{}).Where("user_id = ? AND debt_id = ?", userID, debtID)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var payments []models.DebtPayment
	if err := base.Order("paid_at DESC").Scopes(pagination.Paginate(page)).Find(&payments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(payments, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetTotalPaid sums every payment recorded against a debt.
func (s *paymentService) GetTotalPaid(userID, debtID string) (int64, error) {
	if err := s.ensureDebt(userID, debtID); err != nil {
		return 0, err
	}

	var total int64
	if err := s.db.Model(&models.DebtPayment{}).
		Where("user_id = ? AND debt_id = ?", userID, debtID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total, nil
}

func (s *paymentService) ensureDebt(userID, debtID string) error {
	var count int64
	if err := s.db.Model(&models.Debt{}).Where("id = ? AND user_id = ?", debtID, userID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrDebtNotFound
	}
	return nil
}
