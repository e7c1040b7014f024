package models

import (
	"time"

	"gorm.io/gorm"
)

// Debt is a liability owned by a user. Money columns are in cents; rates are
// annual percentages.
type Debt struct {
	Base
	UserID         string  `gorm:"type:uuid;not null;index" json:"user_id"`
	Name           string  `gorm:"not null" json:"name"`
	Description    string  `json:"description"`
	Balance        int64   `gorm:"type:bigint;not null;default:0" json:"balance"`
	InterestRate   float64 `gorm:"not null;default:0" json:"interest_rate"`
	MinimumPayment int64   `gorm:"type:bigint;not null;default:0" json:"minimum_payment"`
	Currency       string  `gorm:"size:3;not null;default:'USD'" json:"currency"`
	IsActive       bool    `gorm:"default:true" json:"is_active"`

	// Gold loans with a final payoff date are paid off on schedule.
	IsGoldLoan      bool       `gorm:"default:false" json:"is_gold_loan"`
	FinalPayoffDate *time.Time `json:"final_payoff_date,omitempty"`

	// Balance already includes precomputed interest at OriginalRate.
	InterestIncluded bool    `gorm:"column:metadata_interest_included;default:false" json:"interest_included"`
	OriginalRate     float64 `gorm:"column:metadata_original_rate;default:0" json:"original_rate,omitempty"`

	Payments []DebtPayment `gorm:"foreignKey:DebtID" json:"payments,omitempty"`
}

// BeforeCreate assigns the id and clears fields that do not apply to the
// debt's kind.
func (d *Debt) BeforeCreate(tx *gorm.DB) error {
	if err := d.Base.BeforeCreate(tx); err != nil {
		return err
	}
	d.normalize()
	return nil
}

// BeforeSave keeps kind-specific fields consistent on updates.
func (d *Debt) BeforeSave(tx *gorm.DB) error {
	d.normalize()
	return nil
}

func (d *Debt) normalize() {
	if !d.IsGoldLoan {
		d.FinalPayoffDate = nil
	}
	if !d.InterestIncluded {
		d.OriginalRate = 0
	}
}
