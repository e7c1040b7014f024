package models

import "time"

// OneTimeFunding is a scheduled lump-sum payment toward the user's debts.
// Amount is in cents.
type OneTimeFunding struct {
	Base
	UserID      string     `gorm:"type:uuid;not null;index" json:"user_id"`
	Amount      int64      `gorm:"type:bigint;not null" json:"amount"`
	PaymentDate time.Time  `gorm:"not null;index" json:"payment_date"`
	IsApplied   bool       `gorm:"default:false;index" json:"is_applied"`
	AppliedAt   *time.Time `json:"applied_at,omitempty"`
	Currency    string     `gorm:"size:3;not null;default:'USD'" json:"currency"`
	Note        string     `json:"note,omitempty"`
}
