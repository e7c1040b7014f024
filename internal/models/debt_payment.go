package models

import "time"

// DebtPayment records money paid toward a debt. Amount is in cents.
type DebtPayment struct {
	Base
	UserID string    `gorm:"type:uuid;not null;index" json:"user_id"`
	DebtID string    `gorm:"type:uuid;not null;index" json:"debt_id"`
	Amount int64     `gorm:"type:bigint;not null" json:"amount"`
	PaidAt time.Time `gorm:"not null" json:"paid_at"`
	Note   string    `json:"note,omitempty"`
}
