package models

import "time"

// User represents the user model in the database
type User struct {
	Base
	Email               string     `gorm:"uniqueIndex;not null" json:"email"`
	Password            string     `gorm:"not null" json:"-"`
	FirstName           string     `json:"first_name"`
	LastName            string     `json:"last_name"`
	IsActive            bool       `gorm:"default:true" json:"is_active"`
	RefreshTokenHash    string     `gorm:"size:64" json:"-"`
	FailedLoginAttempts int        `gorm:"default:0" json:"-"`
	LockedUntil         *time.Time `json:"-"`
	LastLoginAt         *time.Time `json:"last_login_at,omitempty"`

	// Plan settings used when a plan request leaves them out.
	PayoffStrategy string `gorm:"size:32;not null;default:'avalanche'" json:"payoff_strategy"`
	MonthlyBudget  int64  `gorm:"type:bigint;not null;default:0" json:"monthly_budget"`
	Currency       string `gorm:"size:3;not null;default:'USD'" json:"currency"`

	Debts []Debt `gorm:"foreignKey:UserID" json:"debts,omitempty"`
}
