package models

import (
	"time"

	"gorm.io/gorm"
)

// PlanSnapshot is a point-in-time record of a user's payoff comparison.
// Money columns are in cents. Snapshots are immutable: no Base embed, no soft
// deletes.
type PlanSnapshot struct {
	ID                  string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID              string    `gorm:"type:uuid;not null;index" json:"user_id"`
	RecordedAt          time.Time `gorm:"not null;index" json:"recorded_at"`
	Strategy            string    `gorm:"size:32;not null" json:"strategy"`
	MonthlyBudget       int64     `gorm:"type:bigint;not null" json:"monthly_budget"`
	TotalBalance        int64     `gorm:"type:bigint;not null" json:"total_balance"`
	DebtCount           int       `gorm:"not null" json:"debt_count"`
	BaselineMonths      int       `gorm:"not null" json:"baseline_months"`
	AcceleratedMonths   int       `gorm:"not null" json:"accelerated_months"`
	BaselineInterest    int64     `gorm:"type:bigint;not null" json:"baseline_interest"`
	AcceleratedInterest int64     `gorm:"type:bigint;not null" json:"accelerated_interest"`
	MonthsSaved         int       `gorm:"not null" json:"months_saved"`
	InterestSaved       int64     `gorm:"type:bigint;not null" json:"interest_saved"`
	PayoffDate          time.Time `gorm:"not null" json:"payoff_date"`
	Outcome             string    `gorm:"size:32;not null" json:"outcome"`
}

// BeforeCreate assigns a time-ordered id unless one was set.
func (p *PlanSnapshot) BeforeCreate(tx *gorm.DB) error {
	assignID(&p.ID)
	return nil
}
