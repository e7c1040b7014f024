package models

import (
	"time"

	"debtplanner/internal/uuid"

	"gorm.io/gorm"
)

// Base holds the id and timestamps shared by user-editable records. Rows are
// soft deleted.
type Base struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// BeforeCreate assigns a time-ordered id unless one was set.
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	assignID(&b.ID)
	return nil
}

func assignID(id *string) {
	if *id == "" {
		*id = uuid.New()
	}
}

// OwnedBy scopes a query to rows belonging to userID.
func OwnedBy(userID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}

// ActiveOnly scopes a debt query to debts that take part in planning.
func ActiveOnly(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}
