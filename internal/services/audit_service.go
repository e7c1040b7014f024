package services

import (
	"encoding/json"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"debtplanner/internal/logger"
	"debtplanner/internal/models"
	"debtplanner/internal/uuid"
)

// Audited actions.
const (
	AuditRegister           = "REGISTER"
	AuditUpdatePlanSettings = "UPDATE_PLAN_SETTINGS"
	AuditCreateDebt         = "CREATE_DEBT"
	AuditUpdateDebt         = "UPDATE_DEBT"
	AuditDeleteDebt         = "DELETE_DEBT"
	AuditRecordPayment      = "RECORD_PAYMENT"
	AuditCreateFunding      = "CREATE_FUNDING"
	AuditUpdateFunding      = "UPDATE_FUNDING"
	AuditDeleteFunding      = "DELETE_FUNDING"
	AuditRecordSnapshot     = "RECORD_PLAN_SNAPSHOT"
)

// Audited resource types.
const (
	ResourceUser         = "user"
	ResourceDebt         = "debt"
	ResourcePayment      = "debt_payment"
	ResourceFunding      = "one_time_funding"
	ResourcePlanSnapshot = "plan_snapshot"
)

// auditService writes the audit trail of changes to a user's plan inputs.
type auditService struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db, log: logger.Named("audit")}
}

// Log records an audit event. Failures are logged and never returned, so an
// audit problem cannot undo a debt, payment or funding change that already
// committed.
func (s *auditService) Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]any) {
	entry := &models.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
		Changes:      s.encodeChanges(action, changes),
	}
	// resource_id is a uuid column.
	if entry.ResourceID != "" && !uuid.IsValid(entry.ResourceID) {
		entry.ResourceID = ""
	}

	if err := s.db.Create(entry).Error; err != nil {
		s.log.Errorw("failed to create audit log entry",
			"error", err,
			"user_id", userID,
			"action", action,
			"resource_type", resourceType,
			"resource_id", entry.ResourceID,
		)
	}
}

func (s *auditService) encodeChanges(action string, changes map[string]any) string {
	if len(changes) == 0 {
		return ""
	}
	data, err := json.Marshal(changes)
	if err != nil {
		s.log.Errorw("failed to marshal audit log changes", "error", err, "action", action)
		return "{}"
	}
	return string(data)
}
