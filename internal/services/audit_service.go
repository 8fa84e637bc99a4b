package services

import (
	"encoding/json"

	"gorm.io/gorm"

	"budgetlens/internal/logger"
	"budgetlens/internal/models"
)

// Audit actions.
const (
	AuditActionExportReport = "EXPORT_BUDGET_REPORT"
)

// auditService appends rows to audit_logs.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log appends one audit row. Failures are logged, never returned.
func (s *auditService) Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]any) {
	log := logger.Get().With(
		"user_id", userID,
		"action", action,
		"resource_type", resourceType,
		"resource_id", resourceID,
	)

	entry := &models.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
	}
	if len(changes) > 0 {
		data, err := json.Marshal(changes)
		if err != nil {
			log.Warnw("audit changes not serializable, storing empty object", "error", err)
			data = []byte("{}")
		}
		entry.Changes = string(data)
	}

	if err := s.db.Create(entry).Error; err != nil {
		log.Errorw("failed to create audit log entry", "error", err)
	}
}
