// internal/services/audit_service.go
package services

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/superettejemai/backoffice/internal/models"
	"github.com/superettejemai/backoffice/internal/utils"
)

// AuditService is a pure side-effect sink. Record is fired after the
// business transaction has committed and never blocks or fails it: a write
// error is logged and swallowed.
type AuditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

func (s *AuditService) Record(actor models.Actor, action, detail string) {
	go func() {
		if err := s.RecordSync(actor, action, detail); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"actor_id": actor.ID,
				"action":   action,
			}).Error("Failed to write audit log entry")
		}
	}()
}

// RecordSync writes the entry on the caller's goroutine. Used by Record and
// by tests that need a deterministic write.
func (s *AuditService) RecordSync(actor models.Actor, action, detail string) error {
	entry := &models.AuditLog{
		ActorID:   actor.ID,
		ActorRole: actor.Role,
		Action:    action,
		Detail:    detail,
	}
	if err := s.db.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	return nil
}

type AuditQueryParams struct {
	utils.PaginationParams
	ActorID *uint
	Action  string
}

func (s *AuditService) List(params AuditQueryParams) ([]models.AuditLog, int64, error) {
	query := s.db.Model(&models.AuditLog{})

	if params.ActorID != nil {
		query = query.Where("actor_id = ?", *params.ActorID)
	}
	if params.Action != "" {
		query = query.Where("action = ?", params.Action)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count audit logs: %w", err)
	}

	allowedSortFields := []string{"created_at", "action", "actor_id"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var entries []models.AuditLog
	if err := query.Find(&entries).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch audit logs: %w", err)
	}

	return entries, total, nil
}
