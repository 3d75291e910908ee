package services

import (
	"context"

	"github.com/Henry-Tercero-MH/Generador-Facturas/internal/jobs"
	"github.com/Henry-Tercero-MH/Generador-Facturas/internal/models"
	"github.com/Henry-Tercero-MH/Generador-Facturas/pkg/logger"
	"gorm.io/gorm"
)

// AuditEntry describes one recorded action
type AuditEntry struct {
	UserID    uint
	Action    string
	Entity    string
	EntityID  uint
	Details   string
	IPAddress string
	UserAgent string
}

// AuditQuery filters the audit listing
type AuditQuery struct {
	Entity   string
	EntityID uint
	Action   string
	Limit    int
	Offset   int
}

type AuditService struct {
	db     *gorm.DB
	worker *jobs.Worker
}

func NewAuditService(db *gorm.DB, worker *jobs.Worker) *AuditService {
	return &AuditService{db: db, worker: worker}
}

// Log records an audit entry synchronously
func (s *AuditService) Log(ctx context.Context, entry AuditEntry) error {
	logEntry := &models.AuditLog{
		UserID:    entry.UserID,
		Action:    entry.Action,
		Entity:    entry.Entity,
		EntityID:  entry.EntityID,
		Details:   entry.Details,
		IPAddress: entry.IPAddress,
		UserAgent: entry.UserAgent,
	}
	return s.db.WithContext(ctx).Create(logEntry).Error
}

// Record writes the entry on the background worker; failures are only logged
func (s *AuditService) Record(entry AuditEntry) {
	if s == nil || s.db == nil {
		return
	}
	if s.worker == nil {
		if err := s.Log(context.Background(), entry); err != nil {
			logger.Error("failed to write audit log", "action", entry.Action, "error", err)
		}
		return
	}
	s.worker.Enqueue("audit:"+entry.Action, func(ctx context.Context) error {
		return s.Log(ctx, entry)
	})
}

// List retrieves audit logs, newest first
func (s *AuditService) List(ctx context.Context, query AuditQuery) ([]models.AuditLog, int64, error) {
	var logs []models.AuditLog
	var total int64

	if query.Limit <= 0 || query.Limit > 100 {
		query.Limit = 50
	}
	if query.Offset < 0 {
		query.Offset = 0
	}

	db := s.db.WithContext(ctx).Model(&models.AuditLog{})
	if query.Entity != "" {
		db = db.Where("entity = ?", query.Entity)
	}
	if query.EntityID != 0 {
		db = db.Where("entity_id = ?", query.EntityID)
	}
	if query.Action != "" {
		db = db.Where("action = ?", query.Action)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	result := db.Preload("User").Order("created_at desc").Limit(query.Limit).Offset(query.Offset).Find(&logs)
	return logs, total, result.Error
}
