package services

import (
	"github.com/Henry-Tercero-MH/Generador-Facturas/internal/cache"
	"github.com/Henry-Tercero-MH/Generador-Facturas/internal/config"
	"github.com/Henry-Tercero-MH/Generador-Facturas/internal/jobs"
	"github.com/Henry-Tercero-MH/Generador-Facturas/internal/repository"
	"github.com/Henry-Tercero-MH/Generador-Facturas/internal/storage"
	"gorm.io/gorm"
)

// Services holds all service instances
type Services struct {
	Auth    *AuthService
	Amount  *AmountService
	Receipt *ReceiptService
	Audit   *AuditService
	Export  *ExportService
	Share   *ShareService
	Email   *EmailService
	Job     *JobService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, worker *jobs.Worker, store *storage.LocalStorage, docCache cache.Cache, cfg *config.Config, db *gorm.DB) (*Services, error) {
	amountSvc, err := NewAmountService(cfg)
	if err != nil {
		return nil, err
	}

	auditSvc := NewAuditService(db, worker)
	imageSvc := NewImageService(cfg.LogoPath)
	exportSvc := NewExportService(amountSvc, imageSvc, docCache, store, cfg)

	return &Services{
		Auth:    NewAuthService(repos.User, repos.RefreshToken, auditSvc, cfg),
		Amount:  amountSvc,
		Receipt: NewReceiptService(repos.Receipt, amountSvc, auditSvc),
		Audit:   auditSvc,
		Export:  exportSvc,
		Share:   NewShareService(amountSvc),
		Email:   NewEmailService(cfg, exportSvc, amountSvc, auditSvc, worker),
		Job:     NewJobService(worker),
	}, nil
}
