package handlers

import (
	"github.com/Henry-Tercero-MH/Generador-Facturas/internal/services"
)

// Handlers holds all handler instances
type Handlers struct {
	Health  *HealthHandler
	Auth    *AuthHandler
	Amount  *AmountHandler
	Receipt *ReceiptHandler
	Audit   *AuditHandler
	Job     *JobHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services, version string) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(version),
		Auth:    NewAuthHandler(svcs.Auth),
		Amount:  NewAmountHandler(svcs.Amount),
		Receipt: NewReceiptHandler(svcs.Receipt, svcs.Export, svcs.Share, svcs.Email),
		Audit:   NewAuditHandler(svcs.Audit),
		Job:     NewJobHandler(svcs.Job),
	}
}
