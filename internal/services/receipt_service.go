package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Henry-Tercero-MH/Generador-Facturas/internal/models"
	"github.com/Henry-Tercero-MH/Generador-Facturas/internal/repository"
	"github.com/Henry-Tercero-MH/Generador-Facturas/internal/statemachine"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReceiptInput is the receipt form as submitted
type ReceiptInput struct {
	Number       string     `json:"number"`
	Amount       AmountText `json:"amount"`
	ReceivedFrom string     `json:"received_from"`
	Concept      string     `json:"concept"`
	Location     string     `json:"location"`
	Date         string     `json:"date"`
	ReceivedBy   string     `json:"received_by"`
}

// ReceiptService handles receipt business logic
type ReceiptService struct {
	repo    repository.ReceiptRepository
	amounts *AmountService
	audit   *AuditService
	now     func() time.Time
}

// NewReceiptService creates a new receipt service
func NewReceiptService(repo repository.ReceiptRepository, amounts *AmountService, audit *AuditService) *ReceiptService {
	return &ReceiptService{
		repo:    repo,
		amounts: amounts,
		audit:   audit,
		now:     time.Now,
	}
}

// Create validates the form, derives the amount in words and stores the receipt
func (s *ReceiptService) Create(ctx context.Context, userID uint, input ReceiptInput, client ClientInfo) (*models.Receipt, error) {
	receipt := &models.Receipt{CreatedBy: userID}
	if err := s.apply(receipt, input); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, receipt); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create receipt: %w", err)
	}

	s.record(userID, models.AuditActionCreate, receipt, client,
		fmt.Sprintf("Recibo %s por %s", receipt.Number, receipt.Amount.StringFixed(2)))
	return receipt, nil
}

// List returns a page of receipts
func (s *ReceiptService) List(ctx context.Context, query *repository.ReceiptQuery) ([]models.Receipt, models.Pagination, error) {
	if query.ListQuery == nil {
		query.ListQuery = repository.NewListQuery()
	}
	query.Normalize()

	if query.Status != "" && query.Status != models.ReceiptStatusIssued && query.Status != models.ReceiptStatusVoided {
		verr := &ValidationError{}
		verr.add("status", "estado desconocido")
		return nil, models.Pagination{}, verr
	}

	receipts, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("failed to list receipts: %w", err)
	}
	return receipts, models.NewPagination(query.Page, query.PerPage, total), nil
}

// Get finds a receipt by numeric id or public uuid
func (s *ReceiptService) Get(ctx context.Context, ref string) (*models.Receipt, error) {
	ref = strings.TrimSpace(ref)

	var (
		receipt *models.Receipt
		err     error
	)
	if id, perr := strconv.ParseUint(ref, 10, 32); perr == nil {
		receipt, err = s.repo.FindByID(ctx, uint(id))
	} else if publicID, perr := uuid.Parse(ref); perr == nil {
		receipt, err = s.repo.FindByPublicID(ctx, publicID)
	} else {
		return nil, ErrNotFound
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return receipt, nil
}

// Update changes the fields of an issued receipt and re-derives its words
func (s *ReceiptService) Update(ctx context.Context, userID uint, ref string, input ReceiptInput, client ClientInfo) (*models.Receipt, error) {
	receipt, err := s.Get(ctx, ref)
	if err != nil {
		return nil, err
	}
	if !receipt.MayEdit() {
		return nil, fmt.Errorf("%w: un recibo anulado no se puede editar", ErrInvalidState)
	}

	if err := s.apply(receipt, input); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, receipt); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to update receipt: %w", err)
	}

	s.record(userID, models.AuditActionUpdate, receipt, client, "Recibo "+receipt.Number+" actualizado")
	return receipt, nil
}

// Void annuls an issued receipt
func (s *ReceiptService) Void(ctx context.Context, userID uint, ref, reason string, client ClientInfo) (*models.Receipt, error) {
	receipt, err := s.Get(ctx, ref)
	if err != nil {
		return nil, err
	}

	rfsm := statemachine.NewReceiptFSM(receipt)
	if !rfsm.Can(statemachine.EventVoid) {
		return nil, fmt.Errorf("%w: el recibo ya está anulado", ErrInvalidState)
	}
	if strings.TrimSpace(reason) == "" {
		verr := &ValidationError{}
		verr.add("reason", "el motivo de anulación es requerido")
		return nil, verr
	}
	if err := rfsm.Void(ctx, reason); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	if err := s.repo.Update(ctx, receipt); err != nil {
		return nil, fmt.Errorf("failed to void receipt: %w", err)
	}

	s.record(userID, models.AuditActionVoid, receipt, client, "Anulado: "+strings.TrimSpace(reason))
	return receipt, nil
}

// Restore reissues a voided receipt
func (s *ReceiptService) Restore(ctx context.Context, userID uint, ref string, client ClientInfo) (*models.Receipt, error) {
	receipt, err := s.Get(ctx, ref)
	if err != nil {
		return nil, err
	}

	rfsm := statemachine.NewReceiptFSM(receipt)
	if !rfsm.Can(statemachine.EventRestore) {
		return nil, fmt.Errorf("%w: el recibo no está anulado", ErrInvalidState)
	}
	if err := rfsm.Restore(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	if err := s.repo.Update(ctx, receipt); err != nil {
		return nil, fmt.Errorf("failed to restore receipt: %w", err)
	}

	s.record(userID, models.AuditActionRestore, receipt, client, "Recibo "+receipt.Number+" restaurado")
	return receipt, nil
}

// apply validates input and copies it onto receipt
func (s *ReceiptService) apply(receipt *models.Receipt, input ReceiptInput) error {
	verr := &ValidationError{}

	number := strings.TrimSpace(input.Number)
	receivedFrom := strings.TrimSpace(input.ReceivedFrom)
	concept := strings.TrimSpace(input.Concept)
	location := strings.TrimSpace(input.Location)
	receivedBy := strings.TrimSpace(input.ReceivedBy)
	date := strings.TrimSpace(input.Date)

	requireField(verr, "number", number, 50)
	requireField(verr, "received_from", receivedFrom, 255)
	requireField(verr, "concept", concept, 2000)
	requireField(verr, "location", location, 255)
	requireField(verr, "received_by", receivedBy, 255)

	if date == "" {
		date = s.now().Format(models.ReceiptDateLayout)
	} else if _, err := time.Parse(models.ReceiptDateLayout, date); err != nil {
		verr.add("date", "formato de fecha inválido, use AAAA-MM-DD")
	}

	amount := s.amounts.ParseAmountInput(string(input.Amount))
	words, err := s.amounts.Words(amount)
	switch {
	case err != nil && errors.Is(err, ErrOutOfRange), err == nil && words.Whole > s.amounts.MaxWhole():
		verr.add("amount", fmt.Sprintf("el monto no puede ser mayor que %d", s.amounts.MaxWhole()))
	case err != nil:
		verr.add("amount", "monto inválido")
	case !amount.IsPositive() || (words.Whole == 0 && words.Cents == 0):
		verr.add("amount", "el monto debe ser mayor que cero")
	}

	if err := verr.orNil(); err != nil {
		return err
	}

	receipt.Number = number
	receipt.Amount = amount.Round(2)
	receipt.AmountInWords = words.AmountInWords
	receipt.ReceivedFrom = receivedFrom
	receipt.Concept = concept
	receipt.Location = location
	receipt.Date = date
	receipt.ReceivedBy = receivedBy
	return nil
}

func requireField(verr *ValidationError, field, value string, max int) {
	if value == "" {
		verr.add(field, "es requerido")
		return
	}
	if utf8.RuneCountInString(value) > max {
		verr.add(field, fmt.Sprintf("no puede exceder %d caracteres", max))
	}
}

func (s *ReceiptService) record(userID uint, action string, receipt *models.Receipt, client ClientInfo, details string) {
	s.audit.Record(AuditEntry{
		UserID:    userID,
		Action:    action,
		Entity:    models.AuditEntityReceipt,
		EntityID:  receipt.ID,
		Details:   details,
		IPAddress: client.IPAddress,
		UserAgent: client.UserAgent,
	})
}
