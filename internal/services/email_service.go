package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/Henry-Tercero-MH/Generador-Facturas/internal/config"
	"github.com/Henry-Tercero-MH/Generador-Facturas/internal/jobs"
	"github.com/Henry-Tercero-MH/Generador-Facturas/internal/models"
	"github.com/Henry-Tercero-MH/Generador-Facturas/pkg/logger"
	"github.com/resend/resend-go/v2"
)

// emailSender is the part of the resend client the service uses
type emailSender interface {
	Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// EmailRequest asks for a receipt to be mailed
type EmailRequest struct {
	To      string `json:"to" binding:"required"`
	Message string `json:"message"`
}

type EmailService struct {
	config  *config.Config
	sender  emailSender
	export  *ExportService
	amounts *AmountService
	audit   *AuditService
	worker  *jobs.Worker
}

func NewEmailService(cfg *config.Config, export *ExportService, amounts *AmountService, audit *AuditService, worker *jobs.Worker) *EmailService {
	client := resend.NewClient(cfg.ResendAPIKey)
	return &EmailService{
		config:  cfg,
		sender:  client.Emails,
		export:  export,
		amounts: amounts,
		audit:   audit,
		worker:  worker,
	}
}

// checkEmailPreconditions reports whether a message to address can be sent
func (s *EmailService) checkEmailPreconditions(address string) (bool, error) {
	if !s.config.EnableEmailNotifications {
		return false, nil
	}
	if s.config.ResendAPIKey == "" {
		return false, fmt.Errorf("%w: RESEND_API_KEY is not set", ErrEmailDisabled)
	}
	if s.config.FromEmail == "" {
		return false, fmt.Errorf("%w: FROM_EMAIL is not set", ErrEmailDisabled)
	}
	if strings.TrimSpace(address) == "" {
		return false, errors.New("email address is empty")
	}
	if _, err := mail.ParseAddress(address); err != nil {
		return false, fmt.Errorf("invalid email address: %w", err)
	}
	return true, nil
}

// QueueReceipt validates the request and sends the receipt on the background worker
func (s *EmailService) QueueReceipt(receipt *models.Receipt, req EmailRequest, userID uint, client ClientInfo) error {
	to := strings.TrimSpace(req.To)
	ok, err := s.checkEmailPreconditions(to)
	if err != nil {
		if errors.Is(err, ErrEmailDisabled) {
			return err
		}
		verr := &ValidationError{}
		verr.add("to", err.Error())
		return verr
	}
	if !ok {
		return ErrEmailDisabled
	}

	snapshot := *receipt
	s.worker.Enqueue("email:receipt", func(ctx context.Context) error {
		if err := s.SendReceipt(ctx, &snapshot, to, req.Message); err != nil {
			return err
		}
		s.audit.Record(AuditEntry{
			UserID:    userID,
			Action:    models.AuditActionEmail,
			Entity:    models.AuditEntityReceipt,
			EntityID:  snapshot.ID,
			Details:   "Enviado a " + to,
			IPAddress: client.IPAddress,
			UserAgent: client.UserAgent,
		})
		return nil
	})
	return nil
}

// SendReceipt mails the receipt PDF to a single address
func (s *EmailService) SendReceipt(ctx context.Context, receipt *models.Receipt, to, message string) error {
	pdf, filename, err := s.export.ReceiptPDF(ctx, receipt)
	if err != nil {
		return fmt.Errorf("failed to render receipt for email: %w", err)
	}

	view := newReceiptView(receipt, s.amounts, s.config.IssuerName)
	view.Message = strings.TrimSpace(message)
	body, err := renderTemplate(receiptEmailTemplate, view)
	if err != nil {
		return err
	}

	subject := "Recibo No. " + receipt.Number
	params := &resend.SendEmailRequest{
		From:    s.config.FromEmail,
		To:      []string{to},
		Subject: subject,
		Html:    string(body),
		Attachments: []*resend.Attachment{{
			Content:     pdf,
			Filename:    filename,
			ContentType: "application/pdf",
		}},
	}
	if _, err := s.sender.Send(params); err != nil {
		logger.Error("failed to send email", "to", to, "subject", subject, "error", err)
		return err
	}

	logger.Info("email sent", "to", to, "subject", subject)
	return nil
}
