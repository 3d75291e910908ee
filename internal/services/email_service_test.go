package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Henry-Tercero-MH/Generador-Facturas/internal/config"
	"github.com/Henry-Tercero-MH/Generador-Facturas/internal/jobs"
	"github.com/resend/resend-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []*resend.SendEmailRequest
	err  error
}

func (f *fakeSender) Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, params)
	return &resend.SendEmailResponse{Id: "test"}, nil
}

func newTestEmailService(t *testing.T, cfg *config.Config, worker *jobs.Worker) (*EmailService, *fakeSender) {
	t.Helper()
	export, _, _ := newTestExportService(t, "")
	svc := NewEmailService(cfg, export, newTestAmountService(t, false), nil, worker)
	sender := &fakeSender{}
	svc.sender = sender
	return svc, sender
}

func enabledEmailConfig() *config.Config {
	return &config.Config{
		EnableEmailNotifications: true,
		ResendAPIKey:             "test_key",
		FromEmail:                "recibos@example.com",
	}
}

func TestEmailService_checkEmailPreconditions(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.Config
		address string
		ok      bool
		errText string
	}{
		{"disabled", &config.Config{}, "a@example.com", false, ""},
		{"configured", enabledEmailConfig(), "a@example.com", true, ""},
		{"missing key", &config.Config{EnableEmailNotifications: true, FromEmail: "x@example.com"}, "a@example.com", false, "RESEND_API_KEY is not set"},
		{"empty address", enabledEmailConfig(), " ", false, "email address is empty"},
		{"invalid address", enabledEmailConfig(), "no-es-correo", false, "invalid email address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestEmailService(t, tt.cfg, nil)
			ok, err := svc.checkEmailPreconditions(tt.address)
			assert.Equal(t, tt.ok, ok)
			if tt.errText == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errText)
			}
		})
	}
}

func TestEmailService_SendReceipt(t *testing.T) {
	svc, sender := newTestEmailService(t, enabledEmailConfig(), nil)

	err := svc.SendReceipt(context.Background(), sampleReceipt(), "jose@example.com", "Gracias por su pago")
	require.NoError(t, err)

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, []string{"jose@example.com"}, msg.To)
	assert.Equal(t, "Recibo No. 0007", msg.Subject)
	assert.Contains(t, msg.Html, "Gracias por su pago")
	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "recibo_0007.pdf", msg.Attachments[0].Filename)
}

func TestEmailService_QueueReceipt(t *testing.T) {
	worker := jobs.NewWorker(1)
	svc, sender := newTestEmailService(t, enabledEmailConfig(), worker)

	require.NoError(t, svc.QueueReceipt(sampleReceipt(), EmailRequest{To: "jose@example.com"}, 1, ClientInfo{}))
	worker.Shutdown()

	assert.Len(t, sender.sent, 1)
	assert.Equal(t, int64(1), worker.GetStats().CompletedJobs)
}

func TestEmailService_QueueReceipt_Errors(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		svc, _ := newTestEmailService(t, &config.Config{}, nil)
		err := svc.QueueReceipt(sampleReceipt(), EmailRequest{To: "jose@example.com"}, 1, ClientInfo{})
		assert.ErrorIs(t, err, ErrEmailDisabled)
	})

	t.Run("bad address", func(t *testing.T) {
		svc, _ := newTestEmailService(t, enabledEmailConfig(), nil)
		err := svc.QueueReceipt(sampleReceipt(), EmailRequest{To: "nope"}, 1, ClientInfo{})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("send failure", func(t *testing.T) {
		svc, sender := newTestEmailService(t, enabledEmailConfig(), nil)
		sender.err = errors.New("resend down")
		err := svc.SendReceipt(context.Background(), sampleReceipt(), "jose@example.com", "")
		assert.Error(t, err)
	})
}
