package services

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareService_WhatsAppLink(t *testing.T) {
	svc := NewShareService(newTestAmountService(t, false))
	r := sampleReceipt()

	tests := []struct {
		name   string
		phone  string
		prefix string
	}{
		{"no phone", "", "https://wa.me/?text="},
		{"local number", "5555-1234", "https://wa.me/50255551234?text="},
		{"international", "+502 5555 1234", "https://wa.me/50255551234?text="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link, err := svc.WhatsAppLink(r, tt.phone)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(link.URL, tt.prefix), link.URL)
			assert.NotContains(t, link.URL, "+")
			assert.NotContains(t, link.URL, " ")

			u, err := url.Parse(link.URL)
			require.NoError(t, err)
			assert.Equal(t, link.Text, u.Query().Get("text"))
		})
	}
}

func TestShareService_WhatsAppLink_InvalidPhone(t *testing.T) {
	svc := NewShareService(newTestAmountService(t, false))

	_, err := svc.WhatsAppLink(sampleReceipt(), "12-34")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestShareService_ReceiptSummary(t *testing.T) {
	svc := NewShareService(newTestAmountService(t, false))

	text := svc.ReceiptSummary(sampleReceipt())
	assert.Equal(t, "Recibo No. 0007\n"+
		"Recibí de: José Pérez\n"+
		"La cantidad de: Q 150.25 (ciento cincuenta quetzales con veinte y cinco centavos)\n"+
		"Por concepto de: Pago de colegiatura\n"+
		"Lugar y fecha: Quetzaltenango, 4 de mayo de 2026\n"+
		"Recibido por: Henry Tercero", text)
}
