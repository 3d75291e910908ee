package services

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Henry-Tercero-MH/Generador-Facturas/internal/models"
)

// DefaultCountryCode is prefixed to local 8-digit Guatemalan numbers
const DefaultCountryCode = "502"

// ShareLink is a ready-to-open share URL with the text it carries
type ShareLink struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

// ShareService builds links to send a receipt summary through messaging apps
type ShareService struct {
	amounts *AmountService
}

func NewShareService(amounts *AmountService) *ShareService {
	return &ShareService{amounts: amounts}
}

// WhatsAppLink returns a wa.me link with the receipt summary. Without a phone the user picks the chat.
func (s *ShareService) WhatsAppLink(receipt *models.Receipt, phone string) (*ShareLink, error) {
	digits := onlyDigits(phone)
	if strings.TrimSpace(phone) != "" {
		switch {
		case len(digits) == 8:
			digits = DefaultCountryCode + digits
		case len(digits) < 8 || len(digits) > 15:
			verr := &ValidationError{}
			verr.add("phone", "número de teléfono inválido")
			return nil, verr
		}
	}

	text := s.ReceiptSummary(receipt)
	escaped := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")

	return &ShareLink{
		URL:  fmt.Sprintf("https://wa.me/%s?text=%s", digits, escaped),
		Text: text,
	}, nil
}

// ReceiptSummary is the plain text version of a receipt
func (s *ShareService) ReceiptSummary(receipt *models.Receipt) string {
	view := newReceiptView(receipt, s.amounts, "")

	var b strings.Builder
	fmt.Fprintf(&b, "Recibo No. %s\n", view.Number)
	if view.Voided {
		b.WriteString("*ANULADO*\n")
	}
	fmt.Fprintf(&b, "Recibí de: %s\n", view.ReceivedFrom)
	fmt.Fprintf(&b, "La cantidad de: %s (%s)\n", view.Amount, view.AmountInWords)
	fmt.Fprintf(&b, "Por concepto de: %s\n", view.Concept)
	fmt.Fprintf(&b, "Lugar y fecha: %s, %s\n", view.Location, view.LongDate)
	fmt.Fprintf(&b, "Recibido por: %s", view.ReceivedBy)
	return b.String()
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
