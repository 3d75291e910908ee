package services

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/Henry-Tercero-MH/Generador-Facturas/internal/models"
)

//go:embed templates/receipt.html templates/email/*.html
var templateFS embed.FS

var (
	receiptTemplate      = template.Must(template.ParseFS(templateFS, "templates/receipt.html"))
	receiptEmailTemplate = template.Must(template.ParseFS(templateFS, "templates/email/receipt.html"))
)

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// receiptView is what receipt documents print
type receiptView struct {
	Number        string
	Amount        string
	AmountInWords string
	ReceivedFrom  string
	Concept       string
	Location      string
	Date          string
	LongDate      string
	ReceivedBy    string
	IssuerName    string
	Voided        bool
	VoidReason    string
	LogoURI       template.URL
	AutoPrint     bool
	Message       string
}

func newReceiptView(r *models.Receipt, amounts *AmountService, issuer string) receiptView {
	v := receiptView{
		Number:        r.Number,
		Amount:        amounts.Format(r.Amount),
		AmountInWords: r.AmountInWords,
		ReceivedFrom:  r.ReceivedFrom,
		Concept:       r.Concept,
		Location:      r.Location,
		Date:          r.Date,
		LongDate:      LongSpanishDate(r.ParsedDate()),
		ReceivedBy:    r.ReceivedBy,
		IssuerName:    issuer,
		Voided:        r.IsVoided(),
	}
	if v.LongDate == "" {
		v.LongDate = r.Date
	}
	if r.VoidReason != nil {
		v.VoidReason = *r.VoidReason
	}
	return v
}

// LongSpanishDate formats a date as "4 de mayo de 2026"; the zero time formats as ""
func LongSpanishDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d de %s de %d", t.Day(), spanishMonths[t.Month()-1], t.Year())
}

func renderTemplate(tmpl *template.Template, data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template %s: %w", tmpl.Name(), err)
	}
	return buf.Bytes(), nil
}

// statusLabel is the Spanish name of a receipt status
func statusLabel(status string) string {
	switch status {
	case models.ReceiptStatusIssued:
		return "Emitido"
	case models.ReceiptStatusVoided:
		return "Anulado"
	default:
		return status
	}
}

// safeFilename keeps letters, digits, dash and underscore
func safeFilename(s string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, strings.TrimSpace(s))
	if mapped == "" {
		return "sin_numero"
	}
	return mapped
}
