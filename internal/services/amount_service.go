package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/Henry-Tercero-MH/Generador-Facturas/internal/config"
	"github.com/Henry-Tercero-MH/Generador-Facturas/pkg/amountwords"
	"github.com/shopspring/decimal"
)

// leadingNumber matches the numeric prefix a browser number parser would accept
var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// AmountText is the amount as typed in the form. JSON numbers and strings are both accepted.
type AmountText string

// UnmarshalJSON accepts 21.5, "21.5", "21,50" and "Q 21.50"
func (a *AmountText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = AmountText(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("amount must be a number or a string: %w", err)
	}
	*a = AmountText(n.String())
	return nil
}

// AmountWords is the converted form of an amount
type AmountWords struct {
	Amount        string `json:"amount"`
	Whole         int64  `json:"whole"`
	Cents         int64  `json:"cents"`
	AmountInWords string `json:"amount_in_words"`
}

// AmountService turns form input into amounts and their words
type AmountService struct {
	converter *amountwords.Converter
	strict    bool
	symbol    string
}

// NewAmountService builds the Spanish quetzales converter with the configured ceiling
func NewAmountService(cfg *config.Config) (*AmountService, error) {
	conv, err := amountwords.NewSpanishQuetzales(cfg.AmountMaxWhole)
	if err != nil {
		return nil, fmt.Errorf("failed to build amount converter: %w", err)
	}
	return &AmountService{
		converter: conv,
		strict:    cfg.AmountStrict,
		symbol:    cfg.CurrencySymbol,
	}, nil
}

// ParseAmountInput reads an amount typed by a person. Unreadable input is zero.
func (s *AmountService) ParseAmountInput(raw string) decimal.Decimal {
	text := strings.TrimSpace(raw)
	if s.symbol != "" && len(text) >= len(s.symbol) && strings.EqualFold(text[:len(s.symbol)], s.symbol) {
		text = strings.TrimSpace(text[len(s.symbol):])
	}
	text = strings.ReplaceAll(text, " ", "")

	// "1,234.50" uses the comma for thousands; "21,50" uses it as the decimal separator
	if strings.Contains(text, ".") {
		text = strings.ReplaceAll(text, ",", "")
	} else {
		text = strings.Replace(text, ",", ".", 1)
	}

	match := leadingNumber.FindString(text)
	if match == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(match)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Words converts an exact amount
func (s *AmountService) Words(d decimal.Decimal) (*AmountWords, error) {
	amount, err := amountwords.NewAmountFromDecimal(d)
	if err != nil {
		return nil, err
	}

	var words string
	if s.strict {
		words, err = s.converter.ConvertStrict(amount)
		if err != nil {
			return nil, err
		}
	} else {
		words = s.converter.Convert(amount)
	}

	return &AmountWords{
		Amount:        amount.String(),
		Whole:         amount.Whole(),
		Cents:         amount.Sub(),
		AmountInWords: words,
	}, nil
}

// AmountInWords parses form input and converts it
func (s *AmountService) AmountInWords(raw string) (*AmountWords, error) {
	return s.Words(s.ParseAmountInput(raw))
}

// Format renders an amount with the currency symbol, e.g. "Q 21.50"
func (s *AmountService) Format(d decimal.Decimal) string {
	if s.symbol == "" {
		return d.StringFixed(2)
	}
	return s.symbol + " " + d.StringFixed(2)
}

// MaxWhole returns the largest whole amount the converter spells
func (s *AmountService) MaxWhole() int64 {
	return s.converter.MaxWhole()
}
