package services

import (
	"encoding/json"
	"testing"

	"github.com/Henry-Tercero-MH/Generador-Facturas/internal/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAmountService(t *testing.T, strict bool) *AmountService {
	t.Helper()
	svc, err := NewAmountService(&config.Config{
		AmountMaxWhole: 200,
		AmountStrict:   strict,
		CurrencySymbol: "Q",
	})
	require.NoError(t, err)
	return svc
}

func TestAmountService_ParseAmountInput(t *testing.T) {
	svc := newTestAmountService(t, false)

	tests := []struct {
		raw  string
		want string
	}{
		{"21.5", "21.5"},
		{"  100  ", "100"},
		{"21,50", "21.5"},
		{"Q 21.50", "21.5"},
		{"q150.25", "150.25"},
		{"1,150.25", "1150.25"},
		{"12abc", "12"},
		{".5", "0.5"},
		{"1e2", "100"},
		{"abc", "0"},
		{"", "0"},
		{"Infinity", "0"},
		{"-5", "-5"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := svc.ParseAmountInput(tt.raw)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestAmountService_AmountInWords(t *testing.T) {
	svc := newTestAmountService(t, false)

	tests := []struct {
		raw   string
		words string
		whole int64
		cents int64
	}{
		{"21.5", "veinte y uno quetzales con cincuenta centavos", 21, 50},
		{"100", "cien quetzales exactos", 100, 0},
		{"150.25", "ciento cincuenta quetzales con veinte y cinco centavos", 150, 25},
		{"0", "cero quetzales exactos", 0, 0},
		{"abc", "cero quetzales exactos", 0, 0},
		{"Q 5,999", "seis quetzales exactos", 6, 0},
		{"250", "número fuera de rango", 250, 0},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			res, err := svc.AmountInWords(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.words, res.AmountInWords)
			assert.Equal(t, tt.whole, res.Whole)
			assert.Equal(t, tt.cents, res.Cents)
		})
	}
}

func TestAmountService_AmountInWords_Huge(t *testing.T) {
	for _, raw := range []string{"99999999999999999999", "1e20", "Q 99999999999999999999,50"} {
		t.Run(raw, func(t *testing.T) {
			res, err := newTestAmountService(t, false).AmountInWords(raw)
			require.NoError(t, err)
			assert.Equal(t, "número fuera de rango", res.AmountInWords)

			_, err = newTestAmountService(t, true).AmountInWords(raw)
			assert.ErrorIs(t, err, ErrOutOfRange)
		})
	}
}

func TestAmountService_Errors(t *testing.T) {
	t.Run("negative amount", func(t *testing.T) {
		_, err := newTestAmountService(t, false).AmountInWords("-5")
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("strict rejects out of range", func(t *testing.T) {
		_, err := newTestAmountService(t, true).AmountInWords("250")
		assert.ErrorIs(t, err, ErrOutOfRange)
	})

	t.Run("strict accepts the ceiling", func(t *testing.T) {
		res, err := newTestAmountService(t, true).AmountInWords("200")
		require.NoError(t, err)
		assert.Equal(t, "doscientos quetzales exactos", res.AmountInWords)
	})

	t.Run("ceiling above supported range", func(t *testing.T) {
		_, err := NewAmountService(&config.Config{AmountMaxWhole: 5000})
		assert.Error(t, err)
	})
}

func TestAmountService_Format(t *testing.T) {
	svc := newTestAmountService(t, false)
	assert.Equal(t, "Q 21.50", svc.Format(decimal.RequireFromString("21.5")))
}

func TestAmountText_UnmarshalJSON(t *testing.T) {
	var body struct {
		Amount AmountText `json:"amount"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"amount": 21.5}`), &body))
	assert.Equal(t, AmountText("21.5"), body.Amount)

	require.NoError(t, json.Unmarshal([]byte(`{"amount": "Q 21,50"}`), &body))
	assert.Equal(t, AmountText("Q 21,50"), body.Amount)

	require.NoError(t, json.Unmarshal([]byte(`{"amount": null}`), &body))
	assert.Equal(t, AmountText(""), body.Amount)

	assert.Error(t, json.Unmarshal([]byte(`{"amount": true}`), &body))
}
