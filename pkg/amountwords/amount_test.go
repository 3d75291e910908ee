package amountwords

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAmount(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		wantWhole int64
		wantSub   int64
	}{
		{"zero", 0, 0, 0},
		{"whole only", 5, 5, 0},
		{"one cent", 5.01, 5, 1},
		{"half", 21.5, 21, 50},
		{"quarter", 150.25, 150, 25},
		{"rounds down", 3.144, 3, 14},
		{"rounds half away from zero", 2.675, 2, 68},
		{"carries into whole units", 5.999, 6, 0},
		{"carries from zero", 0.996, 1, 0},
		{"half cent", 0.005, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewAmount(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.wantWhole, a.Whole())
			assert.Equal(t, tt.wantSub, a.Sub())
		})
	}
}

func TestNewAmount_Rejects(t *testing.T) {
	for _, v := range []float64{-0.01, -1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := NewAmount(v)
		assert.ErrorIs(t, err, ErrInvalidAmount, "value %v", v)
	}
}

func TestNewAmountFromDecimal(t *testing.T) {
	a, err := NewAmountFromDecimal(decimal.RequireFromString("199.995"))
	require.NoError(t, err)
	assert.Equal(t, int64(200), a.Whole())
	assert.Equal(t, int64(0), a.Sub())

	_, err = NewAmountFromDecimal(decimal.RequireFromString("-0.50"))
	assert.ErrorIs(t, err, ErrInvalidAmount)

	for _, raw := range []string{"99999999999999999999", "1e20", "9223372036854775807.999"} {
		a, err := NewAmountFromDecimal(decimal.RequireFromString(raw))
		require.NoError(t, err, raw)
		assert.Equal(t, int64(math.MaxInt64), a.Whole(), raw)
		assert.Less(t, a.Sub(), int64(SubUnitsPerUnit), raw)
	}
}

func TestNewAmountFromParts(t *testing.T) {
	a, err := NewAmountFromParts(21, 50)
	require.NoError(t, err)
	assert.Equal(t, "21.50", a.String())
	assert.Equal(t, "21.50", a.Decimal().StringFixed(2))

	for _, p := range [][2]int64{{-1, 0}, {0, -1}, {0, 100}} {
		_, err := NewAmountFromParts(p[0], p[1])
		assert.ErrorIs(t, err, ErrInvalidAmount)
	}
}

func TestAmount_String(t *testing.T) {
	a, err := NewAmount(7.05)
	require.NoError(t, err)
	assert.Equal(t, "7.05", a.String())

	assert.Equal(t, "0.00", Amount{}.String())
}
