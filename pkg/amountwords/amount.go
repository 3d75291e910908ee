package amountwords

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// SubUnitsPerUnit is the number of hundredths in a whole unit.
const SubUnitsPerUnit = 100

// Amount is a non-negative money value split into whole units and hundredths.
// The zero value is a valid amount of 0.00.
type Amount struct {
	whole int64
	sub   int64
}

// NewAmount builds an Amount from a float, rounding the fraction to hundredths.
// Negative, NaN and infinite values are rejected with ErrInvalidAmount.
func NewAmount(v float64) (Amount, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Amount{}, fmt.Errorf("%w: %v", ErrInvalidAmount, v)
	}
	return NewAmountFromDecimal(decimal.NewFromFloat(v))
}

// NewAmountFromDecimal builds an Amount from an exact decimal value.
// Example: 5.999 -> (6, 0), 21.5 -> (21, 50). Whole parts beyond int64 saturate at math.MaxInt64.
func NewAmountFromDecimal(d decimal.Decimal) (Amount, error) {
	if d.IsNegative() {
		return Amount{}, fmt.Errorf("%w: %s", ErrInvalidAmount, d.String())
	}

	whole := d.Truncate(0)
	// Round half away from zero; a fraction of .995 or more becomes 100 and carries below.
	sub := d.Sub(whole).Shift(2).Round(0).IntPart()
	if whole.GreaterThan(decimal.NewFromInt(math.MaxInt64 - 1)) {
		// Saturates past int64; that is above every ceiling, so it still spells as out of range.
		return Amount{whole: math.MaxInt64, sub: sub % SubUnitsPerUnit}, nil
	}

	a := Amount{whole: whole.IntPart(), sub: sub}
	if a.sub >= SubUnitsPerUnit {
		a.whole++
		a.sub -= SubUnitsPerUnit
	}
	return a, nil
}

// NewAmountFromParts builds an Amount from an already split value.
func NewAmountFromParts(whole, sub int64) (Amount, error) {
	if whole < 0 || sub < 0 || sub >= SubUnitsPerUnit {
		return Amount{}, fmt.Errorf("%w: whole=%d sub=%d", ErrInvalidAmount, whole, sub)
	}
	return Amount{whole: whole, sub: sub}, nil
}

// Whole returns the whole units.
func (a Amount) Whole() int64 {
	return a.whole
}

// Sub returns the hundredths, always in [0, 99].
func (a Amount) Sub() int64 {
	return a.sub
}

// Decimal returns the amount as a two-place decimal.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.NewFromInt(a.whole).Add(decimal.New(a.sub, -2))
}

// String formats the amount with exactly two decimals, e.g. "21.50".
func (a Amount) String() string {
	return fmt.Sprintf("%d.%02d", a.whole, a.sub)
}
