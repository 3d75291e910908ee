// Package amountwords spells money amounts as words, e.g. 21.50 ->
// "veinte y uno quetzales con cincuenta centavos".
//
// Vocabulary and the supported ceiling are configuration. Amounts above the
// ceiling are spelled as the lexicon's out-of-range sentinel instead of failing;
// callers that want a hard failure use ConvertStrict.
package amountwords

import (
	"fmt"
	"strings"
)

// maxSubUnit is the ceiling used when spelling hundredths.
const maxSubUnit = SubUnitsPerUnit - 1

// Converter spells amounts with a fixed table, lexicon and ceiling.
// It holds no mutable state and is safe for concurrent use.
type Converter struct {
	table    NumberWordTable
	lexicon  CurrencyLexicon
	maxWhole int64
}

// New creates a Converter after checking the table covers [0, maxWhole].
func New(table NumberWordTable, lexicon CurrencyLexicon, maxWhole int64) (*Converter, error) {
	if err := table.Validate(maxWhole); err != nil {
		return nil, err
	}
	return &Converter{table: table, lexicon: lexicon, maxWhole: maxWhole}, nil
}

// NewSpanishQuetzales creates the converter used by the receipt form.
func NewSpanishQuetzales(maxWhole int64) (*Converter, error) {
	return New(Spanish(), Quetzales(), maxWhole)
}

// MaxWhole returns the largest whole amount the converter spells.
func (c *Converter) MaxWhole() int64 {
	return c.maxWhole
}

// Words spells a bare number, returning the sentinel past the ceiling.
// Zero spells as the empty units entry.
func (c *Converter) Words(n int64) string {
	return spell(n, c.table, c.lexicon, c.maxWhole)
}

// Convert spells an amount. Past the ceiling it returns the out-of-range sentinel.
func (c *Converter) Convert(a Amount) string {
	return Convert(a, c.table, c.lexicon, c.maxWhole)
}

// ConvertStrict spells an amount, failing with ErrOutOfRange past the ceiling.
func (c *Converter) ConvertStrict(a Amount) (string, error) {
	if a.whole > c.maxWhole {
		return "", fmt.Errorf("%w: %s exceeds %d", ErrOutOfRange, a, c.maxWhole)
	}
	return c.Convert(a), nil
}

// Convert spells an amount with the given vocabulary and ceiling.
//
//	sub == 0: "<whole> <unit> <exact>"
//	sub  > 0: "<whole> <unit> <joiner> <sub> <subunit>"
//
// Whole units above maxWhole yield exactly lexicon.OutOfRange.
func Convert(a Amount, table NumberWordTable, lexicon CurrencyLexicon, maxWhole int64) string {
	if a.whole > maxWhole {
		return lexicon.OutOfRange
	}

	whole := spell(a.whole, table, lexicon, maxWhole)
	if a.whole == 0 && table.Zero != "" {
		whole = table.Zero
	}

	if a.sub == 0 {
		return join(whole, lexicon.Unit, lexicon.Exact)
	}

	subLimit := maxWhole
	if subLimit < maxSubUnit {
		subLimit = maxSubUnit
	}
	return join(whole, lexicon.Unit, lexicon.Joiner, spell(a.sub, table, lexicon, subLimit), lexicon.SubUnit)
}

func spell(n int64, t NumberWordTable, l CurrencyLexicon, limit int64) string {
	switch {
	case n < 0 || n > limit:
		return l.OutOfRange
	case n < 10:
		return t.Units[n]
	case n < 20:
		return t.Teens[n-10]
	case n < 100:
		w := t.Tens[n/10]
		if r := n % 10; r != 0 {
			w = join(w, t.Conjunction, spell(r, t, l, limit))
		}
		return w
	}

	k, r := n/100, n%100
	if int(k) >= len(t.Hundreds) || t.Hundreds[k] == "" {
		return l.OutOfRange
	}
	if r == 0 {
		return t.Hundreds[k]
	}
	return t.hundred(k, true) + " " + spell(r, t, l, limit)
}

// join concatenates the non-empty parts with single spaces.
func join(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}
