package amountwords

import "fmt"

// MaxSupportedWhole is the largest ceiling the digit-grouping rule can spell.
// There is no thousands band.
const MaxSupportedWhole = 999

// DefaultMaxWhole is the ceiling used by the receipt form: "cero" through "doscientos".
const DefaultMaxWhole = 200

// NumberWordTable holds the words used to spell a number.
// Tables are configuration and are never modified by the converter.
type NumberWordTable struct {
	// Units holds 0..9; Units[0] is normally empty.
	Units [10]string
	// Teens holds 10..19.
	Teens [10]string
	// Tens holds the multiples of ten; only indices 2..9 are read.
	Tens [10]string
	// Hundreds holds the exact hundred multiples; Hundreds[1] is the word for 100.
	Hundreds []string
	// HundredsCompound overrides Hundreds when a remainder follows (100 -> "cien", 150 -> "ciento ...").
	// An empty or missing entry falls back to Hundreds.
	HundredsCompound []string
	// Zero spells a whole amount of exactly zero in a phrase. May be empty.
	Zero string
	// Conjunction joins tens and units ("treinta y dos").
	Conjunction string
}

// CurrencyLexicon names the currency in a phrase.
type CurrencyLexicon struct {
	Unit       string // plural whole unit, "quetzales"
	SubUnit    string // plural sub-unit, "centavos"
	Joiner     string // joins whole and sub-unit clauses, "con"
	Exact      string // suffix when there are no sub-units, "exactos"
	OutOfRange string // sentinel returned past the ceiling
}

// Spanish returns the Spanish word table.
func Spanish() NumberWordTable {
	return NumberWordTable{
		Units: [10]string{
			"", "uno", "dos", "tres", "cuatro", "cinco", "seis", "siete", "ocho", "nueve",
		},
		Teens: [10]string{
			"diez", "once", "doce", "trece", "catorce", "quince",
			"dieciséis", "diecisiete", "dieciocho", "diecinueve",
		},
		Tens: [10]string{
			"", "", "veinte", "treinta", "cuarenta", "cincuenta", "sesenta", "setenta", "ochenta", "noventa",
		},
		Hundreds: []string{
			"", "cien", "doscientos", "trescientos", "cuatrocientos", "quinientos",
			"seiscientos", "setecientos", "ochocientos", "novecientos",
		},
		HundredsCompound: []string{"", "ciento"},
		Zero:             "cero",
		Conjunction:      "y",
	}
}

// Quetzales returns the lexicon for Guatemalan quetzales.
func Quetzales() CurrencyLexicon {
	return CurrencyLexicon{
		Unit:       "quetzales",
		SubUnit:    "centavos",
		Joiner:     "con",
		Exact:      "exactos",
		OutOfRange: "número fuera de rango",
	}
}

// Validate checks that the table can spell every whole value in [0, maxWhole]
// and every sub-unit value in [0, 99], whatever the ceiling.
func (t NumberWordTable) Validate(maxWhole int64) error {
	if maxWhole < 0 || maxWhole > MaxSupportedWhole {
		return fmt.Errorf("%w: ceiling %d outside [0, %d]", ErrInvalidTable, maxWhole, MaxSupportedWhole)
	}
	for i := 1; i < len(t.Units); i++ {
		if t.Units[i] == "" {
			return fmt.Errorf("%w: missing unit word for %d", ErrInvalidTable, i)
		}
	}
	for i := range t.Teens {
		if t.Teens[i] == "" {
			return fmt.Errorf("%w: missing teen word for %d", ErrInvalidTable, i+10)
		}
	}
	for i := 2; i < len(t.Tens); i++ {
		if t.Tens[i] == "" {
			return fmt.Errorf("%w: missing tens word for %d", ErrInvalidTable, i*10)
		}
	}
	if t.Conjunction == "" {
		return fmt.Errorf("%w: missing conjunction", ErrInvalidTable)
	}
	for i := int64(1); i*100 <= maxWhole; i++ {
		if int(i) >= len(t.Hundreds) || t.Hundreds[i] == "" {
			return fmt.Errorf("%w: missing hundreds word for %d", ErrInvalidTable, i*100)
		}
	}
	return nil
}

// hundred returns the word for the k-th hundred, in compound form when a remainder follows.
func (t NumberWordTable) hundred(k int64, compound bool) string {
	if compound && int(k) < len(t.HundredsCompound) && t.HundredsCompound[k] != "" {
		return t.HundredsCompound[k]
	}
	return t.Hundreds[k]
}
