package amountwords

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConverter(t *testing.T) *Converter {
	t.Helper()
	c, err := NewSpanishQuetzales(DefaultMaxWhole)
	require.NoError(t, err)
	return c
}

func mustAmount(t *testing.T, v float64) Amount {
	t.Helper()
	a, err := NewAmount(v)
	require.NoError(t, err)
	return a
}

func TestWords_Units(t *testing.T) {
	c := newTestConverter(t)
	table := Spanish()
	for n := int64(0); n <= 9; n++ {
		assert.Equal(t, table.Units[n], c.Words(n))
	}
	assert.Equal(t, "", c.Words(0))
}

func TestWords_Teens(t *testing.T) {
	c := newTestConverter(t)
	table := Spanish()
	for n := int64(10); n <= 19; n++ {
		assert.Equal(t, table.Teens[n-10], c.Words(n))
	}
}

func TestWords_Tens(t *testing.T) {
	c := newTestConverter(t)
	table := Spanish()
	for n := int64(20); n <= 99; n++ {
		want := table.Tens[n/10]
		if n%10 != 0 {
			want += " y " + table.Units[n%10]
		}
		assert.Equal(t, want, c.Words(n), "n=%d", n)
	}
	assert.Equal(t, "veinte y uno", c.Words(21))
	assert.Equal(t, "noventa y nueve", c.Words(99))
}

func TestWords_Hundreds(t *testing.T) {
	c := newTestConverter(t)

	tests := []struct {
		n    int64
		want string
	}{
		{100, "cien"},
		{101, "ciento uno"},
		{110, "ciento diez"},
		{115, "ciento quince"},
		{121, "ciento veinte y uno"},
		{150, "ciento cincuenta"},
		{199, "ciento noventa y nueve"},
		{200, "doscientos"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Words(tt.n), "n=%d", tt.n)
	}

	for n := int64(101); n <= 199; n++ {
		assert.Equal(t, "ciento "+c.Words(n%100), c.Words(n), "n=%d", n)
	}
}

func TestWords_BeyondCeiling(t *testing.T) {
	c := newTestConverter(t)
	sentinel := Quetzales().OutOfRange

	for _, n := range []int64{201, 250, 999, 1000, -1} {
		assert.Equal(t, sentinel, c.Words(n), "n=%d", n)
	}
}

func TestConvert_Scenarios(t *testing.T) {
	c := newTestConverter(t)

	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{"zero", 0, "cero quetzales exactos"},
		{"only cents", 0.5, "cero quetzales con cincuenta centavos"},
		{"exact", 5, "cinco quetzales exactos"},
		{"one cent", 5.01, "cinco quetzales con uno centavos"},
		{"carry to exact", 5.999, "seis quetzales exactos"},
		{"twenty one and a half", 21.5, "veinte y uno quetzales con cincuenta centavos"},
		{"hundred", 100, "cien quetzales exactos"},
		{"compound hundred", 150.25, "ciento cincuenta quetzales con veinte y cinco centavos"},
		{"ceiling", 200, "doscientos quetzales exactos"},
		{"ceiling with cents", 200.99, "doscientos quetzales con noventa y nueve centavos"},
		{"carry past ceiling", 200.999, "número fuera de rango"},
		{"past ceiling", 201, "número fuera de rango"},
		{"far past ceiling", 250, "número fuera de rango"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Convert(mustAmount(t, tt.value)))
		})
	}
}

func TestConvert_FreeFunctionMatchesConverter(t *testing.T) {
	c := newTestConverter(t)
	for _, v := range []float64{0, 7.07, 19.19, 88.8, 100, 142.42, 200, 201} {
		a := mustAmount(t, v)
		assert.Equal(t, c.Convert(a), Convert(a, Spanish(), Quetzales(), DefaultMaxWhole))
	}
}

func TestConvert_EmptyZeroWord(t *testing.T) {
	table := Spanish()
	table.Zero = ""

	c, err := New(table, Quetzales(), DefaultMaxWhole)
	require.NoError(t, err)

	assert.Equal(t, "quetzales exactos", c.Convert(Amount{}))
	assert.Equal(t, "quetzales con diez centavos", c.Convert(mustAmount(t, 0.10)))
}

func TestConvert_Idempotent(t *testing.T) {
	c := newTestConverter(t)
	a := mustAmount(t, 133.33)
	first := c.Convert(a)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, c.Convert(a))
	}
}

func TestConvert_Concurrent(t *testing.T) {
	c := newTestConverter(t)
	a := mustAmount(t, 177.77)
	want := c.Convert(a)

	var wg sync.WaitGroup
	results := make([]string, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = c.Convert(a)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestConvertStrict(t *testing.T) {
	c := newTestConverter(t)

	got, err := c.ConvertStrict(mustAmount(t, 200))
	require.NoError(t, err)
	assert.Equal(t, "doscientos quetzales exactos", got)

	got, err = c.ConvertStrict(mustAmount(t, 250))
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Empty(t, got)

	huge, err := NewAmountFromDecimal(decimal.RequireFromString("99999999999999999999.50"))
	require.NoError(t, err)
	assert.Equal(t, "número fuera de rango", c.Convert(huge))
	_, err = c.ConvertStrict(huge)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestConvert_LowCeilingStillSpellsCents(t *testing.T) {
	c, err := New(Spanish(), Quetzales(), 50)
	require.NoError(t, err)

	assert.Equal(t, "diez quetzales con setenta y cinco centavos", c.Convert(mustAmount(t, 10.75)))
	assert.Equal(t, "número fuera de rango", c.Convert(mustAmount(t, 51)))
}

func TestConvert_ExtendedCeiling(t *testing.T) {
	c, err := NewSpanishQuetzales(MaxSupportedWhole)
	require.NoError(t, err)

	assert.Equal(t, "doscientos cincuenta quetzales exactos", c.Convert(mustAmount(t, 250)))
	assert.Equal(t, "quinientos quetzales con cinco centavos", c.Convert(mustAmount(t, 500.05)))
	assert.Equal(t, "novecientos noventa y nueve quetzales exactos", c.Convert(mustAmount(t, 999)))
	assert.Equal(t, "número fuera de rango", c.Convert(mustAmount(t, 1000)))
}

func TestConvert_OtherLexicon(t *testing.T) {
	lempiras := CurrencyLexicon{
		Unit:       "lempiras",
		SubUnit:    "centavos",
		Joiner:     "con",
		Exact:      "exactos",
		OutOfRange: "monto no soportado",
	}
	c, err := New(Spanish(), lempiras, DefaultMaxWhole)
	require.NoError(t, err)

	assert.Equal(t, "cien lempiras exactos", c.Convert(mustAmount(t, 100)))
	assert.Equal(t, "monto no soportado", c.Convert(mustAmount(t, 300)))
}

func TestNew_InvalidTable(t *testing.T) {
	short := Spanish()
	short.Hundreds = []string{"", "cien", "doscientos"}

	_, err := New(short, Quetzales(), 300)
	assert.ErrorIs(t, err, ErrInvalidTable)

	_, err = New(Spanish(), Quetzales(), MaxSupportedWhole+1)
	assert.ErrorIs(t, err, ErrInvalidTable)

	_, err = New(Spanish(), Quetzales(), -1)
	assert.ErrorIs(t, err, ErrInvalidTable)

	noConj := Spanish()
	noConj.Conjunction = ""
	_, err = New(noConj, Quetzales(), DefaultMaxWhole)
	assert.ErrorIs(t, err, ErrInvalidTable)

	c, err := New(short, Quetzales(), DefaultMaxWhole)
	require.NoError(t, err)
	assert.Equal(t, int64(DefaultMaxWhole), c.MaxWhole())

	// a low ceiling still needs the full 0..99 vocabulary for centavos
	unitsOnly := Spanish()
	unitsOnly.Teens = [10]string{}
	unitsOnly.Tens = [10]string{}
	_, err = New(unitsOnly, Quetzales(), 9)
	assert.ErrorIs(t, err, ErrInvalidTable)

	noConjLow := Spanish()
	noConjLow.Conjunction = ""
	_, err = New(noConjLow, Quetzales(), 9)
	assert.ErrorIs(t, err, ErrInvalidTable)

	noTeenLow := Spanish()
	noTeenLow.Teens[5] = ""
	_, err = New(noTeenLow, Quetzales(), 9)
	assert.ErrorIs(t, err, ErrInvalidTable)
}
