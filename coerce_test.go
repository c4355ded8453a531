package xlbind

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCoerce_Numbers(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		formatted string
		want      string
	}{
		{"trailing zero", 12.5, "12.50", "12.5"},
		{"all zero decimals", 12, "12.00", "12"},
		{"integer", 12, "12", "12"},
		{"integer with zeros", 100, "100", "100"},
		{"unformatted integer", 12, "", "12"},
		{"unformatted fraction", 0.25, "", "0.25"},
		{"grouped", 1200.5, "1,200.50", "1,200.5"},
		{"negative", -3.1, "-3.10", "-3.1"},
		{"exponent kept", 1.23e20, "1.23E+20", "1.23E+20"},
		{"exponent with fraction zeros", 1.2e6, "1.20E+06", "1.2E+06"},
		{"negative exponent", 0.000105, "1.050E-04", "1.05E-04"},
		{"whole mantissa", 1e6, "1.00E+06", "1E+06"},
		{"lower-case exponent", 3e10, "3.0e10", "3e10"},
		{"percent suffix", 0.125, "12.50%", "12.5%"},
		{"accounting negative", -1.5, "(1.50)", "(1.5)"},
		{"comma decimal left alone", 1200.5, "1.200,50", "1.200,50"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cd := &CellData{Type: CellNumber, Value: tt.value, Formatted: tt.formatted}
			assert.Equal(t, tt.want, Coerce(cd))
		})
	}
}

func TestTrimNumber(t *testing.T) {
	assert.Equal(t, "12", trimNumber("12."))
	assert.Equal(t, "100", trimNumber("100"))
	assert.Equal(t, "1E+20", trimNumber("1.0E+20"))
	assert.Equal(t, "$1.5", trimNumber("$1.50"))
	assert.Equal(t, "2.5 kg", trimNumber("2.50 kg"))
}

func TestIsExponent(t *testing.T) {
	for _, s := range []string{"E+20", "e-4", "E06"} {
		assert.True(t, isExponent(s), s)
	}
	for _, s := range []string{"", "E", "E+", "EUR", "%"} {
		assert.False(t, isExponent(s), s)
	}
}

func TestCoerce_Text(t *testing.T) {
	assert.Equal(t, "  Hello, World  ", Coerce(&CellData{Type: CellString, Value: "  Hello, World  "}))
	assert.Equal(t, "12.50", Coerce(&CellData{Type: CellString, Value: "12.50"}), "text is never trimmed as a number")
}

func TestCoerce_Boolean(t *testing.T) {
	assert.Equal(t, "true", Coerce(&CellData{Type: CellBoolean, Value: true}))
	assert.Equal(t, "false", Coerce(&CellData{Type: CellBoolean, Value: false}))
}

func TestCoerce_Dates(t *testing.T) {
	assert.Equal(t, "03/07/2024", Coerce(&CellData{Type: CellNumber, Value: 45358.0, IsDate: true}))
	assert.Equal(t, "03/07/2024", Coerce(&CellData{Type: CellNumber, Value: 45358.75, IsDate: true}), "time of day is dropped")
	assert.Equal(t, "03/07/2024", Coerce(&CellData{Type: CellNumber, Value: 43896.0, IsDate: true, Date1904: true}))
	assert.Equal(t, "03/07/2024", Coerce(&CellData{Type: CellDate, Value: time.Date(2024, 3, 7, 10, 30, 0, 0, time.UTC)}))
	assert.Equal(t, "", Coerce(&CellData{Type: CellNumber, Value: -1.0, IsDate: true}), "negative serials have no date")
}

func TestCoerce_FormulaReturnsSource(t *testing.T) {
	cd := &CellData{Type: CellFormula, Formula: "SUM(A1:A3)", Value: "6"}
	assert.Equal(t, "SUM(A1:A3)", Coerce(cd))
	assert.True(t, cd.IsFormulaCell())

	assert.Equal(t, "A1*2", Coerce(&CellData{Type: CellFormula, Formula: "=A1*2"}))
}

func TestCoerce_Errors(t *testing.T) {
	tests := map[string]string{
		"#NULL!":  "0",
		"#DIV/0!": "7",
		"#VALUE!": "15",
		"#REF!":   "23",
		"#NAME?":  "29",
		"#NUM!":   "36",
		"#N/A":    "42",
		"#SPILL!": "#SPILL!",
	}
	for literal, want := range tests {
		assert.Equal(t, want, Coerce(&CellData{Type: CellError, Value: literal}), literal)
	}
}

func TestCoerce_FailSafe(t *testing.T) {
	assert.Equal(t, "", Coerce(nil))
	assert.Equal(t, "", Coerce(&CellData{Type: CellBlank}))
	assert.Equal(t, "", Coerce(&CellData{Type: CellType(99), Value: "x"}))
	assert.Equal(t, "", Coerce(&CellData{Type: CellNumber, Value: struct{}{}}))
	assert.Equal(t, "", Coerce(&CellData{Type: CellString, Value: 42}))
}

func TestCellData_Text(t *testing.T) {
	cd := NewCellData(NewCellRef("Sheet1", 0, 0), 3.0, CellNumber)
	assert.Equal(t, "3", cd.Text())
	assert.Equal(t, "Number", cd.Type.String())
	assert.Equal(t, "Unknown", CellType(99).String())
}
