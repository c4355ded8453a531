package xlbind

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// CellRef is the position of a cell. Row and Col are 0-based.
type CellRef struct {
	Sheet string
	Row   int
	Col   int
}

// NewCellRef returns the reference of the cell at row, col of sheet.
func NewCellRef(sheet string, row, col int) CellRef {
	return CellRef{Sheet: sheet, Row: row, Col: col}
}

// String renders the reference in A1 notation, qualified by the sheet name
// when one is set: "Orders!B3".
func (c CellRef) String() string {
	if c.Sheet == "" {
		return c.CellName()
	}
	return c.Sheet + "!" + c.CellName()
}

// CellName renders the reference in A1 notation without the sheet.
func (c CellRef) CellName() string {
	name, err := excelize.CoordinatesToCellName(c.Col+1, c.Row+1)
	if err != nil {
		return ""
	}
	return name
}

// ColToName returns the letters of a 0-based column: 0 → "A", 26 → "AA".
// Columns outside the worksheet range yield "".
func ColToName(col int) string {
	name, err := excelize.ColumnNumberToName(col + 1)
	if err != nil {
		return ""
	}
	return name
}

const maxSheetNameLen = 31

// SafeSheetName replaces the characters a worksheet title may not contain
// with '_' and cuts the result to 31 characters.
func SafeSheetName(name string) string {
	safe := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`/\:*?[]`, r) {
			return '_'
		}
		return r
	}, name)
	if r := []rune(safe); len(r) > maxSheetNameLen {
		safe = string(r[:maxSheetNameLen])
	}
	return safe
}
