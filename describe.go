package xlbind

import (
	"fmt"
	"strings"
)

// DescribeFile opens the workbook at path and describes the selected sheet.
func DescribeFile(path string, opts ...Option) (string, error) {
	wb, err := OpenWorkbook(path)
	if err != nil {
		return "", err
	}
	defer wb.Close()

	o := newOptions(opts)
	sheet, err := wb.Sheet(o.sheetName)
	if err != nil {
		return "", err
	}
	return Describe(sheet), nil
}

// Describe returns a human-readable report of how a sheet's header row maps
// to field names. Useful for debugging schemas during development.
//
//	Sheet: Customers (3 data rows)
//	  A1 "First Name" -> firstName
//	  B1 "#" (ignored)
//	  C1 "first_name" -> firstName (duplicate, overrides A1)
func Describe(sheet Sheet) string {
	var b strings.Builder
	header := headerRow(sheet)
	if header == nil {
		fmt.Fprintf(&b, "Sheet: %s (empty)\n", sheet.Name())
		return b.String()
	}

	dataRows := 0
	for _, row := range sheet.Rows() {
		if row.Index != header.Index {
			dataRows++
		}
	}
	fmt.Fprintf(&b, "Sheet: %s (%d data rows)\n", sheet.Name(), dataRows)

	seen := make(map[string]string)
	for _, cell := range header.Cells {
		text := Coerce(cell)
		name := Normalize(text)
		ref := cell.Ref.CellName()
		if name == "" {
			fmt.Fprintf(&b, "  %s %q (ignored)\n", ref, text)
			continue
		}
		fmt.Fprintf(&b, "  %s %q -> %s", ref, text, name)
		if prev, dup := seen[name]; dup {
			fmt.Fprintf(&b, " (duplicate, overrides %s)", prev)
		}
		b.WriteByte('\n')
		seen[name] = ref
	}
	return b.String()
}
