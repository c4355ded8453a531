package xlbind

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Workbook reads sheets of an xlsx workbook into typed in-memory SheetData.
// A Workbook is not safe for concurrent use.
type Workbook struct {
	file       *excelize.File
	source     string
	date1904   bool
	dateStyles map[int]bool // style ID → carries a date number format
}

// NewWorkbook wraps an already opened excelize file.
func NewWorkbook(f *excelize.File) *Workbook {
	wb := &Workbook{
		file:       f,
		source:     f.Path,
		dateStyles: make(map[int]bool),
	}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		wb.date1904 = *props.Date1904
	}
	return wb
}

// OpenWorkbook opens an xlsx file. Failures are reported as *SourceOpenError.
func OpenWorkbook(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &SourceOpenError{Source: path, Err: err}
	}
	return NewWorkbook(f), nil
}

// OpenWorkbookReader opens an xlsx workbook from r.
func OpenWorkbookReader(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &SourceOpenError{Source: "<reader>", Err: err}
	}
	wb := NewWorkbook(f)
	wb.source = "<reader>"
	return wb, nil
}

// SheetNames returns the workbook's sheet titles in tab order.
func (wb *Workbook) SheetNames() []string {
	return wb.file.GetSheetList()
}

// Sheet reads the named sheet. An empty name selects the first sheet.
func (wb *Workbook) Sheet(name string) (*SheetData, error) {
	names := wb.file.GetSheetList()
	if name == "" {
		if len(names) == 0 {
			return nil, fmt.Errorf("%w: workbook %q has no sheets", ErrSheetNotFound, wb.source)
		}
		name = names[0]
	} else if !slices.Contains(names, name) {
		return nil, fmt.Errorf("%w: %q in workbook %q", ErrSheetNotFound, name, wb.source)
	}
	return wb.readSheet(name)
}

// Close closes the underlying excelize file.
func (wb *Workbook) Close() error {
	return wb.file.Close()
}

// File returns the underlying excelize file for advanced operations.
func (wb *Workbook) File() *excelize.File {
	return wb.file
}

// readSheet materializes every non-empty cell of a sheet.
func (wb *Workbook) readSheet(sheet string) (*SheetData, error) {
	rows, err := wb.file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read rows from sheet %q: %w", sheet, err)
	}

	data := make([]*RowData, 0, len(rows))
	for rowIdx, row := range rows {
		rd := &RowData{Index: rowIdx}
		for colIdx, raw := range row {
			cd, err := wb.readCell(sheet, rowIdx, colIdx, raw)
			if err != nil {
				return nil, err
			}
			if cd != nil {
				rd.Cells = append(rd.Cells, cd)
			}
		}
		data = append(data, rd)
	}
	return NewSheetData(sheet, data...), nil
}

// readCell types a single cell. Empty cells without a formula are treated as
// absent and yield nil.
func (wb *Workbook) readCell(sheet string, rowIdx, colIdx int, raw string) (*CellData, error) {
	ref := NewCellRef(sheet, rowIdx, colIdx)
	cell := ref.CellName()

	formula, err := wb.file.GetCellFormula(sheet, cell)
	if err != nil {
		return nil, fmt.Errorf("read formula of %s: %w", ref, err)
	}
	if formula != "" {
		return &CellData{Ref: ref, Type: CellFormula, Formula: formula, Value: raw}, nil
	}
	if raw == "" {
		return nil, nil
	}

	cellType, err := wb.file.GetCellType(sheet, cell)
	if err != nil {
		return nil, fmt.Errorf("read type of %s: %w", ref, err)
	}

	switch cellType {
	case excelize.CellTypeBool:
		return NewCellData(ref, raw == "1" || strings.EqualFold(raw, "true"), CellBoolean), nil
	case excelize.CellTypeError:
		return NewCellData(ref, raw, CellError), nil
	case excelize.CellTypeDate:
		if t, ok := parseISODate(raw); ok {
			return NewCellData(ref, t, CellDate), nil
		}
		return NewCellData(ref, raw, CellString), nil
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return NewCellData(ref, raw, CellString), nil
	}

	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return NewCellData(ref, raw, CellString), nil
	}
	cd := &CellData{Ref: ref, Type: CellNumber, Value: n, Date1904: wb.date1904}
	if wb.isDateCell(sheet, cell) {
		cd.IsDate = true
		return cd, nil
	}
	formatted, err := wb.file.GetCellValue(sheet, cell)
	if err != nil {
		return nil, fmt.Errorf("read value of %s: %w", ref, err)
	}
	cd.Formatted = formatted
	return cd, nil
}

// isDateCell reports whether the cell's number format renders a date or time.
func (wb *Workbook) isDateCell(sheet, cell string) bool {
	styleID, err := wb.file.GetCellStyle(sheet, cell)
	if err != nil || styleID == 0 {
		return false
	}
	if isDate, ok := wb.dateStyles[styleID]; ok {
		return isDate
	}
	isDate := false
	if style, err := wb.file.GetStyle(styleID); err == nil && style != nil {
		if style.CustomNumFmt != nil {
			isDate = isDateFormatCode(*style.CustomNumFmt)
		} else {
			isDate = isBuiltInDateFormat(style.NumFmt)
		}
	}
	wb.dateStyles[styleID] = isDate
	return isDate
}

// isBuiltInDateFormat reports whether a built-in number format ID is a date
// or time format, including the East Asian locale formats.
func isBuiltInDateFormat(id int) bool {
	switch {
	case id >= 14 && id <= 22,
		id >= 27 && id <= 36,
		id >= 45 && id <= 47,
		id >= 50 && id <= 58:
		return true
	}
	return false
}

// isDateFormatCode reports whether a custom number format code renders a date
// or time. Only the first section is inspected; quoted literals, escaped
// characters and bracketed colour or locale tokens are ignored, while elapsed
// time tokens such as [h] count.
func isDateFormatCode(code string) bool {
	if i := strings.IndexByte(code, ';'); i >= 0 {
		code = code[:i]
	}
	if strings.Contains(strings.ToLower(code), "general") {
		return false
	}
	var b strings.Builder
	for i := 0; i < len(code); i++ {
		switch c := code[i]; c {
		case '"':
			j := strings.IndexByte(code[i+1:], '"')
			if j < 0 {
				i = len(code)
			} else {
				i += j + 1
			}
		case '\\':
			i++
		case '[':
			j := strings.IndexByte(code[i:], ']')
			if j < 0 {
				i = len(code)
				continue
			}
			token := strings.ToLower(code[i+1 : i+j])
			if strings.Trim(token, "hms") == "" && token != "" {
				b.WriteString(token)
			}
			i += j
		default:
			b.WriteByte(c)
		}
	}
	return strings.ContainsAny(strings.ToLower(b.String()), "ymdhs")
}

var isoLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

func parseISODate(raw string) (time.Time, bool) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
