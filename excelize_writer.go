package xlbind

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ExcelizeWriter implements DocumentWriter using excelize.
type ExcelizeWriter struct {
	file   *excelize.File
	sheets int
	styles map[CellStyle]int // style descriptor → workbook style ID
}

var _ DocumentWriter = (*ExcelizeWriter)(nil)

// NewExcelizeWriter creates a writer over a new, empty workbook.
func NewExcelizeWriter() *ExcelizeWriter {
	return &ExcelizeWriter{
		file:   excelize.NewFile(),
		styles: make(map[CellStyle]int),
	}
}

// NewSheet adds a sheet. The first call renames the workbook's default sheet.
func (w *ExcelizeWriter) NewSheet(name string) error {
	if w.sheets == 0 {
		if err := w.file.SetSheetName(w.file.GetSheetName(0), name); err != nil {
			return fmt.Errorf("create sheet %q: %w", name, err)
		}
	} else if _, err := w.file.NewSheet(name); err != nil {
		return fmt.Errorf("create sheet %q: %w", name, err)
	}
	w.sheets++
	return nil
}

// SetCell writes text as a string cell with the given style.
func (w *ExcelizeWriter) SetCell(ref CellRef, text string, style CellStyle) error {
	cell := ref.CellName()
	if err := w.file.SetCellStr(ref.Sheet, cell, text); err != nil {
		return fmt.Errorf("set cell %s: %w", ref, err)
	}
	styleID, err := w.styleID(style)
	if err != nil {
		return err
	}
	if err := w.file.SetCellStyle(ref.Sheet, cell, cell, styleID); err != nil {
		return fmt.Errorf("style cell %s: %w", ref, err)
	}
	return nil
}

// SetColumnWidth sets the width of a 0-based column.
func (w *ExcelizeWriter) SetColumnWidth(sheet string, col int, width float64) error {
	name := ColToName(col)
	return w.file.SetColWidth(sheet, name, name, width)
}

// Write serializes the workbook to out.
func (w *ExcelizeWriter) Write(out io.Writer) error {
	w.file.SetActiveSheet(0)
	return w.file.Write(out)
}

// Close releases the workbook.
func (w *ExcelizeWriter) Close() error {
	return w.file.Close()
}

// File returns the underlying excelize file for advanced operations.
func (w *ExcelizeWriter) File() *excelize.File {
	return w.file
}

func (w *ExcelizeWriter) styleID(s CellStyle) (int, error) {
	if id, ok := w.styles[s]; ok {
		return id, nil
	}
	id, err := w.file.NewStyle(s.excelizeStyle())
	if err != nil {
		return 0, fmt.Errorf("create style: %w", err)
	}
	w.styles[s] = id
	return id, nil
}
