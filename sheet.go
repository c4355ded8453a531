package xlbind

import (
	"io"
	"sort"
)

// Sheet is a read-only view of one worksheet, materialized in memory.
type Sheet interface {
	// Name returns the sheet title.
	Name() string
	// FirstRowNum returns the 0-based index of the first physical row, or -1
	// if the sheet has no rows.
	FirstRowNum() int
	// Row returns the row at a 0-based index, or nil if the row is absent.
	Row(index int) *RowData
	// Rows returns all physical rows in ascending index order.
	Rows() []*RowData
}

// DocumentWriter abstracts building an output workbook.
type DocumentWriter interface {
	NewSheet(name string) error
	SetCell(ref CellRef, text string, style CellStyle) error
	SetColumnWidth(sheet string, col int, width float64) error
	Write(w io.Writer) error
	Close() error
}

// RowData holds the cells of a single physical row.
type RowData struct {
	Index int         // 0-based row index
	Cells []*CellData // present cells, ascending column order
}

// Cell returns the cell at a 0-based column index, or nil if absent.
func (r *RowData) Cell(col int) *CellData {
	if r == nil {
		return nil
	}
	i := sort.Search(len(r.Cells), func(i int) bool { return r.Cells[i].Ref.Col >= col })
	if i < len(r.Cells) && r.Cells[i].Ref.Col == col {
		return r.Cells[i]
	}
	return nil
}

// SheetData is the in-memory Sheet implementation.
type SheetData struct {
	name string
	rows []*RowData
}

// NewSheetData builds a sheet from rows. Rows and cells are sorted by index;
// rows without cells are dropped.
func NewSheetData(name string, rows ...*RowData) *SheetData {
	sd := &SheetData{name: name}
	for _, r := range rows {
		if r == nil || len(r.Cells) == 0 {
			continue
		}
		sort.SliceStable(r.Cells, func(i, j int) bool { return r.Cells[i].Ref.Col < r.Cells[j].Ref.Col })
		sd.rows = append(sd.rows, r)
	}
	sort.SliceStable(sd.rows, func(i, j int) bool { return sd.rows[i].Index < sd.rows[j].Index })
	return sd
}

// Name returns the sheet title.
func (s *SheetData) Name() string { return s.name }

// FirstRowNum returns the index of the first physical row, or -1.
func (s *SheetData) FirstRowNum() int {
	if len(s.rows) == 0 {
		return -1
	}
	return s.rows[0].Index
}

// Row returns the row at index, or nil.
func (s *SheetData) Row(index int) *RowData {
	i := sort.Search(len(s.rows), func(i int) bool { return s.rows[i].Index >= index })
	if i < len(s.rows) && s.rows[i].Index == index {
		return s.rows[i]
	}
	return nil
}

// Rows returns all physical rows.
func (s *SheetData) Rows() []*RowData { return s.rows }

// headerRow returns the first physical row of sheet, or nil.
func headerRow(sheet Sheet) *RowData {
	first := sheet.FirstRowNum()
	if first < 0 {
		return nil
	}
	return sheet.Row(first)
}
