package xlbind

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// testdataDir returns the path to testdata directory, creating it if needed.
func testdataDir(t *testing.T) string {
	t.Helper()
	dir := filepath.Join("testdata")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	return dir
}

// saveWorkbook writes f under testdata and removes it when the test ends.
func saveWorkbook(t *testing.T, f *excelize.File, name string) string {
	t.Helper()
	path := filepath.Join(testdataDir(t), name)
	require.NoError(t, f.SaveAs(path))
	t.Cleanup(func() { os.Remove(path) })
	return path
}

// workbookBytes serializes f into memory.
func workbookBytes(t *testing.T, f *excelize.File) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

// newGrid creates a workbook whose first sheet holds rows starting at A1.
// nil values leave the cell empty.
func newGrid(t *testing.T, rows ...[]any) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	t.Cleanup(func() { f.Close() })
	for r, row := range rows {
		for c, v := range row {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, v))
		}
	}
	return f
}

// setDateStyle applies a built-in date number format to cell.
func setDateStyle(t *testing.T, f *excelize.File, sheet, cell string) {
	t.Helper()
	style, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle(sheet, cell, cell, style))
}

// memSheet builds an in-memory sheet. Strings become text cells, numbers
// numeric cells and bools boolean cells; nil leaves the cell absent.
func memSheet(name string, rows ...[]any) *SheetData {
	data := make([]*RowData, 0, len(rows))
	for r, row := range rows {
		rd := &RowData{Index: r}
		for c, v := range row {
			ref := NewCellRef(name, r, c)
			switch x := v.(type) {
			case nil:
				continue
			case string:
				rd.Cells = append(rd.Cells, NewCellData(ref, x, CellString))
			case int:
				rd.Cells = append(rd.Cells, NewCellData(ref, float64(x), CellNumber))
			case float64:
				rd.Cells = append(rd.Cells, NewCellData(ref, x, CellNumber))
			case bool:
				rd.Cells = append(rd.Cells, NewCellData(ref, x, CellBoolean))
			case *CellData:
				x.Ref = ref
				rd.Cells = append(rd.Cells, x)
			}
		}
		data = append(data, rd)
	}
	return NewSheetData(name, data...)
}

// textRow builds a row of text cells.
func textRow(index int, texts ...string) *RowData {
	rd := &RowData{Index: index}
	for c, s := range texts {
		if s == "" {
			continue
		}
		rd.Cells = append(rd.Cells, NewCellData(NewCellRef("", index, c), s, CellString))
	}
	return rd
}
