package xlbind

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateHeader_OrderIndependent(t *testing.T) {
	header := textRow(0, "Last Name", "first_name", "EMAIL")
	assert.True(t, ValidateHeader(header, []string{"First Name", "Last Name", "Email"}))
	assert.True(t, ValidateHeader(header, []string{"email", "FIRST NAME", "last_name"}))
}

func TestValidateHeader_CaseOnlyVariants(t *testing.T) {
	header := textRow(0, "FIRSTNAME", "iPhone")
	assert.True(t, ValidateHeader(header, []string{"firstName", "IPHONE"}))
	assert.Empty(t, MissingHeaders(header, []string{"FirstName", "iphone"}))
}

func TestValidateHeader_UnknownColumnFails(t *testing.T) {
	header := textRow(0, "First Name", "Nickname")
	assert.False(t, ValidateHeader(header, []string{"First Name", "Last Name"}))
}

func TestValidateHeader_IgnoresBlankAndDecorativeCells(t *testing.T) {
	header := textRow(0, "First Name", "", "#", "---", "Last Name")
	assert.True(t, ValidateHeader(header, []string{"First Name", "Last Name"}))
}

func TestValidateHeader_OneDirectional(t *testing.T) {
	header := textRow(0, "First Name")
	assert.True(t, ValidateHeader(header, []string{"First Name", "Last Name", "Email"}))
	assert.Equal(t, []string{"Last Name", "Email"}, MissingHeaders(header, []string{"First Name", "Last Name", "Email"}))
}

func TestValidateHeader_NilHeader(t *testing.T) {
	assert.True(t, ValidateHeader(nil, []string{"First Name"}))
	assert.Equal(t, []string{"First Name"}, MissingHeaders(nil, []string{"First Name"}))
}

func TestValidateHeader_NonTextHeaderCells(t *testing.T) {
	header := &RowData{Cells: []*CellData{
		NewCellData(NewCellRef("", 0, 0), "Year", CellString),
		NewCellData(NewCellRef("", 0, 1), 2024.0, CellNumber),
	}}
	assert.True(t, ValidateHeader(header, []string{"Year", "2024"}))
	assert.False(t, ValidateHeader(header, []string{"Year"}))
}

func TestValidateHeaderFile(t *testing.T) {
	f := newGrid(t,
		[]any{"First Name", "Last Name"},
		[]any{"Ada", "Lovelace"},
	)
	path := saveWorkbook(t, f, "header_valid.xlsx")

	ok, err := ValidateHeaderFile(path, []string{"first_name", "last_name"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ValidateHeaderFile(path, []string{"first_name"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestValidateHeaderReader(t *testing.T) {
	f := newGrid(t, []any{"SKU", "Qty"})
	ok, err := ValidateHeaderReader(bytes.NewReader(workbookBytes(t, f)), []string{"sku", "qty"})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestValidateHeaderFile_Errors(t *testing.T) {
	_, err := ValidateHeaderFile("testdata/does_not_exist.xlsx", []string{"a"})
	var openErr *SourceOpenError
	require.ErrorAs(t, err, &openErr)
	assert.Equal(t, "testdata/does_not_exist.xlsx", openErr.Source)

	f := newGrid(t, []any{"A"})
	path := saveWorkbook(t, f, "header_sheet.xlsx")
	_, err = ValidateHeaderFile(path, []string{"a"}, WithSheet("Missing"))
	assert.True(t, errors.Is(err, ErrSheetNotFound))
}
