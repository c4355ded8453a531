package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func runSplit(t *testing.T, args ...string) (stdout, stderr *bytes.Buffer, err error) {
	t.Helper()
	cmd := newRootCmd()
	stdout, stderr = &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	return stdout, stderr, cmd.Execute()
}

func writeSheet(t *testing.T, rows ...[]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	path := filepath.Join(t.TempDir(), "input.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestImportCmd(t *testing.T) {
	path := writeSheet(t,
		[]any{"SKU", "Status"},
		[]any{"A-1", "active"},
		[]any{"A-2", "archived"},
	)

	out, err := run(t, "import", path, "--filter", `status != "archived"`)
	require.NoError(t, err)

	var records []map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	assert.Equal(t, []map[string]string{{"sku": "A-1", "status": "active"}}, records)
}

func TestValidateCmd(t *testing.T) {
	path := writeSheet(t, []any{"First Name", "Last Name"})

	out, err := run(t, "validate", path, "--expect", "first_name,last_name")
	require.NoError(t, err)
	assert.Contains(t, out, "header OK")

	_, err = run(t, "validate", path, "--expect", "first_name")
	assert.ErrorContains(t, err, "header row does not match")
}

func TestDescribeCmd(t *testing.T) {
	path := writeSheet(t, []any{"Unit Price"}, []any{1})

	out, err := run(t, "describe", path)
	require.NoError(t, err)
	assert.Contains(t, out, `A1 "Unit Price" -> unitPrice`)
}

func TestExportCmd(t *testing.T) {
	dir := t.TempDir()
	specPath := filepath.Join(dir, "report.yaml")
	dataPath := filepath.Join(dir, "data.json")
	outPath := filepath.Join(dir, "report.xlsx")

	require.NoError(t, os.WriteFile(specPath, []byte(`
labels:
  customers: Customers
  firstName: First Name
datasets:
  - name: customers
    headers: [firstName]
`), 0o644))
	require.NoError(t, os.WriteFile(dataPath, []byte(`{"customers": [{"firstName": "Ada"}, {"first_name": "Alan"}]}`), 0o644))

	_, err := run(t, "export", "--spec", specPath, "--data", dataPath, "-o", outPath)
	require.NoError(t, err)

	out, err := run(t, "import", outPath, "--sheet", "Customers")
	require.NoError(t, err)
	var records []map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	assert.Equal(t, []map[string]string{{"firstName": "Ada"}, {"firstName": "Alan"}}, records)
}

func TestVerboseStaysWithItsCommand(t *testing.T) {
	path := writeSheet(t,
		[]any{"SKU"},
		[]any{"A-1"},
	)

	_, verboseErr, err := runSplit(t, "import", path, "--verbose")
	require.NoError(t, err)
	assert.Contains(t, verboseErr.String(), "sheet loaded")
	logged := verboseErr.Len()

	out, quietErr, err := runSplit(t, "import", path)
	require.NoError(t, err)
	assert.NotContains(t, quietErr.String(), "level=DEBUG")
	assert.Equal(t, logged, verboseErr.Len(), "second command must not log to the first command's stderr")

	var records []map[string]string
	require.NoError(t, json.Unmarshal(out.Bytes(), &records))
	assert.Equal(t, []map[string]string{{"sku": "A-1"}}, records)
}

func TestRootCmdsHaveSeparateVerboseFlags(t *testing.T) {
	first := newRootCmd()
	require.NoError(t, first.PersistentFlags().Set("verbose", "true"))

	second := newRootCmd()
	verbose, err := second.PersistentFlags().GetBool("verbose")
	require.NoError(t, err)
	assert.False(t, verbose)
}
