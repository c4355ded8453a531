package xlbind

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"unicode/utf8"
)

// Dataset is one exported sheet: its name (a label key), the header keys of
// its columns in order, and the records to write below the header.
type Dataset struct {
	Name    string
	Headers []string
	Records []Exportable
}

// Datasets pairs records with header specs by dataset name. One Dataset is
// returned per entry of headers, sorted by name; datasets without records
// produce a header-only sheet.
func Datasets(records map[string][]Exportable, headers map[string][]string) []Dataset {
	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Strings(names)

	sets := make([]Dataset, 0, len(names))
	for _, name := range names {
		sets = append(sets, Dataset{Name: name, Headers: headers[name], Records: records[name]})
	}
	return sets
}

// Export writes one sheet per entry of headers to w. Sheet titles and header
// cells are looked up in labels; a key without a label is used as is. Body
// cells hold each record's FieldMap value for the normalized header key, or
// for the key equal to it ignoring case, or "" when the record has neither.
func Export(w io.Writer, records map[string][]Exportable, headers map[string][]string, labels map[string]string, opts ...Option) error {
	return ExportDatasets(w, Datasets(records, headers), labels, opts...)
}

// ExportDatasets is Export with an explicit sheet order.
func ExportDatasets(w io.Writer, sets []Dataset, labels map[string]string, opts ...Option) error {
	doc := NewExcelizeWriter()
	defer doc.Close()

	if err := RenderDatasets(doc, sets, labels, opts...); err != nil {
		return err
	}
	if err := doc.Write(w); err != nil {
		return &WriteError{Err: err}
	}
	return nil
}

// ExportBytes renders sets and returns the workbook bytes.
func ExportBytes(sets []Dataset, labels map[string]string, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := ExportDatasets(&buf, sets, labels, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportFile renders sets into a new file at path. The file is removed if
// rendering or writing fails.
func ExportFile(path string, sets []Dataset, labels map[string]string, opts ...Option) (err error) {
	out, err := os.Create(path)
	if err != nil {
		return &WriteError{Dest: path, Err: err}
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = &WriteError{Dest: path, Err: cerr}
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	if err := ExportDatasets(out, sets, labels, opts...); err != nil {
		var we *WriteError
		if errors.As(err, &we) {
			return &WriteError{Dest: path, Err: we.Err}
		}
		return err
	}
	return nil
}

// RenderDatasets writes sets into doc, one sheet each, without serializing it.
func RenderDatasets(doc DocumentWriter, sets []Dataset, labels map[string]string, opts ...Option) error {
	o := newOptions(opts)
	titles := make(map[string]string, len(sets)) // lower-cased title → dataset name
	for _, ds := range sets {
		title := SafeSheetName(label(labels, ds.Name))
		if title == "" {
			return fmt.Errorf("dataset %q: empty sheet title", ds.Name)
		}
		// sheet titles are case-insensitive in a workbook
		key := strings.ToLower(title)
		if prev, dup := titles[key]; dup {
			return fmt.Errorf("%w: %q used by datasets %q and %q", ErrDuplicateSheet, title, prev, ds.Name)
		}
		titles[key] = ds.Name

		if err := renderDataset(doc, title, ds, labels, o); err != nil {
			return fmt.Errorf("dataset %q: %w", ds.Name, err)
		}
		o.logger.Debug("dataset rendered", "dataset", ds.Name, "sheet", title, "rows", len(ds.Records))
	}
	return nil
}

func renderDataset(doc DocumentWriter, title string, ds Dataset, labels map[string]string, o *Options) error {
	if err := doc.NewSheet(title); err != nil {
		return err
	}

	widths := make([]int, len(ds.Headers))
	fields := make([]string, len(ds.Headers))
	for col, key := range ds.Headers {
		text := label(labels, key)
		if err := doc.SetCell(NewCellRef(title, 0, col), text, o.headerStyle); err != nil {
			return err
		}
		widths[col] = utf8.RuneCountInString(text)
		fields[col] = Normalize(key)
	}

	for i, rec := range ds.Records {
		values := fieldValues(rec)
		for col, field := range fields {
			v := values.lookup(field)
			if err := doc.SetCell(NewCellRef(title, i+1, col), v, o.bodyStyle); err != nil {
				return err
			}
			widths[col] = max(widths[col], utf8.RuneCountInString(v))
		}
	}

	if !o.autoWidth {
		return nil
	}
	for col, w := range widths {
		if err := doc.SetColumnWidth(title, col, columnWidth(w)); err != nil {
			return fmt.Errorf("set width of column %s: %w", ColToName(col), err)
		}
	}
	return nil
}

// recordValues indexes one record's field map by exact and by folded key.
type recordValues struct {
	exact  map[string]string
	folded map[string]string
}

func fieldValues(rec Exportable) recordValues {
	if rec == nil {
		return recordValues{}
	}
	raw := rec.FieldMap()
	return recordValues{exact: raw, folded: RowRecord(raw).folded()}
}

// lookup returns the value stored under field, else under a key that folds
// to the same name.
func (r recordValues) lookup(field string) string {
	if v, ok := r.exact[field]; ok {
		return v
	}
	return r.folded[foldName(field)]
}

func label(labels map[string]string, key string) string {
	if l, ok := labels[key]; ok && l != "" {
		return l
	}
	return key
}

// columnWidth converts a character count into a column width, bounded to a
// readable range.
func columnWidth(chars int) float64 {
	return float64(min(max(chars+2, 8), 80))
}
