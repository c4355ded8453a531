package xlbind

import "io"

// ValidateHeader reports whether every non-blank header cell matches one of
// the expected labels after normalization. Order does not matter and the
// check is one-directional: expected labels missing from the header are not
// reported (see MissingHeaders).
func ValidateHeader(header *RowData, expected []string) bool {
	if header == nil {
		return true
	}
	want := normalizeAll(expected)
	for _, cell := range header.Cells {
		name := Normalize(Coerce(cell))
		if name == "" {
			continue
		}
		if _, ok := want[name]; !ok {
			return false
		}
	}
	return true
}

// MissingHeaders returns the expected labels, in their given order, that no
// header cell normalizes to. Callers combine it with ValidateHeader for a
// strict two-way schema check.
func MissingHeaders(header *RowData, expected []string) []string {
	present := make(map[string]struct{})
	if header != nil {
		for _, cell := range header.Cells {
			if name := Normalize(Coerce(cell)); name != "" {
				present[name] = struct{}{}
			}
		}
	}
	var missing []string
	for _, label := range expected {
		if _, ok := present[Normalize(label)]; !ok {
			missing = append(missing, label)
		}
	}
	return missing
}

// ValidateHeaderFile opens the workbook at path and validates the header row
// of the selected sheet (see WithSheet).
func ValidateHeaderFile(path string, expected []string, opts ...Option) (bool, error) {
	wb, err := OpenWorkbook(path)
	if err != nil {
		return false, err
	}
	defer wb.Close()
	return validateWorkbookHeader(wb, expected, newOptions(opts))
}

// ValidateHeaderReader is ValidateHeaderFile for a workbook read from r.
func ValidateHeaderReader(r io.Reader, expected []string, opts ...Option) (bool, error) {
	wb, err := OpenWorkbookReader(r)
	if err != nil {
		return false, err
	}
	defer wb.Close()
	return validateWorkbookHeader(wb, expected, newOptions(opts))
}

func validateWorkbookHeader(wb *Workbook, expected []string, o *Options) (bool, error) {
	sheet, err := wb.Sheet(o.sheetName)
	if err != nil {
		return false, err
	}
	return ValidateHeader(headerRow(sheet), expected), nil
}

func normalizeAll(labels []string) map[string]struct{} {
	out := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		out[Normalize(l)] = struct{}{}
	}
	return out
}
