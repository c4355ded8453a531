package xlbind

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSheetNotFound indicates the requested sheet does not exist in the workbook.
var ErrSheetNotFound = errors.New("sheet not found")

// ErrHeaderMismatch indicates the header row does not satisfy the expected labels.
var ErrHeaderMismatch = errors.New("header row does not match expected labels")

// ErrDuplicateSheet indicates two datasets resolve to the same sheet title.
var ErrDuplicateSheet = errors.New("duplicate sheet title")

// ErrNoSchema indicates a target type has no schema and is not a struct.
var ErrNoSchema = errors.New("no schema for target type")

// SourceOpenError reports an input document that could not be read as a workbook.
type SourceOpenError struct {
	Source string
	Err    error
}

func (e *SourceOpenError) Error() string {
	return fmt.Sprintf("open workbook %q: %v", e.Source, e.Err)
}

func (e *SourceOpenError) Unwrap() error {
	return e.Err
}

// MappingError reports a row that could not be bound to its target type.
type MappingError struct {
	Sheet  string
	Row    int    // 0-based row index
	Column string // column letter, empty when not tied to a cell
	Field  string // canonical field name
	Value  string // coerced cell text
	Err    error
}

func (e *MappingError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "map row %d", e.Row+1)
	if e.Sheet != "" {
		fmt.Fprintf(&b, " of sheet %q", e.Sheet)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, ", field %q", e.Field)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, " (column %s)", e.Column)
	}
	if e.Value != "" {
		fmt.Fprintf(&b, ", value %q", e.Value)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *MappingError) Unwrap() error {
	return e.Err
}

// MappingErrors collects the per-row failures of an import run with the
// CollectErrors policy.
type MappingErrors []*MappingError

func (m MappingErrors) Error() string {
	switch len(m) {
	case 0:
		return "no mapping errors"
	case 1:
		return m[0].Error()
	}
	msgs := make([]string, len(m))
	for i, e := range m {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("%d rows failed to map: %s", len(m), strings.Join(msgs, "; "))
}

// Unwrap exposes the individual row errors to errors.Is and errors.As.
func (m MappingErrors) Unwrap() []error {
	errs := make([]error, len(m))
	for i, e := range m {
		errs[i] = e
	}
	return errs
}

// WriteError reports an output document that could not be serialized.
type WriteError struct {
	Dest string
	Err  error
}

func (e *WriteError) Error() string {
	if e.Dest == "" {
		return fmt.Sprintf("write workbook: %v", e.Err)
	}
	return fmt.Sprintf("write workbook %q: %v", e.Dest, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
