package xlbind

import (
	"fmt"
	"io"
)

// ImportFile reads the selected sheet of the xlsx file at path into a slice
// of T. See ImportRows for the mapping rules.
func ImportFile[T any](path string, opts ...Option) ([]T, error) {
	wb, err := OpenWorkbook(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()
	return importWorkbook[T](wb, newOptions(opts))
}

// ImportReader is ImportFile for a workbook read from r.
func ImportReader[T any](r io.Reader, opts ...Option) ([]T, error) {
	wb, err := OpenWorkbookReader(r)
	if err != nil {
		return nil, err
	}
	defer wb.Close()
	return importWorkbook[T](wb, newOptions(opts))
}

func importWorkbook[T any](wb *Workbook, o *Options) ([]T, error) {
	sheet, err := wb.Sheet(o.sheetName)
	if err != nil {
		return nil, err
	}
	o.logger.Debug("sheet loaded", "source", wb.source, "sheet", sheet.Name(), "rows", len(sheet.Rows()))
	return importRows[T](sheet, o)
}

// ImportRows maps every row of sheet after the first into a T, in sheet
// order. The first physical row is the header. A sheet without data rows
// yields an empty slice.
//
// Rows that fail to map are handled according to WithErrorPolicy; by default
// the first failure aborts the import with a *MappingError.
func ImportRows[T any](sheet Sheet, opts ...Option) ([]T, error) {
	return importRows[T](sheet, newOptions(opts))
}

func importRows[T any](sheet Sheet, o *Options) ([]T, error) {
	header := headerRow(sheet)
	if header != nil && len(o.expectedHeaders) > 0 && !ValidateHeader(header, o.expectedHeaders) {
		return nil, fmt.Errorf("%w: sheet %q", ErrHeaderMismatch, sheet.Name())
	}

	filter, err := compileRowFilter(o.rowFilter)
	if err != nil {
		return nil, err
	}
	bind, err := newBinder[T]()
	if err != nil {
		return nil, err
	}

	out := make([]T, 0)
	var failed MappingErrors
	skipped := 0
	for _, row := range sheet.Rows() {
		if header != nil && row.Index == header.Index {
			continue
		}
		rec := BuildRecord(row, header)

		keep, err := filter.Keep(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d of sheet %q: %w", row.Index+1, sheet.Name(), err)
		}
		if !keep {
			skipped++
			continue
		}

		v, err := bind(rec)
		if err != nil {
			me := annotateRowError(err, row, header)
			me.Sheet = sheet.Name()
			switch o.errorPolicy {
			case SkipInvalidRows:
				o.logger.Warn("skipping row", "sheet", me.Sheet, "row", me.Row+1, "error", me.Err)
				continue
			case CollectErrors:
				failed = append(failed, me)
				continue
			default:
				return nil, me
			}
		}
		out = append(out, v)
	}

	o.logger.Debug("rows imported", "sheet", sheet.Name(), "imported", len(out), "filtered", skipped, "failed", len(failed))
	if len(failed) > 0 {
		return out, failed
	}
	return out, nil
}
