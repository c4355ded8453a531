package xlbind

import "sort"

// RowRecord maps canonical field names to the coerced values of one data row.
type RowRecord map[string]string

// Keys returns the record's field names in sorted order.
func (r RowRecord) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// folded returns r keyed by foldName. Keys that fold together keep the value
// of the last key in sorted order. The blank key is left out.
func (r RowRecord) folded() map[string]string {
	out := make(map[string]string, len(r))
	for _, k := range r.Keys() {
		if k == "" {
			continue
		}
		out[foldName(k)] = r[k]
	}
	return out
}

// BuildRecord pairs each cell of row with the header cell in the same column.
// Keys are normalized header texts, values are coerced cell texts. When two
// header cells normalize to the same name the rightmost column wins. Cells
// under a blank header are kept under the key "", which no field name uses.
func BuildRecord(row, header *RowData) RowRecord {
	rec := make(RowRecord)
	if row == nil {
		return rec
	}
	for _, cell := range row.Cells {
		key := Normalize(Coerce(header.Cell(cell.Ref.Col)))
		rec[key] = Coerce(cell)
	}
	return rec
}

// RowBinder is implemented by types that populate themselves from a record.
// MapRow prefers it over any schema.
type RowBinder interface {
	BindRow(rec RowRecord) error
}

// Exportable is implemented by every type that can be written by Export. The
// returned map is keyed by canonical field name.
type Exportable interface {
	FieldMap() map[string]string
}

// Exportables converts a typed slice into the []Exportable form Export takes.
func Exportables[T Exportable](items []T) []Exportable {
	out := make([]Exportable, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}

// Record is a schemaless row: every column becomes a field. It binds from any
// sheet and exports any header key.
type Record map[string]string

// BindRow copies rec into r.
func (r *Record) BindRow(rec RowRecord) error {
	if *r == nil {
		*r = make(Record, len(rec))
	}
	for k, v := range rec {
		if k == "" {
			continue
		}
		(*r)[k] = v
	}
	return nil
}

// FieldMap returns r as is. Its keys are matched to header keys by Export.
func (r Record) FieldMap() map[string]string {
	return r
}
