package xlbind

import "errors"

// MapRow binds one data row to a new T using header for field names.
//
// If *T implements RowBinder it binds itself. Otherwise the schema registered
// for T is used, or one derived from T's struct fields. Fields with no
// matching column keep their zero value; columns with no matching field are
// ignored.
func MapRow[T any](row, header *RowData) (T, error) {
	var zero T
	rec := BuildRecord(row, header)
	out, err := bindRecord[T](rec)
	if err != nil {
		return zero, annotateRowError(err, row, header)
	}
	return out, nil
}

// binder binds records into T. It is resolved once per import.
type binder[T any] func(rec RowRecord) (T, error)

func newBinder[T any]() (binder[T], error) {
	var probe T
	if _, ok := any(&probe).(RowBinder); ok {
		return func(rec RowRecord) (T, error) {
			var out T
			if err := any(&out).(RowBinder).BindRow(rec); err != nil {
				return out, err
			}
			return out, nil
		}, nil
	}
	schema, err := schemaFor[T]()
	if err != nil {
		return nil, err
	}
	return func(rec RowRecord) (T, error) {
		var out T
		err := schema.Bind(&out, rec)
		return out, err
	}, nil
}

func bindRecord[T any](rec RowRecord) (T, error) {
	bind, err := newBinder[T]()
	if err != nil {
		var zero T
		return zero, err
	}
	return bind(rec)
}

// annotateRowError returns err as a *MappingError carrying the row position
// and, when a field is known, the column it came from.
func annotateRowError(err error, row, header *RowData) *MappingError {
	var me *MappingError
	if !errors.As(err, &me) {
		me = &MappingError{Err: err}
	} else {
		cp := *me
		me = &cp
	}
	if row != nil {
		me.Row = row.Index
		if me.Field != "" && me.Column == "" {
			me.Column = columnOf(me.Field, header)
		}
	}
	return me
}

// columnOf returns the letter of the header column field was bound from: the
// rightmost column that normalizes to field, else the last in sorted key
// order of those that match it ignoring case, as Schema.Bind picks them.
func columnOf(field string, header *RowData) string {
	if header == nil {
		return ""
	}
	var folded, foldedKey string
	for i := len(header.Cells) - 1; i >= 0; i-- {
		cell := header.Cells[i]
		key := Normalize(Coerce(cell))
		if key == field {
			return ColToName(cell.Ref.Col)
		}
		if key != "" && foldName(key) == foldName(field) && (folded == "" || key > foldedKey) {
			folded, foldedKey = ColToName(cell.Ref.Col), key
		}
	}
	return folded
}
