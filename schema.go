package xlbind

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"
)

// Field describes how one canonical field name is bound into a T.
type Field[T any] struct {
	Name string                       // canonical field name
	Set  func(dst *T, v string) error // parses v and stores it in dst
}

// Schema is the field-descriptor table of a target type.
type Schema[T any] struct {
	fields map[string]Field[T]
	names  []string
}

// NewSchema builds a schema from explicit field descriptors. Names are
// normalized like header labels; a descriptor whose name normalizes to ""
// is dropped, and a later descriptor replaces an earlier one with the same
// name.
func NewSchema[T any](fields ...Field[T]) *Schema[T] {
	named := make([]Field[T], len(fields))
	for i, f := range fields {
		f.Name = Normalize(f.Name)
		named[i] = f
	}
	return buildSchema(named)
}

// buildSchema indexes fields by name as given.
func buildSchema[T any](fields []Field[T]) *Schema[T] {
	s := &Schema[T]{fields: make(map[string]Field[T], len(fields))}
	for _, f := range fields {
		// an empty name would bind cells under blank header columns
		if f.Name == "" {
			continue
		}
		if _, dup := s.fields[f.Name]; !dup {
			s.names = append(s.names, f.Name)
		}
		s.fields[f.Name] = f
	}
	return s
}

// Names returns the schema's field names in declaration order.
func (s *Schema[T]) Names() []string {
	return append([]string(nil), s.names...)
}

// Bind stores every record value whose key names a schema field into dst.
// A field takes the value under its own name, or failing that the value whose
// key equals the name ignoring case. Keys without a field are ignored. The
// first failing field aborts binding.
func (s *Schema[T]) Bind(dst *T, rec RowRecord) error {
	var folded map[string]string
	for _, name := range s.names {
		v, ok := rec[name]
		if !ok {
			if folded == nil {
				folded = rec.folded()
			}
			v, ok = folded[foldName(name)]
		}
		if !ok {
			continue
		}
		if err := s.fields[name].Set(dst, v); err != nil {
			return &MappingError{Field: name, Value: v, Err: err}
		}
	}
	return nil
}

// StringField binds a string field.
func StringField[T any](name string, ptr func(*T) *string) Field[T] {
	return Field[T]{Name: name, Set: func(dst *T, v string) error {
		*ptr(dst) = v
		return nil
	}}
}

// IntField binds an int64 field. Empty values leave the field unchanged.
func IntField[T any](name string, ptr func(*T) *int64) Field[T] {
	return Field[T]{Name: name, Set: func(dst *T, v string) error {
		if strings.TrimSpace(v) == "" {
			return nil
		}
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return err
		}
		*ptr(dst) = n
		return nil
	}}
}

// FloatField binds a float64 field. Empty values leave the field unchanged.
func FloatField[T any](name string, ptr func(*T) *float64) Field[T] {
	return Field[T]{Name: name, Set: func(dst *T, v string) error {
		if strings.TrimSpace(v) == "" {
			return nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return err
		}
		*ptr(dst) = f
		return nil
	}}
}

// BoolField binds a bool field. Empty values leave the field unchanged.
func BoolField[T any](name string, ptr func(*T) *bool) Field[T] {
	return Field[T]{Name: name, Set: func(dst *T, v string) error {
		if strings.TrimSpace(v) == "" {
			return nil
		}
		b, err := parseBool(v)
		if err != nil {
			return err
		}
		*ptr(dst) = b
		return nil
	}}
}

// TimeField binds a time.Time field using ParseTime.
func TimeField[T any](name string, ptr func(*T) *time.Time) Field[T] {
	return Field[T]{Name: name, Set: func(dst *T, v string) error {
		if strings.TrimSpace(v) == "" {
			return nil
		}
		t, err := ParseTime(v)
		if err != nil {
			return err
		}
		*ptr(dst) = t
		return nil
	}}
}

var registry sync.Map // reflect.Type → *Schema[T]

// Register makes s the schema used when mapping rows into T.
func Register[T any](s *Schema[T]) {
	registry.Store(reflect.TypeFor[T](), s)
}

var derived sync.Map // reflect.Type → *Schema[T]

// schemaFor returns the registered schema of T, or derives one from T's
// struct fields on first use.
func schemaFor[T any]() (*Schema[T], error) {
	t := reflect.TypeFor[T]()
	if s, ok := registry.Load(t); ok {
		return s.(*Schema[T]), nil
	}
	if s, ok := derived.Load(t); ok {
		return s.(*Schema[T]), nil
	}
	s, err := structSchema[T](t)
	if err != nil {
		return nil, err
	}
	actual, _ := derived.LoadOrStore(t, s)
	return actual.(*Schema[T]), nil
}

// structSchema derives a schema from the exported fields of struct type t.
// An `xlsx` tag is a header label and is normalized. Without a tag the field
// is matched against its own Go name with the leading capitals lowered, so
// FirstName binds from "First Name" and SKU binds from "SKU". Fields of
// unsupported types and tags that normalize to "" are left out.
func structSchema[T any](t reflect.Type) (*Schema[T], error) {
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s", ErrNoSchema, t)
	}
	var fields []Field[T]
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() || sf.Anonymous {
			continue
		}
		name, tagged := sf.Tag.Lookup("xlsx")
		switch {
		case name == "-":
			continue
		case tagged && name != "":
			name = Normalize(name)
		default:
			name = decapitalize(sf.Name)
		}
		set, err := fieldSetter(sf.Type)
		if err != nil {
			// slices, maps and plain nested structs have no cell form
			continue
		}
		index := sf.Index
		fields = append(fields, Field[T]{Name: name, Set: func(dst *T, v string) error {
			return set(reflect.ValueOf(dst).Elem().FieldByIndex(index), v)
		}})
	}
	return buildSchema(fields), nil
}

// decapitalize lowers the leading run of capitals in name. The last capital of
// a run followed by a lower-case letter starts the next word and is kept:
// "FirstName" → "firstName", "SKU" → "sku", "URLPath" → "urlPath".
func decapitalize(name string) string {
	runes := []rune(name)
	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}
	if n > 1 && n < len(runes) && unicode.IsLower(runes[n]) {
		n--
	}
	if n == 0 {
		n = 1
	}
	for i := 0; i < n && i < len(runes); i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

var (
	timeType            = reflect.TypeFor[time.Time]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

type valueSetter func(field reflect.Value, v string) error

// fieldSetter returns the string parser for a field type.
func fieldSetter(t reflect.Type) (valueSetter, error) {
	if t.Kind() == reflect.Pointer {
		elem, err := fieldSetter(t.Elem())
		if err != nil {
			return nil, err
		}
		return func(field reflect.Value, v string) error {
			if strings.TrimSpace(v) == "" {
				return nil
			}
			p := reflect.New(t.Elem())
			if err := elem(p.Elem(), v); err != nil {
				return err
			}
			field.Set(p)
			return nil
		}, nil
	}

	if t == timeType {
		return func(field reflect.Value, v string) error {
			if strings.TrimSpace(v) == "" {
				return nil
			}
			tm, err := ParseTime(v)
			if err != nil {
				return err
			}
			field.Set(reflect.ValueOf(tm))
			return nil
		}, nil
	}

	if reflect.PointerTo(t).Implements(textUnmarshalerType) {
		return func(field reflect.Value, v string) error {
			return field.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(v))
		}, nil
	}

	switch t.Kind() {
	case reflect.String:
		return func(field reflect.Value, v string) error {
			field.SetString(v)
			return nil
		}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(field reflect.Value, v string) error {
			v = strings.TrimSpace(v)
			if v == "" {
				return nil
			}
			n, err := strconv.ParseInt(v, 10, t.Bits())
			if err != nil {
				return err
			}
			field.SetInt(n)
			return nil
		}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return func(field reflect.Value, v string) error {
			v = strings.TrimSpace(v)
			if v == "" {
				return nil
			}
			n, err := strconv.ParseUint(v, 10, t.Bits())
			if err != nil {
				return err
			}
			field.SetUint(n)
			return nil
		}, nil
	case reflect.Float32, reflect.Float64:
		return func(field reflect.Value, v string) error {
			v = strings.TrimSpace(v)
			if v == "" {
				return nil
			}
			f, err := strconv.ParseFloat(v, t.Bits())
			if err != nil {
				return err
			}
			field.SetFloat(f)
			return nil
		}, nil
	case reflect.Bool:
		return func(field reflect.Value, v string) error {
			if strings.TrimSpace(v) == "" {
				return nil
			}
			b, err := parseBool(v)
			if err != nil {
				return err
			}
			field.SetBool(b)
			return nil
		}, nil
	}
	return nil, fmt.Errorf("unsupported field type %s", t)
}

// parseBool accepts the usual spellings of a spreadsheet boolean.
func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "t", "yes", "y", "on":
		return true, nil
	case "0", "false", "f", "no", "n", "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid bool: %q", raw)
}

var timeLayouts = []string{
	DateLayout,
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// ParseTime parses the date forms produced by Coerce and common ISO layouts.
func ParseTime(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse time: %q", raw)
}
