package xlbind

import (
	"io"
	"log/slog"
)

// ErrorPolicy decides what an import does with rows that fail to map.
type ErrorPolicy int

const (
	// AbortOnError stops the import at the first failing row.
	AbortOnError ErrorPolicy = iota
	// SkipInvalidRows drops failing rows and logs them at warn level.
	SkipInvalidRows
	// CollectErrors returns the mapped rows together with a MappingErrors
	// value describing every failing row.
	CollectErrors
)

// Options holds configuration shared by import and export.
type Options struct {
	sheetName       string
	expectedHeaders []string
	errorPolicy     ErrorPolicy
	rowFilter       string
	logger          *slog.Logger
	headerStyle     CellStyle
	bodyStyle       CellStyle
	autoWidth       bool
}

func defaultOptions() *Options {
	return &Options{
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		headerStyle: DefaultHeaderStyle(),
		bodyStyle:   DefaultBodyStyle(),
		autoWidth:   true,
	}
}

func newOptions(opts []Option) *Options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Option configures an import or export.
type Option func(*Options)

// WithSheet selects the sheet to read by name (default: the first sheet).
func WithSheet(name string) Option {
	return func(o *Options) { o.sheetName = name }
}

// WithExpectedHeaders validates the header row against labels before any row
// is mapped. A mismatch fails the import with ErrHeaderMismatch.
func WithExpectedHeaders(labels ...string) Option {
	return func(o *Options) { o.expectedHeaders = labels }
}

// WithErrorPolicy sets how rows that fail to map are handled (default: AbortOnError).
func WithErrorPolicy(p ErrorPolicy) Option {
	return func(o *Options) { o.errorPolicy = p }
}

// WithRowFilter skips data rows for which the boolean expression is false.
// The expression sees every canonical field name of the row as a string
// variable, e.g. `sku != "" && status != "archived"`.
func WithRowFilter(expression string) Option {
	return func(o *Options) { o.rowFilter = expression }
}

// WithLogger sets the logger used for diagnostics (default: discard).
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithHeaderStyle overrides the style of exported header cells.
func WithHeaderStyle(s CellStyle) Option {
	return func(o *Options) { o.headerStyle = s }
}

// WithBodyStyle overrides the style of exported body cells.
func WithBodyStyle(s CellStyle) Option {
	return func(o *Options) { o.bodyStyle = s }
}

// WithAutoWidth controls whether exported column widths are fitted to their
// content (default: true).
func WithAutoWidth(enabled bool) Option {
	return func(o *Options) { o.autoWidth = enabled }
}
