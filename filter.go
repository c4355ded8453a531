package xlbind

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// rowFilter decides which data rows take part in an import.
type rowFilter struct {
	expression string
	program    *vm.Program
}

// compileRowFilter compiles expression once per import. An empty expression
// yields a nil filter that keeps every row.
func compileRowFilter(expression string) (*rowFilter, error) {
	if expression == "" {
		return nil, nil
	}
	program, err := expr.Compile(expression, expr.AllowUndefinedVariables(), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile row filter %q: %w", expression, err)
	}
	return &rowFilter{expression: expression, program: program}, nil
}

// Keep evaluates the filter against rec. Missing fields are nil.
func (f *rowFilter) Keep(rec RowRecord) (bool, error) {
	if f == nil {
		return true, nil
	}
	env := make(map[string]any, len(rec))
	for k, v := range rec {
		if k != "" {
			env[k] = v
		}
	}
	out, err := expr.Run(f.program, env)
	if err != nil {
		return false, fmt.Errorf("evaluate row filter %q: %w", f.expression, err)
	}
	b, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("row filter %q evaluated to %T, expected bool", f.expression, out)
	}
	return b, nil
}
