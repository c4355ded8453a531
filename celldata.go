package xlbind

// CellType is the kind of value a cell holds.
type CellType int

const (
	CellBlank CellType = iota
	CellString
	CellNumber
	CellBoolean
	CellDate
	CellFormula
	CellError
)

var cellTypeNames = [...]string{
	CellBlank:   "Blank",
	CellString:  "String",
	CellNumber:  "Number",
	CellBoolean: "Boolean",
	CellDate:    "Date",
	CellFormula: "Formula",
	CellError:   "Error",
}

func (ct CellType) String() string {
	if ct < 0 || int(ct) >= len(cellTypeNames) {
		return "Unknown"
	}
	return cellTypeNames[ct]
}

// CellData is one cell as read from a sheet.
//
// Value depends on Type: string for CellString and CellError, float64 for
// CellNumber, bool for CellBoolean and time.Time for CellDate. A formula
// cell keeps its source in Formula and its cached result, if any, in Value.
type CellData struct {
	Ref       CellRef
	Type      CellType
	Value     any
	Formula   string // without the leading '='
	Formatted string // numeric value rendered with the cell's number format
	IsDate    bool   // numeric value under a date or time number format
	Date1904  bool   // serial counts from 1904-01-01
}

// NewCellData returns a cell of the given type holding value.
func NewCellData(ref CellRef, value any, typ CellType) *CellData {
	return &CellData{Ref: ref, Type: typ, Value: value}
}

// IsFormulaCell reports whether the cell was written as a formula.
func (cd *CellData) IsFormulaCell() bool {
	return cd.Formula != "" || cd.Type == CellFormula
}

// Text is shorthand for Coerce(cd).
func (cd *CellData) Text() string {
	return Coerce(cd)
}
