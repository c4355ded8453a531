package xlbind

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/xuri/excelize/v2"
)

// DateLayout is the layout used to render date cells.
const DateLayout = "01/02/2006"

// errorCodes maps Excel error literals to their BIFF error codes.
var errorCodes = map[string]string{
	"#NULL!":  "0",
	"#DIV/0!": "7",
	"#VALUE!": "15",
	"#REF!":   "23",
	"#NAME?":  "29",
	"#NUM!":   "36",
	"#N/A":    "42",
}

// Coerce converts a cell into its canonical string representation.
//
//   - String: the text unchanged.
//   - Number with a date format, Date: MM/dd/yyyy.
//   - Number: the formatted text with trailing fractional zeros removed
//     ("12.50" → "12.5", "12.00" → "12").
//   - Boolean: "true" or "false".
//   - Formula: the formula source, not its result.
//   - Error: the numeric error code ("#DIV/0!" → "7").
//   - Blank, nil and unknown types: "".
func Coerce(cd *CellData) string {
	if cd == nil {
		return ""
	}
	switch cd.Type {
	case CellString:
		s, _ := cd.Value.(string)
		return s
	case CellNumber:
		if cd.IsDate {
			return formatDateSerial(cd)
		}
		return trimNumber(numberText(cd))
	case CellDate:
		if t, ok := cd.Value.(time.Time); ok {
			return t.Format(DateLayout)
		}
		return formatDateSerial(cd)
	case CellBoolean:
		b, _ := cd.Value.(bool)
		return strconv.FormatBool(b)
	case CellFormula:
		return strings.TrimPrefix(cd.Formula, "=")
	case CellError:
		s, _ := cd.Value.(string)
		if code, ok := errorCodes[strings.ToUpper(strings.TrimSpace(s))]; ok {
			return code
		}
		return s
	default:
		return ""
	}
}

func numberText(cd *CellData) string {
	if cd.Formatted != "" {
		return cd.Formatted
	}
	if f, ok := toFloat(cd.Value); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return ""
}

// trimNumber strips trailing zeros from the fraction digits after the decimal
// point, then the point itself if no digits remain. An exponent or a suffix
// such as "%" after the fraction is kept: "1.20E+06" → "1.2E+06",
// "12.50%" → "12.5%". Text with more digits after the fraction that are not an
// exponent is returned unchanged.
func trimNumber(num string) string {
	dot := strings.IndexByte(num, '.')
	if dot < 0 {
		return num
	}
	end := dot + 1
	for end < len(num) && isDigit(num[end]) {
		end++
	}
	rest := num[end:]
	if !isExponent(rest) && strings.IndexFunc(rest, unicode.IsDigit) >= 0 {
		return num
	}
	frac := strings.TrimRight(num[dot+1:end], "0")
	if frac == "" {
		return num[:dot] + rest
	}
	return num[:dot+1] + frac + rest
}

// isExponent reports whether s starts with an exponent such as "E+20" or "e-4".
func isExponent(s string) bool {
	if len(s) < 2 || (s[0] != 'e' && s[0] != 'E') {
		return false
	}
	s = s[1:]
	if s[0] == '+' || s[0] == '-' {
		s = s[1:]
	}
	return s != "" && isDigit(s[0])
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func formatDateSerial(cd *CellData) string {
	serial, ok := toFloat(cd.Value)
	if !ok {
		return ""
	}
	t, err := excelize.ExcelDateToTime(serial, cd.Date1904)
	if err != nil {
		return ""
	}
	return t.Format(DateLayout)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
