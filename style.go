package xlbind

import "github.com/xuri/excelize/v2"

// CellStyle is an immutable description of how an exported cell looks.
// It is a comparable value; writers cache one workbook style per distinct
// CellStyle.
type CellStyle struct {
	Bold        bool
	FontColor   string // hex RGB, e.g. "FFFFFF"
	Fill        string // solid fill hex RGB, empty for none
	Border      bool   // thin border on every side
	BorderColor string // hex RGB, defaults to black
	Horizontal  string // "left", "center" or "right"
	WrapText    bool
}

// DefaultHeaderStyle is a white-on-blue, bordered, centered header cell.
func DefaultHeaderStyle() CellStyle {
	return CellStyle{
		FontColor:   "FFFFFF",
		Fill:        "2F75B5",
		Border:      true,
		BorderColor: "000000",
		Horizontal:  "center",
	}
}

// DefaultBodyStyle is a bordered, centered, wrapping body cell.
func DefaultBodyStyle() CellStyle {
	return CellStyle{
		Border:      true,
		BorderColor: "000000",
		Horizontal:  "center",
		WrapText:    true,
	}
}

// excelizeStyle converts s into an excelize style definition.
func (s CellStyle) excelizeStyle() *excelize.Style {
	st := &excelize.Style{
		Alignment: &excelize.Alignment{
			Horizontal: s.Horizontal,
			Vertical:   "center",
			WrapText:   s.WrapText,
		},
	}
	if s.Bold || s.FontColor != "" {
		st.Font = &excelize.Font{Bold: s.Bold, Color: s.FontColor}
	}
	if s.Fill != "" {
		st.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{s.Fill}}
	}
	if s.Border {
		color := s.BorderColor
		if color == "" {
			color = "000000"
		}
		for _, side := range []string{"left", "top", "right", "bottom"} {
			st.Border = append(st.Border, excelize.Border{Type: side, Color: color, Style: 1})
		}
	}
	return st
}
