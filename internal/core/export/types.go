package export

import (
	"io"
	"time"
)

// Format is an export file format.
type Format string

const (
	FormatPDF   Format = "pdf"
	FormatExcel Format = "xlsx"
)

// Exporter writes a Table in one file format.
type Exporter interface {
	Export(t *Table, w io.Writer) error
	ContentType() string
	Extension() string
}

// Table is a titled grid of text cells.
type Table struct {
	Title       string
	Subtitle    string
	GeneratedAt time.Time

	Headers []string
	Rows    [][]string

	Style Style
}

// Style controls the look of an export.
type Style struct {
	Landscape   bool
	FontSize    float64
	HeaderColor string // Hex, header background
	StripeColor string // Hex, background of every other row; empty disables
	// ColumnWeights sizes columns relative to each other. Missing entries
	// count as 1.
	ColumnWeights []float64
}

// DefaultStyle returns the default export styling.
func DefaultStyle() Style {
	return Style{
		Landscape:   true,
		FontSize:    9,
		HeaderColor: "#36A2EB",
		StripeColor: "#F2F2F2",
	}
}

func (s Style) weight(col int) float64 {
	if col < len(s.ColumnWeights) && s.ColumnWeights[col] > 0 {
		return s.ColumnWeights[col]
	}
	return 1
}
