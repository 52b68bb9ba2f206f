package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfRowHeight    = 6
	pdfHeaderHeight = 7
)

// PDFExporter writes tables as PDF documents using gofpdf.
type PDFExporter struct {
	pageSize string
}

func NewPDFExporter() *PDFExporter {
	return &PDFExporter{pageSize: "A4"}
}

func (p *PDFExporter) Export(t *Table, w io.Writer) error {
	if len(t.Headers) == 0 {
		return fmt.Errorf("no headers provided")
	}

	orientation := "P"
	if t.Style.Landscape {
		orientation = "L"
	}
	fontSize := t.Style.FontSize
	if fontSize <= 0 {
		fontSize = 9
	}

	pdf := gofpdf.New(orientation, "mm", p.pageSize, "")
	// Core fonts are cp1252; translate so accented names print correctly.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(false, 15)
	pdf.AddPage()

	if t.Title != "" {
		pdf.SetFont("Arial", "B", 16)
		pdf.CellFormat(0, 10, tr(t.Title), "", 1, "L", false, 0, "")
	}
	if t.Subtitle != "" {
		pdf.SetFont("Arial", "", fontSize)
		pdf.MultiCell(0, 5, tr(t.Subtitle), "", "L", false)
	}
	if !t.GeneratedAt.IsZero() {
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 5, "Generated: "+t.GeneratedAt.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	widths := p.columnWidths(pdf, t)

	header := func() {
		r, g, b := hexToRGB(t.Style.HeaderColor)
		pdf.SetFillColor(r, g, b)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Arial", "B", fontSize)
		for i, h := range t.Headers {
			pdf.CellFormat(widths[i], pdfHeaderHeight, tr(h), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Arial", "", fontSize)
	}
	header()

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()

	for i, row := range t.Rows {
		if pdf.GetY()+pdfRowHeight > pageHeight-bottom {
			pdf.AddPage()
			header()
		}

		fill := t.Style.StripeColor != "" && i%2 == 1
		if fill {
			r, g, b := hexToRGB(t.Style.StripeColor)
			pdf.SetFillColor(r, g, b)
		}
		for col := range t.Headers {
			cell := ""
			if col < len(row) {
				cell = fitText(pdf, tr(row[col]), widths[col]-2)
			}
			pdf.CellFormat(widths[col], pdfRowHeight, cell, "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

func (p *PDFExporter) columnWidths(pdf *gofpdf.Fpdf, t *Table) []float64 {
	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usable := pageWidth - left - right

	total := 0.0
	for i := range t.Headers {
		total += t.Style.weight(i)
	}

	widths := make([]float64, len(t.Headers))
	for i := range widths {
		widths[i] = usable * t.Style.weight(i) / total
	}
	return widths
}

// fitText shortens s with an ellipsis until it fits in width.
func fitText(pdf *gofpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "..."
		if pdf.GetStringWidth(candidate) <= width {
			return candidate
		}
	}
	return ""
}

func (p *PDFExporter) ContentType() string {
	return "application/pdf"
}

func (p *PDFExporter) Extension() string {
	return ".pdf"
}

func hexToRGB(hex string) (int, int, int) {
	hex = stripHash(hex)
	if len(hex) != 6 {
		return 255, 255, 255
	}

	var r, g, b int
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		return 255, 255, 255
	}
	return r, g, b
}
