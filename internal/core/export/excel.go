package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const baseColumnWidth = 14

// ExcelExporter writes tables as .xlsx workbooks using excelize.
type ExcelExporter struct {
	sheet string
}

func NewExcelExporter(sheet string) *ExcelExporter {
	if sheet == "" {
		sheet = "Sheet1"
	}
	return &ExcelExporter{sheet: sheet}
}

func (e *ExcelExporter) Export(t *Table, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", e.sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	row := 1
	if t.Title != "" {
		titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
		if err != nil {
			return fmt.Errorf("failed to create title style: %w", err)
		}
		if err := e.writeRow(f, row, []string{t.Title}, titleStyle); err != nil {
			return err
		}
		row++
		if t.Subtitle != "" {
			if err := e.writeRow(f, row, []string{t.Subtitle}, 0); err != nil {
				return err
			}
			row++
		}
		row++
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Size: t.Style.FontSize + 1},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{stripHash(t.Style.HeaderColor)}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	headerRow := row
	if err := e.writeRow(f, headerRow, t.Headers, headerStyle); err != nil {
		return err
	}
	row++

	stripeStyle := 0
	if t.Style.StripeColor != "" {
		stripeStyle, err = f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{stripHash(t.Style.StripeColor)}},
		})
		if err != nil {
			return fmt.Errorf("failed to create row style: %w", err)
		}
	}

	for i, cells := range t.Rows {
		style := 0
		if i%2 == 1 {
			style = stripeStyle
		}
		if err := e.writeRow(f, row, cells, style); err != nil {
			return err
		}
		row++
	}

	for col := range t.Headers {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(e.sheet, name, name, baseColumnWidth*t.Style.weight(col)); err != nil {
			return fmt.Errorf("failed to size column %s: %w", name, err)
		}
	}

	if len(t.Headers) > 0 {
		if err := f.SetPanes(e.sheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      headerRow,
			TopLeftCell: fmt.Sprintf("A%d", headerRow+1),
			ActivePane:  "bottomLeft",
		}); err != nil {
			return fmt.Errorf("failed to freeze header: %w", err)
		}

		last, err := excelize.CoordinatesToCellName(len(t.Headers), headerRow+len(t.Rows))
		if err != nil {
			return err
		}
		if err := f.AutoFilter(e.sheet, fmt.Sprintf("A%d:%s", headerRow, last), nil); err != nil {
			return fmt.Errorf("failed to add filter: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write Excel file: %w", err)
	}
	return nil
}

func (e *ExcelExporter) writeRow(f *excelize.File, row int, cells []string, style int) error {
	if len(cells) == 0 {
		return nil
	}

	start, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	if err := f.SetSheetRow(e.sheet, start, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}

	if style != 0 {
		end, err := excelize.CoordinatesToCellName(len(cells), row)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(e.sheet, start, end, style); err != nil {
			return fmt.Errorf("failed to style row %d: %w", row, err)
		}
	}
	return nil
}

func (e *ExcelExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (e *ExcelExporter) Extension() string {
	return ".xlsx"
}

func stripHash(color string) string {
	if len(color) > 0 && color[0] == '#' {
		return color[1:]
	}
	return color
}
