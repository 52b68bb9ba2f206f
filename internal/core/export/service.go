package export

import (
	"bytes"
	"fmt"
	"strings"
)

// Service picks the exporter for a format.
type Service struct {
	exporters map[Format]Exporter
}

// NewService creates an export service. sheet names the worksheet of Excel
// exports.
func NewService(sheet string) *Service {
	return &Service{
		exporters: map[Format]Exporter{
			FormatPDF:   NewPDFExporter(),
			FormatExcel: NewExcelExporter(sheet),
		},
	}
}

// ParseFormat accepts "pdf", "xlsx" and "excel", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pdf":
		return FormatPDF, nil
	case "xlsx", "excel":
		return FormatExcel, nil
	default:
		return "", fmt.Errorf("unsupported export format: %q", s)
	}
}

// File is a rendered export.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Export renders t in format. baseName is the file name without extension.
func (s *Service) Export(t *Table, format Format, baseName string) (*File, error) {
	exporter, ok := s.exporters[format]
	if !ok {
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}

	var buf bytes.Buffer
	if err := exporter.Export(t, &buf); err != nil {
		return nil, fmt.Errorf("%s export failed: %w", format, err)
	}

	return &File{
		Name:        baseName + exporter.Extension(),
		ContentType: exporter.ContentType(),
		Data:        buf.Bytes(),
	}, nil
}
