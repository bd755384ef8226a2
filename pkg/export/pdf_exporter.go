package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const (
	pageWidth  = 277.0 // A4 landscape minus margins
	lineHeight = 6.0
)

// PDFExporter renders datasets into a landscape tabular PDF. Text is
// translated to cp1252 so accented names render with the core fonts.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a PDF document with an optional title and table body.
func (e *PDFExporter) Render(data Dataset, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")
		pdf.Ln(4)
	}

	widths := columnWidths(data)
	pdf.SetFont("Arial", "B", 9)
	for i, header := range data.Headers {
		pdf.CellFormat(widths[i], 8, tr(header), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, row := range data.Rows {
		for i, header := range data.Headers {
			value := tr(row[header])
			if pdf.GetStringWidth(value) > widths[i]-2 {
				value = truncate(pdf, value, widths[i]-2)
			}
			pdf.CellFormat(widths[i], lineHeight, value, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// columnWidths gives the last column (free text) a double share.
func columnWidths(data Dataset) []float64 {
	n := len(data.Headers)
	shares := float64(n + 1)
	widths := make([]float64, n)
	for i := range widths {
		widths[i] = pageWidth / shares
	}
	widths[n-1] *= 2
	return widths
}

func truncate(pdf *gofpdf.Fpdf, value string, width float64) string {
	const ellipsis = "..."
	for len(value) > 0 && pdf.GetStringWidth(value+ellipsis) > width {
		value = value[:len(value)-1]
	}
	return value + ellipsis
}
