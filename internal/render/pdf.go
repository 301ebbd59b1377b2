package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/mvp-joe/dirmap/internal/hierarchy"
	"github.com/mvp-joe/dirmap/internal/tree"
)

const pdfLineHeight = 5.0

// WritePDF draws the text report, line for line, in a monospaced font so the
// indentation survives.
func WritePDF(w io.Writer, listing *tree.Listing, h hierarchy.Map) error {
	pdf := newPDF()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Courier", "", 10)
	for _, line := range textLines(listing, h) {
		if line == "" {
			pdf.Ln(pdfLineHeight)
			continue
		}
		pdf.MultiCell(0, pdfLineHeight, tr(line), "", "L", false)
	}
	return outputPDF(pdf, w)
}

// WritePDFHierarchy draws h without going through the text report: a
// centred title, then one bold line per node, indented four spaces per level
// in a font a point smaller per level.
func WritePDFHierarchy(w io.Writer, h hierarchy.Map) error {
	pdf := newPDF()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Project Hierarchy", "", 1, "C", false, 0, "")
	pdf.Ln(10)

	var draw func(node hierarchy.Map, level int)
	draw = func(node hierarchy.Map, level int) {
		size := max(12-float64(level), 6)
		for _, name := range node.Keys() {
			pdf.SetFont("Helvetica", "B", size)
			pdf.MultiCell(0, 10, tr(strings.Repeat(" ", 4*level)+name+"/"), "", "L", false)
			draw(node[name], level+1)
		}
	}
	draw(h, 0)

	return outputPDF(pdf, w)
}

func newPDF() *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	return pdf
}

func outputPDF(pdf *fpdf.Fpdf, w io.Writer) error {
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}
