package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
)

const (
	pdfFontFamily = "Arial"
	pdfFontSize   = 12
	pdfLineHeight = 10
	pdfMarginMM   = 15
)

// renderPDF lays out content on A4 pages, one wrapped block per input line.
// Runes outside cp1252 are replaced because core fonts carry no other glyphs.
func renderPDF(content string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Summary", true)
	pdf.SetCreator("sumdoc", true)
	pdf.SetAutoPageBreak(true, pdfMarginMM)
	pdf.AddPage()
	pdf.SetFont(pdfFontFamily, "", pdfFontSize)

	translate := pdf.UnicodeTranslatorFromDescriptor("")

	for _, line := range strings.Split(content, "\n") {
		pdf.MultiCell(0, pdfLineHeight, translate(line), "", "", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}

	return buf.Bytes(), nil
}
