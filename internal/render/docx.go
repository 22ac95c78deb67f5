package render

import (
	"bytes"
	"fmt"

	"github.com/fumiama/go-docx"
)

// renderDOCX writes content as the single paragraph of a Word document. Line
// breaks inside content become breaks within that paragraph.
func renderDOCX(content string) ([]byte, error) {
	doc := docx.New().WithDefaultTheme()
	doc.AddParagraph().AddText(content)

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write document: %w", err)
	}

	return buf.Bytes(), nil
}
