package domain

import "strings"

// Format is a downloadable summary file format.
type Format string

const (
	FormatTXT  Format = "txt"
	FormatDOCX Format = "docx"
	FormatPDF  Format = "pdf"

	DefaultFormat = FormatTXT
)

// Formats lists every supported format in display order.
var Formats = []Format{FormatTXT, FormatDOCX, FormatPDF}

// ParseFormat maps a client supplied format name to a Format. The match is
// case-insensitive and an empty value selects DefaultFormat.
func ParseFormat(raw string) (Format, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return DefaultFormat, nil
	}

	for _, f := range Formats {
		if string(f) == normalized {
			return f, nil
		}
	}

	return "", NewValidationError(ErrUnsupportedFormat)
}

type SummarizationRequest struct {
	Text string `json:"text"`
}

type SummarizationResponse struct {
	Summary string `json:"summary"`
}

type DownloadRequest struct {
	Text   string `json:"text"`
	Format string `json:"format"`
}

// Document is a rendered summary ready to be sent as an attachment.
type Document struct {
	Name     string
	MIMEType string
	Data     []byte
}
