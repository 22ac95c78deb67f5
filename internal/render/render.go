package render

import (
	"context"
	"fmt"
	"log/slog"

	"sumdoc/internal/domain"
	"sumdoc/internal/metrics"
)

const baseName = "summary"

const (
	MIMETypeTXT  = "text/plain"
	MIMETypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMETypePDF  = "application/pdf"
)

// Renderer turns summary text into downloadable documents.
type Renderer struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Renderer {
	return &Renderer{log: log}
}

// Render encodes content in the given format. Unknown formats yield a
// validation error.
func (r *Renderer) Render(ctx context.Context, content string, format domain.Format) (domain.Document, error) {
	var (
		data     []byte
		mimeType string
		err      error
	)

	switch format {
	case domain.FormatTXT:
		data, mimeType = renderTXT(content), MIMETypeTXT
	case domain.FormatDOCX:
		data, err = renderDOCX(content)
		mimeType = MIMETypeDOCX
	case domain.FormatPDF:
		data, err = renderPDF(content)
		mimeType = MIMETypePDF
	default:
		return domain.Document{}, domain.NewValidationError(domain.ErrUnsupportedFormat)
	}

	if err != nil {
		metrics.RecordRender(string(format), metrics.StatusError)

		return domain.Document{}, fmt.Errorf("render %s: %w", format, err)
	}

	metrics.RecordRender(string(format), metrics.StatusOK)

	r.log.DebugContext(ctx, "Document is rendered",
		"format", format,
		"size", len(data))

	return domain.Document{
		Name:     FileName(format),
		MIMEType: mimeType,
		Data:     data,
	}, nil
}

// FileName is the attachment name used for format.
func FileName(format domain.Format) string {
	return baseName + "." + string(format)
}
