package server

import (
	"errors"
	"log/slog"
	"mime"
	"net/http"

	"github.com/labstack/echo/v4"

	"sumdoc/internal/domain"
	"sumdoc/internal/metrics"
)

const (
	opSummarize = "summarize"
	opDownload  = "download"
)

var errInvalidBody = errors.New("Invalid request body.")

type handlers struct {
	svc Service
	log *slog.Logger
}

func (h *handlers) summarize(c echo.Context) error {
	var req domain.SummarizationRequest
	if err := h.bind(c, &req); err != nil {
		metrics.RecordRequest(opSummarize, metrics.StatusInvalid)
		return err
	}

	summary, err := h.svc.Summarize(c.Request().Context(), req.Text)
	metrics.RecordRequest(opSummarize, outcome(err))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, domain.SummarizationResponse{Summary: summary})
}

func (h *handlers) download(c echo.Context) error {
	var req domain.DownloadRequest
	if err := h.bind(c, &req); err != nil {
		metrics.RecordRequest(opDownload, metrics.StatusInvalid)
		return err
	}

	doc, err := h.svc.Download(c.Request().Context(), req.Text, req.Format)
	metrics.RecordRequest(opDownload, outcome(err))
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		mime.FormatMediaType("attachment", map[string]string{"filename": doc.Name}))

	return c.Blob(http.StatusOK, doc.MIMEType, doc.Data)
}

func (h *handlers) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

// bind decodes the request body. Malformed bodies are reported as a
// validation error, an unsupported content type keeps its 415 status.
func (h *handlers) bind(c echo.Context, dst any) error {
	err := (&echo.DefaultBinder{}).BindBody(c, dst)
	if err == nil {
		return nil
	}

	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code == http.StatusUnsupportedMediaType {
		return he
	}

	h.log.DebugContext(c.Request().Context(), "Failed to bind request body",
		"path", c.Path(),
		"error", err)

	return domain.NewValidationError(errInvalidBody)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.StatusOK
	case domain.IsValidation(err):
		return metrics.StatusInvalid
	case domain.IsUpstream(err):
		return metrics.StatusUpstream
	default:
		return metrics.StatusError
	}
}
