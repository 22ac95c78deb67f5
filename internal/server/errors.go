package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"sumdoc/internal/domain"
)

const (
	msgUpstream = "Summarization service is unavailable."
	msgInternal = "An unexpected error occurred. Please try again later."
)

type errorResponse struct {
	Error string `json:"error"`
}

// errorHandler renders every handler error as {"error": message}. Messages of
// validation errors reach the client verbatim, server side details never do.
func errorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		ctx := c.Request().Context()
		requestID := c.Response().Header().Get(echo.HeaderXRequestID)
		status, msg := classify(err)

		switch {
		case status >= http.StatusInternalServerError:
			log.ErrorContext(ctx, "Request failed",
				"requestID", requestID,
				"status", status,
				"error", err)
		case !domain.IsValidation(err):
			log.WarnContext(ctx, "Request is rejected",
				"requestID", requestID,
				"status", status,
				"error", err)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, errorResponse{Error: msg})
		}

		if err != nil {
			log.ErrorContext(ctx, "Failed to send error response",
				"requestID", requestID,
				"error", err)
		}
	}
}

func classify(err error) (int, string) {
	var (
		ve *domain.ValidationError
		he *echo.HTTPError
	)

	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Error()
	case domain.IsUpstream(err):
		return http.StatusBadGateway, msgUpstream
	case errors.As(err, &he):
		if he.Code >= http.StatusInternalServerError {
			return he.Code, msgInternal
		}

		if msg, ok := he.Message.(string); ok && msg != "" {
			return he.Code, msg
		}

		return he.Code, http.StatusText(he.Code)
	default:
		return http.StatusInternalServerError, msgInternal
	}
}
