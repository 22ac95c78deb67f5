package server

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// otelStatus marks the request span as failed on 5xx responses. It must run
// inside otelecho.Middleware, which starts the span.
func otelStatus() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)

			span := trace.SpanFromContext(c.Request().Context())
			if !span.SpanContext().IsValid() {
				return err
			}

			status := c.Response().Status
			span.SetAttributes(semconv.HTTPResponseStatusCode(status))

			if status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(status))
				if err != nil {
					span.RecordError(err)
				}
			}

			return err
		}
	}
}

func requestLogger(log *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			p := c.Request().URL.Path
			return p == "/health" || p == "/metrics"
		},
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ctx := c.Request().Context()

			if v.Error == nil {
				log.InfoContext(ctx, "Request is completed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"requestID", v.RequestID,
					"latencyMs", v.Latency.Milliseconds())

				return nil
			}

			log.WarnContext(ctx, "Request is completed with error",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"requestID", v.RequestID,
				"latencyMs", v.Latency.Milliseconds(),
				"error", v.Error.Error())

			return nil
		},
	})
}
