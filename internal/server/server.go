// Package server exposes the summarization service over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"sumdoc/internal/domain"
	"sumdoc/internal/metrics"
)

// Service is the request flow behind the endpoints.
type Service interface {
	Summarize(ctx context.Context, text string) (string, error)
	Download(ctx context.Context, text, format string) (domain.Document, error)
}

type Config struct {
	Addr           string
	MaxBodySize    string
	MetricsEnabled bool
	TracingEnabled bool
	ServiceName    string
}

type Server struct {
	echo *echo.Echo
	addr string
	log  *slog.Logger
}

func New(svc Service, cfg Config, log *slog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(log)

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	if cfg.TracingEnabled {
		e.Use(otelecho.Middleware(cfg.ServiceName))
		e.Use(otelStatus())
	}

	e.Use(requestLogger(log))
	e.Use(middleware.Recover())

	if cfg.MaxBodySize != "" {
		e.Use(middleware.BodyLimit(cfg.MaxBodySize))
	}

	h := &handlers{svc: svc, log: log}

	e.POST("/summarize", h.summarize)
	e.POST("/download", h.download)
	e.GET("/health", h.health)

	if cfg.MetricsEnabled {
		e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	}

	return &Server{echo: e, addr: cfg.Addr, log: log}
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	s.log.Info("HTTP server is starting",
		"addr", s.addr)

	if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve http: %w", err)
	}

	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown http: %w", err)
	}

	return nil
}
