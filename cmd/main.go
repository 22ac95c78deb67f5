package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"sumdoc/internal/config"
	"sumdoc/internal/render"
	"sumdoc/internal/server"
	"sumdoc/internal/summarizer"
	"sumdoc/internal/telemetry"
	"sumdoc/internal/usecase"
)

var version = "dev"

const healthcheckTimeout = 2 * time.Second

func main() {
	if len(os.Args) > 1 && os.Args[1] == "healthcheck" {
		if err := runHealthcheck(); err != nil {
			fmt.Fprintf(os.Stderr, "Healthcheck failed: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	start := time.Now()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).ErrorContext(ctx, "Failed to load config",
			"error", err)

		return err
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(log)

	log.InfoContext(ctx, "Config is loaded",
		"httpAddr", cfg.HTTPAddr,
		"provider", cfg.Summarizer.Provider,
		"summarizerTimeout", cfg.Summarizer.Timeout,
		"otelEnabled", cfg.OTel.Enabled,
		"version", version)

	otelShutdown, err := telemetry.InitProvider(ctx, telemetry.Config{
		Enabled:        cfg.OTel.Enabled,
		ServiceName:    cfg.OTel.ServiceName,
		ServiceVersion: version,
		OTLPEndpoint:   cfg.OTel.OTLPEndpoint,
		SampleRatio:    cfg.OTel.SampleRatio,
	})
	if err != nil {
		log.WarnContext(ctx, "Failed to initialize tracing so it is disabled",
			"error", err,
			"endpoint", cfg.OTel.OTLPEndpoint)

		cfg.OTel.Enabled = false
		otelShutdown = func(context.Context) error { return nil }
	}

	s, err := initSummarizer(ctx, cfg, log)
	if err != nil {
		log.ErrorContext(ctx, "Failed to initialize summarizer",
			"error", err,
			"provider", cfg.Summarizer.Provider)

		return err
	}

	svc := usecase.New(s, render.New(log), usecase.Options{
		Timeout:   cfg.Summarizer.Timeout,
		StripHTML: cfg.StripHTML,
	}, log)

	srv := server.New(svc, server.Config{
		Addr:           cfg.HTTPAddr,
		MaxBodySize:    cfg.MaxBodySize,
		MetricsEnabled: cfg.MetricsEnabled,
		TracingEnabled: cfg.OTel.Enabled,
		ServiceName:    cfg.OTel.ServiceName,
	}, log)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(srv.Start)

	g.Go(func() error {
		<-gCtx.Done()
		log.InfoContext(ctx, "Shutting down HTTP server",
			"timeout", cfg.ShutdownTimeout)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		return otelShutdown(shutdownCtx)
	})

	if err = g.Wait(); err != nil {
		log.ErrorContext(ctx, "Server stopped with error",
			"error", err,
			"uptimeSeconds", time.Since(start).Seconds())

		return err
	}

	log.InfoContext(ctx, "Server is stopped",
		"uptimeSeconds", time.Since(start).Seconds())

	return nil
}

func initSummarizer(ctx context.Context, cfg config.Config, log *slog.Logger) (summarizer.Summarizer, error) {
	switch cfg.Summarizer.Provider {
	case config.ProviderOpenAI:
		s, err := summarizer.NewOpenAISummarizer(summarizer.OpenAIConfig{
			APIKey:  cfg.OpenAI.APIKey,
			Model:   cfg.OpenAI.Model,
			BaseURL: cfg.OpenAI.BaseURL,
		}, log)
		if err != nil {
			return nil, err
		}

		log.InfoContext(ctx, "OpenAI summarizer is initialized",
			"model", cfg.OpenAI.Model)

		return s, nil
	case config.ProviderHuggingFace:
		if cfg.HuggingFace.APIToken == "" {
			log.WarnContext(ctx, "HUGGINGFACE_API_TOKEN is missing so requests are sent anonymously",
				"envVar", "HUGGINGFACE_API_TOKEN")
		}

		s, err := summarizer.NewHuggingFaceSummarizer(summarizer.HuggingFaceConfig{
			APIToken: cfg.HuggingFace.APIToken,
			Model:    cfg.HuggingFace.Model,
			BaseURL:  cfg.HuggingFace.BaseURL,
		}, log)
		if err != nil {
			return nil, err
		}

		log.InfoContext(ctx, "Hugging Face summarizer is initialized",
			"model", cfg.HuggingFace.Model)

		return s, nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Summarizer.Provider)
	}
}

// runHealthcheck probes /health of the locally running server.
func runHealthcheck() error {
	addr := strings.TrimSpace(os.Getenv("HTTP_ADDR"))
	if addr == "" {
		addr = ":5000"
	}

	url, err := healthURL(addr)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: healthcheckTimeout}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.New("health endpoint returned status " + resp.Status)
	}

	return nil
}

// healthURL maps a listen address to the local /health URL. Wildcard hosts
// are probed over loopback.
func healthURL(addr string) (string, error) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "", fmt.Errorf("parse HTTP_ADDR: %w", err)
	}

	switch host {
	case "", "0.0.0.0":
		host = "127.0.0.1"
	case "::":
		host = "::1"
	}

	return "http://" + net.JoinHostPort(host, port) + "/health", nil
}
