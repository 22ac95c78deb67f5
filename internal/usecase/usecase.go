// Package usecase holds the request flows behind the HTTP endpoints.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"sumdoc/internal/domain"
	"sumdoc/internal/metrics"
	"sumdoc/internal/plaintext"
	"sumdoc/internal/summarizer"
)

// Renderer encodes a summary as a downloadable document.
type Renderer interface {
	Render(ctx context.Context, content string, format domain.Format) (domain.Document, error)
}

type Options struct {
	// Timeout bounds a single hosted model call. Zero means no extra bound.
	Timeout time.Duration
	// StripHTML reduces HTML input to visible text before summarizing.
	StripHTML bool
}

type Service struct {
	summarizer summarizer.Summarizer
	renderer   Renderer
	opts       Options
	log        *slog.Logger
}

func New(s summarizer.Summarizer, r Renderer, opts Options, log *slog.Logger) *Service {
	return &Service{
		summarizer: s,
		renderer:   r,
		opts:       opts,
		log:        log,
	}
}

// Summarize validates text and returns the hosted model summary for it.
func (s *Service) Summarize(ctx context.Context, text string) (string, error) {
	text, err := s.prepare(ctx, text)
	if err != nil {
		return "", err
	}

	return s.summarize(ctx, text)
}

// Download validates text and format, summarizes text and renders the summary
// in the requested format. Format problems are reported before the hosted
// model is called.
func (s *Service) Download(ctx context.Context, text, rawFormat string) (domain.Document, error) {
	text, err := s.prepare(ctx, text)
	if err != nil {
		return domain.Document{}, err
	}

	format, err := domain.ParseFormat(rawFormat)
	if err != nil {
		return domain.Document{}, err
	}

	summary, err := s.summarize(ctx, text)
	if err != nil {
		return domain.Document{}, err
	}

	doc, err := s.renderer.Render(ctx, summary, format)
	if err != nil {
		return domain.Document{}, fmt.Errorf("render summary: %w", err)
	}

	s.log.InfoContext(ctx, "Summary document is ready",
		"format", format,
		"fileName", doc.Name,
		"size", len(doc.Data))

	return doc, nil
}

func (s *Service) prepare(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", domain.NewValidationError(domain.ErrNoText)
	}

	if !s.opts.StripHTML {
		return text, nil
	}

	cleaned, err := plaintext.Clean(text)
	if err != nil {
		s.log.WarnContext(ctx, "Failed to strip HTML, using raw text",
			"error", err)

		return text, nil
	}

	return cleaned, nil
}

func (s *Service) summarize(ctx context.Context, text string) (string, error) {
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	metrics.RecordInput(len(text))

	provider := s.summarizer.Name()
	start := time.Now()

	summary, err := s.summarizer.Summarize(ctx, summarizer.Input{Text: text})
	elapsed := time.Since(start)

	if err != nil {
		metrics.RecordSummarize(provider, metrics.StatusUpstream, elapsed.Seconds())

		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			s.log.InfoContext(ctx, "Summarization is canceled",
				"provider", provider)
		} else {
			s.log.ErrorContext(ctx, "Failed to summarize",
				"provider", provider,
				"duration", elapsed,
				"error", err)
		}

		return "", domain.NewUpstreamError(provider, err)
	}

	metrics.RecordSummarize(provider, metrics.StatusOK, elapsed.Seconds())

	s.log.InfoContext(ctx, "Text is summarized",
		"provider", provider,
		"inputLength", len(text),
		"summaryLength", len(summary),
		"duration", elapsed)

	return summary, nil
}
