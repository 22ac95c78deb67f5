package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	openAIProviderName = "openai"

	maxOutputTokens    int64 = 1024
	defaultOpenAIModel       = openai.ChatModelGPT5Mini
)

// OpenAIConfig configures the Responses API backend. BaseURL may point at any
// OpenAI-compatible endpoint.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// OpenAISummarizer calls OpenAI's Responses API to produce summaries.
type OpenAISummarizer struct {
	client openai.Client
	model  string
	log    *slog.Logger
}

// NewOpenAISummarizer builds a new summarizer instance.
func NewOpenAISummarizer(cfg OpenAIConfig, log *slog.Logger) (*OpenAISummarizer, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("API key is empty")
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultOpenAIModel
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		// One upstream call per inbound request.
		option.WithMaxRetries(0),
	}
	if baseURL := strings.TrimSpace(cfg.BaseURL); baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &OpenAISummarizer{
		client: openai.NewClient(opts...),
		model:  model,
		log:    log,
	}, nil
}

func (s *OpenAISummarizer) Name() string {
	return openAIProviderName
}

// Summarize sends the rendered prompt to the model and returns its output.
func (s *OpenAISummarizer) Summarize(
	ctx context.Context,
	input Input,
) (_ string, err error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return "", errors.New("input is empty")
	}

	ctx, span := tracer.Start(ctx, "openai.summarize")
	span.SetAttributes(
		attribute.String("summarizer.model", s.model),
		attribute.Int("summarizer.input_bytes", len(text)),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "summarize failed")
		}
		span.End()
	}()

	resp, err := s.client.Responses.New(ctx, responses.ResponseNewParams{
		Model:           s.model,
		MaxOutputTokens: openai.Int(maxOutputTokens),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: openai.String(BuildPrompt(text)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}

	if resp.Status == responses.ResponseStatusIncomplete {
		return "", fmt.Errorf(
			"response is incomplete (reason = %s, maxOutputTokens = %d)",
			resp.IncompleteDetails.Reason,
			maxOutputTokens,
		)
	}

	summary := strings.TrimSpace(resp.OutputText())
	if summary == "" {
		return "", fmt.Errorf("output text is missing (status = %s)", resp.Status)
	}

	s.log.DebugContext(ctx, "Summary is received",
		"provider", openAIProviderName,
		"model", s.model,
		"responseID", resp.ID,
		"summaryChars", len(summary))

	return summary, nil
}
