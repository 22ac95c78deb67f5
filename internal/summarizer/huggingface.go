package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	huggingFaceProviderName = "huggingface"
	huggingFaceMaxBodyBytes = 4 << 20

	defaultHuggingFaceBaseURL = "https://router.huggingface.co/hf-inference/models"
	defaultHuggingFaceModel   = "facebook/bart-large-cnn"

	huggingFaceIdleConnTimeout = 90 * time.Second
)

var tracer = otel.Tracer("sumdoc/internal/summarizer")

// HuggingFaceConfig configures the Inference API backend.
type HuggingFaceConfig struct {
	APIToken string
	Model    string
	BaseURL  string
	// HTTPClient is used when set. Deadlines come from the request context.
	HTTPClient *http.Client
}

// HuggingFaceSummarizer calls a hosted model on the Hugging Face Inference API.
type HuggingFaceSummarizer struct {
	client   *http.Client
	endpoint string
	apiToken string
	model    string
	log      *slog.Logger
}

type huggingFaceRequest struct {
	Inputs  string             `json:"inputs"`
	Options huggingFaceOptions `json:"options"`
}

type huggingFaceOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

type huggingFaceOutput struct {
	SummaryText   string `json:"summary_text"`
	GeneratedText string `json:"generated_text"`
}

type huggingFaceError struct {
	Error json.RawMessage `json:"error"`
}

// NewHuggingFaceSummarizer builds a new summarizer instance. An empty token is
// accepted; the provider then rejects calls and they surface as errors.
func NewHuggingFaceSummarizer(
	cfg HuggingFaceConfig,
	log *slog.Logger,
) (*HuggingFaceSummarizer, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultHuggingFaceBaseURL
	}

	model := strings.Trim(strings.TrimSpace(cfg.Model), "/")
	if model == "" {
		model = defaultHuggingFaceModel
	}

	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return nil, fmt.Errorf("base URL must be http(s) (baseURL = %s)", baseURL)
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     huggingFaceIdleConnTimeout,
			},
		}
	}

	return &HuggingFaceSummarizer{
		client:   client,
		endpoint: baseURL + "/" + model,
		apiToken: strings.TrimSpace(cfg.APIToken),
		model:    model,
		log:      log,
	}, nil
}

func (s *HuggingFaceSummarizer) Name() string {
	return huggingFaceProviderName
}

// Summarize sends the rendered prompt to the model and returns its output.
func (s *HuggingFaceSummarizer) Summarize(
	ctx context.Context,
	input Input,
) (_ string, err error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return "", errors.New("input is empty")
	}

	ctx, span := tracer.Start(ctx, "huggingface.summarize")
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

	prompt := BuildPrompt(text)

	payload, err := json.Marshal(huggingFaceRequest{
		Inputs:  prompt,
		Options: huggingFaceOptions{WaitForModel: true},
	})
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if s.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiToken)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			s.log.WarnContext(ctx, "Failed to close response body",
				"error", closeErr,
				"endpoint", s.endpoint)
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, huggingFaceMaxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("model responded with status %d: %s",
			resp.StatusCode, providerErrorMessage(body))
	}

	summary, err := parseHuggingFaceOutput(body, prompt)
	if err != nil {
		return "", err
	}

	s.log.DebugContext(ctx, "Summary is received",
		"provider", huggingFaceProviderName,
		"model", s.model,
		"inputChars", len(text),
		"summaryChars", len(summary))

	return summary, nil
}

// parseHuggingFaceOutput accepts the list or single object shapes returned by
// summarization and text-generation models. Text-generation models echo the
// prompt, which is stripped.
func parseHuggingFaceOutput(body []byte, prompt string) (string, error) {
	var outputs []huggingFaceOutput
	if err := json.Unmarshal(body, &outputs); err != nil {
		var single huggingFaceOutput
		if singleErr := json.Unmarshal(body, &single); singleErr != nil {
			return "", fmt.Errorf("decode response: %w", err)
		}
		outputs = []huggingFaceOutput{single}
	}

	if len(outputs) == 0 {
		return "", errors.New("response has no outputs")
	}

	first := outputs[0]
	summary := first.SummaryText
	if summary == "" {
		summary = strings.TrimPrefix(first.GeneratedText, prompt)
	}

	summary = strings.TrimSpace(summary)
	if summary == "" {
		return "", errors.New("output text is missing")
	}

	return summary, nil
}

func providerErrorMessage(body []byte) string {
	var perr huggingFaceError
	if err := json.Unmarshal(body, &perr); err == nil && len(perr.Error) > 0 {
		var msg string
		if json.Unmarshal(perr.Error, &msg) == nil {
			return msg
		}

		var msgs []string
		if json.Unmarshal(perr.Error, &msgs) == nil {
			return strings.Join(msgs, "; ")
		}

		return string(perr.Error)
	}

	const maxSnippet = 256
	snippet := strings.TrimSpace(string(body))
	if len(snippet) > maxSnippet {
		snippet = snippet[:maxSnippet]
	}
	if snippet == "" {
		return "empty body"
	}

	return snippet
}
