package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.HTTPAddr)
	assert.Equal(t, "2M", cfg.MaxBodySize)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.StripHTML)
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, ProviderHuggingFace, cfg.Summarizer.Provider)
	assert.Equal(t, 60*time.Second, cfg.Summarizer.Timeout)
	assert.Equal(t, "facebook/bart-large-cnn", cfg.HuggingFace.Model)
	assert.Equal(t, "https://router.huggingface.co/hf-inference/models", cfg.HuggingFace.BaseURL)
	assert.Empty(t, cfg.HuggingFace.APIToken)
	assert.False(t, cfg.OTel.Enabled)
	assert.Equal(t, "sumdoc", cfg.OTel.ServiceName)
	assert.InDelta(t, 1.0, cfg.OTel.SampleRatio, 1e-9)
}

func TestLoadFromEnvironment(t *testing.T) {
	cfg, err := load(env.Options{Environment: map[string]string{
		"HTTP_ADDR":             "127.0.0.1:8080",
		"SUMMARIZER_PROVIDER":   " OpenAI ",
		"SUMMARIZER_TIMEOUT":    "15s",
		"OPENAI_API_KEY":        "  sk-test  ",
		"OPENAI_MODEL":          "gpt-4o-mini",
		"HUGGINGFACE_API_TOKEN": " hf_token ",
		"STRIP_HTML":            "true",
		"OTEL_ENABLED":          "true",
	}})
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.HTTPAddr)
	assert.Equal(t, ProviderOpenAI, cfg.Summarizer.Provider)
	assert.Equal(t, 15*time.Second, cfg.Summarizer.Timeout)
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Equal(t, "hf_token", cfg.HuggingFace.APIToken)
	assert.True(t, cfg.StripHTML)
	assert.True(t, cfg.OTel.Enabled)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name        string
		environment map[string]string
		errContains string
	}{
		{
			name:        "unknown provider",
			environment: map[string]string{"SUMMARIZER_PROVIDER": "anthropic"},
			errContains: "SUMMARIZER_PROVIDER",
		},
		{
			name:        "openai without key",
			environment: map[string]string{"SUMMARIZER_PROVIDER": "openai"},
			errContains: "OPENAI_API_KEY",
		},
		{
			name:        "malformed timeout",
			environment: map[string]string{"SUMMARIZER_TIMEOUT": "soon"},
			errContains: "parse env",
		},
		{
			name:        "non-positive timeout",
			environment: map[string]string{"SUMMARIZER_TIMEOUT": "0s"},
			errContains: "SUMMARIZER_TIMEOUT",
		},
		{
			name:        "sample ratio out of range",
			environment: map[string]string{"OTEL_TRACE_SAMPLE_RATIO": "1.5"},
			errContains: "OTEL_TRACE_SAMPLE_RATIO",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(env.Options{Environment: tt.environment})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, Config{LogLevel: "DEBUG"}.SlogLevel())
	assert.Equal(t, slog.LevelWarn, Config{LogLevel: "warning"}.SlogLevel())
	assert.Equal(t, slog.LevelError, Config{LogLevel: "error"}.SlogLevel())
	assert.Equal(t, slog.LevelInfo, Config{LogLevel: ""}.SlogLevel())
	assert.Equal(t, slog.LevelInfo, Config{LogLevel: "verbose"}.SlogLevel())
}
