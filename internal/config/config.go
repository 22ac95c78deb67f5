package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	ProviderHuggingFace = "huggingface"
	ProviderOpenAI      = "openai"
)

type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR"        envDefault:":5000"`
	LogLevel        string        `env:"LOG_LEVEL"        envDefault:"info"`
	MaxBodySize     string        `env:"MAX_BODY_SIZE"    envDefault:"2M"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	StripHTML       bool          `env:"STRIP_HTML"       envDefault:"false"`
	MetricsEnabled  bool          `env:"METRICS_ENABLED"  envDefault:"true"`

	Summarizer  SummarizerConfig
	HuggingFace HuggingFaceConfig
	OpenAI      OpenAIConfig
	OTel        OTelConfig
}

type SummarizerConfig struct {
	Provider string        `env:"SUMMARIZER_PROVIDER" envDefault:"huggingface"`
	Timeout  time.Duration `env:"SUMMARIZER_TIMEOUT"  envDefault:"60s"`
}

type HuggingFaceConfig struct {
	APIToken string `env:"HUGGINGFACE_API_TOKEN"`
	Model    string `env:"HUGGINGFACE_MODEL"    envDefault:"facebook/bart-large-cnn"`
	BaseURL  string `env:"HUGGINGFACE_BASE_URL" envDefault:"https://router.huggingface.co/hf-inference/models"`
}

type OpenAIConfig struct {
	APIKey  string `env:"OPENAI_API_KEY"`
	Model   string `env:"OPENAI_MODEL"    envDefault:"gpt-5-mini"`
	BaseURL string `env:"OPENAI_BASE_URL"`
}

type OTelConfig struct {
	Enabled      bool    `env:"OTEL_ENABLED"                envDefault:"false"`
	ServiceName  string  `env:"OTEL_SERVICE_NAME"           envDefault:"sumdoc"`
	OTLPEndpoint string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"http://localhost:4318"`
	SampleRatio  float64 `env:"OTEL_TRACE_SAMPLE_RATIO"     envDefault:"1.0"`
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	return load(env.Options{})
}

// Default returns the configuration used when no variable is set.
func Default() (Config, error) {
	return load(env.Options{Environment: map[string]string{}})
}

func load(opts env.Options) (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.Summarizer.Provider = strings.ToLower(strings.TrimSpace(cfg.Summarizer.Provider))
	cfg.HuggingFace.APIToken = strings.TrimSpace(cfg.HuggingFace.APIToken)
	cfg.OpenAI.APIKey = strings.TrimSpace(cfg.OpenAI.APIKey)

	if err = cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	switch c.Summarizer.Provider {
	case ProviderHuggingFace:
		if strings.TrimSpace(c.HuggingFace.Model) == "" {
			errs = append(errs, errors.New("HUGGINGFACE_MODEL cannot be empty"))
		}
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY is required for the openai provider"))
		}
	default:
		errs = append(errs, fmt.Errorf("SUMMARIZER_PROVIDER must be %q or %q (got %q)",
			ProviderHuggingFace, ProviderOpenAI, c.Summarizer.Provider))
	}

	if c.Summarizer.Timeout <= 0 {
		errs = append(errs, errors.New("SUMMARIZER_TIMEOUT must be positive"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_TIMEOUT must be positive"))
	}
	if c.OTel.SampleRatio < 0 || c.OTel.SampleRatio > 1 {
		errs = append(errs, errors.New("OTEL_TRACE_SAMPLE_RATIO must be within [0, 1]"))
	}

	return errors.Join(errs...)
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
