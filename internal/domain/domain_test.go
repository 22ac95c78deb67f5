package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"sumdoc/internal/domain"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		raw  string
		want domain.Format
	}{
		{"txt", domain.FormatTXT},
		{"docx", domain.FormatDOCX},
		{"pdf", domain.FormatPDF},
		{"PDF", domain.FormatPDF},
		{"  Docx ", domain.FormatDOCX},
		{"", domain.FormatTXT},
		{"   ", domain.FormatTXT},
	}

	for _, tt := range tests {
		got, err := domain.ParseFormat(tt.raw)
		if err != nil {
			t.Fatalf("ParseFormat(%q) returned error: %v", tt.raw, err)
		}
		if got != tt.want {
			t.Fatalf("ParseFormat(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestParseFormatRejectsUnknown(t *testing.T) {
	for _, raw := range []string{"rtf", "odt", "txt2", "t x t"} {
		_, err := domain.ParseFormat(raw)
		if err == nil {
			t.Fatalf("expected error for %q", raw)
		}
		if !domain.IsValidation(err) {
			t.Fatalf("expected validation error for %q, got %T", raw, err)
		}
		if !errors.Is(err, domain.ErrUnsupportedFormat) {
			t.Fatalf("expected ErrUnsupportedFormat for %q, got %v", raw, err)
		}
		if err.Error() != "Unsupported file format. Choose from 'txt', 'docx', or 'pdf'." {
			t.Fatalf("unexpected message: %q", err.Error())
		}
	}
}

func TestUpstreamErrorMatchesSentinelAndCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := fmt.Errorf("summarize: %w", domain.NewUpstreamError("huggingface", cause))

	if !domain.IsUpstream(err) {
		t.Fatalf("expected upstream error to match ErrUpstream")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected upstream error to keep its cause")
	}
	if domain.IsValidation(err) {
		t.Fatalf("upstream error must not be a validation error")
	}
}

func TestUpstreamErrorWithoutCause(t *testing.T) {
	err := domain.NewUpstreamError("openai", nil)
	if !domain.IsUpstream(err) {
		t.Fatalf("expected upstream error to match ErrUpstream")
	}
	if got := err.Error(); got != "openai: summarization service is unavailable" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestValidationErrorKeepsLiteralMessage(t *testing.T) {
	err := domain.NewValidationError(domain.ErrNoText)
	if err.Error() != "No text provided for summarization." {
		t.Fatalf("unexpected message: %q", err.Error())
	}
	if domain.IsUpstream(err) {
		t.Fatalf("validation error must not be an upstream error")
	}
}
