package domain

import "errors"

// Validation errors. Their text is returned to clients verbatim.
var (
	ErrNoText            = errors.New("No text provided for summarization.")
	ErrUnsupportedFormat = errors.New("Unsupported file format. Choose from 'txt', 'docx', or 'pdf'.")
)

// ErrUpstream marks failures of the hosted summarization model.
var ErrUpstream = errors.New("summarization service is unavailable")

// ValidationError is a client input problem. It is never retried.
type ValidationError struct {
	Err error
}

func NewValidationError(err error) *ValidationError {
	return &ValidationError{Err: err}
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// UpstreamError wraps a failed call to the hosted model. Provider is the
// summarizer backend name and is only used for logs and metrics.
type UpstreamError struct {
	Provider string
	Err      error
}

func NewUpstreamError(provider string, err error) *UpstreamError {
	return &UpstreamError{Provider: provider, Err: err}
}

func (e *UpstreamError) Error() string {
	if e.Err == nil {
		return e.Provider + ": " + ErrUpstream.Error()
	}

	return e.Provider + ": " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() []error {
	return []error{ErrUpstream, e.Err}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsUpstream(err error) bool {
	return errors.Is(err, ErrUpstream)
}
