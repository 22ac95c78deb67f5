package summarizer

import (
	"context"
	"strings"
)

// PromptTemplate frames the submitted text as a summarization request. The
// {text} slot is replaced with the input.
const PromptTemplate = "Please provide a concise summary for the following text:\n\n{text}\n\nSummary:"

const promptSlot = "{text}"

// Input describes the payload for a summary request.
type Input struct {
	// Text contains the plain text to summarise.
	Text string
}

// Summarizer produces a single summary for a given input text.
type Summarizer interface {
	Summarize(ctx context.Context, input Input) (string, error)
	// Name identifies the backend in logs and metrics.
	Name() string
}

// BuildPrompt renders PromptTemplate for text.
func BuildPrompt(text string) string {
	return strings.Replace(PromptTemplate, promptSlot, text, 1)
}
