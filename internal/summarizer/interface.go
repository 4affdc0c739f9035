package summarizer

import (
	"context"
	"errors"

	"github.com/ytnotes/tubenotes/internal/session"
)

var (
	// ErrAuth indicates the API key is missing or was rejected.
	ErrAuth = errors.New("authentication with the model provider failed")

	// ErrRateLimited indicates the provider throttled the request.
	ErrRateLimited = errors.New("model provider rate limit hit")

	// ErrTimeout indicates no response arrived within the configured bound.
	ErrTimeout = errors.New("model request timed out")

	// ErrUpstream covers any other provider-side failure.
	ErrUpstream = errors.New("model provider request failed")
)

// Mode selects how thorough the generated summary is.
type Mode string

const (
	// ModeFast produces a short executive summary in a single call.
	ModeFast Mode = "fast"

	// ModeDetailed analyzes the transcript chunk by chunk and synthesizes
	// comprehensive notes from the per-chunk analyses.
	ModeDetailed Mode = "detailed"
)

// Options are the generation parameters for model calls. They can be
// replaced at runtime via SetOptions.
type Options struct {
	Model           string
	Temperature     float32
	TopP            float32
	MaxOutputTokens int32
}

// Summarizer generates summaries and follow-up answers from transcripts.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string, mode Mode) (string, error)
	Answer(ctx context.Context, question, transcript, summary string, history []session.Exchange) (string, error)
	SetOptions(opts Options)
}
