package server

import (
	"errors"

	"github.com/ytnotes/tubenotes/internal/export"
	"github.com/ytnotes/tubenotes/internal/prompt"
	"github.com/ytnotes/tubenotes/internal/session"
	"github.com/ytnotes/tubenotes/internal/summarizer"
	"github.com/ytnotes/tubenotes/internal/youtube"
)

// userMessage converts any failure into a short message safe to show the
// user. Internal detail stays in the logs.
func userMessage(err error) string {
	switch {
	case errors.Is(err, youtube.ErrInvalidReference):
		return "That doesn't look like a valid YouTube URL. Supported forms: youtube.com/watch?v=…, youtu.be/…, or a bare video ID."
	case errors.Is(err, youtube.ErrTranscriptUnavailable):
		return "Couldn't access this video's transcript. The video may have captions disabled, or be private or restricted."
	case errors.Is(err, youtube.ErrFetch):
		return "Couldn't reach YouTube. Please check the URL and try again."
	case errors.Is(err, summarizer.ErrAuth):
		return "The AI service rejected our credentials. Check the API key configuration."
	case errors.Is(err, summarizer.ErrRateLimited):
		return "The AI service is throttling requests right now. Please wait a moment and retry."
	case errors.Is(err, summarizer.ErrTimeout):
		return "The AI service took too long to respond. Please try again."
	case errors.Is(err, summarizer.ErrUpstream):
		return "The AI service returned an error. Please try again."
	case errors.Is(err, prompt.ErrEmptyTranscript):
		return "This video's transcript is empty, so there is nothing to summarize."
	case errors.Is(err, export.ErrEmptyContent):
		return "Generate a summary first, then download it."
	case errors.Is(err, session.ErrNoActiveVideo):
		return "Submit a video URL first."
	case errors.Is(err, session.ErrNoSummaryYet):
		return "Generate a summary first to enable questions."
	case errors.Is(err, session.ErrLimitReached):
		return "You've reached this session's usage limit."
	default:
		return "Something went wrong. Please try again."
	}
}
