package youtube

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidReference indicates the supplied URL or ID is not a
	// recognizable YouTube video reference.
	ErrInvalidReference = errors.New("invalid video reference")

	// ErrTranscriptUnavailable indicates the video has no usable captions
	// (disabled, private, or restricted).
	ErrTranscriptUnavailable = errors.New("transcript unavailable")

	// ErrFetch indicates a transport-level failure talking to YouTube.
	ErrFetch = errors.New("transcript fetch failed")
)

// Fetcher retrieves caption transcripts and metadata for YouTube videos.
type Fetcher interface {
	Fetch(ctx context.Context, videoID string) (*Transcript, error)
	Title(ctx context.Context, videoID string) (string, error)
}

// Segment is a single time-coded caption entry.
type Segment struct {
	Start    float64
	Duration float64
	Text     string
}

// Transcript is the ordered caption sequence for one video.
type Transcript struct {
	VideoID  string
	Language string
	Segments []Segment
}

// Empty reports whether the transcript carries no caption text.
func (t *Transcript) Empty() bool {
	return t == nil || len(t.Segments) == 0
}

// Timecoded renders the transcript as "[HH:MM:SS] text ..." for prompting.
func (t *Transcript) Timecoded() string {
	if t == nil {
		return ""
	}
	var b strings.Builder
	for _, seg := range t.Segments {
		total := int(seg.Start)
		fmt.Fprintf(&b, "[%02d:%02d:%02d] %s ", total/3600, (total%3600)/60, total%60, seg.Text)
	}
	return strings.TrimSpace(b.String())
}
