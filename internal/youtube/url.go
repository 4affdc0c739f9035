package youtube

import (
	"fmt"
	"regexp"
	"strings"
)

// URL forms accepted, in match order:
//   - youtube.com/watch?v=ID (desktop and m. mobile, v anywhere in the query)
//   - youtu.be/ID
//   - youtube.com/embed/ID, /v/ID, /shorts/ID, /live/ID
//   - a bare video ID
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:https?://)?(?:www\.|m\.)?youtube\.com/watch\?(?:[^#]*&)?v=([A-Za-z0-9_-]+)`),
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtu\.be/([A-Za-z0-9_-]+)`),
	regexp.MustCompile(`(?:https?://)?(?:www\.|m\.)?youtube\.com/(?:embed|v|shorts|live)/([A-Za-z0-9_-]+)`),
}

var bareVideoID = regexp.MustCompile(`^[A-Za-z0-9_-]{6,64}$`)

// ExtractVideoID pulls the canonical video ID out of a user-supplied URL
// or bare ID. Returns ErrInvalidReference when nothing matches.
func ExtractVideoID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty input", ErrInvalidReference)
	}

	for _, pattern := range videoIDPatterns {
		if m := pattern.FindStringSubmatch(raw); len(m) > 1 {
			return m[1], nil
		}
	}

	if bareVideoID.MatchString(raw) {
		return raw, nil
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidReference, raw)
}

// WatchURL returns the canonical watch URL for a video ID.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

// ThumbnailURL returns the default thumbnail image URL for a video ID.
func ThumbnailURL(videoID string) string {
	return "https://img.youtube.com/vi/" + videoID + "/0.jpg"
}
