package youtube

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// fetchWithYtDlp downloads auto or manual subtitles through yt-dlp and
// parses the resulting VTT file. Used only as a fallback when the watch
// page exposes no caption tracks.
func (f *implFetcher) fetchWithYtDlp(ctx context.Context, videoID string) (*Transcript, error) {
	tmpDir, err := os.MkdirTemp("", "tubenotes-subs-")
	if err != nil {
		return nil, fmt.Errorf("%w: create temp dir: %v", ErrFetch, err)
	}
	defer os.RemoveAll(tmpDir)

	args := []string{
		"--skip-download",
		"--write-auto-sub",
		"--write-sub",
		"--sub-lang", strings.Join(f.languages, ","),
		"--output", filepath.Join(tmpDir, "%(id)s"),
		WatchURL(videoID),
	}

	if _, err := f.executor.Execute(ctx, f.ytdlpPath, args...); err != nil {
		return nil, fmt.Errorf("%w: yt-dlp: %v", ErrFetch, err)
	}

	content, lang, err := f.readSubtitleFile(tmpDir, videoID)
	if err != nil {
		return nil, err
	}

	segments := parseVTT(content)
	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: yt-dlp produced no usable subtitles for %s", ErrTranscriptUnavailable, videoID)
	}

	return &Transcript{
		VideoID:  videoID,
		Language: lang,
		Segments: segments,
	}, nil
}

// readSubtitleFile finds the downloaded VTT in language preference order.
func (f *implFetcher) readSubtitleFile(dir, videoID string) (string, string, error) {
	for _, lang := range f.languages {
		path := filepath.Join(dir, fmt.Sprintf("%s.%s.vtt", videoID, lang))
		content, err := os.ReadFile(path)
		if err == nil {
			return string(content), lang, nil
		}
	}

	// yt-dlp may have picked a language we did not ask for by name.
	matches, _ := filepath.Glob(filepath.Join(dir, videoID+".*.vtt"))
	if len(matches) > 0 {
		content, err := os.ReadFile(matches[0])
		if err == nil {
			parts := strings.Split(filepath.Base(matches[0]), ".")
			lang := ""
			if len(parts) >= 3 {
				lang = parts[len(parts)-2]
			}
			return string(content), lang, nil
		}
	}

	return "", "", fmt.Errorf("%w: no subtitle file for %s", ErrTranscriptUnavailable, videoID)
}

var (
	vttCueTime = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2})\.(\d{3})\s+-->`)
	vttHeader  = regexp.MustCompile(`^(WEBVTT|Kind:|Language:)`)
	vttTag     = regexp.MustCompile(`<[^>]+>`)
)

// parseVTT converts WebVTT cue blocks into transcript segments. Consecutive
// duplicate lines, common in auto-generated subtitles, are dropped.
func parseVTT(content string) []Segment {
	var segments []Segment
	var lastText string
	currentStart := -1.0

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)

		if m := vttCueTime.FindStringSubmatch(line); m != nil {
			h, _ := strconv.Atoi(m[1])
			min, _ := strconv.Atoi(m[2])
			s, _ := strconv.Atoi(m[3])
			ms, _ := strconv.Atoi(m[4])
			currentStart = float64(h*3600+min*60+s) + float64(ms)/1000
			continue
		}

		if line == "" || vttHeader.MatchString(line) || currentStart < 0 {
			continue
		}

		text := strings.TrimSpace(vttTag.ReplaceAllString(line, ""))
		if text == "" || text == lastText {
			continue
		}

		segments = append(segments, Segment{Start: currentStart, Text: text})
		lastText = text
	}

	return segments
}
