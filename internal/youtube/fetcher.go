package youtube

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// captionTrack is one entry of the watch page's caption track list.
type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" for auto-generated
}

// playerResponse is the slice of ytInitialPlayerResponse we care about.
type playerResponse struct {
	Captions struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	PlayabilityStatus struct {
		Status string `json:"status"`
	} `json:"playabilityStatus"`
}

// timedText is the transcript XML served by the caption track URL.
type timedText struct {
	XMLName xml.Name `xml:"transcript"`
	Texts   []struct {
		Start    string `xml:"start,attr"`
		Duration string `xml:"dur,attr"`
		Text     string `xml:",chardata"`
	} `xml:"text"`
}

// Fetch retrieves the caption transcript for a video. The primary path
// scrapes the watch page for caption tracks; when no track is found and the
// yt-dlp fallback is enabled, subtitles are pulled through yt-dlp instead.
func (f *implFetcher) Fetch(ctx context.Context, videoID string) (*Transcript, error) {
	transcript, err := f.fetchFromWatchPage(ctx, videoID)
	if err == nil {
		return transcript, nil
	}

	if f.ytdlpFallback && errors.Is(err, ErrTranscriptUnavailable) {
		f.logger.Warn(ctx, "No caption tracks on watch page for %s, trying yt-dlp", videoID)
		if transcript, dlErr := f.fetchWithYtDlp(ctx, videoID); dlErr == nil {
			return transcript, nil
		} else {
			f.logger.Warn(ctx, "yt-dlp fallback failed for %s: %v", videoID, dlErr)
		}
	}

	return nil, err
}

func (f *implFetcher) fetchFromWatchPage(ctx context.Context, videoID string) (*Transcript, error) {
	page, err := f.watchPage(ctx, videoID)
	if err != nil {
		return nil, err
	}

	tracks, err := extractCaptionTracks(page)
	if err != nil {
		return nil, err
	}

	track := f.selectTrack(tracks)
	segments, err := f.fetchTimedText(ctx, track.BaseURL)
	if err != nil {
		return nil, err
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: caption track for %s is empty", ErrTranscriptUnavailable, videoID)
	}

	return &Transcript{
		VideoID:  videoID,
		Language: track.LanguageCode,
		Segments: segments,
	}, nil
}

// watchPage downloads the video watch page HTML.
func (f *implFetcher) watchPage(ctx context.Context, videoID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+"/watch?v="+videoID, nil)
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", ErrFetch, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: fetch watch page: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: watch page returned status %d", ErrFetch, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read watch page: %v", ErrFetch, err)
	}

	return string(body), nil
}

// extractCaptionTracks locates the ytInitialPlayerResponse JSON blob in the
// page and returns its caption track list.
func extractCaptionTracks(page string) ([]captionTrack, error) {
	const marker = "ytInitialPlayerResponse = "
	start := strings.Index(page, marker)
	if start == -1 {
		return nil, fmt.Errorf("%w: no player response in watch page", ErrTranscriptUnavailable)
	}
	start += len(marker)

	// The blob is a JSON object; find its end by brace matching.
	depth := 0
	end := start
	for end < len(page) {
		switch page[end] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				end++
				goto found
			}
		}
		end++
	}
	return nil, fmt.Errorf("%w: malformed player response", ErrTranscriptUnavailable)

found:
	var player playerResponse
	if err := json.Unmarshal([]byte(page[start:end]), &player); err != nil {
		return nil, fmt.Errorf("%w: parse player response: %v", ErrTranscriptUnavailable, err)
	}

	if status := player.PlayabilityStatus.Status; status != "" && status != "OK" {
		return nil, fmt.Errorf("%w: video is %s", ErrTranscriptUnavailable, strings.ToLower(status))
	}

	tracks := player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return nil, fmt.Errorf("%w: no caption tracks", ErrTranscriptUnavailable)
	}

	return tracks, nil
}

// selectTrack prefers the configured languages in order, then manual over
// auto-generated, then the first track.
func (f *implFetcher) selectTrack(tracks []captionTrack) captionTrack {
	for _, lang := range f.languages {
		for _, t := range tracks {
			if t.LanguageCode == lang || strings.HasPrefix(t.LanguageCode, lang+"-") {
				return t
			}
		}
	}
	for _, t := range tracks {
		if t.Kind != "asr" {
			return t
		}
	}
	return tracks[0]
}

// fetchTimedText downloads a caption track and parses its XML.
func (f *implFetcher) fetchTimedText(ctx context.Context, trackURL string) ([]Segment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, trackURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build track request: %v", ErrFetch, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch caption track: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: caption track returned status %d", ErrFetch, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read caption track: %v", ErrFetch, err)
	}

	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, fmt.Errorf("%w: parse caption XML: %v", ErrTranscriptUnavailable, err)
	}

	segments := make([]Segment, 0, len(tt.Texts))
	for _, text := range tt.Texts {
		start, _ := strconv.ParseFloat(text.Start, 64)
		dur, _ := strconv.ParseFloat(text.Duration, 64)
		cleaned := strings.TrimSpace(decodeEntities(text.Text))
		if cleaned == "" {
			continue
		}
		segments = append(segments, Segment{Start: start, Duration: dur, Text: cleaned})
	}

	return segments, nil
}

var entityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&apos;", "'",
	"&nbsp;", " ",
)

// decodeEntities handles the HTML entities YouTube leaves in caption text
// on top of the XML-level decoding.
func decodeEntities(s string) string {
	return entityReplacer.Replace(s)
}

var ogTitle = regexp.MustCompile(`<meta\s+property="og:title"\s+content="([^"]*)"`)

// Title extracts the video title from the watch page og:title meta tag.
// Callers treat failures as non-fatal.
func (f *implFetcher) Title(ctx context.Context, videoID string) (string, error) {
	page, err := f.watchPage(ctx, videoID)
	if err != nil {
		return "", err
	}

	if m := ogTitle.FindStringSubmatch(page); len(m) > 1 {
		return decodeEntities(m[1]), nil
	}

	return "", fmt.Errorf("%w: no og:title in watch page", ErrFetch)
}
