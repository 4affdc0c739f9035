package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/ytnotes/tubenotes/internal/config"
	"github.com/ytnotes/tubenotes/internal/logger"
	"github.com/ytnotes/tubenotes/internal/session"
	"github.com/ytnotes/tubenotes/internal/summarizer"
	"github.com/ytnotes/tubenotes/internal/youtube"
)

type stubFetcher struct {
	transcript *youtube.Transcript
	title      string
	err        error
	fetches    int
}

func (f *stubFetcher) Fetch(ctx context.Context, videoID string) (*youtube.Transcript, error) {
	f.fetches++
	if f.err != nil {
		return nil, f.err
	}
	t := *f.transcript
	t.VideoID = videoID
	return &t, nil
}

func (f *stubFetcher) Title(ctx context.Context, videoID string) (string, error) {
	return f.title, nil
}

type stubSummarizer struct {
	summary string
	answer  string
	err     error
}

func (s *stubSummarizer) Summarize(ctx context.Context, transcript string, mode summarizer.Mode) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.summary, nil
}

func (s *stubSummarizer) Answer(ctx context.Context, question, transcript, summary string, history []session.Exchange) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.answer, nil
}

func (s *stubSummarizer) SetOptions(opts summarizer.Options) {}

type testEnv struct {
	server     *httptest.Server
	client     *http.Client
	fetcher    *stubFetcher
	summarizer *stubSummarizer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	fetcher := &stubFetcher{
		transcript: &youtube.Transcript{
			Segments: []youtube.Segment{{Start: 0, Text: "hello world"}},
		},
		title: "Stub Video",
	}
	summ := &stubSummarizer{summary: "The summary of hello world.", answer: "A stub answer."}

	store := session.NewStore(config.SessionConfig{MaxHistory: 8, MaxVideos: 3, MaxQuestions: 5})
	srv := New(config.ServerConfig{Addr: ":0"}, store, fetcher, summ, logger.New("error")).(*implServer)

	ts := httptest.NewServer(srv.mux)
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}

	return &testEnv{
		server:     ts,
		client:     &http.Client{Jar: jar},
		fetcher:    fetcher,
		summarizer: summ,
	}
}

func (e *testEnv) post(t *testing.T, path string, form url.Values) string {
	t.Helper()
	resp, err := e.client.PostForm(e.server.URL+path, form)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(body)
}

func (e *testEnv) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	resp, err := e.client.Get(e.server.URL + path)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, string(body)
}

func TestIndex(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.get(t, "/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET / status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, "tubenotes") {
		t.Error("index page is missing the app name")
	}
	if strings.Contains(body, "Download Markdown") {
		t.Error("fresh session should not offer downloads")
	}
}

func TestSubmitVideo(t *testing.T) {
	env := newTestEnv(t)

	body := env.post(t, "/video", url.Values{"url": {"https://youtu.be/abc123"}, "mode": {"fast"}})

	if !strings.Contains(body, "The summary of hello world.") {
		t.Error("page is missing the generated summary")
	}
	if !strings.Contains(body, "Stub Video") {
		t.Error("page is missing the video title")
	}
	if env.fetcher.fetches != 1 {
		t.Errorf("fetches = %d, want 1", env.fetcher.fetches)
	}

	// State survives a reload.
	_, body = env.get(t, "/")
	if !strings.Contains(body, "The summary of hello world.") {
		t.Error("summary not re-derived from session state on reload")
	}
}

func TestSubmitSameVideoReusesTranscript(t *testing.T) {
	env := newTestEnv(t)

	env.post(t, "/video", url.Values{"url": {"https://youtu.be/abc123"}})
	env.post(t, "/video", url.Values{"url": {"https://www.youtube.com/watch?v=abc123"}, "mode": {"fast"}})

	if env.fetcher.fetches != 1 {
		t.Errorf("fetches = %d, want 1 (same video should not re-fetch)", env.fetcher.fetches)
	}
}

func TestSubmitInvalidURL(t *testing.T) {
	env := newTestEnv(t)

	body := env.post(t, "/video", url.Values{"url": {"https://example.com/nope"}})

	if !strings.Contains(body, "valid YouTube URL") {
		t.Error("page is missing the invalid-URL message")
	}
	if env.fetcher.fetches != 0 {
		t.Errorf("fetches = %d, want 0", env.fetcher.fetches)
	}
}

func TestRateLimitedLeavesStateIntact(t *testing.T) {
	env := newTestEnv(t)

	env.post(t, "/video", url.Values{"url": {"https://youtu.be/abc123"}})

	// The provider starts throttling; submitting a different video fails.
	env.summarizer.err = fmt.Errorf("quota: %w", summarizer.ErrRateLimited)
	body := env.post(t, "/video", url.Values{"url": {"https://youtu.be/xyz78900"}})

	if !strings.Contains(body, "throttling requests") {
		t.Error("page is missing the retry message")
	}
	if !strings.Contains(body, "The summary of hello world.") {
		t.Error("prior summary should still be shown after a failed attempt")
	}

	// Session state is unchanged: the old video is still active.
	_, body = env.get(t, "/")
	if !strings.Contains(body, "watch?v=abc123") {
		t.Error("session lost the prior video after a rate-limited attempt")
	}
}

func TestQuestionBeforeSummary(t *testing.T) {
	env := newTestEnv(t)

	body := env.post(t, "/question", url.Values{"question": {"what?"}})
	if !strings.Contains(body, "Generate a summary first") {
		t.Error("page is missing the no-summary message")
	}
}

func TestQuestionFlow(t *testing.T) {
	env := newTestEnv(t)

	env.post(t, "/video", url.Values{"url": {"https://youtu.be/abc123"}})
	body := env.post(t, "/question", url.Values{"question": {"What is it about?"}})

	if !strings.Contains(body, "Q: What is it about?") {
		t.Error("page is missing the question")
	}
	if !strings.Contains(body, "A stub answer.") {
		t.Error("page is missing the answer")
	}
}

func TestExportMarkdown(t *testing.T) {
	env := newTestEnv(t)

	env.post(t, "/video", url.Values{"url": {"https://youtu.be/abc123"}})

	resp, body := env.get(t, "/export?format=markdown")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("export status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/markdown") {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "video_summary_abc123.md") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if !strings.Contains(body, "The summary of hello world.") {
		t.Error("export is missing the summary")
	}
}

func TestExportBeforeSummary(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.get(t, "/export?format=markdown")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("export status = %d, want 400", resp.StatusCode)
	}
	if !strings.Contains(body, "Generate a summary first") {
		t.Error("response is missing the empty-content message")
	}
}

func TestStaleCookieGetsFreshSession(t *testing.T) {
	env := newTestEnv(t)

	// A cookie left over from a previous process must not 500; the server
	// mints a new session and replaces the cookie.
	req, err := http.NewRequest(http.MethodGet, env.server.URL+"/", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.AddCookie(&http.Cookie{Name: "tubenotes_session", Value: "stale-id"})

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var replaced bool
	for _, c := range resp.Cookies() {
		if c.Name == "tubenotes_session" && c.Value != "" && c.Value != "stale-id" {
			replaced = true
		}
	}
	if !replaced {
		t.Error("stale session cookie was not replaced")
	}
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.get(t, "/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("healthz status = %d", resp.StatusCode)
	}
}
