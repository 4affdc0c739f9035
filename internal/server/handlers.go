package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ytnotes/tubenotes/internal/export"
	"github.com/ytnotes/tubenotes/internal/session"
	"github.com/ytnotes/tubenotes/internal/summarizer"
	"github.com/ytnotes/tubenotes/internal/youtube"
)

const sessionCookie = "tubenotes_session"

// sessionFor resolves the request's session from its cookie. A missing or
// stale cookie (e.g. after a server restart) gets a fresh session and a
// replacement cookie.
func (s *implServer) sessionFor(w http.ResponseWriter, r *http.Request) *session.Session {
	var id string
	if c, err := r.Cookie(sessionCookie); err == nil {
		id = c.Value
	}

	sess := s.store.GetOrCreate(id)
	if sess.ID() != id {
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    sess.ID(),
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return sess
}

func (s *implServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	s.render(w, sess.Snapshot(), "")
}

// handleVideo processes a submitted URL: extract the ID, fetch the
// transcript, summarize, then commit the new video state. The session is
// only mutated after the summary succeeds, so a failure leaves the prior
// video, summary, and Q&A history intact.
func (s *implServer) handleVideo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := s.sessionFor(w, r)
	snap := sess.Snapshot()

	videoID, err := youtube.ExtractVideoID(r.FormValue("url"))
	if err != nil {
		s.logger.Warn(ctx, "Rejected video reference: %v", err)
		s.render(w, snap, userMessage(err))
		return
	}

	mode := summarizer.ModeDetailed
	if r.FormValue("mode") == string(summarizer.ModeFast) {
		mode = summarizer.ModeFast
	}

	newVideo := videoID != snap.VideoID || snap.Transcript.Empty()
	if newVideo && snap.VideosRemaining <= 0 {
		s.render(w, snap, userMessage(session.ErrLimitReached))
		return
	}

	transcript := snap.Transcript
	title := snap.VideoTitle
	if newVideo {
		transcript, err = s.fetcher.Fetch(ctx, videoID)
		if err != nil {
			s.logger.Error(ctx, "Transcript fetch for %s failed: %v", videoID, err)
			s.render(w, snap, userMessage(err))
			return
		}

		// Title failures are cosmetic only.
		title, err = s.fetcher.Title(ctx, videoID)
		if err != nil {
			s.logger.Warn(ctx, "Could not fetch title for %s: %v", videoID, err)
			title = ""
		}
	}

	s.logger.Info(ctx, "Generating %s summary for video %s", mode, videoID)
	started := time.Now()

	summary, err := s.summarizer.Summarize(ctx, transcript.Timecoded(), mode)
	if err != nil {
		s.logger.Error(ctx, "Summarization for %s failed: %v", videoID, err)
		s.render(w, snap, userMessage(err))
		return
	}

	s.logger.Info(ctx, "Summary for %s generated in %s", videoID, time.Since(started).Round(time.Millisecond))

	if newVideo {
		if err := sess.SetVideo(videoID, title, transcript); err != nil {
			s.render(w, snap, userMessage(err))
			return
		}
	}
	if err := sess.SetSummary(summary, string(mode)); err != nil {
		s.render(w, snap, userMessage(err))
		return
	}

	s.render(w, sess.Snapshot(), "")
}

func (s *implServer) handleQuestion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := s.sessionFor(w, r)
	snap := sess.Snapshot()

	question := strings.TrimSpace(r.FormValue("question"))
	if question == "" {
		s.render(w, snap, "Please enter a question.")
		return
	}

	if err := sess.BeginQuestion(); err != nil {
		s.render(w, snap, userMessage(err))
		return
	}

	answer, err := s.summarizer.Answer(ctx, question, snap.Transcript.Timecoded(), snap.Summary, snap.History)
	if err != nil {
		s.logger.Error(ctx, "Q&A for %s failed: %v", snap.VideoID, err)
		s.render(w, sess.Snapshot(), userMessage(err))
		return
	}

	if err := sess.AppendExchange(question, answer); err != nil {
		s.render(w, sess.Snapshot(), userMessage(err))
		return
	}

	s.render(w, sess.Snapshot(), "")
}

func (s *implServer) handleExport(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	snap := sess.Snapshot()

	format := export.Format(r.URL.Query().Get("format"))
	if format == "" {
		format = export.FormatMarkdown
	}

	data, err := export.Export(export.Document{
		Title:       snap.VideoTitle,
		VideoID:     snap.VideoID,
		Summary:     snap.Summary,
		Exchanges:   snap.History,
		GeneratedAt: time.Now(),
	}, format)
	if err != nil {
		s.logger.Warn(r.Context(), "Export failed: %v", err)
		http.Error(w, userMessage(err), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", export.ContentType(format))
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.FileName(snap.VideoID, format)))
	w.Write(data)
}

func (s *implServer) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}
