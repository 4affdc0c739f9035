package server

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"net/http"

	"github.com/yuin/goldmark"

	"github.com/ytnotes/tubenotes/internal/session"
	"github.com/ytnotes/tubenotes/internal/youtube"
)

//go:embed templates/*.html
var templateFiles embed.FS

// pageTemplate is parsed once at startup; a syntax error fails fast.
var pageTemplate = template.Must(template.ParseFS(templateFiles, "templates/index.html"))

// exchangeView is one rendered Q&A pair.
type exchangeView struct {
	Question string
	Answer   template.HTML
}

// pageData is the template context. Everything displayed is derived from
// the session snapshot; the page holds no state of its own.
type pageData struct {
	Message            string
	HasVideo           bool
	VideoID            string
	VideoTitle         string
	WatchURL           string
	ThumbnailURL       string
	HasSummary         bool
	Mode               string
	Summary            template.HTML
	Exchanges          []exchangeView
	VideosRemaining    int
	QuestionsRemaining int
}

// markdownHTML converts model-generated markdown into HTML for the page.
func markdownHTML(md string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		// Fall back to the raw text, escaped by the template engine.
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

func (s *implServer) render(w http.ResponseWriter, snap session.Snapshot, message string) {
	data := pageData{
		Message:            message,
		HasVideo:           snap.VideoID != "",
		VideoID:            snap.VideoID,
		VideoTitle:         snap.VideoTitle,
		HasSummary:         snap.Summary != "",
		Mode:               snap.Mode,
		VideosRemaining:    snap.VideosRemaining,
		QuestionsRemaining: snap.QuestionsRemaining,
	}

	if data.HasVideo {
		data.WatchURL = youtube.WatchURL(snap.VideoID)
		data.ThumbnailURL = youtube.ThumbnailURL(snap.VideoID)
	}
	if data.HasSummary {
		data.Summary = markdownHTML(snap.Summary)
	}
	for _, ex := range snap.History {
		data.Exchanges = append(data.Exchanges, exchangeView{
			Question: ex.Question,
			Answer:   markdownHTML(ex.Answer),
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		s.logger.Error(context.Background(), "Template render failed: %v", err)
	}
}
