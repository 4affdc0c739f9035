// Package export serializes a generated summary and its Q&A history into
// downloadable documents.
package export

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ytnotes/tubenotes/internal/session"
)

// ErrEmptyContent indicates there is no generated content to export.
var ErrEmptyContent = errors.New("nothing to export yet")

// Format selects the output document format.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatDocx     Format = "docx"
)

// Document is the content bundle an export is computed from. Exports are
// stateless: the bytes are derived on demand and never stored.
type Document struct {
	Title       string
	VideoID     string
	Summary     string
	Exchanges   []session.Exchange
	GeneratedAt time.Time
}

// Export renders the document in the requested format.
func Export(doc Document, format Format) ([]byte, error) {
	if strings.TrimSpace(doc.Summary) == "" {
		return nil, ErrEmptyContent
	}

	switch format {
	case FormatMarkdown:
		return renderMarkdown(doc), nil
	case FormatDocx:
		return renderDocx(doc)
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}

// FileName suggests a download file name for the given format.
func FileName(videoID string, format Format) string {
	ext := "md"
	if format == FormatDocx {
		ext = "docx"
	}
	return fmt.Sprintf("video_summary_%s.%s", videoID, ext)
}

// ContentType returns the MIME type for the given format.
func ContentType(format Format) string {
	if format == FormatDocx {
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	}
	return "text/markdown; charset=utf-8"
}
