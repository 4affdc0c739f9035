package export

import (
	"fmt"
	"strings"

	"github.com/ytnotes/tubenotes/internal/youtube"
)

// renderMarkdown serializes the document as plain markdown text. The
// summary is included verbatim.
func renderMarkdown(doc Document) []byte {
	title := doc.Title
	if title == "" {
		title = "Untitled"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Video Summary: %s\n\n", title)
	fmt.Fprintf(&b, "Generated on: %s\n", doc.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Video Link: %s\n\n", youtube.WatchURL(doc.VideoID))
	fmt.Fprintf(&b, "![Thumbnail](%s)\n\n", youtube.ThumbnailURL(doc.VideoID))
	b.WriteString(doc.Summary)
	b.WriteString("\n")

	if len(doc.Exchanges) > 0 {
		b.WriteString("\n## Questions & Answers\n\n")
		for _, ex := range doc.Exchanges {
			fmt.Fprintf(&b, "**Q: %s**\n\n", ex.Question)
			fmt.Fprintf(&b, "A: %s\n\n", ex.Answer)
		}
	}

	b.WriteString("\n---\nGenerated using tubenotes\n")
	return []byte(b.String())
}
