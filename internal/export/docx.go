package export

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/ytnotes/tubenotes/internal/youtube"
)

const (
	fontName = "Calibri"
	fontSize = 11
)

var (
	reHeading   = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBold      = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBullet    = regexp.MustCompile(`^[\-\*]\s+(.+)$`)
	reNumbered  = regexp.MustCompile(`^\d+\.\s+(.+)$`)
	reImage     = regexp.MustCompile(`^!\[.*\]\(.*\)$`)
	reTableSep  = regexp.MustCompile(`^[|\s\-:]+$`)
	reCellEdges = regexp.MustCompile(`^[-\s]+|[-\s]+$`)
	reCellSpace = regexp.MustCompile(`\s+`)
)

// renderDocx builds a Word document from the markdown summary and the Q&A
// history. godocx only writes to a path, so the document goes through a
// temp file before the bytes are returned.
func renderDocx(doc Document) ([]byte, error) {
	word, err := godocx.NewDocument()
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}

	title := doc.Title
	if title == "" {
		title = "Untitled"
	}
	addStyledRun(word.AddParagraph(""), "Video Summary: "+title, true, 16)

	word.AddParagraph("Generated on: " + doc.GeneratedAt.Format("2006-01-02 15:04:05"))
	word.AddParagraph("Video Link: " + youtube.WatchURL(doc.VideoID))
	word.AddParagraph("")

	writeMarkdown(word, doc.Summary)

	if len(doc.Exchanges) > 0 {
		addStyledRun(word.AddParagraph(""), "Questions & Answers", true, 14)
		for _, ex := range doc.Exchanges {
			q := word.AddParagraph("")
			q.AddText("Q: ").Font(fontName).Size(fontSize).Bold(true)
			q.AddText(ex.Question).Font(fontName).Size(fontSize)

			a := word.AddParagraph("")
			a.AddText("A: ").Font(fontName).Size(fontSize).Bold(true)
			a.AddText(ex.Answer).Font(fontName).Size(fontSize)

			word.AddParagraph("")
		}
	}

	word.AddParagraph("Generated using tubenotes")

	return saveToBytes(word)
}

// writeMarkdown converts markdown lines to styled paragraphs and tables.
func writeMarkdown(word *docx.RootDoc, markdown string) {
	lines := strings.Split(markdown, "\n")

	for i := 0; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])

		if strings.HasPrefix(trimmed, "|") {
			end := i
			for end < len(lines) && strings.HasPrefix(strings.TrimSpace(lines[end]), "|") {
				end++
			}
			writeTable(word, lines[i:end])
			word.AddParagraph("")
			i = end - 1
			continue
		}

		if trimmed == "" || trimmed == "---" || reImage.MatchString(trimmed) {
			continue
		}

		if m := reHeading.FindStringSubmatch(trimmed); m != nil {
			addStyledRun(word.AddParagraph(""), m[2], true, headingSize(len(m[1])))
			continue
		}

		if m := reBullet.FindStringSubmatch(trimmed); m != nil {
			addRichText(word.AddParagraph(""), "• "+m[1])
			continue
		}

		if reNumbered.MatchString(trimmed) {
			addRichText(word.AddParagraph(""), trimmed)
			continue
		}

		addRichText(word.AddParagraph(""), trimmed)
	}
}

// writeTable renders a run of pipe-delimited markdown lines as a Word
// table with a bold header row. Separator rows and rows with no content
// are dropped.
func writeTable(word *docx.RootDoc, lines []string) {
	var rows [][]string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if reTableSep.MatchString(trimmed) {
			continue
		}

		var row []string
		hasContent := false
		for _, cell := range strings.Split(strings.Trim(trimmed, "|"), "|") {
			c := cleanCell(cell)
			if c != "" {
				hasContent = true
			}
			row = append(row, c)
		}
		if hasContent {
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		return
	}

	table := word.AddTable()
	table.Style("TableGrid")
	for i, row := range rows {
		tr := table.AddRow()
		for _, cell := range row {
			run := tr.AddCell().AddParagraph("").AddText(cell).Font(fontName).Size(fontSize)
			if i == 0 {
				run.Bold(true)
			}
		}
	}
}

// cleanCell strips stray separator dashes and collapses whitespace inside
// a table cell.
func cleanCell(s string) string {
	s = cleanInline(s)
	s = reCellEdges.ReplaceAllString(s, "")
	return reCellSpace.ReplaceAllString(s, " ")
}

func headingSize(level int) uint64 {
	switch level {
	case 1:
		return 16
	case 2:
		return 14
	case 3:
		return 12
	default:
		return fontSize
	}
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(cleanInline(text)).Font(fontName).Size(size)
	if bold {
		run.Bold(true)
	}
}

// addRichText writes a line, turning **spans** into bold runs.
func addRichText(p *docx.Paragraph, text string) {
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range parts {
		if part != "" {
			p.AddText(cleanInline(part)).Font(fontName).Size(fontSize)
		}
		if i < len(matches) {
			p.AddText(cleanInline(matches[i][1])).Font(fontName).Size(fontSize).Bold(true)
		}
	}
}

func cleanInline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}

func saveToBytes(word *docx.RootDoc) ([]byte, error) {
	tmp, err := os.CreateTemp("", "tubenotes-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	path := tmp.Name()
	tmp.Close()
	defer os.Remove(path)

	if err := word.SaveTo(filepath.Clean(path)); err != nil {
		return nil, fmt.Errorf("write document: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return data, nil
}
