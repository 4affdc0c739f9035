package summarizer

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/ytnotes/tubenotes/internal/prompt"
	"github.com/ytnotes/tubenotes/internal/session"
)

// Summarize generates a summary of the transcript. ModeFast is a single
// call; ModeDetailed analyzes the transcript in chunks and synthesizes the
// per-chunk analyses into comprehensive notes.
func (s *implSummarizer) Summarize(ctx context.Context, transcript string, mode Mode) (string, error) {
	switch mode {
	case ModeFast:
		p, err := prompt.Fast(transcript)
		if err != nil {
			return "", err
		}
		return s.generate(ctx, p)

	case ModeDetailed:
		return s.summarizeDetailed(ctx, transcript)

	default:
		return "", fmt.Errorf("unknown summary mode %q", mode)
	}
}

func (s *implSummarizer) summarizeDetailed(ctx context.Context, transcript string) (string, error) {
	chunks := prompt.Chunks(transcript, s.cfg.ChunkSize)
	if len(chunks) == 0 {
		return "", prompt.ErrEmptyTranscript
	}

	analyses := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		s.logger.Info(ctx, "Analyzing transcript part %d of %d", i+1, len(chunks))

		p, err := prompt.Chunk(chunk)
		if err != nil {
			return "", err
		}
		analysis, err := s.generate(ctx, p)
		if err != nil {
			return "", fmt.Errorf("analyze part %d of %d: %w", i+1, len(chunks), err)
		}
		analyses = append(analyses, analysis)
	}

	final, err := prompt.Final(strings.Join(analyses, "\n\n"))
	if err != nil {
		return "", err
	}
	return s.generate(ctx, final)
}

// Answer generates a follow-up answer grounded in the transcript, the
// summary, and the prior exchanges.
func (s *implSummarizer) Answer(ctx context.Context, question, transcript, summary string, history []session.Exchange) (string, error) {
	p, err := prompt.Question(question, transcript, summary, history)
	if err != nil {
		return "", err
	}
	return s.generate(ctx, p)
}

var (
	reExtraNewlines = regexp.MustCompile(`\n{3,}`)
	reBulletStyle   = regexp.MustCompile(`(?m)^\s*[-•]\s+`)
)

// formatResponse normalizes model output: collapses newline runs,
// standardizes bullet markers, and repairs markdown tables the model
// emitted without a header separator row.
func formatResponse(text string) string {
	text = reExtraNewlines.ReplaceAllString(text, "\n\n")
	text = reBulletStyle.ReplaceAllString(text, "- ")
	text = repairTableSeparators(text)
	return strings.TrimSpace(text)
}

// repairTableSeparators inserts the |---|---| row markdown renderers need
// after a table's header row when the model leaves it out.
func repairTableSeparators(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		out = append(out, line)

		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "|") || isSeparatorRow(trimmed) {
			continue
		}
		// Only the first row of a table is a header.
		if i > 0 && strings.HasPrefix(strings.TrimSpace(lines[i-1]), "|") {
			continue
		}
		if i+1 >= len(lines) {
			continue
		}
		next := strings.TrimSpace(lines[i+1])
		if strings.HasPrefix(next, "|") && !isSeparatorRow(next) {
			cols := strings.Count(strings.Trim(trimmed, "|"), "|") + 1
			out = append(out, "|"+strings.Repeat("---|", cols))
		}
	}

	return strings.Join(out, "\n")
}

func isSeparatorRow(line string) bool {
	if !strings.ContainsRune(line, '-') {
		return false
	}
	return strings.Trim(line, "|-: \t") == ""
}
