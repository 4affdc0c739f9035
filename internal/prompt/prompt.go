// Package prompt builds the instruction text sent to the generative model.
// Every function is pure: identical inputs always produce identical prompts.
package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ytnotes/tubenotes/internal/session"
)

// ErrEmptyTranscript indicates there is no transcript text to prompt with.
var ErrEmptyTranscript = errors.New("empty transcript")

const chunkPrompt = `Analyze this portion of the video transcript and provide:
1. Key points discussed in this section
2. Notable quotes and spoken content, with speaker identification where
   possible, brief context, and exact timestamps in [HH:MM:SS] format
3. Technical data, statistics, or numerical information
4. Important concepts and definitions
5. A brief summary of the content

For quotes: preserve exact wording, include only substantive quotes that add
value, and omit filler phrases or incomplete thoughts.

Transcript section:
%s`

const finalPrompt = `Based on the analysis of all sections, provide a comprehensive summary with:
1. Main Topic/Title: the title of the video and the core subject
2. Executive Summary (200 words)
3. Key Points (10-20 most important concepts)
4. Detailed Analysis: in-depth discussion of the content
5. Notable Quotes and Key Statements, formatted "[HH:MM:SS] Speaker: Quote"
   with brief context; skip if none are found
6. Technical Data & Statistics; skip the section if none found
7. Key Terms & Definitions; skip the section if none found
8. Practical Applications; skip if not applicable

Format in markdown, include headers only for non-empty sections, and do not
generate placeholder or filler content.

Section analyses:
%s`

const fastPrompt = `Provide a concise executive summary of the video transcript.
- Limit the summary to 200-500 words.
- Focus on the main ideas, key insights, and central theme.
- Skip detailed quotes, technical terms, or extensive sections.
- Format in markdown.

Transcript:
%s`

const questionPrompt = `Based on the video transcript and summary, answer this question:

Question: %s

Summary:
%s

Transcript:
%s
%s
Please provide a specific answer based on the video content.`

// Chunk builds the per-section analysis prompt.
func Chunk(section string) (string, error) {
	if strings.TrimSpace(section) == "" {
		return "", ErrEmptyTranscript
	}
	return fmt.Sprintf(chunkPrompt, section), nil
}

// Final builds the synthesis prompt over the combined section analyses.
func Final(combined string) (string, error) {
	if strings.TrimSpace(combined) == "" {
		return "", ErrEmptyTranscript
	}
	return fmt.Sprintf(finalPrompt, combined), nil
}

// Fast builds the short executive-summary prompt.
func Fast(transcript string) (string, error) {
	if strings.TrimSpace(transcript) == "" {
		return "", ErrEmptyTranscript
	}
	return fmt.Sprintf(fastPrompt, transcript), nil
}

// Question builds a follow-up Q&A prompt. Prior exchanges are included in
// chronological order so the model keeps the conversational context; the
// caller bounds the history length.
func Question(question, transcript, summary string, history []session.Exchange) (string, error) {
	if strings.TrimSpace(transcript) == "" {
		return "", ErrEmptyTranscript
	}

	var prior string
	if len(history) > 0 {
		var b strings.Builder
		b.WriteString("\nEarlier questions and answers about this video, oldest first:\n")
		for _, ex := range history {
			fmt.Fprintf(&b, "Q: %s\nA: %s\n", ex.Question, ex.Answer)
		}
		prior = b.String()
	}

	return fmt.Sprintf(questionPrompt, question, summary, transcript, prior), nil
}

// Chunks splits text into sections of at most size characters, breaking on
// word boundaries. Size must be positive.
func Chunks(text string, size int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var chunks []string
	var current []string
	length := 0

	for _, word := range words {
		if length > 0 && length+len(word)+1 > size {
			chunks = append(chunks, strings.Join(current, " "))
			current = current[:0]
			length = 0
		}
		current = append(current, word)
		length += len(word) + 1
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}

	return chunks
}
