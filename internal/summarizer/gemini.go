package summarizer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"
)

const baseBackoff = 500 * time.Millisecond

// generate sends one prompt to Gemini and returns the cleaned response
// text. Rate-limit errors rotate the API key and retry with exponential
// backoff, up to the configured attempt bound; every other failure kind is
// returned to the caller on the first occurrence.
func (s *implSummarizer) generate(ctx context.Context, promptText string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	opts := s.options()
	var lastErr error

	for attempt := 0; attempt < s.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := baseBackoff << (attempt - 1)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", fmt.Errorf("%w: %v", ErrTimeout, ctx.Err())
			}
		}

		key, keyIdx := s.nextKey()
		text, err := s.callGemini(ctx, key, promptText, opts)
		if err == nil {
			return formatResponse(text), nil
		}

		kind := classify(err)
		if !errors.Is(kind, ErrRateLimited) {
			return "", fmt.Errorf("%w: %v", kind, err)
		}

		s.logger.Warn(ctx, "Gemini key %d rate limited, rotating (attempt %d/%d)",
			keyIdx+1, attempt+1, s.cfg.MaxRetries)
		s.rotateKey()
		lastErr = err
	}

	return "", fmt.Errorf("%w: retries exhausted: %v", ErrRateLimited, lastErr)
}

func (s *implSummarizer) callGemini(ctx context.Context, apiKey, promptText string, opts Options) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("create client: %w", err)
	}

	result, err := client.Models.GenerateContent(ctx, opts.Model, genai.Text(promptText),
		&genai.GenerateContentConfig{
			Temperature:     genai.Ptr(opts.Temperature),
			TopP:            genai.Ptr(opts.TopP),
			MaxOutputTokens: opts.MaxOutputTokens,
		})
	if err != nil {
		return "", err
	}

	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", errors.New("empty response from Gemini")
	}

	var text strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	if text.Len() == 0 {
		return "", errors.New("response carried no text parts")
	}

	return text.String(), nil
}

// classify maps a provider error to one of the enumerated failure kinds.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return ErrAuth
		case http.StatusTooManyRequests:
			return ErrRateLimited
		}
		return ErrUpstream
	}

	// The SDK does not wrap every failure in an APIError; fall back to the
	// message, like the status strings Gemini puts in plain errors.
	msg := err.Error()
	switch {
	case strings.Contains(msg, "API key not valid"),
		strings.Contains(msg, "API_KEY_INVALID"),
		strings.Contains(msg, "PERMISSION_DENIED"):
		return ErrAuth
	case strings.Contains(msg, "429"),
		strings.Contains(msg, "quota"),
		strings.Contains(msg, "RESOURCE_EXHAUSTED"):
		return ErrRateLimited
	case strings.Contains(msg, "deadline exceeded"),
		strings.Contains(msg, "timeout"):
		return ErrTimeout
	}
	return ErrUpstream
}
