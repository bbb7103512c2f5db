// Package vision wraps the external text-recognition providers. A provider
// receives receipt image bytes and returns the single best-guess raw text
// transcript; everything structured happens later in the parser.
package vision

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// transcriptPrompt asks the vision model for a verbatim transcript. Amount
// and date tokens must survive untouched for the downstream extractors.
const transcriptPrompt = `Transcribe ALL text visible on this retail receipt exactly as printed, line by line, from top to bottom.
Preserve line breaks, the original order, and every number, date, and amount character for character.
Do not translate, summarize, correct, or annotate anything. Output only the raw transcript.`

// Provider obtains a raw text transcript from a receipt image.
type Provider interface {
	RecognizeText(ctx context.Context, image []byte, contentType string) (string, error)
	Name() string
}

// Recognizer adds bounded retries with a per-attempt timeout around a
// Provider. The recognition call is the single external dependency on the
// request's critical path, so transient provider failures get a second
// chance before the whole request fails.
type Recognizer struct {
	provider    Provider
	maxAttempts int
	timeout     time.Duration
}

// NewRecognizer wraps a provider. maxAttempts <= 0 means a single attempt;
// timeout <= 0 defaults to 30 seconds per attempt.
func NewRecognizer(provider Provider, maxAttempts int, timeout time.Duration) *Recognizer {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Recognizer{
		provider:    provider,
		maxAttempts: maxAttempts,
		timeout:     timeout,
	}
}

// Name returns the wrapped provider's name.
func (r *Recognizer) Name() string {
	return r.provider.Name()
}

// RecognizeText calls the provider, retrying transient failures and empty
// transcripts with doubling backoff. Caller cancellation is honored between
// attempts and inside each attempt through the per-attempt context.
func (r *Recognizer) RecognizeText(ctx context.Context, image []byte, contentType string) (string, error) {
	backoff := 500 * time.Millisecond
	var lastErr error

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, r.timeout)
		text, err := r.provider.RecognizeText(attemptCtx, image, contentType)
		cancel()

		if err == nil {
			if strings.TrimSpace(text) == "" {
				lastErr = errors.New("provider returned an empty transcript")
			} else {
				return text, nil
			}
		} else {
			lastErr = err
		}

		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if attempt < r.maxAttempts {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}
	}
	return "", fmt.Errorf("text recognition failed after %d attempts: %w", r.maxAttempts, lastErr)
}
