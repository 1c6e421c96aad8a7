package actor

import (
	"context"
	"encoding/json"
	"log"
	"regexp"
	"strings"
)

// maxAttempts bounds one resilient query, counting the first try.
const maxAttempts = 3

var thinkTagRegex = regexp.MustCompile(`(?is)<think(?:ing)?>.*?</think(?:ing)?>`)
var blankLinesRegex = regexp.MustCompile(`\n\s*\n`)

// Ask wraps exactly one request/response exchange with one actor.
//
// For automated actors it retries rate-limit-class provider errors
// with model rotation up to the attempt ceiling, salvages any partial
// textual payload embedded in a permanent error before giving up, and
// strips reasoning markup from the final text. Human actors get a
// single pass-through: the prompt must reach the operator unmodified
// and an answer is waited for without retry logic.
func Ask(ctx context.Context, a Actor, prompt string) (string, error) {
	auto, ok := a.(Automated)
	if !ok {
		return a.Decide(ctx, prompt)
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		reply, err := a.Decide(ctx, prompt)
		if err == nil {
			return StripThinking(reply), nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if !IsRateLimited(err) {
			break
		}
		if attempt < maxAttempts && auto.Rebind() {
			log.Printf("[QUERY] %s hit a rate limit, rebound to %s (attempt %d/%d)", a.Name(), auto.Model(), attempt, maxAttempts)
			continue
		}
		log.Printf("[QUERY] %s hit a rate limit, retrying on %s (attempt %d/%d)", a.Name(), auto.Model(), attempt, maxAttempts)
	}

	if text := Salvage(lastErr); text != "" {
		log.Printf("[QUERY] %s salvaged a partial answer from failure", a.Name())
		return StripThinking(text), nil
	}
	return "", lastErr
}

// IsRateLimited classifies transient, retry-worthy provider errors.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "resource_exhausted")
}

// Salvage extracts a textual payload embedded in a provider error,
// e.g. a JSON body carrying a "response" field. Returns "" when
// nothing usable is found.
func Salvage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	start := strings.Index(msg, "{")
	end := strings.LastIndex(msg, "}")
	if start < 0 || end <= start {
		return ""
	}
	body := msg[start : end+1]
	var payload map[string]any
	if jsonErr := json.Unmarshal([]byte(body), &payload); jsonErr != nil {
		// Python-style dict dumps use single quotes.
		body = strings.ReplaceAll(body, "'", `"`)
		if jsonErr := json.Unmarshal([]byte(body), &payload); jsonErr != nil {
			return ""
		}
	}
	for _, key := range []string{"response", "content", "text"} {
		if v, ok := payload[key].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// StripThinking removes <think>...</think> style reasoning markup and
// collapses the blank lines left behind.
func StripThinking(text string) string {
	cleaned := thinkTagRegex.ReplaceAllString(text, "")
	cleaned = blankLinesRegex.ReplaceAllString(cleaned, "\n\n")
	return strings.TrimSpace(cleaned)
}
