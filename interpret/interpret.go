// Package interpret turns free-text decision-service answers into
// canonical seat references. Matching is an ordered, table-driven
// pipeline: structured answer prefixes first, then abstention
// synonyms, then exact matches against canonical names and their
// numeric-id variants, and finally substring containment of full
// canonical names (longest first, so "seat_1" never steals a mention
// of "seat_10"). When nothing matches the caller decides whether to
// retry or fall back; this package never guesses a seat.
package interpret

import (
	"encoding/json"
	"sort"
	"strings"
)

// Outcome classifies a resolution attempt.
type Outcome int

const (
	// Match means a single canonical target was identified.
	Match Outcome = iota
	// Abstain means the text is an explicit "no target" answer.
	Abstain
	// NoMatch means the text named nothing recognizable.
	NoMatch
)

// answerPrefixes are structured markers models are instructed to use.
// New synonyms are data, not new code paths.
var answerPrefixes = []string{
	"i choose:",
	"i vote for:",
	"i vote:",
	"i pick:",
	"i check:",
	"i inspect:",
	"i poison:",
	"i shoot:",
	"we eliminate:",
	"my choice:",
	"my vote:",
	"target:",
	"answer:",
}

// abstainTokens are recognized "no target" answers.
var abstainTokens = []string{
	"abstain",
	"no vote",
	"no target",
	"none",
	"nobody",
	"no one",
	"pass",
	"skip",
	"decline",
	"i will not",
	"i won't",
}

// affirmTokens are recognized yes answers for yes/no consults.
var affirmTokens = []string{
	"use the antidote",
	"use antidote",
	"save",
	"yes",
	"y",
}

// Resolve maps free text onto one of the canonical targets.
func Resolve(text string, targets []string) (string, Outcome) {
	cleaned := unwrapJSON(strings.TrimSpace(text))
	cleaned = stripPrefix(cleaned)

	if IsAbstention(cleaned) {
		return "", Abstain
	}

	normalized := normalize(cleaned)

	// Exact match against each canonical name and its id variants.
	for _, target := range targets {
		for _, v := range variants(target) {
			if normalized == v {
				return target, Match
			}
		}
	}

	// Containment fallback: full canonical names only, longest first.
	sorted := make([]string, len(targets))
	copy(sorted, targets)
	sort.Slice(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })
	lowered := strings.ToLower(text)
	for _, target := range sorted {
		if strings.Contains(lowered, strings.ToLower(target)) {
			return target, Match
		}
	}

	return "", NoMatch
}

// IsAbstention reports whether text is an explicit "no target" answer.
func IsAbstention(text string) bool {
	normalized := normalize(text)
	if normalized == "" {
		return false
	}
	for _, token := range abstainTokens {
		if normalized == token || strings.Contains(normalized, token) {
			return true
		}
	}
	return false
}

// IsAffirmative reports whether text is a yes answer to a yes/no
// consult (the witch's save decision). Anything else counts as no.
func IsAffirmative(text string) bool {
	normalized := normalize(unwrapJSON(text))
	if normalized == "" {
		return false
	}
	// A negation wins over an embedded affirmative token so that
	// "do not use the antidote" reads as a refusal.
	for _, neg := range []string{"not", "no ", "don't", "won't", "decline", "skip"} {
		if strings.Contains(normalized, neg) {
			return false
		}
	}
	for _, token := range affirmTokens {
		if normalized == token {
			return true
		}
		// Single-letter tokens match exactly only; containment would
		// turn any word with a "y" into a yes.
		if len(token) > 1 && strings.Contains(normalized, token) {
			return true
		}
	}
	return false
}

// stripPrefix removes the first structured answer prefix found and
// returns the remainder.
func stripPrefix(text string) string {
	lowered := strings.ToLower(text)
	for _, prefix := range answerPrefixes {
		if i := strings.Index(lowered, prefix); i >= 0 {
			return strings.TrimSpace(text[i+len(prefix):])
		}
	}
	return text
}

// unwrapJSON extracts the answer payload when a model wraps its reply
// in a JSON object, e.g. {"response": "seat_3"}.
func unwrapJSON(text string) string {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, `"`) && strings.HasSuffix(trimmed, `"`) && len(trimmed) >= 2 {
		var inner string
		if err := json.Unmarshal([]byte(trimmed), &inner); err == nil {
			trimmed = strings.TrimSpace(inner)
		}
	}
	if !strings.HasPrefix(trimmed, "{") {
		return trimmed
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(trimmed), &payload); err != nil {
		return trimmed
	}
	for _, key := range []string{"response", "answer", "target", "content", "speak"} {
		if v, ok := payload[key].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return trimmed
}

// normalize lowercases and collapses whitespace, dropping trailing
// punctuation so "seat_3." still matches.
func normalize(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = strings.Trim(s, ".!,;:\"'[]()")
	return strings.Join(strings.Fields(s), " ")
}

// variants lists the accepted spellings of a canonical name. For a
// name with a numeric id suffix like "seat_7" that is seat7, seat 7,
// seat-7, seat_7 and the bare 7. Names without an id suffix only
// match themselves.
func variants(name string) []string {
	lowered := strings.ToLower(name)
	out := []string{lowered}
	i := strings.LastIndexAny(lowered, "_- ")
	if i < 0 || i == len(lowered)-1 {
		return out
	}
	base, id := lowered[:i], lowered[i+1:]
	if !isDigits(id) {
		return out
	}
	out = append(out,
		base+id,
		base+" "+id,
		base+"-"+id,
		id,
	)
	return out
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
