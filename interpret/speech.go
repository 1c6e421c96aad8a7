package interpret

import (
	"regexp"
	"strings"
)

var thinkingPrefixRegex = regexp.MustCompile(`(?i)^\(thinking\):?`)

// thinkingIndicators mark a leading block as leaked strategy rather
// than speech. Checked only on blocks long enough to be deliberation.
var thinkingIndicators = []string{
	"thinking",
	"strategy",
	"analysis",
	"my plan",
	"i need to",
	"i should consider",
	"let me think",
	"as a werewolf",
	"as the seer",
	"as the witch",
}

// CleanSpeech strips leaked reasoning or strategy preamble from a
// public statement so only the in-character speech is broadcast.
// name is the speaker's canonical seat id.
func CleanSpeech(name, text string) string {
	cleaned := strings.TrimSpace(thinkingPrefixRegex.ReplaceAllString(strings.TrimSpace(text), ""))

	// Models sometimes prepend deliberation and then relabel the real
	// speech with "seat_n:". Keep what follows the label when the
	// leading part reads like strategy; otherwise just drop the label.
	label := name + ":"
	if idx := strings.Index(cleaned, label); idx >= 0 {
		head := strings.ToLower(strings.TrimSpace(cleaned[:idx]))
		tail := strings.TrimSpace(cleaned[idx+len(label):])
		if tail != "" {
			if looksLikeThinking(head, 100) {
				cleaned = lastLabeledSegment(cleaned, label)
			} else if head == "" {
				cleaned = tail
			}
		}
	}

	// Drop a long first paragraph that reads like deliberation.
	paragraphs := splitParagraphs(cleaned)
	if len(paragraphs) > 1 && looksLikeThinking(strings.ToLower(paragraphs[0]), 80) {
		paragraphs = paragraphs[1:]
	}
	return strings.TrimSpace(strings.Join(paragraphs, "\n\n"))
}

func looksLikeThinking(block string, minLen int) bool {
	if len(block) < minLen {
		return strings.Contains(block, "(thinking)")
	}
	for _, indicator := range thinkingIndicators {
		if strings.Contains(block, indicator) {
			return true
		}
	}
	return strings.Contains(block, "(thinking)")
}

func lastLabeledSegment(text, label string) string {
	parts := strings.Split(text, label)
	return strings.TrimSpace(parts[len(parts)-1])
}

func splitParagraphs(text string) []string {
	var out []string
	for _, p := range strings.Split(text, "\n\n") {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
