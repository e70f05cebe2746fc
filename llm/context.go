package llm

import (
	"fmt"
	"math"
	"strings"

	"github.com/Zoharvan12/simply-mind-3/config"
	"github.com/Zoharvan12/simply-mind-3/types"
)

// EmotionalContext is the ephemeral per-call view of the user's recent
// journal history. It is recomputed for every completion, never stored.
type EmotionalContext struct {
	Entries   []types.JournalEntry // most recent first
	AvgRating int                  // rounded arithmetic mean, valid only when HasEntries
}

func (c EmotionalContext) HasEntries() bool {
	return len(c.Entries) > 0
}

// BuildEmotionalContext derives the context from entries ordered most
// recent first. At most config.JournalContextEntries entries are kept.
func BuildEmotionalContext(entries []types.JournalEntry) EmotionalContext {
	if len(entries) > config.JournalContextEntries {
		entries = entries[:config.JournalContextEntries]
	}

	ctx := EmotionalContext{Entries: entries}
	if len(entries) > 0 {
		ctx.AvgRating = AverageEmotionRating(entries)
	}
	return ctx
}

// AverageEmotionRating is the arithmetic mean of the ratings, rounded to
// the nearest integer.
func AverageEmotionRating(entries []types.JournalEntry) int {
	if len(entries) == 0 {
		return 0
	}
	sum := 0
	for _, entry := range entries {
		sum += entry.EmotionRating
	}
	return int(math.Round(float64(sum) / float64(len(entries))))
}

// Render produces one line per entry, newline-joined, most recent first.
func (c EmotionalContext) Render() string {
	if !c.HasEntries() {
		return "No recent journal entries available."
	}

	lines := make([]string, 0, len(c.Entries))
	for _, entry := range c.Entries {
		date := ""
		if entry.CreatedAt != nil {
			date = entry.CreatedAt.Format("January 2, 2006")
		}
		lines = append(lines, fmt.Sprintf("On %s, user wrote %q with emotion rating %d/10: %s",
			date, entry.Title, entry.EmotionRating, entry.Content))
	}
	return strings.Join(lines, "\n")
}

// TrimContextForTokens drops the oldest entries until the rendered block
// fits the budget. The average is recomputed over what survives.
func TrimContextForTokens(context EmotionalContext, maxTokens int) EmotionalContext {
	trimmed := context
	for len(trimmed.Entries) > 1 && EstimateTokens(trimmed.Render()) > maxTokens {
		trimmed = BuildEmotionalContext(trimmed.Entries[:len(trimmed.Entries)-1])
	}
	return trimmed
}
