package llm

import (
	"fmt"
	"strings"

	"github.com/Zoharvan12/simply-mind-3/config"
	"github.com/Zoharvan12/simply-mind-3/types"
)

// BuildChatSystemPrompt embeds the emotional context in the fixed
// empathetic-tone instruction. The average line is omitted when the user
// has no journal entries.
func BuildChatSystemPrompt(context EmotionalContext) string {
	sections := []string{
		"You are an empathetic AI assistant who understands the user's emotional context.",
		fmt.Sprintf("Recent context about the user:\n%s", context.Render()),
	}

	if context.HasEntries() {
		sections = append(sections, fmt.Sprintf("User's average emotional rating: %d/10", context.AvgRating))
	}

	sections = append(sections,
		"Based on this context, provide supportive and relevant responses. If the user seems to be struggling emotionally, be extra empathetic and supportive. Always maintain a positive and encouraging tone while acknowledging their feelings.")

	return strings.Join(sections, "\n\n")
}

// BuildTitleSystemPrompt constrains the model to a bare short title.
func BuildTitleSystemPrompt() string {
	return fmt.Sprintf(
		"You generate titles for conversations. Given the first message of a conversation, respond with a short descriptive title of at most %d characters. Respond with the title only, no quotes, no punctuation around it, no other text.",
		config.TitleMaxLength)
}

// BuildAnalysisSystemPrompt asks for a raw JSON emotional analysis.
func BuildAnalysisSystemPrompt() string {
	return `You are an emotional analysis AI. Return ONLY a raw JSON object (no markdown, no code blocks) with these exact fields:
{
  "overall_emotion": one of ["positive", "neutral", "negative"],
  "common_topics": array of strings,
  "summary": string with brief analysis
}`
}

func BuildAnalysisUserPrompt(entries []types.JournalEntry) string {
	var block strings.Builder
	for i, entry := range entries {
		if i > 0 {
			block.WriteString("\n\n")
		}
		date := ""
		if entry.CreatedAt != nil {
			date = entry.CreatedAt.Format("2006-01-02")
		}
		block.WriteString(fmt.Sprintf("Entry (%s) [Emotion Rating: %d]: %s", date, entry.EmotionRating, entry.Content))
	}
	return fmt.Sprintf("Analyze these journal entries and their emotion ratings:\n%s", block.String())
}
