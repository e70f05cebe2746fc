package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Zoharvan12/simply-mind-3/config"
	"github.com/Zoharvan12/simply-mind-3/types"
)

// var for tests
var openaiURL = "https://api.openai.com/v1/chat/completions"

const openaiModel = "gpt-4o-mini"

var httpClient = &http.Client{Timeout: 30 * time.Second}

// Complete performs a single chat-completion call. There is no retry: a
// failed call fails the whole turn.
func Complete(ctx context.Context, systemPrompt, userContent string) (string, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("OPENAI_API_KEY not set")
	}

	body := map[string]interface{}{
		"model": openaiModel,
		"messages": []map[string]interface{}{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": userContent},
		},
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openaiURL, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var res map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return "", fmt.Errorf("failed to decode response: %v", err)
	}

	return extractTextFromResponse(res)
}

func extractTextFromResponse(res map[string]interface{}) (string, error) {
	choices, ok := res["choices"].([]interface{})
	if !ok || len(choices) == 0 {
		return "", fmt.Errorf("no choices returned from OpenAI")
	}

	choice, ok := choices[0].(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("invalid choice format")
	}

	message, ok := choice["message"].(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("no message in choice")
	}

	content, ok := message["content"].(string)
	if !ok {
		return "", fmt.Errorf("no content in message")
	}

	return content, nil
}

// GenerateChatTitle asks for a short title derived from the chat's first
// user message. The result is clamped to config.TitleMaxLength.
func GenerateChatTitle(ctx context.Context, firstMessage string) (string, error) {
	text, err := Complete(ctx, BuildTitleSystemPrompt(), firstMessage)
	if err != nil {
		return "", err
	}

	title := clampTitle(text)
	if title == "" {
		return "", fmt.Errorf("empty title in response")
	}
	return title, nil
}

func clampTitle(text string) string {
	title := strings.TrimSpace(text)
	title = strings.Trim(title, `"`)
	if utf8.RuneCountInString(title) > config.TitleMaxLength {
		runes := []rune(title)
		title = strings.TrimSpace(string(runes[:config.TitleMaxLength]))
	}
	return title
}

// AnalyzeJournalEntries runs the emotional analysis over the given
// entries. EmotionIntensity on the result is left to the caller, which
// computes it from the ratings directly.
func AnalyzeJournalEntries(ctx context.Context, entries []types.JournalEntry) (types.Analysis, error) {
	text, err := Complete(ctx, BuildAnalysisSystemPrompt(), BuildAnalysisUserPrompt(entries))
	if err != nil {
		return types.Analysis{}, err
	}

	var analysis types.Analysis
	if err := json.Unmarshal([]byte(stripCodeFences(text)), &analysis); err != nil {
		return types.Analysis{}, fmt.Errorf("failed to parse analysis response: %v\noriginal text: %s", err, text)
	}

	if analysis.OverallEmotion == "" || analysis.CommonTopics == nil || analysis.Summary == "" {
		return types.Analysis{}, fmt.Errorf("incomplete analysis in response: %s", text)
	}

	return analysis, nil
}

// stripCodeFences removes a ```json ... ``` wrapper the model sometimes
// adds despite being told not to.
func stripCodeFences(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}
