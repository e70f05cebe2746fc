package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Zoharvan12/simply-mind-3/config"
	"github.com/Zoharvan12/simply-mind-3/llm"
	"github.com/Zoharvan12/simply-mind-3/supabase"
	"github.com/Zoharvan12/simply-mind-3/types"
	"github.com/google/uuid"
	supa "github.com/supabase-community/supabase-go"
)

// ChatWithContextHandler is the completion function: it assembles the
// emotional context from recent journal entries, persists the user
// message, asks the model for a reply, persists the reply and returns it.
// The reply row is written server-side so it survives a client that
// navigates away mid-turn.
func ChatWithContextHandler(w http.ResponseWriter, r *http.Request) {
	var req types.CompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	req.Content = strings.TrimSpace(req.Content)
	if req.Content == "" {
		writeError(w, "Missing message content", http.StatusBadRequest)
		return
	}
	if _, err := uuid.Parse(req.ChatID); err != nil {
		writeError(w, "Invalid chatId", http.StatusBadRequest)
		return
	}

	client, userID, err := supabase.ClientFromRequest(r)
	if err != nil {
		config.Logger.Warn("Unauthorized completion call:", err)
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if blocked := enforceQuota(w, client, userID); blocked {
		return
	}

	entries, err := supabase.GetRecentJournalEntries(client, userID, config.JournalContextEntries)
	if err != nil {
		config.Logger.Error("Failed to fetch journal entries:", err)
		writeError(w, "Failed to fetch journal entries", http.StatusInternalServerError)
		return
	}

	emotionalContext := llm.TrimContextForTokens(llm.BuildEmotionalContext(entries), config.MaxContextTokens)

	// Persist the user message before the completion call so the turn is
	// durable even if the model call fails.
	if _, err := supabase.SaveMessage(client, userID, req.ChatID, types.RoleUser, req.Content); err != nil {
		config.Logger.Error("Failed to save user message:", err)
		writeError(w, "Could not save message", http.StatusInternalServerError)
		return
	}

	reply, err := llm.Complete(r.Context(), llm.BuildChatSystemPrompt(emotionalContext), req.Content)
	if err != nil {
		config.Logger.Error("Failed to get AI response:", err)
		writeError(w, "Failed to get AI response", http.StatusBadGateway)
		return
	}

	if _, err := supabase.SaveMessage(client, userID, req.ChatID, types.RoleAI, reply); err != nil {
		config.Logger.Error("Failed to save AI message:", err)
		writeError(w, "Could not save AI response", http.StatusInternalServerError)
		return
	}

	// A turn counts against the monthly quota only once it has fully
	// succeeded; failed turns cost nothing.
	if err := supabase.IncrementMonthlyMessages(client, userID); err != nil {
		config.Logger.Warn("Failed to increment monthly messages:", err)
	}

	if req.IsFirstMessage {
		go generateChatTitle(client, req.ChatID, userID, req.Content)
	}

	writeJSON(w, http.StatusOK, types.CompletionResponse{Message: reply})
}

// enforceQuota applies the free-tier cap server-side. The client gate is
// the primary guard; this stops callers that bypass the SDK. Lookup
// failures fail open, consistent with the client tracker.
func enforceQuota(w http.ResponseWriter, client *supa.Client, userID string) bool {
	role, err := supabase.GetUserRole(client, userID)
	if err != nil {
		config.Logger.Warn("Failed to resolve user role:", err)
		return false
	}
	if role != types.RoleFree {
		return false
	}

	profile, err := supabase.GetProfile(client, userID)
	if err != nil {
		config.Logger.Warn("Failed to fetch profile for quota check:", err)
		return false
	}

	if profile.MonthlyMessages >= config.FreeMonthlyMessageLimit {
		writeErrorCode(w, "Monthly message limit reached", types.QuotaExceededCode, http.StatusForbidden)
		return true
	}
	return false
}

// generateChatTitle is a best-effort side channel: failures are logged
// and never surfaced, and the chat keeps its placeholder title. Runs off
// the request context since the response has already been sent.
func generateChatTitle(client *supa.Client, chatID, userID, firstMessage string) {
	title, err := llm.GenerateChatTitle(context.Background(), firstMessage)
	if err != nil {
		config.Logger.Warn("Failed to generate chat title:", err)
		return
	}

	if _, err := supabase.UpdateChatTitle(client, chatID, userID, title); err != nil {
		config.Logger.Warn("Failed to update chat title:", err)
	}
}
