package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Zoharvan12/simply-mind-3/config"
	"github.com/Zoharvan12/simply-mind-3/llm"
	"github.com/Zoharvan12/simply-mind-3/supabase"
	"github.com/Zoharvan12/simply-mind-3/types"
)

func validEmotionRating(rating int) bool {
	return rating >= config.MinEmotionRating && rating <= config.MaxEmotionRating
}

func CreateJournalEntryHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title         string `json:"title"`
		Content       string `json:"content"`
		EmotionRating int    `json:"emotion_rating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(body.Content) == "" {
		writeError(w, "Missing entry content", http.StatusBadRequest)
		return
	}
	if !validEmotionRating(body.EmotionRating) {
		writeError(w, "emotion_rating must be between 1 and 10", http.StatusBadRequest)
		return
	}

	client, userID, err := supabase.ClientFromRequest(r)
	if err != nil {
		config.Logger.Error("Failed to create Supabase client:", err)
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	entry, err := supabase.CreateJournalEntry(client, types.JournalEntry{
		UserID:        userID,
		Title:         body.Title,
		Content:       body.Content,
		EmotionRating: body.EmotionRating,
	})
	if err != nil {
		config.Logger.Error("Failed to create journal entry:", err)
		writeError(w, "Failed to create journal entry", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, types.JournalEntryResponse{
		Success: true,
		Entry:   entry,
	})
}

func UpdateJournalEntryHandler(w http.ResponseWriter, r *http.Request) {
	entryID := r.URL.Query().Get("id")
	if entryID == "" {
		writeError(w, "Missing entry ID", http.StatusBadRequest)
		return
	}

	var body struct {
		Title         *string `json:"title"`
		Content       *string `json:"content"`
		EmotionRating *int    `json:"emotion_rating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	updates := map[string]interface{}{}
	if body.Title != nil {
		updates["title"] = *body.Title
	}
	if body.Content != nil {
		updates["content"] = *body.Content
	}
	if body.EmotionRating != nil {
		if !validEmotionRating(*body.EmotionRating) {
			writeError(w, "emotion_rating must be between 1 and 10", http.StatusBadRequest)
			return
		}
		updates["emotion_rating"] = *body.EmotionRating
	}
	if len(updates) == 0 {
		writeError(w, "No fields to update", http.StatusBadRequest)
		return
	}

	client, userID, err := supabase.ClientFromRequest(r)
	if err != nil {
		config.Logger.Error("Failed to create Supabase client:", err)
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	entry, err := supabase.UpdateJournalEntry(client, entryID, userID, updates)
	if err != nil {
		config.Logger.Error("Failed to update journal entry:", err)
		writeError(w, "Failed to update journal entry", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, types.JournalEntryResponse{
		Success: true,
		Entry:   entry,
	})
}

func GetJournalEntriesHandler(w http.ResponseWriter, r *http.Request) {
	client, userID, err := supabase.ClientFromRequest(r)
	if err != nil {
		config.Logger.Error("Failed to create Supabase client:", err)
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	entries, err := supabase.GetJournalEntries(client, userID)
	if err != nil {
		config.Logger.Error("Failed to fetch journal entries:", err)
		writeError(w, "Failed to fetch journal entries", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, types.GetJournalEntriesResponse{
		Success: true,
		Entries: entries,
	})
}

// AnalyzeJournalEntriesHandler derives mood/topic stats from the user's
// recent entries and records them in the stats table. With no entries it
// returns a neutral default without calling the model.
func AnalyzeJournalEntriesHandler(w http.ResponseWriter, r *http.Request) {
	client, userID, err := supabase.ClientFromRequest(r)
	if err != nil {
		config.Logger.Error("Failed to create Supabase client:", err)
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	entries, err := supabase.GetRecentJournalEntries(client, userID, config.AnalysisEntries)
	if err != nil {
		config.Logger.Error("Failed to fetch journal entries:", err)
		writeError(w, "Failed to fetch journal entries", http.StatusInternalServerError)
		return
	}

	var analysis types.Analysis
	if len(entries) == 0 {
		analysis = types.Analysis{
			OverallEmotion:   "neutral",
			CommonTopics:     []string{},
			EmotionIntensity: 5,
			Summary:          "No journal entries found yet. Start writing to see your emotional analysis!",
		}
	} else {
		analysis, err = llm.AnalyzeJournalEntries(r.Context(), entries)
		if err != nil {
			config.Logger.Error("Failed to analyze journal entries:", err)
			writeError(w, "Failed to analyze journal entries", http.StatusBadGateway)
			return
		}
		analysis.EmotionIntensity = llm.AverageEmotionRating(entries)
	}

	if err := supabase.SaveStat(client, types.Stat{
		UserID:           userID,
		OverallEmotion:   analysis.OverallEmotion,
		CommonTopics:     analysis.CommonTopics,
		EmotionIntensity: analysis.EmotionIntensity,
		Summary:          analysis.Summary,
	}); err != nil {
		config.Logger.Warn("Failed to store analysis results:", err)
	}

	writeJSON(w, http.StatusOK, types.AnalysisResponse{
		Success:  true,
		Analysis: analysis,
	})
}
