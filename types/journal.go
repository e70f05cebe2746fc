package types

import "time"

type JournalEntry struct {
	ID            string     `json:"id,omitempty"`
	UserID        string     `json:"user_id"`
	Title         string     `json:"title"`
	Content       string     `json:"content"`
	EmotionRating int        `json:"emotion_rating"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
}

// Analysis is the derived emotional analysis over recent journal entries.
// EmotionIntensity is always the computed rounded-mean rating, not the
// model's own assessment.
type Analysis struct {
	OverallEmotion   string   `json:"overall_emotion"`
	CommonTopics     []string `json:"common_topics"`
	EmotionIntensity int      `json:"emotion_intensity"`
	Summary          string   `json:"summary"`
}

// Stat is a persisted snapshot of an Analysis in the stats table.
type Stat struct {
	ID               string   `json:"id,omitempty"`
	UserID           string   `json:"user_id"`
	OverallEmotion   string   `json:"overall_emotion"`
	CommonTopics     []string `json:"common_topics"`
	EmotionIntensity int      `json:"emotion_intensity"`
	Summary          string   `json:"summary"`
}

type JournalEntryResponse struct {
	Success bool         `json:"success"`
	Entry   JournalEntry `json:"entry"`
}

type GetJournalEntriesResponse struct {
	Success bool           `json:"success"`
	Entries []JournalEntry `json:"entries"`
}

type AnalysisResponse struct {
	Success  bool     `json:"success"`
	Analysis Analysis `json:"analysis"`
}
