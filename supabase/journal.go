package supabase

import (
	"encoding/json"
	"fmt"

	"github.com/Zoharvan12/simply-mind-3/types"
	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"
)

// GetRecentJournalEntries returns up to limit entries, most recent first.
func GetRecentJournalEntries(client *supabase.Client, userID string, limit int) ([]types.JournalEntry, error) {
	resp, _, err := client.From("journal_entries").
		Select("id, user_id, title, content, emotion_rating, created_at", "", false).
		Eq("user_id", userID).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Limit(limit, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch journal entries: %w", err)
	}

	var entries []types.JournalEntry
	if err := json.Unmarshal(resp, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal journal entries: %w", err)
	}

	return entries, nil
}

func GetJournalEntries(client *supabase.Client, userID string) ([]types.JournalEntry, error) {
	resp, _, err := client.From("journal_entries").
		Select("*", "", false).
		Eq("user_id", userID).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch journal entries: %w", err)
	}

	var entries []types.JournalEntry
	if err := json.Unmarshal(resp, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal journal entries: %w", err)
	}

	return entries, nil
}

func CreateJournalEntry(client *supabase.Client, entry types.JournalEntry) (types.JournalEntry, error) {
	created := []types.JournalEntry{entry}

	resp, _, err := client.From("journal_entries").Insert(created, false, "", "", "").Execute()
	if err != nil {
		return types.JournalEntry{}, fmt.Errorf("failed to insert journal entry: %w", err)
	}

	if err := json.Unmarshal(resp, &created); err != nil {
		return types.JournalEntry{}, err
	}
	if len(created) == 0 {
		return types.JournalEntry{}, fmt.Errorf("no journal entry returned from insert")
	}
	return created[0], nil
}

func UpdateJournalEntry(client *supabase.Client, entryID, userID string, updates map[string]interface{}) (types.JournalEntry, error) {
	var updated []types.JournalEntry

	resp, _, err := client.From("journal_entries").
		Update(updates, "", "").
		Eq("id", entryID).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return types.JournalEntry{}, fmt.Errorf("failed to update journal entry: %w", err)
	}

	if err := json.Unmarshal(resp, &updated); err != nil {
		return types.JournalEntry{}, fmt.Errorf("failed to parse update result: %w", err)
	}

	if len(updated) == 0 {
		return types.JournalEntry{}, fmt.Errorf("no journal entry found or updated")
	}

	return updated[0], nil
}

// SaveStat records one analysis snapshot in the stats table.
func SaveStat(client *supabase.Client, stat types.Stat) error {
	_, _, err := client.From("stats").Insert(stat, false, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to insert stat: %w", err)
	}
	return nil
}
