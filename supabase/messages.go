package supabase

import (
	"encoding/json"
	"fmt"

	"github.com/Zoharvan12/simply-mind-3/types"
	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"
)

func SaveMessage(client *supabase.Client, userID, chatID, role, content string) (types.Message, error) {
	message := types.Message{
		UserID:  userID,
		ChatID:  chatID,
		Role:    role,
		Content: content,
	}

	inserted := []types.Message{message}

	resp, _, err := client.From("messages").Insert(inserted, false, "", "", "").Execute()
	if err != nil {
		return types.Message{}, fmt.Errorf("failed to insert message: %w", err)
	}

	if err := json.Unmarshal(resp, &inserted); err != nil {
		return types.Message{}, err
	}
	if len(inserted) == 0 {
		return types.Message{}, fmt.Errorf("no message returned from insert")
	}
	return inserted[0], nil
}

// GetMessages returns the chat's messages in chronological order.
func GetMessages(client *supabase.Client, chatID, userID string) ([]types.Message, error) {
	resp, _, err := client.From("messages").
		Select("*", "", false).
		Eq("chat_id", chatID).
		Order("created_at", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	var messages []types.Message
	if err := json.Unmarshal(resp, &messages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal messages: %w", err)
	}

	return messages, nil
}
