package supabase

import (
	"encoding/json"
	"fmt"

	"github.com/Zoharvan12/simply-mind-3/types"
	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"
)

func GetChats(client *supabase.Client, userID string) ([]types.Chat, error) {
	if userID == "" {
		return nil, fmt.Errorf("missing user ID")
	}

	resp, _, err := client.From("chats").
		Select("*", "", false).
		Eq("user_id", userID).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, err
	}

	var chats []types.Chat
	if err := json.Unmarshal(resp, &chats); err != nil {
		return nil, fmt.Errorf("failed to decode chat data: %w", err)
	}

	return chats, nil
}

// CreateChat inserts a chat with the given title and returns the persisted
// row with its server-assigned id.
func CreateChat(client *supabase.Client, userID, title string) (types.Chat, error) {
	newChat := types.Chat{
		UserID: userID,
		Title:  title,
		// Do NOT set CreatedAt
	}

	created := []types.Chat{newChat}

	resp, _, err := client.From("chats").Insert(created, false, "", "", "").Execute()
	if err != nil {
		return types.Chat{}, fmt.Errorf("failed to insert chat: %w", err)
	}

	if err := json.Unmarshal(resp, &created); err != nil {
		return types.Chat{}, err
	}
	if len(created) == 0 {
		return types.Chat{}, fmt.Errorf("no chat returned from insert")
	}
	return created[0], nil
}

func UpdateChatTitle(client *supabase.Client, chatID, userID, newTitle string) (types.Chat, error) {
	var updated []types.Chat

	resp, _, err := client.From("chats").
		Update(map[string]interface{}{"title": newTitle}, "", "").
		Eq("id", chatID).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return types.Chat{}, fmt.Errorf("failed to update chat title: %w", err)
	}

	if err := json.Unmarshal(resp, &updated); err != nil {
		return types.Chat{}, fmt.Errorf("failed to parse update result: %w", err)
	}

	if len(updated) == 0 {
		return types.Chat{}, fmt.Errorf("no chat found or updated")
	}

	return updated[0], nil
}

// DeleteChat removes the chat row; its messages go with it via the
// database's cascade rule.
func DeleteChat(client *supabase.Client, chatID, userID string) error {
	_, _, err := client.From("chats").
		Delete("", "").
		Eq("id", chatID).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete chat: %w", err)
	}
	return nil
}
