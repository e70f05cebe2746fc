package client

import (
	"context"

	"github.com/Zoharvan12/simply-mind-3/supabase"
	"github.com/Zoharvan12/simply-mind-3/types"
	supa "github.com/supabase-community/supabase-go"
)

// SupabaseBackend implements Backend and ProfileFetcher over a Supabase
// client scoped to one authenticated user.
type SupabaseBackend struct {
	client *supa.Client
	userID string
}

func NewSupabaseBackend(client *supa.Client, userID string) *SupabaseBackend {
	return &SupabaseBackend{client: client, userID: userID}
}

func (b *SupabaseBackend) FetchChats(ctx context.Context) ([]types.Chat, error) {
	return supabase.GetChats(b.client, b.userID)
}

func (b *SupabaseBackend) CreateChat(ctx context.Context, title string) (types.Chat, error) {
	return supabase.CreateChat(b.client, b.userID, title)
}

func (b *SupabaseBackend) FetchMessages(ctx context.Context, chatID string) ([]types.Message, error) {
	return supabase.GetMessages(b.client, chatID, b.userID)
}

func (b *SupabaseBackend) RenameChat(ctx context.Context, chatID, title string) error {
	_, err := supabase.UpdateChatTitle(b.client, chatID, b.userID, title)
	return err
}

func (b *SupabaseBackend) DeleteChat(ctx context.Context, chatID string) error {
	return supabase.DeleteChat(b.client, chatID, b.userID)
}

func (b *SupabaseBackend) FetchProfile(ctx context.Context) (types.Profile, error) {
	return supabase.GetProfile(b.client, b.userID)
}
