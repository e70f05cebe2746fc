// Package client is the embeddable chat SDK: the chat/message store, the
// message send pipeline, the quota tracker and the realtime bridge. All
// remote operations sit behind small interfaces so the Supabase-backed
// implementations can be swapped out in tests.
package client

import (
	"context"

	"github.com/Zoharvan12/simply-mind-3/types"
)

// Backend is the remote persistence surface the store drives.
type Backend interface {
	FetchChats(ctx context.Context) ([]types.Chat, error)
	CreateChat(ctx context.Context, title string) (types.Chat, error)
	FetchMessages(ctx context.Context, chatID string) ([]types.Message, error)
	RenameChat(ctx context.Context, chatID, title string) error
	DeleteChat(ctx context.Context, chatID string) error
}

// Completer invokes the chat-with-context completion function.
type Completer interface {
	Complete(ctx context.Context, req types.CompletionRequest) (string, error)
}

// ProfileFetcher loads the caller's own profile row.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context) (types.Profile, error)
}
