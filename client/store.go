package client

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Zoharvan12/simply-mind-3/config"
	"github.com/Zoharvan12/simply-mind-3/types"
)

// Store is the single source of truth for the chat list and the active
// chat's messages. All mutations go through its methods; Snapshot returns
// copies, so callers never see partial state.
type Store struct {
	mu        sync.Mutex
	backend   Backend
	completer Completer
	quota     *QuotaTracker

	chats         []types.Chat
	messages      []types.Message
	currentChatID string
	isLoading     bool
	inFlight      map[string]bool
}

// Snapshot is a point-in-time copy of the store state.
type Snapshot struct {
	Chats         []types.Chat
	Messages      []types.Message
	CurrentChatID string
	IsLoading     bool
}

func NewStore(backend Backend, completer Completer, quota *QuotaTracker) *Store {
	return &Store{
		backend:   backend,
		completer: completer,
		quota:     quota,
		inFlight:  make(map[string]bool),
	}
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Chats:         append([]types.Chat(nil), s.chats...),
		Messages:      append([]types.Message(nil), s.messages...),
		CurrentChatID: s.currentChatID,
		IsLoading:     s.isLoading,
	}
}

// FetchChats refreshes the chat list from the backend. An incoming chat
// still carrying the placeholder title must not clobber a fresher title
// we already learned through a realtime push: the fetch snapshot may
// predate the title write.
func (s *Store) FetchChats(ctx context.Context) error {
	chats, err := s.backend.FetchChats(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch chats: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	known := make(map[string]string, len(s.chats))
	for _, chat := range s.chats {
		known[chat.ID] = chat.Title
	}
	for i, chat := range chats {
		if title, ok := known[chat.ID]; ok &&
			chat.Title == config.PlaceholderChatTitle && title != config.PlaceholderChatTitle {
			chats[i].Title = title
		}
	}

	s.chats = chats
	return nil
}

// CreateChat persists a chat with the placeholder title, appends it to
// the list and returns its id. It does not select the chat.
func (s *Store) CreateChat(ctx context.Context) (string, error) {
	chat, err := s.backend.CreateChat(ctx, config.PlaceholderChatTitle)
	if err != nil {
		return "", fmt.Errorf("failed to create chat: %w", err)
	}

	s.mu.Lock()
	s.chats = append(s.chats, chat)
	s.mu.Unlock()
	return chat.ID, nil
}

// FetchMessages selects chatID and replaces the visible messages with
// that chat's persisted history. Any optimistic state from the previously
// selected chat is discarded with it.
func (s *Store) FetchMessages(ctx context.Context, chatID string) error {
	s.mu.Lock()
	s.isLoading = true
	s.mu.Unlock()

	messages, err := s.backend.FetchMessages(ctx, chatID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.isLoading = false
	if err != nil {
		return fmt.Errorf("failed to fetch messages: %w", err)
	}

	s.messages = messages
	s.currentChatID = chatID
	return nil
}

func (s *Store) RenameChat(ctx context.Context, chatID, newTitle string) error {
	if err := s.backend.RenameChat(ctx, chatID, newTitle); err != nil {
		return fmt.Errorf("failed to rename chat: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.chats {
		if s.chats[i].ID == chatID {
			s.chats[i].Title = newTitle
		}
	}
	return nil
}

// DeleteChat removes the chat remotely and locally. When it targets the
// active chat, the selection and messages are cleared in the same
// critical section so no snapshot ever references the deleted chat.
func (s *Store) DeleteChat(ctx context.Context, chatID string) error {
	if err := s.backend.DeleteChat(ctx, chatID); err != nil {
		return fmt.Errorf("failed to delete chat: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	chats := s.chats[:0]
	for _, chat := range s.chats {
		if chat.ID != chatID {
			chats = append(chats, chat)
		}
	}
	s.chats = chats

	if s.currentChatID == chatID {
		s.currentChatID = ""
		s.messages = nil
	}
	return nil
}

// UpdateChatFromPush merges a pushed chat row into the matching chat by
// id. It touches chat metadata only, never messages and never other
// chats. Malformed payloads are dropped.
func (s *Store) UpdateChatFromPush(row json.RawMessage) {
	var payload struct {
		ID    string  `json:"id"`
		Title *string `json:"title"`
	}
	if err := json.Unmarshal(row, &payload); err != nil || payload.ID == "" {
		config.Logger.Warn("Dropping malformed chat push payload")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.chats {
		if s.chats[i].ID == payload.ID {
			if payload.Title != nil {
				s.chats[i].Title = *payload.Title
			}
			return
		}
	}
}
