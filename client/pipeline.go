package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Zoharvan12/simply-mind-3/config"
	"github.com/Zoharvan12/simply-mind-3/types"
	"github.com/google/uuid"
)

// ThinkingMessageID is the sentinel id of the optimistic AI placeholder.
// At most one may exist in the visible message list at any time.
const ThinkingMessageID = "thinking"

const tempIDPrefix = "temp-"

var (
	// ErrQuotaExceeded blocks a send before any network call. Expected
	// and actionable: the UI should offer an upgrade, not a retry.
	ErrQuotaExceeded = errors.New("monthly message limit reached")

	// ErrSendInFlight rejects a second submit while the current chat is
	// awaiting a completion.
	ErrSendInFlight = errors.New("a send is already in flight for this chat")
)

// IsOptimistic reports whether a message is client-generated state that
// must not survive a pipeline run.
func IsOptimistic(m types.Message) bool {
	return m.ID == ThinkingMessageID || strings.HasPrefix(m.ID, tempIDPrefix) || m.IsLoading
}

// SendMessage drives one full send turn:
//
//	quota gate -> ensure chat -> optimistic append -> completion call ->
//	reconcile (success) or rollback with error marker (failure)
//
// Empty content is a no-op. Callers should clear the composer as soon as
// this returns control to the event loop; the optimistic append makes the
// send visible immediately. Blocking work happens off the store lock, so
// the UI stays responsive while a turn is in flight.
func (s *Store) SendMessage(ctx context.Context, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}

	if s.quota != nil && s.quota.IsLimitReached() {
		return ErrQuotaExceeded
	}

	chatID, isFirst, err := s.ensureChat(ctx)
	if err != nil {
		return err
	}

	tempID, err := s.beginTurn(chatID, content)
	if err != nil {
		return err
	}
	defer s.endTurn(chatID)

	reply, err := s.completer.Complete(ctx, types.CompletionRequest{
		Content:        content,
		ChatID:         chatID,
		IsFirstMessage: isFirst,
	})
	if err != nil {
		s.rollbackTurn(chatID, tempID)
		return fmt.Errorf("completion failed: %w", err)
	}
	_ = reply // the persisted rows are authoritative, not the inline text

	if err := s.reconcile(ctx, chatID); err != nil {
		s.rollbackTurn(chatID, tempID)
		return err
	}

	// The title generator may have renamed the chat on its first turn;
	// refresh the list so the new title becomes visible.
	if isFirst {
		if err := s.FetchChats(ctx); err != nil {
			config.Logger.Warn("Failed to refresh chats after first message:", err)
		}
	}
	return nil
}

// ensureChat returns the target chat id, creating and selecting a fresh
// chat when none is active. Exactly one chat is created per send at most.
func (s *Store) ensureChat(ctx context.Context) (string, bool, error) {
	s.mu.Lock()
	chatID := s.currentChatID
	isFirst := len(s.messages) == 0
	s.mu.Unlock()

	if chatID != "" {
		return chatID, isFirst, nil
	}

	chat, err := s.backend.CreateChat(ctx, config.PlaceholderChatTitle)
	if err != nil {
		return "", false, fmt.Errorf("failed to create chat: %w", err)
	}

	s.mu.Lock()
	s.chats = append(s.chats, chat)
	s.currentChatID = chat.ID
	s.messages = nil
	s.mu.Unlock()
	return chat.ID, true, nil
}

// beginTurn claims the chat's send slot and appends the optimistic user
// message plus the thinking placeholder in one critical section, so no
// snapshot can observe a second placeholder.
func (s *Store) beginTurn(chatID, content string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight[chatID] {
		return "", ErrSendInFlight
	}
	s.inFlight[chatID] = true

	tempID := tempIDPrefix + uuid.NewString()
	if s.currentChatID == chatID {
		s.messages = append(s.messages,
			types.Message{
				ID:      tempID,
				ChatID:  chatID,
				Role:    types.RoleUser,
				Content: content,
				Status:  types.StatusPending,
			},
			types.Message{
				ID:        ThinkingMessageID,
				ChatID:    chatID,
				Role:      types.RoleAI,
				IsLoading: true,
			},
		)
	}
	return tempID, nil
}

func (s *Store) endTurn(chatID string) {
	s.mu.Lock()
	delete(s.inFlight, chatID)
	s.mu.Unlock()
}

// rollbackTurn removes the thinking placeholder and flags the optimistic
// user message as errored so the user can see what failed and resubmit.
func (s *Store) rollbackTurn(chatID, tempID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentChatID != chatID {
		return
	}

	messages := s.messages[:0]
	for _, m := range s.messages {
		if m.ID == ThinkingMessageID {
			continue
		}
		if m.ID == tempID {
			m.Status = types.StatusError
		}
		messages = append(messages, m)
	}
	s.messages = messages
}

// reconcile replaces the optimistic turn with the persisted records by
// re-fetching the chat's messages, so ids and timestamps are
// authoritative. The write is guarded by the active chat id: a response
// for a chat the user has navigated away from must not touch the view.
func (s *Store) reconcile(ctx context.Context, chatID string) error {
	messages, err := s.backend.FetchMessages(ctx, chatID)
	if err != nil {
		// The caller rolls the optimistic turn back; placeholders must
		// not survive the pipeline even when this fetch fails.
		return fmt.Errorf("failed to reconcile messages: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentChatID != chatID {
		return nil
	}
	s.messages = messages
	return nil
}
