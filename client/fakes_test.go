package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Zoharvan12/simply-mind-3/types"
)

// fakeBackend simulates the remote tables, including the server-side
// writes the completion function performs.
type fakeBackend struct {
	mu         sync.Mutex
	chats      []types.Chat
	messages   map[string][]types.Message
	nextChatID int

	createCalls     int
	fetchChatsCalls int

	createErr     error
	fetchChatsErr error
	fetchMsgsErr  error
	renameErr     error
	deleteErr     error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{messages: map[string][]types.Message{}}
}

func (b *fakeBackend) FetchChats(ctx context.Context) ([]types.Chat, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fetchChatsCalls++
	if b.fetchChatsErr != nil {
		return nil, b.fetchChatsErr
	}
	return append([]types.Chat(nil), b.chats...), nil
}

func (b *fakeBackend) CreateChat(ctx context.Context, title string) (types.Chat, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.createCalls++
	if b.createErr != nil {
		return types.Chat{}, b.createErr
	}
	b.nextChatID++
	now := time.Now()
	chat := types.Chat{
		ID:        fmt.Sprintf("chat-%d", b.nextChatID),
		UserID:    "user-1",
		Title:     title,
		CreatedAt: &now,
	}
	b.chats = append(b.chats, chat)
	return chat, nil
}

func (b *fakeBackend) FetchMessages(ctx context.Context, chatID string) ([]types.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.fetchMsgsErr != nil {
		return nil, b.fetchMsgsErr
	}
	return append([]types.Message(nil), b.messages[chatID]...), nil
}

func (b *fakeBackend) RenameChat(ctx context.Context, chatID, title string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.renameErr != nil {
		return b.renameErr
	}
	b.setTitleLocked(chatID, title)
	return nil
}

func (b *fakeBackend) DeleteChat(ctx context.Context, chatID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.deleteErr != nil {
		return b.deleteErr
	}
	kept := b.chats[:0]
	for _, chat := range b.chats {
		if chat.ID != chatID {
			kept = append(kept, chat)
		}
	}
	b.chats = kept
	delete(b.messages, chatID)
	return nil
}

// persistTurn mimics the completion function writing the user and AI
// message rows server-side.
func (b *fakeBackend) persistTurn(chatID, content, reply string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := time.Now()
	n := len(b.messages[chatID])
	b.messages[chatID] = append(b.messages[chatID],
		types.Message{ID: fmt.Sprintf("%s-msg-%d", chatID, n+1), ChatID: chatID, Role: types.RoleUser, Content: content, CreatedAt: &now},
		types.Message{ID: fmt.Sprintf("%s-msg-%d", chatID, n+2), ChatID: chatID, Role: types.RoleAI, Content: reply, CreatedAt: &now},
	)
}

// setTitle mimics the title generator updating the chat row.
func (b *fakeBackend) setTitle(chatID, title string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.setTitleLocked(chatID, title)
}

func (b *fakeBackend) setTitleLocked(chatID, title string) {
	for i := range b.chats {
		if b.chats[i].ID == chatID {
			b.chats[i].Title = title
		}
	}
}

type fakeCompleter struct {
	mu         sync.Mutex
	calls      int
	requests   []types.CompletionRequest
	reply      string
	err        error
	onComplete func(req types.CompletionRequest)
}

func (c *fakeCompleter) Complete(ctx context.Context, req types.CompletionRequest) (string, error) {
	c.mu.Lock()
	c.calls++
	c.requests = append(c.requests, req)
	hook, err, reply := c.onComplete, c.err, c.reply
	c.mu.Unlock()

	if err != nil {
		return "", err
	}
	if hook != nil {
		hook(req)
	}
	return reply, nil
}

func (c *fakeCompleter) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func (c *fakeCompleter) lastRequest() types.CompletionRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.requests[len(c.requests)-1]
}

// blockingCompleter parks Complete until released, to hold a send in the
// awaiting-completion state.
type blockingCompleter struct {
	inner   *fakeCompleter
	started chan struct{}
	release chan struct{}
}

func (c *blockingCompleter) Complete(ctx context.Context, req types.CompletionRequest) (string, error) {
	c.started <- struct{}{}
	<-c.release
	return c.inner.Complete(ctx, req)
}

type fakeProfileFetcher struct {
	profile types.Profile
	err     error
}

func (f fakeProfileFetcher) FetchProfile(ctx context.Context) (types.Profile, error) {
	return f.profile, f.err
}

func newTracker(role types.Role, monthly int) *QuotaTracker {
	return NewQuotaTracker(context.Background(), fakeProfileFetcher{
		profile: types.Profile{ID: "user-1", MonthlyMessages: monthly},
	}, role)
}
