package types

import (
	"time"
)

const (
	RoleUser = "user"
	RoleAI   = "ai"
)

// Message lifecycle states for client-side optimistic messages. Persisted
// rows never carry a status.
const (
	StatusPending = "pending"
	StatusError   = "error"
)

type Message struct {
	ID        string     `json:"id,omitempty"`
	ChatID    string     `json:"chat_id"`
	UserID    string     `json:"user_id,omitempty"`
	Role      string     `json:"role"`
	Content   string     `json:"content"`
	CreatedAt *time.Time `json:"created_at,omitempty"` // <-- omitempty is critical on inserts

	// Client-only fields, never serialized.
	IsLoading bool   `json:"-"`
	Status    string `json:"-"`
}

// CompletionRequest is the wire contract of the chat-with-context function.
type CompletionRequest struct {
	Content        string `json:"content"`
	ChatID         string `json:"chatId"`
	IsFirstMessage bool   `json:"isFirstMessage"`
}

type CompletionResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type GetMessagesResponse struct {
	Success  bool      `json:"success"`
	Messages []Message `json:"messages"`
}
