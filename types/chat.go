package types

import "time"

type Chat struct {
	ID        string     `json:"id,omitempty"`
	UserID    string     `json:"user_id"`
	Title     string     `json:"title"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

type GetChatsResponse struct {
	Success bool   `json:"success"`
	Chats   []Chat `json:"chats"`
}

type ChatResponse struct {
	Success bool `json:"success"`
	Chat    Chat `json:"chat"`
}

// ErrorResponse is the failure envelope for every endpoint. Code is set
// for expected, actionable conditions (e.g. "quota_exceeded").
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
}

// QuotaExceededCode marks the free-tier monthly cap being hit, so clients
// can offer an upgrade path instead of a generic retry.
const QuotaExceededCode = "quota_exceeded"
