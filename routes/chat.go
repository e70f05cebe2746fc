package routes

import (
	"net/http"

	"github.com/Zoharvan12/simply-mind-3/handlers"
)

// RegisterChatRoutes registers the completion function and the chat CRUD surface
func RegisterChatRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /chat", handlers.ChatWithContextHandler)
	mux.HandleFunc("GET /chat/messages", handlers.GetChatMessagesHandler)

	mux.HandleFunc("GET /chats", handlers.GetChatsHandler)
	mux.HandleFunc("POST /chats/create", handlers.CreateChatHandler)
	mux.HandleFunc("PATCH /chats/update", handlers.RenameChatHandler)
	mux.HandleFunc("DELETE /chats", handlers.DeleteChatHandler)
}
