package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Zoharvan12/simply-mind-3/config"
	"github.com/Zoharvan12/simply-mind-3/supabase"
	"github.com/Zoharvan12/simply-mind-3/types"
	"github.com/google/uuid"
)

func GetChatsHandler(w http.ResponseWriter, r *http.Request) {
	client, userID, err := supabase.ClientFromRequest(r)
	if err != nil {
		config.Logger.Error("Failed to create Supabase client:", err)
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	chats, err := supabase.GetChats(client, userID)
	if err != nil {
		config.Logger.Error("Failed to fetch chats:", err)
		writeError(w, "Failed to fetch chats", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, types.GetChatsResponse{
		Success: true,
		Chats:   chats,
	})
}

func CreateChatHandler(w http.ResponseWriter, r *http.Request) {
	client, userID, err := supabase.ClientFromRequest(r)
	if err != nil {
		config.Logger.Error("Failed to create Supabase client:", err)
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	chat, err := supabase.CreateChat(client, userID, config.PlaceholderChatTitle)
	if err != nil {
		config.Logger.Error("Failed to create chat:", err)
		writeError(w, "Failed to create chat", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, types.ChatResponse{
		Success: true,
		Chat:    chat,
	})
}

func RenameChatHandler(w http.ResponseWriter, r *http.Request) {
	chatID := r.URL.Query().Get("id")
	if chatID == "" {
		config.Logger.Warn("Missing chat ID in request")
		writeError(w, "Missing chat ID", http.StatusBadRequest)
		return
	}

	var body struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Title) == "" {
		config.Logger.Warn("Invalid or missing title in request body:", err)
		writeError(w, "Invalid or missing title", http.StatusBadRequest)
		return
	}

	client, userID, err := supabase.ClientFromRequest(r)
	if err != nil {
		config.Logger.Error("Failed to create Supabase client:", err)
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	updated, err := supabase.UpdateChatTitle(client, chatID, userID, body.Title)
	if err != nil {
		config.Logger.Error("Failed to rename chat:", err)
		writeError(w, "Failed to rename chat", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, types.ChatResponse{
		Success: true,
		Chat:    updated,
	})
}

func DeleteChatHandler(w http.ResponseWriter, r *http.Request) {
	chatID := r.URL.Query().Get("id")
	if chatID == "" {
		writeError(w, "Missing chat ID", http.StatusBadRequest)
		return
	}

	client, userID, err := supabase.ClientFromRequest(r)
	if err != nil {
		config.Logger.Error("Failed to create Supabase client:", err)
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := supabase.DeleteChat(client, chatID, userID); err != nil {
		config.Logger.Error("Failed to delete chat:", err)
		writeError(w, "Failed to delete chat", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func GetChatMessagesHandler(w http.ResponseWriter, r *http.Request) {
	chatID := r.URL.Query().Get("chat_id")
	if chatID == "" {
		writeError(w, "Missing chat_id", http.StatusBadRequest)
		return
	}
	if _, err := uuid.Parse(chatID); err != nil {
		writeError(w, "Invalid chat_id", http.StatusBadRequest)
		return
	}

	client, userID, err := supabase.ClientFromRequest(r)
	if err != nil {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	messages, err := supabase.GetMessages(client, chatID, userID)
	if err != nil {
		config.Logger.Error("Failed to fetch messages:", err)
		writeError(w, "Could not fetch messages", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, types.GetMessagesResponse{
		Success:  true,
		Messages: messages,
	})
}
