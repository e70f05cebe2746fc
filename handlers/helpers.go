package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Zoharvan12/simply-mind-3/types"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, types.ErrorResponse{
		Success: false,
		Error:   message,
	})
}

func writeErrorCode(w http.ResponseWriter, message, code string, status int) {
	writeJSON(w, status, types.ErrorResponse{
		Success: false,
		Error:   message,
		Code:    code,
	})
}
