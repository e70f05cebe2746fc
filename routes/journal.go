package routes

import (
	"net/http"

	"github.com/Zoharvan12/simply-mind-3/handlers"
)

// RegisterJournalRoutes registers journal entry CRUD and analysis
func RegisterJournalRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /journal", handlers.GetJournalEntriesHandler)
	mux.HandleFunc("POST /journal/create", handlers.CreateJournalEntryHandler)
	mux.HandleFunc("PATCH /journal/update", handlers.UpdateJournalEntryHandler)
	mux.HandleFunc("POST /journal/analyze", handlers.AnalyzeJournalEntriesHandler)
}
