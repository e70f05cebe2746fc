package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Zoharvan12/simply-mind-3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	writeJSON(rec, http.StatusCreated, map[string]string{"hello": "world"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "world", body["hello"])
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()

	writeError(rec, "Chat not found", http.StatusNotFound)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body types.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Chat not found", body.Error)
	assert.Empty(t, body.Code)
}

func TestWriteErrorCode(t *testing.T) {
	rec := httptest.NewRecorder()

	writeErrorCode(rec, "Monthly message limit reached", types.QuotaExceededCode, http.StatusForbidden)

	assert.Equal(t, http.StatusForbidden, rec.Code)

	var body types.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, types.QuotaExceededCode, body.Code)
}
