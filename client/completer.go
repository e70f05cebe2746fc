package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Zoharvan12/simply-mind-3/types"
)

// HTTPCompleter calls the completion function over HTTP with the user's
// bearer token.
type HTTPCompleter struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

func NewHTTPCompleter(baseURL, token string) *HTTPCompleter {
	return &HTTPCompleter{
		BaseURL:    baseURL,
		Token:      token,
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *HTTPCompleter) Complete(ctx context.Context, req types.CompletionRequest) (string, error) {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %v", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/chat", bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %v", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Code    string `json:"code"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode response: %v", err)
	}

	if body.Code == types.QuotaExceededCode {
		return "", ErrQuotaExceeded
	}
	if resp.StatusCode != http.StatusOK {
		if body.Error != "" {
			return "", fmt.Errorf("completion failed: %s", body.Error)
		}
		return "", fmt.Errorf("completion returned status %d", resp.StatusCode)
	}
	if body.Error != "" {
		return "", fmt.Errorf("completion failed: %s", body.Error)
	}

	return body.Message, nil
}
