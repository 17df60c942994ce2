package trigger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

var botHTTPClient = &http.Client{
	Timeout: 10 * time.Second,
}

// posts replies to the in-game bot's HTTP endpoint
type HTTPReplier struct {
	url        string
	httpClient *http.Client
}

func NewHTTPReplier(url string) *HTTPReplier {
	return &HTTPReplier{url: url, httpClient: botHTTPClient}
}

func (r *HTTPReplier) Send(ctx context.Context, player, message string) error {
	jsonData, err := json.Marshal(botMessage{Player: player, Message: message})
	if err != nil {
		return fmt.Errorf("failed to marshal reply: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach bot: %w", err)
	}

	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body) //nolint:errcheck
		return fmt.Errorf("bot returned status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
