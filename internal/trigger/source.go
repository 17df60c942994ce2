package trigger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Zarathale/ZaraSprite/chatlog/messages"
)

var chatlogHTTPClient = &http.Client{
	Timeout: 15 * time.Second,
}

// reads messages from the chat log server's REST API
type HTTPSource struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPSource(baseURL string) *HTTPSource {
	return &HTTPSource{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: chatlogHTTPClient,
	}
}

func (s *HTTPSource) Fetch(ctx context.Context, cursor int64, limit int) (*messages.Page, error) {
	q := url.Values{}
	q.Set("since", strconv.FormatInt(cursor, 10))
	q.Set("limit", strconv.Itoa(limit))

	endpoint := fmt.Sprintf("%s/api/v1/messages?%s", s.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body) //nolint:errcheck
		return nil, fmt.Errorf("chat log returned status %d: %s", resp.StatusCode, string(body))
	}

	var page messages.Page
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %w", err)
	}

	return &page, nil
}
