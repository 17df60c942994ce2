package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	openaiChatURL       = "https://api.openai.com/v1/chat/completions"
	defaultOpenAIModel  = "gpt-4o"
	DefaultSystemPrompt = "You are a sprightly Minecraft helper."
	defaultMaxTokens    = 300
	defaultTemperature  = 0.7
)

// shared HTTP client for OpenAI API calls
// reuses connection pool and timeout configuration
var openaiHTTPClient = &http.Client{
	Timeout: 60 * time.Second, // total request timeout
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}

type OpenAIResponder struct {
	config      OpenAIConfig
	httpClient  *http.Client
	rateLimiter *rate.Limiter
}

func NewOpenAIResponder(config OpenAIConfig) *OpenAIResponder {
	if config.Model == "" {
		config.Model = defaultOpenAIModel
	}

	if config.SystemPrompt == "" {
		config.SystemPrompt = DefaultSystemPrompt
	}

	if config.MaxTokens == 0 {
		config.MaxTokens = defaultMaxTokens
	}

	if config.Temperature == 0 {
		config.Temperature = defaultTemperature
	}

	if config.BaseURL == "" {
		config.BaseURL = openaiChatURL
	}

	return &OpenAIResponder{
		config:     config,
		httpClient: openaiHTTPClient,
		// a chat server does not need more than a few replies per second
		rateLimiter: rate.NewLimiter(5, 5),
	}
}

func (r *OpenAIResponder) Model() string {
	return r.config.Model
}

// asks the chat completions API for a reply to prompt
func (r *OpenAIResponder) Respond(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("empty prompt")
	}

	reqBody := chatRequest{
		Model:       r.config.Model,
		MaxTokens:   r.config.MaxTokens,
		Temperature: r.config.Temperature,
		Messages: []chatMessage{
			{Role: "system", Content: r.config.SystemPrompt},
			{Role: "user", Content: prompt},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.config.BaseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", r.config.APIKey))

	// rate limiting
	if err := r.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}

	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body) //nolint:errcheck
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}
