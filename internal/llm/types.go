package llm

import "context"

// produces a reply to a player's prompt
type Responder interface {
	Respond(ctx context.Context, prompt string) (string, error)
}

// holds configuration for the OpenAI chat client
type OpenAIConfig struct {
	APIKey       string
	Model        string // e.g., "gpt-4o"
	SystemPrompt string
	MaxTokens    int
	Temperature  float32

	// overrides the API endpoint, used by tests
	BaseURL string
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float32       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index        int         `json:"index"`
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}
