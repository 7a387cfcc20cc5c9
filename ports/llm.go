package ports

import "context"

// Chat roles understood by every completion provider
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is one turn of a chat conversation
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest carries everything a provider needs for one completion
type CompletionRequest struct {
	Model       string
	Messages    []Message
	Temperature float64
}

// UsageData represents raw usage data from LLM provider APIs
type UsageData struct {
	PromptTokens     int    `json:"prompt_tokens"`
	CompletionTokens int    `json:"completion_tokens"`
	TotalTokens      int    `json:"total_tokens"`
	Model            string `json:"model"`
	Provider         string `json:"provider"`
}

// CompletionResponse is the provider's top reply
type CompletionResponse struct {
	Content string
	Usage   *UsageData
}

// CompletionClient generates a completion for a conversation.
// Implementations make exactly one upstream call per invocation.
type CompletionClient interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}
