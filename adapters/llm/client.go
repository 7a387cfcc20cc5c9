package llm

import (
	"fmt"
	"strings"
	"time"

	"holdingscompare/ports"
)

// Supported providers
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderMock   = "mock"
)

// Config holds LLM adapter configuration
type Config struct {
	Provider  string        // openai, gemini or mock
	APIKey    string        // provider API key
	BaseURL   string        // optional override of the provider endpoint
	Timeout   time.Duration // zero means no client-side timeout
	MockReply string        // canned reply for the mock provider
}

// NewClient creates the completion client selected by config.Provider
func NewClient(config Config) (ports.CompletionClient, error) {
	switch strings.ToLower(strings.TrimSpace(config.Provider)) {
	case "", ProviderOpenAI:
		return NewOpenAIClient(config)
	case ProviderGemini:
		return NewGeminiClient(config)
	case ProviderMock:
		return &MockClient{Response: config.MockReply}, nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", config.Provider)
	}
}
