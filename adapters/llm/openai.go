package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"holdingscompare/ports"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

// OpenAIClient implements ports.CompletionClient with the Chat Completions API
type OpenAIClient struct {
	APIKey     string
	BaseURL    string
	httpClient *http.Client
}

// NewOpenAIClient creates an OpenAI client from config
func NewOpenAIClient(config Config) (*OpenAIClient, error) {
	if strings.TrimSpace(config.APIKey) == "" {
		return nil, fmt.Errorf("missing OpenAI API key (set OPENAI_API_KEY)")
	}

	baseURL := strings.TrimSpace(config.BaseURL)
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}

	return &OpenAIClient{
		APIKey:     config.APIKey,
		BaseURL:    baseURL,
		httpClient: &http.Client{Timeout: config.Timeout},
	}, nil
}

type chatRequest struct {
	Model       string          `json:"model"`
	Messages    []ports.Message `json:"messages"`
	Temperature float64         `json:"temperature"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message ports.Message `json:"message"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage,omitempty"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Complete sends one chat completion request and returns the first choice
func (c *OpenAIClient) Complete(ctx context.Context, req ports.CompletionRequest) (*ports.CompletionResponse, error) {
	if strings.TrimSpace(req.Model) == "" {
		return nil, fmt.Errorf("missing model")
	}

	raw, err := json.Marshal(chatRequest{
		Model:       req.Model,
		Messages:    req.Messages,
		Temperature: req.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := strings.TrimRight(c.BaseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("openai request failed: %w", err)
	}
	defer resp.Body.Close()

	respRaw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var decoded chatResponse
	if err := json.Unmarshal(respRaw, &decoded); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("openai http %d: %s", resp.StatusCode, strings.TrimSpace(string(respRaw)))
		}
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if decoded.Error != nil {
		return nil, fmt.Errorf("openai http %d: %s (%s)", resp.StatusCode, decoded.Error.Message, decoded.Error.Type)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openai http %d: %s", resp.StatusCode, strings.TrimSpace(string(respRaw)))
	}
	if len(decoded.Choices) == 0 {
		return nil, fmt.Errorf("openai response missing choices")
	}

	out := &ports.CompletionResponse{Content: decoded.Choices[0].Message.Content}
	if decoded.Usage != nil {
		model := decoded.Model
		if model == "" {
			model = req.Model
		}
		out.Usage = &ports.UsageData{
			PromptTokens:     decoded.Usage.PromptTokens,
			CompletionTokens: decoded.Usage.CompletionTokens,
			TotalTokens:      decoded.Usage.TotalTokens,
			Model:            model,
			Provider:         ProviderOpenAI,
		}
	}
	return out, nil
}

var _ ports.CompletionClient = (*OpenAIClient)(nil)
