package llm

import (
	"context"
	"fmt"
	"strings"

	"holdingscompare/ports"

	"google.golang.org/genai"
)

// GeminiClient implements ports.CompletionClient with Google's Gemini API
type GeminiClient struct {
	client *genai.Client
}

// NewGeminiClient creates a Gemini client from config
func NewGeminiClient(config Config) (*GeminiClient, error) {
	if strings.TrimSpace(config.APIKey) == "" {
		return nil, fmt.Errorf("missing Gemini API key (set GEMINI_API_KEY)")
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if base := strings.TrimSpace(config.BaseURL); base != "" {
		clientConfig.HTTPOptions.BaseURL = base
	}
	if config.Timeout > 0 {
		timeout := config.Timeout
		clientConfig.HTTPOptions.Timeout = &timeout
	}

	client, err := genai.NewClient(context.Background(), clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GeminiClient{client: client}, nil
}

// Complete maps system messages onto the system instruction and the rest onto contents
func (c *GeminiClient) Complete(ctx context.Context, req ports.CompletionRequest) (*ports.CompletionResponse, error) {
	if strings.TrimSpace(req.Model) == "" {
		return nil, fmt.Errorf("missing model")
	}

	var system []string
	var contents []*genai.Content
	for _, m := range req.Messages {
		switch m.Role {
		case ports.RoleSystem:
			system = append(system, m.Content)
		case "assistant":
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}

	genConfig := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(req.Temperature)),
	}
	if len(system) > 0 {
		genConfig.SystemInstruction = genai.NewContentFromText(strings.Join(system, "\n\n"), genai.RoleUser)
	}

	result, err := c.client.Models.GenerateContent(ctx, req.Model, contents, genConfig)
	if err != nil {
		return nil, fmt.Errorf("GenAI generate failed: %w", err)
	}
	if len(result.Candidates) == 0 {
		return nil, fmt.Errorf("gemini response missing candidates")
	}

	out := &ports.CompletionResponse{Content: result.Text()}
	if meta := result.UsageMetadata; meta != nil {
		out.Usage = &ports.UsageData{
			PromptTokens:     int(meta.PromptTokenCount),
			CompletionTokens: int(meta.CandidatesTokenCount),
			TotalTokens:      int(meta.TotalTokenCount),
			Model:            req.Model,
			Provider:         ProviderGemini,
		}
	}
	return out, nil
}

var _ ports.CompletionClient = (*GeminiClient)(nil)
