package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"holdingscompare/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientSelectsProvider(t *testing.T) {
	openai, err := NewClient(Config{APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &OpenAIClient{}, openai)

	mock, err := NewClient(Config{Provider: "MOCK", MockReply: "canned"})
	require.NoError(t, err)
	assert.IsType(t, &MockClient{}, mock)

	_, err = NewClient(Config{Provider: "anthropic", APIKey: "k"})
	assert.EqualError(t, err, "unsupported provider: anthropic")

	_, err = NewClient(Config{Provider: ProviderGemini})
	assert.Error(t, err)
}

func TestMockClientRecordsRequests(t *testing.T) {
	mock := &MockClient{}

	resp, err := mock.Complete(context.Background(), ports.CompletionRequest{Model: "gpt-4o"})
	require.NoError(t, err)
	assert.Equal(t, DefaultMockReply, resp.Content)

	mock.Error = errors.New("down")
	_, err = mock.Complete(context.Background(), ports.CompletionRequest{Model: "gpt-4o"})
	assert.EqualError(t, err, "down")
	assert.Len(t, mock.Requests, 2)
}

func TestGeminiCompleteMapsSystemInstruction(t *testing.T) {
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"GA is steadier."}]}}],"usageMetadata":{"promptTokenCount":10,"candidatesTokenCount":4,"totalTokenCount":14}}`))
	}))
	defer server.Close()

	client, err := NewGeminiClient(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	resp, err := client.Complete(context.Background(), comparisonRequest())
	require.NoError(t, err)

	assert.Equal(t, "GA is steadier.", resp.Content)
	require.NotNil(t, resp.Usage)
	assert.Equal(t, 14, resp.Usage.TotalTokens)
	assert.Equal(t, ProviderGemini, resp.Usage.Provider)

	system, ok := body["systemInstruction"].(map[string]any)
	require.True(t, ok, "system instruction missing from request: %v", body)
	assert.Contains(t, system["parts"].([]any)[0].(map[string]any)["text"], "financial data analyst")
	contents, ok := body["contents"].([]any)
	require.True(t, ok)
	assert.Len(t, contents, 1)
}
