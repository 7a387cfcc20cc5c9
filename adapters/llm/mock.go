package llm

import (
	"context"

	"holdingscompare/ports"
)

// DefaultMockReply is returned by MockClient when no Response is set
const DefaultMockReply = "Mock analysis: no completion service was called."

// MockClient is a canned completion client for tests and dry runs
type MockClient struct {
	Response string // Set this for testing
	Error    error  // Set this to simulate errors

	Requests []ports.CompletionRequest
}

func (m *MockClient) Complete(ctx context.Context, req ports.CompletionRequest) (*ports.CompletionResponse, error) {
	m.Requests = append(m.Requests, req)
	if m.Error != nil {
		return nil, m.Error
	}
	if m.Response != "" {
		return &ports.CompletionResponse{Content: m.Response}, nil
	}
	return &ports.CompletionResponse{Content: DefaultMockReply}, nil
}

var _ ports.CompletionClient = (*MockClient)(nil)
