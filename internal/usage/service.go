package usage

import (
	"sync"
	"time"

	"holdingscompare/ports"

	"go.uber.org/zap"
)

// Record is one completion call's token usage
type Record struct {
	RunID            string
	Operation        string
	Provider         string
	Model            string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	CreatedAt        time.Time
}

// Service tracks LLM usage for the lifetime of the process
type Service struct {
	mu      sync.Mutex
	records []Record
	logger  *zap.Logger
}

// NewService creates a new usage service
func NewService(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{logger: logger}
}

// RecordUsage logs and keeps the usage of one call. Tracking problems never fail the caller.
func (s *Service) RecordUsage(runID, operation string, usage *ports.UsageData) {
	if usage == nil {
		s.logger.Debug("No usage data reported", zap.String("operation", operation))
		return
	}
	if usage.PromptTokens < 0 || usage.CompletionTokens < 0 || usage.TotalTokens < 0 {
		s.logger.Warn("Ignoring invalid token counts",
			zap.String("operation", operation),
			zap.Int("prompt_tokens", usage.PromptTokens),
			zap.Int("completion_tokens", usage.CompletionTokens),
			zap.Int("total_tokens", usage.TotalTokens))
		return
	}

	record := Record{
		RunID:            runID,
		Operation:        operation,
		Provider:         usage.Provider,
		Model:            usage.Model,
		PromptTokens:     usage.PromptTokens,
		CompletionTokens: usage.CompletionTokens,
		TotalTokens:      usage.TotalTokens,
		CreatedAt:        time.Now(),
	}

	s.mu.Lock()
	s.records = append(s.records, record)
	s.mu.Unlock()

	s.logger.Info("LLM usage",
		zap.String("run_id", runID),
		zap.String("operation", operation),
		zap.String("provider", record.Provider),
		zap.String("model", record.Model),
		zap.Int("prompt_tokens", record.PromptTokens),
		zap.Int("completion_tokens", record.CompletionTokens),
		zap.Int("total_tokens", record.TotalTokens))
}

// Records returns a copy of everything recorded so far
func (s *Service) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// TotalTokens sums total tokens across all records
func (s *Service) TotalTokens() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, r := range s.records {
		total += r.TotalTokens
	}
	return total
}
