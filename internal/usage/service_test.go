package usage

import (
	"testing"

	"holdingscompare/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRecordUsage(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	svc := NewService(zap.New(core))

	svc.RecordUsage("run-1", "compare", &ports.UsageData{Provider: "openai", Model: "gpt-4o", PromptTokens: 100, CompletionTokens: 20, TotalTokens: 120})
	svc.RecordUsage("run-2", "compare", &ports.UsageData{Provider: "openai", Model: "gpt-4o", TotalTokens: 30})

	records := svc.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "run-1", records[0].RunID)
	assert.Equal(t, 100, records[0].PromptTokens)
	assert.Equal(t, 150, svc.TotalTokens())
	assert.Equal(t, 2, logs.FilterMessage("LLM usage").Len())
}

func TestRecordUsageSkipsMissingAndInvalid(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	svc := NewService(zap.New(core))

	svc.RecordUsage("run-1", "compare", nil)
	svc.RecordUsage("run-1", "compare", &ports.UsageData{PromptTokens: -1})

	assert.Empty(t, svc.Records())
	assert.Zero(t, svc.TotalTokens())
	assert.Equal(t, 1, logs.FilterMessage("Ignoring invalid token counts").Len())
}
