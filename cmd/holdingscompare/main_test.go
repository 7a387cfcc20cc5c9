package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"holdingscompare/adapters/llm"
	"holdingscompare/internal/config"
	"holdingscompare/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"HOLDINGS_FIRST_PATH", "HOLDINGS_FIRST_LABEL", "HOLDINGS_SECOND_PATH", "HOLDINGS_SECOND_LABEL",
		"HOLDINGS_HEADER_MARKER", "HOLDINGS_SHEET", "HOLDINGS_MAX_ROWS",
		"LLM_PROVIDER", "LLM_MODEL", "LLM_API_KEY", "LLM_BASE_URL", "LLM_TEMPERATURE", "LLM_TIMEOUT",
		"OPENAI_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("LOG_OUTPUT", "stderr")
}

func writeExports(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	first := filepath.Join(dir, "etf.csv")
	second := filepath.Join(dir, "ga.csv")
	require.NoError(t, os.WriteFile(first, []byte("junk\nAs Of Date,Ticker\n2024-01-01,AAA\n"), 0o644))
	require.NoError(t, os.WriteFile(second, []byte("As Of Date,Ticker\n2024-01-01,BBB\n"), 0o644))
	return first, second
}

func TestCompareDryRun(t *testing.T) {
	isolateEnv(t)
	first, second := writeExports(t)
	outPath := filepath.Join(t.TempDir(), "answer.txt")

	cmd := newRootCmd()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"compare", "--dry-run", "--first", first, "--second", second, "--out", outPath})

	require.NoError(t, cmd.Execute())

	assert.Contains(t, stdout.String(), "📊 COMPARISON ANALYSIS 📊")
	assert.Contains(t, stdout.String(), llm.DefaultMockReply)
	written, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, llm.DefaultMockReply, string(written))
}

func TestRootRunsCompare(t *testing.T) {
	isolateEnv(t)
	first, second := writeExports(t)

	cmd := newRootCmd()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"--dry-run", "--first", first, "--second", second})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "COMPARISON ANALYSIS")
}

func TestCompareWithoutKeyFails(t *testing.T) {
	isolateEnv(t)
	first, second := writeExports(t)

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"compare", "--first", first, "--second", second})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestInspectPrintsTable(t *testing.T) {
	isolateEnv(t)
	first, _ := writeExports(t)

	cmd := newRootCmd()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"inspect", first, "--label", "ETF"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "Data from ETF:")
	assert.Contains(t, stdout.String(), "AAA")
	assert.NotContains(t, stdout.String(), "junk")
}

func TestOptionsOverrideConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	opts := &cliOptions{firstLabel: "ETF", maxRows: 5, format: "markdown", dryRun: true}

	opts.apply(cfg)

	assert.Equal(t, "ETF", cfg.Sources.First.Label)
	assert.Equal(t, "test_ga.csv", cfg.Sources.Second.Path)
	assert.Equal(t, 5, cfg.Report.MaxRows)
	assert.Equal(t, "markdown", cfg.Output.Format)
	assert.Equal(t, llm.ProviderMock, cfg.AI.Provider)
}
