package report

import (
	"fmt"
	"strings"
	"testing"

	"holdingscompare/internal/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableWithRows(n int) *dataset.Table {
	table := &dataset.Table{Headers: []string{"As Of Date", "Ticker", "Weight"}}
	for i := 0; i < n; i++ {
		table.Rows = append(table.Rows, []string{"2024-01-01", fmt.Sprintf("T%03d", i), "1.0"})
	}
	return table
}

func TestRenderTruncatesLongTables(t *testing.T) {
	rendered := Render(tableWithRows(60), "Test ETF Model Portfolio", 50)

	assert.True(t, rendered.Truncated)
	assert.Equal(t, 60, rendered.TotalRows)
	assert.Equal(t, 50, rendered.ShownRows)
	assert.Contains(t, rendered.Text, "(Showing only first 50 rows.)")

	lines := strings.Split(rendered.Text, "\n")
	// label, notice, blank, header, then rows
	require.Len(t, lines, 4+50)
	assert.Equal(t, "Data from Test ETF Model Portfolio:", lines[0])
	assert.Contains(t, lines[4], "T000")
	assert.Contains(t, lines[len(lines)-1], "T049")
	assert.NotContains(t, rendered.Text, "T050")
}

func TestRenderShortTableHasNoNotice(t *testing.T) {
	rendered := Render(tableWithRows(10), "Test GA Model Portfolio", 50)

	assert.False(t, rendered.Truncated)
	assert.Equal(t, 10, rendered.ShownRows)
	assert.NotContains(t, rendered.Text, "Showing only")

	lines := strings.Split(rendered.Text, "\n")
	require.Len(t, lines, 2+10)
	assert.Contains(t, lines[1], "As Of Date")
}

func TestRenderExactlyMaxRowsIsNotTruncated(t *testing.T) {
	rendered := Render(tableWithRows(50), "Fund", 50)

	assert.False(t, rendered.Truncated)
	assert.NotContains(t, rendered.Text, "Showing only")
}

func TestRenderDefaultsMaxRows(t *testing.T) {
	rendered := Render(tableWithRows(DefaultMaxRows+1), "Fund", 0)

	assert.True(t, rendered.Truncated)
	assert.Equal(t, DefaultMaxRows, rendered.ShownRows)
}

func TestFormatTableAlignsColumns(t *testing.T) {
	table := &dataset.Table{
		Headers: []string{"Ticker", "Weight"},
		Rows: [][]string{
			{"AAA", "5.0"},
			{"LONGNAME", ""},
		},
	}

	got := FormatTable(table)

	want := "  Ticker  Weight\n" +
		"     AAA     5.0\n" +
		"LONGNAME        "
	assert.Equal(t, want, got)
}

func TestFormatTableWideRunes(t *testing.T) {
	table := &dataset.Table{
		Headers: []string{"Name"},
		Rows:    [][]string{{"日本株"}, {"US"}},
	}

	lines := strings.Split(FormatTable(table), "\n")

	assert.Equal(t, "  Name", lines[0])
	assert.Equal(t, "日本株", lines[1])
	assert.Equal(t, "    US", lines[2])
}
