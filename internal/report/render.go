// Package report renders recovered tables as bounded, column-aligned text.
package report

import (
	"fmt"
	"strings"

	"holdingscompare/internal/dataset"

	"github.com/mattn/go-runewidth"
)

// DefaultMaxRows caps how many rows of a table reach the prompt.
const DefaultMaxRows = 50

const columnGap = "  "

// RenderedReport is the text form of one institution's table.
type RenderedReport struct {
	Institution string
	TotalRows   int
	ShownRows   int
	Truncated   bool
	Text        string
}

// Render formats table for institution, keeping at most maxRows rows.
// A maxRows of zero or less means DefaultMaxRows.
func Render(table *dataset.Table, institution string, maxRows int) RenderedReport {
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}

	shown := table
	note := ""
	if table.Len() > maxRows {
		shown = table.Head(maxRows)
		note = TruncationNotice(maxRows)
	}

	return RenderedReport{
		Institution: institution,
		TotalRows:   table.Len(),
		ShownRows:   shown.Len(),
		Truncated:   shown.Len() < table.Len(),
		Text:        fmt.Sprintf("Data from %s:\n%s", institution, note) + FormatTable(shown),
	}
}

// TruncationNotice is prepended when rows were dropped.
func TruncationNotice(maxRows int) string {
	return fmt.Sprintf("(Showing only first %d rows.)\n\n", maxRows)
}

// FormatTable lays table out with every column right-aligned to its widest cell.
// There is no index column and no trailing newline.
func FormatTable(table *dataset.Table) string {
	widths := make([]int, table.Width())
	for i, h := range table.Headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range table.Rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	writeLine(&b, table.Headers, widths)
	for _, row := range table.Rows {
		b.WriteByte('\n')
		writeLine(&b, row, widths)
	}
	return b.String()
}

func writeLine(b *strings.Builder, cells []string, widths []int) {
	for i, cell := range cells {
		if i > 0 {
			b.WriteString(columnGap)
		}
		b.WriteString(runewidth.FillLeft(cell, widths[i]))
	}
}
