// Package dataset reconstructs tables from malformed single-column CSV exports.
//
// Exports from the custodians put every record into one spreadsheet column and
// prepend a free-form preamble. The parser skips to the header line, splits the
// rest on commas and normalizes every row to the header width. Quoted fields are
// not understood: a comma inside quotes still splits the cell.
package dataset

import (
	"bufio"
	"io"
	"os"
	"strings"

	apperrors "holdingscompare/internal/errors"

	"go.uber.org/zap"
)

const utf8BOM = "\uFEFF"

// Parser recovers a Table from raw export lines.
type Parser struct {
	marker string
	logger *zap.Logger
}

// NewParser creates a parser that looks for marker. An empty marker means DefaultHeaderMarker.
func NewParser(marker string, logger *zap.Logger) *Parser {
	if strings.TrimSpace(marker) == "" {
		marker = DefaultHeaderMarker
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{marker: marker, logger: logger}
}

// Marker returns the header prefix this parser searches for.
func (p *Parser) Marker() string {
	return p.marker
}

// ParseFile reads path and recovers its table.
func (p *Parser) ParseFile(path string) (*Table, error) {
	p.logger.Info("Reading raw file", zap.String("path", path))

	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.IOError(path, err)
	}
	defer f.Close()

	lines, err := readLines(f)
	if err != nil {
		return nil, apperrors.IOError(path, err)
	}
	return p.parse(path, lines)
}

// Parse recovers a table from r.
func (p *Parser) Parse(r io.Reader) (*Table, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, apperrors.IOError("input", err)
	}
	return p.parse("input", lines)
}

// ParseLines recovers a table from lines already in memory. Trailing newlines are allowed.
func (p *Parser) ParseLines(lines []string) (*Table, error) {
	return p.parse("input", lines)
}

func (p *Parser) parse(source string, lines []string) (*Table, error) {
	p.logger.Info("Total lines read", zap.String("source", source), zap.Int("lines", len(lines)))

	headerIndex := -1
	for i, line := range lines {
		if i == 0 {
			line = strings.TrimPrefix(line, utf8BOM)
		}
		if strings.HasPrefix(strings.TrimSpace(line), p.marker) {
			headerIndex = i
			break
		}
	}
	if headerIndex < 0 {
		return nil, apperrors.HeaderNotFound(source, p.marker)
	}

	headerLine := lines[headerIndex]
	if headerIndex == 0 {
		headerLine = strings.TrimPrefix(headerLine, utf8BOM)
	}
	headers := splitCells(headerLine)
	p.logger.Info("Parsed headers", zap.String("source", source), zap.Strings("headers", headers))

	table := &Table{Headers: headers}
	for _, line := range lines[headerIndex+1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		row := normalizeWidth(splitCells(line), len(headers))
		if isEmptyRow(row) {
			continue
		}
		table.Rows = append(table.Rows, row)
	}

	p.logger.Debug("Recovered table",
		zap.String("source", source),
		zap.Int("columns", table.Width()),
		zap.Int("rows", table.Len()))
	return table, nil
}

// splitCells splits on every comma, ignoring quotes, and trims each cell.
func splitCells(line string) []string {
	parts := strings.Split(strings.TrimSpace(line), ",")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return parts
}

// normalizeWidth pads row with empty cells or truncates it to width.
func normalizeWidth(row []string, width int) []string {
	switch {
	case len(row) < width:
		padded := make([]string, width)
		copy(padded, row)
		return padded
	case len(row) > width:
		return row[:width]
	default:
		return row
	}
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			lines = append(lines, line)
		}
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
