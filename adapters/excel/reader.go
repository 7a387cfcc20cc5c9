// Package excel turns workbook exports into the same text lines a CSV export
// would contain, so the recovering parser handles both.
package excel

import (
	"fmt"
	"os"
	"strings"

	apperrors "holdingscompare/internal/errors"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// DataReader reads one sheet of an .xlsx export
type DataReader struct {
	filePath string
	sheet    string
	logger   *zap.Logger
}

// NewDataReader creates a reader for filePath. An empty sheet selects the first sheet.
func NewDataReader(filePath, sheet string, logger *zap.Logger) *DataReader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DataReader{filePath: filePath, sheet: sheet, logger: logger}
}

// ReadLines returns one comma-joined line per sheet row, blank rows included.
func (r *DataReader) ReadLines() ([]string, error) {
	if _, err := os.Stat(r.filePath); err != nil {
		return nil, apperrors.IOError(r.filePath, err)
	}

	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, apperrors.IOError(r.filePath, fmt.Errorf("failed to open Excel file: %w", err))
	}
	defer f.Close()

	sheet := r.sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if sheet == "" {
		return nil, apperrors.InvalidInput(fmt.Sprintf("workbook %s has no sheets", r.filePath))
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperrors.IOError(r.filePath, fmt.Errorf("failed to read sheet %s: %w", sheet, err))
	}
	r.logger.Debug("Workbook sheet read",
		zap.String("path", r.filePath),
		zap.String("sheet", sheet),
		zap.Int("rows", len(rows)))

	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = strings.Join(row, ",") + "\n"
	}
	return lines, nil
}
