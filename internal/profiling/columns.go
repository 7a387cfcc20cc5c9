// Package profiling summarizes the columns of a recovered table.
package profiling

import (
	"strconv"
	"strings"

	"holdingscompare/internal/dataset"

	"github.com/montanaflynn/stats"
)

// ColumnProfile describes one column of a table
type ColumnProfile struct {
	Name     string
	NonEmpty int
	Numeric  bool
	Summary  *NumericSummary // nil unless Numeric
}

// NumericSummary holds basic statistics of a numeric column
type NumericSummary struct {
	Count  int
	Sum    float64
	Min    float64
	Max    float64
	Mean   float64
	Median float64
}

// ProfileTable profiles every column of table in header order
func ProfileTable(table *dataset.Table) ([]ColumnProfile, error) {
	profiles := make([]ColumnProfile, 0, table.Width())
	for i, name := range table.Headers {
		var values []float64
		nonEmpty := 0
		numeric := true
		for _, row := range table.Rows {
			cell := row[i]
			if cell == "" {
				continue
			}
			nonEmpty++
			if !numeric {
				continue
			}
			v, ok := parseNumber(cell)
			if !ok {
				numeric = false
				continue
			}
			values = append(values, v)
		}

		profile := ColumnProfile{Name: name, NonEmpty: nonEmpty, Numeric: numeric && nonEmpty > 0}
		if profile.Numeric {
			summary, err := summarize(values)
			if err != nil {
				return nil, err
			}
			profile.Summary = summary
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

func summarize(data []float64) (*NumericSummary, error) {
	sum, err := stats.Sum(data)
	if err != nil {
		return nil, err
	}
	min, err := stats.Min(data)
	if err != nil {
		return nil, err
	}
	max, err := stats.Max(data)
	if err != nil {
		return nil, err
	}
	mean, err := stats.Mean(data)
	if err != nil {
		return nil, err
	}
	median, err := stats.Median(data)
	if err != nil {
		return nil, err
	}
	return &NumericSummary{
		Count:  len(data),
		Sum:    sum,
		Min:    min,
		Max:    max,
		Mean:   mean,
		Median: median,
	}, nil
}

// parseNumber accepts plain floats plus the "$" and "%" decorations custodians add.
func parseNumber(cell string) (float64, bool) {
	s := strings.TrimSpace(cell)
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
