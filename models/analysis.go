package models

import "holdingscompare/ports"

// Source names one institution export and the label it is reported under
type Source struct {
	Path  string `yaml:"path"`
	Label string `yaml:"label"`
}

// AnalysisResult is the completion service's answer for one comparison run
type AnalysisResult struct {
	RunID    string
	Provider string
	Model    string
	Content  string
	Usage    *ports.UsageData
}
