package app

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"holdingscompare/adapters/excel"
	"holdingscompare/ai"
	"holdingscompare/internal/config"
	"holdingscompare/internal/dataset"
	"holdingscompare/internal/errors"
	"holdingscompare/internal/profiling"
	"holdingscompare/internal/report"
	"holdingscompare/internal/usage"
	"holdingscompare/models"
	"holdingscompare/ports"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ComparisonService runs the parse → render → prompt → complete pipeline
type ComparisonService struct {
	cfg      *config.Config
	client   ports.CompletionClient
	parser   *dataset.Parser
	prompter *ai.ComparisonPrompter
	usage    *usage.Service
	logger   *zap.Logger
}

// InspectResult is one source parsed and rendered without calling the model
type InspectResult struct {
	Source   models.Source
	Table    *dataset.Table
	Report   report.RenderedReport
	Profiles []profiling.ColumnProfile
}

func NewComparisonService(cfg *config.Config, client ports.CompletionClient, logger *zap.Logger) *ComparisonService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ComparisonService{
		cfg:      cfg,
		client:   client,
		parser:   dataset.NewParser(cfg.Sources.HeaderMarker, logger.Named("parser")),
		prompter: ai.NewComparisonPrompter(),
		usage:    usage.NewService(logger.Named("usage")),
		logger:   logger,
	}
}

// Run compares the two configured sources. The first source's report always
// precedes the second's in the prompt. Any error aborts the run.
func (s *ComparisonService) Run(ctx context.Context) (*models.AnalysisResult, error) {
	runID := uuid.NewString()
	logger := s.logger.With(zap.String("run_id", runID))

	first, second := s.cfg.Sources.First, s.cfg.Sources.Second

	logger.Info("Cleaning data", zap.String("institution", first.Label))
	firstTable, err := s.LoadTable(first)
	if err != nil {
		return nil, err
	}

	logger.Info("Cleaning data", zap.String("institution", second.Label))
	secondTable, err := s.LoadTable(second)
	if err != nil {
		return nil, err
	}

	logger.Info("Converting cleaned data to text")
	firstReport := report.Render(firstTable, first.Label, s.cfg.Report.MaxRows)
	secondReport := report.Render(secondTable, second.Label, s.cfg.Report.MaxRows)
	for _, r := range []report.RenderedReport{firstReport, secondReport} {
		if r.Truncated {
			logger.Debug("Report truncated",
				zap.String("institution", r.Institution),
				zap.Int("shown_rows", r.ShownRows),
				zap.Int("total_rows", r.TotalRows))
		}
	}

	request, err := s.prompter.Build(firstReport, secondReport)
	if err != nil {
		return nil, errors.Wrap(err, "build comparison prompt")
	}

	logger.Info("Requesting comparison analysis from the model",
		zap.String("provider", s.cfg.AI.Provider),
		zap.String("model", s.cfg.AI.Model),
		zap.Int("prompt_length", len(request.Prompt)))
	resp, err := s.client.Complete(ctx, ports.CompletionRequest{
		Model:       s.cfg.AI.Model,
		Messages:    request.Messages(),
		Temperature: s.cfg.AI.Temperature,
	})
	if err != nil {
		return nil, errors.ExternalServiceError(s.cfg.AI.Provider, err)
	}
	s.usage.RecordUsage(runID, "compare", resp.Usage)

	return &models.AnalysisResult{
		RunID:    runID,
		Provider: s.cfg.AI.Provider,
		Model:    s.cfg.AI.Model,
		Content:  resp.Content,
		Usage:    resp.Usage,
	}, nil
}

// LoadTable reads src as a workbook (.xlsx) or a text export and recovers its table.
func (s *ComparisonService) LoadTable(src models.Source) (*dataset.Table, error) {
	if strings.EqualFold(filepath.Ext(src.Path), ".xlsx") {
		lines, err := excel.NewDataReader(src.Path, s.cfg.Sources.Sheet, s.logger.Named("excel")).ReadLines()
		if err != nil {
			return nil, errors.Wrapf(err, "load %s", src.Label)
		}
		table, err := s.parser.ParseLines(lines)
		if err != nil {
			return nil, errors.Wrapf(err, "load %s (%s)", src.Label, src.Path)
		}
		return table, nil
	}

	table, err := s.parser.ParseFile(src.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", src.Label)
	}
	return table, nil
}

// Usage exposes the token usage recorded by Run
func (s *ComparisonService) Usage() *usage.Service {
	return s.usage
}

// Inspect parses and renders src and profiles its columns
func (s *ComparisonService) Inspect(src models.Source) (*InspectResult, error) {
	table, err := s.LoadTable(src)
	if err != nil {
		return nil, err
	}
	profiles, err := profiling.ProfileTable(table)
	if err != nil {
		return nil, errors.Wrapf(err, "profile %s", src.Label)
	}
	return &InspectResult{
		Source:   src,
		Table:    table,
		Report:   report.Render(table, src.Label, s.cfg.Report.MaxRows),
		Profiles: profiles,
	}, nil
}

const bannerRule = "=========================="

// PrintResult writes answer framed by the comparison banner
func PrintResult(w io.Writer, answer string) error {
	_, err := fmt.Fprintf(w, "\n%s\n📊 COMPARISON ANALYSIS 📊\n%s\n\n%s\n", bannerRule, bannerRule, answer)
	return err
}

// PrintInspection writes the rendered table followed by column profiles
func PrintInspection(w io.Writer, result *InspectResult) error {
	var b strings.Builder
	b.WriteString(result.Report.Text)
	fmt.Fprintf(&b, "\n\nRows: %d (rendered %d), columns: %d\n", result.Report.TotalRows, result.Report.ShownRows, result.Table.Width())
	for _, p := range result.Profiles {
		if p.Summary == nil {
			fmt.Fprintf(&b, "- %s: %d non-empty, text\n", p.Name, p.NonEmpty)
			continue
		}
		fmt.Fprintf(&b, "- %s: %d numeric, sum=%.4g min=%.4g max=%.4g mean=%.4g median=%.4g\n",
			p.Name, p.Summary.Count, p.Summary.Sum, p.Summary.Min, p.Summary.Max, p.Summary.Mean, p.Summary.Median)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
