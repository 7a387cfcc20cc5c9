package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"holdingscompare/adapters/llm"
	"holdingscompare/app"
	"holdingscompare/internal/config"
	"holdingscompare/internal/errors"
	"holdingscompare/internal/logging"
	"holdingscompare/internal/output"
	"holdingscompare/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// cliOptions mirrors the flags; empty or zero values leave the loaded config untouched.
type cliOptions struct {
	configPath  string
	firstPath   string
	firstLabel  string
	secondPath  string
	secondLabel string
	provider    string
	model       string
	maxRows     int
	format      string
	outPath     string
	dryRun      bool
	verbose     bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error [%s]: %v\n", errors.GetCode(err), err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}
	var logger *zap.Logger

	rootCmd := &cobra.Command{
		Use:   "holdingscompare",
		Short: "Compare two institutions' portfolio holdings exports with an LLM",
		Long: `Recover the holdings tables from two messy CSV (or .xlsx) exports, render
them as text and ask a chat-completion model for a structured comparison.

Running without a subcommand is the same as "holdingscompare compare".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd.Context(), cmd.OutOrStdout(), opts, logger)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Path to a YAML config file")
	flags.StringVar(&opts.provider, "provider", "", "Completion provider: openai, gemini or mock")
	flags.StringVar(&opts.model, "model", "", "Model name (default gpt-4o)")
	flags.IntVar(&opts.maxRows, "max-rows", 0, "Maximum rows rendered per table (default 50)")
	flags.BoolVar(&opts.verbose, "verbose", false, "Enable debug logging")

	compareFlags := func(cmd *cobra.Command) {
		f := cmd.Flags()
		f.StringVar(&opts.firstPath, "first", "", "Path of the first institution's export")
		f.StringVar(&opts.firstLabel, "first-label", "", "Display name of the first institution")
		f.StringVar(&opts.secondPath, "second", "", "Path of the second institution's export")
		f.StringVar(&opts.secondLabel, "second-label", "", "Display name of the second institution")
		f.StringVar(&opts.format, "format", "", "Answer format: plain, markdown or html")
		f.StringVar(&opts.outPath, "out", "", "Also write the formatted answer to this file")
		f.BoolVar(&opts.dryRun, "dry-run", false, "Use the mock provider instead of calling a model")
	}
	compareFlags(rootCmd)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(opts)
		if err != nil {
			return err
		}
		logger, err = logging.New(logging.Options{
			Level:      cfg.Logging.Level,
			Output:     cfg.Logging.Output,
			JSONFormat: cfg.Logging.JSON,
			Verbose:    opts.verbose,
		})
		if err != nil {
			return errors.WithCode(errors.CodeConfigInvalid, err)
		}
		return nil
	}
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	}

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare the two configured holdings exports",
		Long: `Compare two holdings exports.

Example: holdingscompare compare --first etf.csv --second ga.xlsx --format markdown`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd.Context(), cmd.OutOrStdout(), opts, logger)
		},
	}
	compareFlags(compareCmd)

	var inspectLabel string
	inspectCmd := &cobra.Command{
		Use:   "inspect [path]",
		Short: "Parse one export and print the recovered table and column profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			label := inspectLabel
			if label == "" {
				label = args[0]
			}
			return runInspect(cmd.OutOrStdout(), opts, models.Source{Path: args[0], Label: label}, logger)
		},
	}
	inspectCmd.Flags().StringVar(&inspectLabel, "label", "", "Display name used in the rendered report")

	rootCmd.AddCommand(compareCmd, inspectCmd)
	return rootCmd
}

// loadConfig layers flags over the file and environment configuration.
func loadConfig(opts *cliOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	opts.apply(cfg)
	return cfg, nil
}

func (o *cliOptions) apply(cfg *config.Config) {
	setString(&cfg.Sources.First.Path, o.firstPath)
	setString(&cfg.Sources.First.Label, o.firstLabel)
	setString(&cfg.Sources.Second.Path, o.secondPath)
	setString(&cfg.Sources.Second.Label, o.secondLabel)
	setString(&cfg.AI.Provider, o.provider)
	setString(&cfg.AI.Model, o.model)
	setString(&cfg.Output.Format, o.format)
	setString(&cfg.Output.Path, o.outPath)
	if o.maxRows > 0 {
		cfg.Report.MaxRows = o.maxRows
	}
	if o.dryRun {
		cfg.AI.Provider = llm.ProviderMock
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func runCompare(ctx context.Context, w io.Writer, opts *cliOptions, logger *zap.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	client, err := llm.NewClient(llm.Config{
		Provider: cfg.AI.Provider,
		APIKey:   cfg.AI.ResolvedAPIKey(),
		BaseURL:  cfg.AI.BaseURL,
		Timeout:  cfg.AI.Timeout,
	})
	if err != nil {
		return errors.WithCode(errors.CodeConfigInvalid, err)
	}

	service := app.NewComparisonService(cfg, client, logger)
	result, err := service.Run(ctx)
	if err != nil {
		return err
	}

	formatted, err := output.Format(result.Content, cfg.Output.Format)
	if err != nil {
		return errors.Wrap(err, "format answer")
	}
	if cfg.Output.Path != "" {
		if err := os.WriteFile(cfg.Output.Path, []byte(formatted), 0o644); err != nil {
			return errors.Wrap(errors.IOError(cfg.Output.Path, err), "write answer")
		}
		logger.Info("Answer written", zap.String("path", cfg.Output.Path))
	}
	return app.PrintResult(w, formatted)
}

func runInspect(w io.Writer, opts *cliOptions, src models.Source, logger *zap.Logger) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if cfg.Report.MaxRows <= 0 {
		return errors.ConfigInvalid(fmt.Sprintf("max rows must be positive, got %d", cfg.Report.MaxRows))
	}

	result, err := app.NewComparisonService(cfg, &llm.MockClient{}, logger).Inspect(src)
	if err != nil {
		return err
	}
	return app.PrintInspection(w, result)
}
