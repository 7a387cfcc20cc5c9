package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"holdingscompare/internal/errors"
	"holdingscompare/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the complete application configuration
type Config struct {
	Sources SourcesConfig `yaml:"sources"`
	AI      AIConfig      `yaml:"ai"`
	Report  ReportConfig  `yaml:"report"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// SourcesConfig names the two exports being compared
type SourcesConfig struct {
	First        models.Source `yaml:"first"`
	Second       models.Source `yaml:"second"`
	HeaderMarker string        `yaml:"header_marker"`
	Sheet        string        `yaml:"sheet"` // workbook sheet for .xlsx sources; empty = first sheet
}

// AIConfig holds completion service settings
type AIConfig struct {
	Provider    string        `yaml:"provider"`
	Model       string        `yaml:"model"`
	APIKey      string        `yaml:"api_key"`
	BaseURL     string        `yaml:"base_url"`
	Temperature float64       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"` // zero = no timeout
}

// ReportConfig holds rendering settings
type ReportConfig struct {
	MaxRows int `yaml:"max_rows"`
}

// OutputConfig controls how the answer is printed
type OutputConfig struct {
	Format string `yaml:"format"` // plain, markdown, html
	Path   string `yaml:"path"`   // optional file copy of the formatted answer
}

// LoggingConfig controls progress and diagnostic logging
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Output string `yaml:"output"`
	JSON   bool   `yaml:"json"`
}

// Valid values
var (
	ValidProviders = []string{"openai", "gemini", "mock"}
	ValidFormats   = []string{"plain", "markdown", "html"}
)

// DefaultConfig returns the settings the comparison was originally run with
func DefaultConfig() *Config {
	return &Config{
		Sources: SourcesConfig{
			First:        models.Source{Path: "test_etf.csv", Label: "Test ETF Model Portfolio"},
			Second:       models.Source{Path: "test_ga.csv", Label: "Test GA Model Portfolio"},
			HeaderMarker: "As Of Date",
		},
		AI: AIConfig{
			Provider:    "openai",
			Model:       "gpt-4o",
			Temperature: 0.3,
		},
		Report: ReportConfig{MaxRows: 50},
		Output: OutputConfig{Format: "plain"},
		Logging: LoggingConfig{
			Level:  "info",
			Output: "stdout",
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if
// path is non-empty), then .env and process environment overrides.
func Load(path string) (*Config, error) {
	// Best-effort load of local env file; real environment wins.
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(errors.IOError(path, err), "failed to read config")
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrap(errors.ConfigInvalid(err.Error()), "failed to parse config")
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	c.Sources.First.Path = getEnvOrDefault("HOLDINGS_FIRST_PATH", c.Sources.First.Path)
	c.Sources.First.Label = getEnvOrDefault("HOLDINGS_FIRST_LABEL", c.Sources.First.Label)
	c.Sources.Second.Path = getEnvOrDefault("HOLDINGS_SECOND_PATH", c.Sources.Second.Path)
	c.Sources.Second.Label = getEnvOrDefault("HOLDINGS_SECOND_LABEL", c.Sources.Second.Label)
	c.Sources.HeaderMarker = getEnvOrDefault("HOLDINGS_HEADER_MARKER", c.Sources.HeaderMarker)
	c.Sources.Sheet = getEnvOrDefault("HOLDINGS_SHEET", c.Sources.Sheet)

	c.AI.Provider = strings.ToLower(getEnvOrDefault("LLM_PROVIDER", c.AI.Provider))
	c.AI.Model = getEnvOrDefault("LLM_MODEL", c.AI.Model)
	c.AI.APIKey = getEnvOrDefault("LLM_API_KEY", c.AI.APIKey)
	c.AI.BaseURL = getEnvOrDefault("LLM_BASE_URL", c.AI.BaseURL)
	c.AI.Temperature = getEnvFloatOrDefault("LLM_TEMPERATURE", c.AI.Temperature)
	c.AI.Timeout = getEnvDurationOrDefault("LLM_TIMEOUT", c.AI.Timeout)

	c.Report.MaxRows = getEnvIntOrDefault("HOLDINGS_MAX_ROWS", c.Report.MaxRows)

	c.Logging.Level = getEnvOrDefault("LOG_LEVEL", c.Logging.Level)
	c.Logging.Output = getEnvOrDefault("LOG_OUTPUT", c.Logging.Output)
}

// ResolvedAPIKey returns the explicit key, or the provider's conventional env variable.
func (c AIConfig) ResolvedAPIKey() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	switch c.Provider {
	case "gemini":
		if key := os.Getenv("GEMINI_API_KEY"); key != "" {
			return key
		}
		return os.Getenv("GOOGLE_API_KEY")
	case "mock":
		return ""
	default:
		return os.Getenv("OPENAI_API_KEY")
	}
}

// Validate checks the configuration before a run
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Sources.First.Path) == "" || strings.TrimSpace(c.Sources.Second.Path) == "" {
		return errors.ConfigInvalid("both source paths are required")
	}
	if strings.TrimSpace(c.Sources.HeaderMarker) == "" {
		return errors.ConfigInvalid("header marker is required")
	}
	if c.Report.MaxRows <= 0 {
		return errors.ConfigInvalid(fmt.Sprintf("max rows must be positive, got %d", c.Report.MaxRows))
	}
	if !contains(ValidProviders, c.AI.Provider) {
		return errors.ConfigInvalid(fmt.Sprintf("invalid LLM provider: %s (valid: %v)", c.AI.Provider, ValidProviders))
	}
	if strings.TrimSpace(c.AI.Model) == "" {
		return errors.ConfigInvalid("LLM model is required")
	}
	if c.AI.Temperature < 0 || c.AI.Temperature > 2 {
		return errors.ConfigInvalid(fmt.Sprintf("temperature must be within [0, 2], got %g", c.AI.Temperature))
	}
	if c.AI.Provider != "mock" && c.AI.ResolvedAPIKey() == "" {
		return errors.ConfigInvalid(fmt.Sprintf("API key not configured for provider %s (set OPENAI_API_KEY, GEMINI_API_KEY or LLM_API_KEY)", c.AI.Provider))
	}
	if !contains(ValidFormats, c.Output.Format) {
		return errors.ConfigInvalid(fmt.Sprintf("invalid output format: %s (valid: %v)", c.Output.Format, ValidFormats))
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
