package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/pnlchart/internal/logger"
	"github.com/rustyeddy/pnlchart/logline"
	"github.com/rustyeddy/pnlchart/series"
)

// Config is the complete configuration of a run.
type Config struct {
	Input   InputConfig   `json:"input" yaml:"input"`
	Series  SeriesConfig  `json:"series" yaml:"series"`
	Chart   ChartConfig   `json:"chart" yaml:"chart"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
	Log     LogConfig     `json:"log" yaml:"log"`
}

// InputConfig describes the log layout. PriceFields and OrderFields, when
// set, replace the built-in schemas.
type InputConfig struct {
	Schema      string         `json:"schema" yaml:"schema"`
	PriceFields logline.Schema `json:"price_fields,omitempty" yaml:"price_fields,omitempty"`
	OrderFields logline.Schema `json:"order_fields,omitempty" yaml:"order_fields,omitempty"`
}

// SeriesConfig controls aggregation.
type SeriesConfig struct {
	ProfitMode string `json:"profit_mode" yaml:"profit_mode"`
	FillGaps   bool   `json:"fill_gaps" yaml:"fill_gaps"`
}

// ChartConfig controls the rendered image.
type ChartConfig struct {
	Output string `json:"output" yaml:"output"`
	Title  string `json:"title" yaml:"title"`
	Width  int    `json:"width" yaml:"width"`
	Height int    `json:"height" yaml:"height"`
}

// JournalConfig selects where exported series go.
type JournalConfig struct {
	Type        string `json:"type" yaml:"type"` // "csv" or "sqlite"
	TicksFile   string `json:"ticks_file,omitempty" yaml:"ticks_file,omitempty"`
	FlushesFile string `json:"flushes_file,omitempty" yaml:"flushes_file,omitempty"`
	DBPath      string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LogConfig controls diagnostics on stderr.
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"` // "console" or "json"
}

// LoadFromFile loads configuration from a file (YAML, falling back to JSON)
// and validates it.
func LoadFromFile(path string) (*Config, error) {
	cfg, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Load reads path when it is set, otherwise starts from Default, then
// applies PNLCHART_* environment overrides. The result is validated once,
// after the overrides, so the environment can correct a file value.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = readFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// readFile decodes path over Default without validating.
func readFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}
	return cfg, nil
}

// SaveToFile writes YAML for .yaml/.yml paths and indented JSON otherwise.
func (c *Config) SaveToFile(path string) error {
	var (
		data []byte
		err  error
	)
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := c.Parser(); err != nil {
		return fmt.Errorf("input: %w", err)
	}
	if _, err := series.ParseProfitMode(c.Series.ProfitMode); err != nil {
		return fmt.Errorf("series.profit_mode: %w", err)
	}
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		return fmt.Errorf("chart width and height must be positive")
	}
	switch c.Journal.Type {
	case "csv":
		if c.Journal.TicksFile == "" || c.Journal.FlushesFile == "" {
			return fmt.Errorf("journal ticks_file and flushes_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'csv' or 'sqlite'")
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be 'console' or 'json'")
	}
	return nil
}

// Parser builds the line parser described by Input.
func (c *Config) Parser() (*logline.Parser, error) {
	price := c.Input.PriceFields
	if len(price) == 0 {
		name := c.Input.Schema
		if name == "" {
			name = logline.DefaultVariant
		}
		var err error
		if price, err = logline.Variant(name); err != nil {
			return nil, err
		}
	}
	order := c.Input.OrderFields
	if len(order) == 0 {
		order = logline.OrderSchema
	}
	return logline.NewParser(price, order)
}

// SeriesOptions builds the aggregator options described by Series. The
// configuration must already be valid.
func (c *Config) SeriesOptions() ([]series.Option, error) {
	p, err := c.Parser()
	if err != nil {
		return nil, err
	}
	mode, err := series.ParseProfitMode(c.Series.ProfitMode)
	if err != nil {
		return nil, err
	}
	return []series.Option{
		series.WithParser(p),
		series.WithProfitMode(mode),
		series.WithGapFill(c.Series.FillGaps),
	}, nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Schema: logline.DefaultVariant,
		},
		Series: SeriesConfig{
			ProfitMode: string(series.PerMinute),
		},
		Chart: ChartConfig{
			Output: "two_scale.png",
			Title:  "strategy pnl",
			Width:  1600,
			Height: 900,
		},
		Journal: JournalConfig{
			Type:        "sqlite",
			TicksFile:   "./ticks.csv",
			FlushesFile: "./flushes.csv",
			DBPath:      "./pnlchart.sqlite",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
