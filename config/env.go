package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix prefixes every environment override, e.g. PNLCHART_SERIES_PROFIT_MODE.
const EnvPrefix = "PNLCHART_"

// overrides lists the settings that may come from the environment. Only
// variables that are present replace file or default values.
type overrides struct {
	Schema      *string `env:"INPUT_SCHEMA"`
	ProfitMode  *string `env:"SERIES_PROFIT_MODE"`
	FillGaps    *bool   `env:"SERIES_FILL_GAPS"`
	ChartOutput *string `env:"CHART_OUTPUT"`
	ChartTitle  *string `env:"CHART_TITLE"`
	ChartWidth  *int    `env:"CHART_WIDTH"`
	ChartHeight *int    `env:"CHART_HEIGHT"`
	JournalType *string `env:"JOURNAL_TYPE"`
	TicksFile   *string `env:"JOURNAL_TICKS_FILE"`
	FlushesFile *string `env:"JOURNAL_FLUSHES_FILE"`
	DBPath      *string `env:"JOURNAL_DB_PATH"`
	LogLevel    *string `env:"LOG_LEVEL"`
	LogFormat   *string `env:"LOG_FORMAT"`
}

func (c *Config) applyEnv() error {
	var o overrides
	if err := env.ParseWithOptions(&o, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	setString(&c.Input.Schema, o.Schema)
	setString(&c.Series.ProfitMode, o.ProfitMode)
	if o.FillGaps != nil {
		c.Series.FillGaps = *o.FillGaps
	}
	setString(&c.Chart.Output, o.ChartOutput)
	setString(&c.Chart.Title, o.ChartTitle)
	if o.ChartWidth != nil {
		c.Chart.Width = *o.ChartWidth
	}
	if o.ChartHeight != nil {
		c.Chart.Height = *o.ChartHeight
	}
	setString(&c.Journal.Type, o.JournalType)
	setString(&c.Journal.TicksFile, o.TicksFile)
	setString(&c.Journal.FlushesFile, o.FlushesFile)
	setString(&c.Journal.DBPath, o.DBPath)
	setString(&c.Log.Level, o.LogLevel)
	setString(&c.Log.Format, o.LogFormat)
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
