package main

import (
	"fmt"
	"os"
	"time"

	"github.com/solquant/solstice/pkg/engine"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Data       DataConfig       `yaml:"data"`
	Strategy   StrategyConfig   `yaml:"strategy"`
}

type SimulationConfig struct {
	Start           string  `yaml:"start"`
	End             string  `yaml:"end"`
	InitialCash     float64 `yaml:"initial_cash"`
	EventCapacity   int     `yaml:"event_capacity"`
	TriggerSequence string  `yaml:"trigger_sequence"`
}

type DataConfig struct {
	Source     string           `yaml:"source"`
	DuckDB     DuckDBConfig     `yaml:"duckdb"`
	Historical HistoricalConfig `yaml:"historical"`
	Synthetic  SyntheticConfig  `yaml:"synthetic"`
}

type HistoricalConfig struct {
	Path string `yaml:"path"`
}

type DuckDBConfig struct {
	DSN   string `yaml:"dsn"`
	Table string `yaml:"table"`
}

type SyntheticConfig struct {
	Instrument string  `yaml:"instrument"`
	StartPrice float64 `yaml:"start_price"`
	Drift      float64 `yaml:"drift"`
	Volatility float64 `yaml:"volatility"`
	Seed       int64   `yaml:"seed"`
}

type StrategyConfig struct {
	Contract    string  `yaml:"contract"`
	Volume      int64   `yaml:"volume"`
	MarginRatio float64 `yaml:"margin_ratio"`
	TakeProfit  float64 `yaml:"take_profit"`
	StopLoss    float64 `yaml:"stop_loss"`
}

func loadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Simulation.EventCapacity <= 0 {
		cfg.Simulation.EventCapacity = 256
	}
	if cfg.Data.Source == "" {
		cfg.Data.Source = "synthetic"
	}
	return cfg, nil
}

func (c SimulationConfig) dateRange() (time.Time, time.Time, error) {
	start, err := time.Parse(time.DateOnly, c.Start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse start date: %w", err)
	}
	end, err := time.Parse(time.DateOnly, c.End)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse end date: %w", err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end date %s precedes start date %s", c.End, c.Start)
	}
	return start, end, nil
}

func (c SimulationConfig) triggerSequence() (engine.TriggerSequence, error) {
	switch c.TriggerSequence {
	case "", "high_first":
		return engine.HighLimitFirst, nil
	case "low_first":
		return engine.LowLimitFirst, nil
	default:
		return 0, fmt.Errorf("unknown trigger sequence %q", c.TriggerSequence)
	}
}
