// Package config exposes strongly typed application configuration structs loaded from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// App captures process-wide runtime settings such as name, environment, metrics, and logging levels.
type App struct {
	Name        string
	Env         string
	MetricsAddr string `yaml:"metrics_addr"`
	LogLevel    string `yaml:"log_level"`
}

// Exchange describes where candles come from: the provider, instrument, and
// candle timeframe to subscribe to.
type Exchange struct {
	Provider  string
	Symbol    string
	Timeframe string
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`
	Testnet   bool
}

// Scanner bounds the in-memory candle window the engine evaluates.
type Scanner struct {
	WindowSize int `yaml:"window_size"`
}

// StrategyParams groups the thresholds handed to the signal engine at construction.
type StrategyParams struct {
	SwingLookback   int     `yaml:"swing_lookback"`
	MinBreakPercent float64 `yaml:"min_break_percent"`
	MinADX          float64 `yaml:"min_adx"`
	MinVolumeRatio  float64 `yaml:"min_volume_ratio"`
	MinBodyPercent  float64 `yaml:"min_body_percent"`
	StopLossATR     float64 `yaml:"stop_loss_atr"`
	TakeProfitATR   float64 `yaml:"take_profit_atr"`
	TrailAfterATR   float64 `yaml:"trail_after_atr"`
}

// Gap configures the fair value gap detector feeding the engine.
type Gap struct {
	ScanDepth  int     `yaml:"scan_depth"`
	MinPercent float64 `yaml:"min_percent"`
}

// Strategy pairs the active strategy mode with its parameter bundle.
type Strategy struct {
	Mode   string
	Params StrategyParams
}

// Config collects every configuration leaf for easy marshaling from YAML.
type Config struct {
	App      App      `yaml:"app"`
	Exchange Exchange `yaml:"exchange"`
	Scanner  Scanner  `yaml:"scanner"`
	Strategy Strategy `yaml:"strategy"`
	Gap      Gap      `yaml:"gap"`
}

// Load reads a YAML file from disk and hydrates a Config struct.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var config Config
	if err := yaml.NewDecoder(file).Decode(&config); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return &config, nil
}

// Save persists a Config struct to disk as YAML.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
