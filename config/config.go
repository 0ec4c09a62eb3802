package config

import (
	"fmt"
	"math"
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/charlerive/optionpricer/binomial"
	"github.com/charlerive/optionpricer/volatility"
)

// Config per-run defaults. Command line flags take precedence.
type Config struct {
	Rate        float64 `yaml:"rate"`
	Dividend    float64 `yaml:"dividend"`
	Steps       int     `yaml:"steps"`
	TradingDays float64 `yaml:"trading_days"`
	LogLevel    string  `yaml:"log_level"`
}

func Default() Config {
	return Config{
		Steps:       1000,
		TradingDays: volatility.TradingDaysPerYear,
		LogLevel:    "info",
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default value.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Steps < 1 || c.Steps > binomial.MaxSteps {
		return fmt.Errorf("steps must be in [1, %d], got %d", binomial.MaxSteps, c.Steps)
	}
	if !(c.TradingDays > 0) || math.IsInf(c.TradingDays, 0) {
		return fmt.Errorf("trading_days must be positive, got %v", c.TradingDays)
	}
	if math.IsNaN(c.Rate) || math.IsInf(c.Rate, 0) {
		return fmt.Errorf("rate must be finite, got %v", c.Rate)
	}
	if !(c.Dividend >= 0) || math.IsInf(c.Dividend, 0) {
		return fmt.Errorf("dividend must be finite and not negative, got %v", c.Dividend)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Level logrus level named by LogLevel, info if it does not parse.
func (c Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
