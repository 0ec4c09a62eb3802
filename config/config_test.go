package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pricer.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 1000, cfg.Steps)
	assert.Equal(t, 252.0, cfg.TradingDays)
	assert.Equal(t, log.InfoLevel, cfg.Level())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, "rate: 0.05\ndividend: 0.01\nsteps: 500\nlog_level: debug\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.05, cfg.Rate)
	assert.Equal(t, 0.01, cfg.Dividend)
	assert.Equal(t, 500, cfg.Steps)
	assert.Equal(t, 252.0, cfg.TradingDays, "missing keys keep defaults")
	assert.Equal(t, log.DebugLevel, cfg.Level())
}

func TestLoad_Invalid(t *testing.T) {
	for name, body := range map[string]string{
		"steps":        "steps: 0\n",
		"too many":     "steps: 100000\n",
		"trading days": "trading_days: -1\n",
		"dividend":     "dividend: -0.2\n",
		"nan dividend": "dividend: .nan\n",
		"nan rate":     "rate: .nan\n",
		"inf rate":     "rate: -.inf\n",
		"inf days":     "trading_days: .inf\n",
		"log level":    "log_level: loud\n",
		"yaml":         "steps: [1\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate_Rate(t *testing.T) {
	cfg := Default()
	cfg.Rate = -0.01
	assert.NoError(t, cfg.Validate(), "negative rates are allowed")

	cfg.Rate = math.NaN()
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate")
}
