// Package config loads run configuration from an optional config file
// with environment overrides. A missing or unreadable file is never
// fatal: the defaults below apply and a warning is logged.
package config

import (
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Defaults applied when the config file is absent or a key is unset.
const (
	DefaultMaxWorkers   = 5
	DefaultOutputBase   = "./earning_data"
	DefaultVegaPerTrade = 100.0
)

// Config is the process-wide configuration, constructed once at startup
// and passed down explicitly to each stage.
type Config struct {
	// UseParallel fans tickers out over the worker pool.
	UseParallel bool `mapstructure:"use_parallel"`

	// MaxWorkers bounds the worker pool when UseParallel is on.
	MaxWorkers int `mapstructure:"max_workers"`

	// SaveResults persists per-ticker trade tables.
	SaveResults bool `mapstructure:"save_results"`

	// Pivot reshapes legs into wide straddle rows before persisting.
	Pivot bool `mapstructure:"pivot"`

	// OutputBase is the root directory for all persisted artifacts.
	OutputBase string `mapstructure:"output_base"`

	// VegaPerTrade is the target vega exposure per trade; zero disables
	// vega sizing.
	VegaPerTrade float64 `mapstructure:"vega_per_trade"`

	// ShortSignCompat re-flips persisted short straddle PnL during
	// aggregation. Transitional; see backtest.Options.
	ShortSignCompat bool `mapstructure:"short_sign_compat"`
}

// Load reads the config file at path (empty means defaults only).
// Environment variables prefixed EARNING_TRADE override file values,
// e.g. EARNING_TRADE_OUTPUT_BASE.
func Load(path string, logger *log.Logger) (*Config, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	v := viper.New()
	v.SetDefault("use_parallel", false)
	v.SetDefault("max_workers", DefaultMaxWorkers)
	v.SetDefault("save_results", true)
	v.SetDefault("pivot", true)
	v.SetDefault("output_base", DefaultOutputBase)
	v.SetDefault("vega_per_trade", DefaultVegaPerTrade)
	v.SetDefault("short_sign_compat", true)

	v.SetEnvPrefix("EARNING_TRADE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			logger.Printf("config file %s not loaded, using defaults: %v", path, err)
		} else {
			logger.Printf("loaded config from %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// OutputDir returns the artifact directory for one strategy variant.
func (c *Config) OutputDir(variant string) string {
	return filepath.Join(c.OutputBase, variant)
}
