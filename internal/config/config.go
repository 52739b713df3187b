package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so TTLs can be written as "1h" / "15m" in YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config holds all application configuration. Every scoring constant lives
// here so behavior is reproducible across runs and auditable: nothing in
// the scoring packages hardcodes a weight or threshold.
type Config struct {
	// Watchlist is the fixed set of NSE/BSE tickers to score.
	Watchlist []string `yaml:"watchlist"`

	Store struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"store"`

	Prices struct {
		WindowDays int `yaml:"window_days"` // trading days of history requested
	} `yaml:"prices"`

	News struct {
		LookbackDays int `yaml:"lookback_days"`
	} `yaml:"news"`

	// Momentum blends the 1-day and 5-day returns. Equal weights keep the
	// blend easy to explain to end users.
	Momentum struct {
		Weight1Day float64 `yaml:"weight_1d"`
		Weight5Day float64 `yaml:"weight_5d"`
	} `yaml:"momentum"`

	// Risk buckets the daily-return volatility proxy. Values are on the
	// raw daily scale (not annualized): 0.01 means 1% daily dispersion.
	Risk struct {
		LowMax    float64 `yaml:"low_max"`    // v <= low_max    -> Low
		MediumMax float64 `yaml:"medium_max"` // v <= medium_max -> Medium
	} `yaml:"risk"`

	// Weights of the linear composite:
	// final = news*news_impact + momentum*momentum - risk*risk_value
	Weights struct {
		News     float64 `yaml:"news"`
		Momentum float64 `yaml:"momentum"`
		Risk     float64 `yaml:"risk"`
	} `yaml:"weights"`

	// Clamp optionally bounds the final score. Disabled by default.
	Clamp struct {
		Enabled bool    `yaml:"enabled"`
		Min     float64 `yaml:"min"`
		Max     float64 `yaml:"max"`
	} `yaml:"clamp"`

	// Turnaround flags weak momentum offset by strongly positive news.
	// Both comparisons are strict: momentum < weak AND impact > strong.
	Turnaround struct {
		WeakMomentum float64 `yaml:"weak_momentum"`
		StrongNews   float64 `yaml:"strong_news"`
	} `yaml:"turnaround"`

	// Cache TTLs per resource kind. Price history goes stale once per
	// trading day; news churns faster.
	Cache struct {
		PriceTTL Duration `yaml:"price_ttl"`
		NewsTTL  Duration `yaml:"news_ttl"`
	} `yaml:"cache"`

	Schedule struct {
		EODCron string `yaml:"eod_cron"`
	} `yaml:"schedule"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("WATCHLIST"); v != "" {
		cfg.Watchlist = cfg.Watchlist[:0]
		for _, t := range strings.Split(v, ",") {
			if t = strings.TrimSpace(t); t != "" {
				cfg.Watchlist = append(cfg.Watchlist, t)
			}
		}
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Store.SQLitePath = v
	}
	if v := os.Getenv("CRON_EOD"); v != "" {
		cfg.Schedule.EODCron = v
	}

	// Defaults
	if len(cfg.Watchlist) == 0 {
		cfg.Watchlist = []string{"RELIANCE.NS", "TCS.NS", "INFY.NS", "HDFCBANK.NS", "TATAMOTORS.NS"}
	}
	if cfg.Store.SQLitePath == "" {
		cfg.Store.SQLitePath = "data/stock_mvp.db"
	}
	if cfg.Prices.WindowDays == 0 {
		cfg.Prices.WindowDays = 120
	}
	if cfg.News.LookbackDays == 0 {
		cfg.News.LookbackDays = 2
	}
	if cfg.Momentum.Weight1Day == 0 && cfg.Momentum.Weight5Day == 0 {
		cfg.Momentum.Weight1Day = 0.5
		cfg.Momentum.Weight5Day = 0.5
	}
	if cfg.Risk.LowMax == 0 {
		cfg.Risk.LowMax = 0.01
	}
	if cfg.Risk.MediumMax == 0 {
		cfg.Risk.MediumMax = 0.02
	}
	if cfg.Weights.News == 0 && cfg.Weights.Momentum == 0 && cfg.Weights.Risk == 0 {
		cfg.Weights.News = 0.5
		cfg.Weights.Momentum = 0.3
		cfg.Weights.Risk = 0.2
	}
	if cfg.Turnaround.StrongNews == 0 {
		cfg.Turnaround.StrongNews = 0.5
	}
	if cfg.Cache.PriceTTL == 0 {
		cfg.Cache.PriceTTL = Duration(time.Hour)
	}
	if cfg.Cache.NewsTTL == 0 {
		cfg.Cache.NewsTTL = Duration(10 * time.Minute)
	}
	if cfg.Schedule.EODCron == "" {
		// 18:00 IST on weekdays, after the exchanges publish settled EOD data
		cfg.Schedule.EODCron = "0 0 18 * * 1-5"
	}

	return cfg, nil
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if len(c.Watchlist) == 0 {
		return fmt.Errorf("watchlist must not be empty")
	}
	if c.Prices.WindowDays < 2 {
		return fmt.Errorf("prices.window_days must be >= 2")
	}
	if c.News.LookbackDays <= 0 {
		return fmt.Errorf("news.lookback_days must be positive")
	}
	if c.Momentum.Weight1Day < 0 || c.Momentum.Weight5Day < 0 {
		return fmt.Errorf("momentum weights must be non-negative")
	}
	if c.Risk.LowMax > c.Risk.MediumMax {
		return fmt.Errorf("risk.low_max must not exceed risk.medium_max")
	}
	if c.Weights.News < 0 || c.Weights.Momentum < 0 || c.Weights.Risk < 0 {
		return fmt.Errorf("composite weights must be non-negative")
	}
	if c.Clamp.Enabled && c.Clamp.Min >= c.Clamp.Max {
		return fmt.Errorf("clamp.min must be less than clamp.max")
	}
	if c.Cache.PriceTTL <= 0 || c.Cache.NewsTTL <= 0 {
		return fmt.Errorf("cache TTLs must be positive")
	}
	return nil
}
