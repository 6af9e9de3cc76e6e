package infra

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds every application setting. Values load from YAML first and
// may then be overridden through environment variables.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	API struct {
		Btse struct {
			BookWSURL  string `yaml:"book_ws_url"`
			TradeWSURL string `yaml:"trade_ws_url"`
			Symbol     string `yaml:"symbol"`
		} `yaml:"btse"`
	} `yaml:"api"`

	UI struct {
		Depth            int `yaml:"depth"`
		UpdateIntervalMS int `yaml:"update_interval_ms"`
	} `yaml:"ui"`

	Journal struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"journal"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// LoadConfig reads and parses the configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	overrideWithEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks configuration validity
func (c *Config) Validate() error {
	if c.API.Btse.BookWSURL == "" || (!hasPrefix(c.API.Btse.BookWSURL, "ws://") && !hasPrefix(c.API.Btse.BookWSURL, "wss://")) {
		return fmt.Errorf("invalid BTSE book WS URL: %s", c.API.Btse.BookWSURL)
	}
	if c.API.Btse.TradeWSURL == "" || (!hasPrefix(c.API.Btse.TradeWSURL, "ws://") && !hasPrefix(c.API.Btse.TradeWSURL, "wss://")) {
		return fmt.Errorf("invalid BTSE trade WS URL: %s", c.API.Btse.TradeWSURL)
	}
	if c.API.Btse.Symbol == "" {
		return fmt.Errorf("a symbol is required")
	}

	if c.UI.Depth <= 0 {
		return fmt.Errorf("depth must be positive")
	}
	if c.UI.UpdateIntervalMS <= 0 {
		return fmt.Errorf("update interval must be positive")
	}

	return nil
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[0:len(prefix)] == prefix
}

// overrideWithEnv replaces settings from environment variables when present.
func overrideWithEnv(cfg *Config) {
	if symbol := os.Getenv("DEPTHGO_SYMBOL"); symbol != "" {
		cfg.API.Btse.Symbol = symbol
	}
	if url := os.Getenv("DEPTHGO_BOOK_WS_URL"); url != "" {
		cfg.API.Btse.BookWSURL = url
	}
	if url := os.Getenv("DEPTHGO_TRADE_WS_URL"); url != "" {
		cfg.API.Btse.TradeWSURL = url
	}
}
