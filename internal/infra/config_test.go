package infra

import (
	"os"
	"path/filepath"
	"testing"
)

const validYAML = `
app:
  name: DepthGo
  version: test
api:
  btse:
    book_ws_url: wss://ws.btse.com/ws/oss/futures
    trade_ws_url: wss://ws.btse.com/ws/futures
    symbol: BTCPFC
ui:
  depth: 8
  update_interval_ms: 150
journal:
  enabled: false
logging:
  level: info
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.API.Btse.Symbol != "BTCPFC" {
		t.Errorf("Symbol = %s, want BTCPFC", cfg.API.Btse.Symbol)
	}
	if cfg.UI.Depth != 8 {
		t.Errorf("Depth = %d, want 8", cfg.UI.Depth)
	}
	if cfg.UI.UpdateIntervalMS != 150 {
		t.Errorf("UpdateIntervalMS = %d, want 150", cfg.UI.UpdateIntervalMS)
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("DEPTHGO_SYMBOL", "ETHPFC")

	cfg, err := LoadConfig(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.API.Btse.Symbol != "ETHPFC" {
		t.Errorf("Symbol = %s, want env override ETHPFC", cfg.API.Btse.Symbol)
	}
}

func TestConfig_Validate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad book url", func(c *Config) { c.API.Btse.BookWSURL = "http://not-ws" }},
		{"bad trade url", func(c *Config) { c.API.Btse.TradeWSURL = "" }},
		{"missing symbol", func(c *Config) { c.API.Btse.Symbol = "" }},
		{"zero depth", func(c *Config) { c.UI.Depth = 0 }},
		{"zero interval", func(c *Config) { c.UI.UpdateIntervalMS = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := LoadConfig(writeConfig(t, validYAML))
			if err != nil {
				t.Fatal(err)
			}
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected error for missing config file")
	}
}
