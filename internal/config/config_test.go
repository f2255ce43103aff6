package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadAndValidate(t *testing.T) {
	// Create temp config file
	content := `
sources:
  fred_api_key: "test_key"
  timeout: 10s
  max_retries: 3
  pace: 2s

engine:
  aggregation: true

report:
  interval: 24h

telegram:
  bot_token: "test_token"
  chat_id: "12345"
  enabled: true

email:
  enabled: false

storage:
  max_cycles: 30
  db_path: "./data/test.db"

logging:
  level: "info"
  format: "json"
`
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Remove(tmpfile.Name()) }()

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	// Test Load
	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Verify values
	if cfg.Report.Interval != 24*time.Hour {
		t.Errorf("Unexpected report interval: %v", cfg.Report.Interval)
	}
	if cfg.Sources.Pace != 2*time.Second {
		t.Errorf("Unexpected pace: %v", cfg.Sources.Pace)
	}
	if cfg.Sources.FREDAPIKey != "test_key" {
		t.Errorf("Unexpected FRED API key: %q", cfg.Sources.FREDAPIKey)
	}
	if !cfg.Engine.Aggregation {
		t.Error("Expected aggregation enabled")
	}

	// Defaults should fill unset upstream URLs
	if cfg.Sources.CoinGeckoURL == "" {
		t.Error("Expected default coingecko_url")
	}
	if cfg.Sources.DefiLlamaURL == "" {
		t.Error("Expected default defillama_url")
	}

	// Test Validate
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
}

func validConfig() *Config {
	return &Config{
		Sources: SourcesConfig{
			CoinGeckoURL:      "https://api.coingecko.com",
			FearGreedURL:      "https://api.alternative.me",
			FREDURL:           "https://api.stlouisfed.org",
			BinanceFuturesURL: "https://fapi.binance.com",
			BinanceSpotURL:    "https://api.binance.com",
			UpbitURL:          "https://api.upbit.com",
			FXURL:             "https://api.exchangerate-api.com",
			DefiLlamaURL:      "https://stablecoins.llama.fi",
			Timeout:           10 * time.Second,
			MaxRetries:        3,
			Pace:              time.Second,
		},
		Engine: EngineConfig{Aggregation: true},
		Report: ReportConfig{Interval: 24 * time.Hour},
		Storage: StorageConfig{
			MaxCycles: 30,
			DBPath:    "./data/test.db",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid baseline",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "missing telegram token when enabled",
			mutate: func(c *Config) {
				c.Telegram.Enabled = true
				c.Telegram.ChatID = "12345"
				// Missing BotToken
			},
			wantErr: true,
		},
		{
			name: "missing email recipients when enabled",
			mutate: func(c *Config) {
				c.Email.Enabled = true
				c.Email.Host = "smtp.example.com"
				c.Email.Port = "587"
				c.Email.From = "bot@example.com"
				// Missing To
			},
			wantErr: true,
		},
		{
			name: "report interval too short",
			mutate: func(c *Config) {
				c.Report.Interval = 10 * time.Second
			},
			wantErr: true,
		},
		{
			name: "missing upstream URL",
			mutate: func(c *Config) {
				c.Sources.UpbitURL = ""
			},
			wantErr: true,
		},
		{
			name: "negative pace",
			mutate: func(c *Config) {
				c.Sources.Pace = -time.Second
			},
			wantErr: true,
		},
		{
			name: "zero history cap",
			mutate: func(c *Config) {
				c.Storage.MaxCycles = 0
			},
			wantErr: true,
		},
		{
			name: "invalid log level",
			mutate: func(c *Config) {
				c.Logging.Level = "verbose"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
