package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Sources  SourcesConfig  `mapstructure:"sources"`
	Engine   EngineConfig   `mapstructure:"engine"`
	Report   ReportConfig   `mapstructure:"report"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Email    EmailConfig    `mapstructure:"email"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// SourcesConfig holds upstream API configuration
type SourcesConfig struct {
	CoinGeckoURL      string        `mapstructure:"coingecko_url"`
	FearGreedURL      string        `mapstructure:"feargreed_url"`
	FREDURL           string        `mapstructure:"fred_url"`
	FREDAPIKey        string        `mapstructure:"fred_api_key"`
	BinanceFuturesURL string        `mapstructure:"binance_futures_url"`
	BinanceSpotURL    string        `mapstructure:"binance_spot_url"`
	UpbitURL          string        `mapstructure:"upbit_url"`
	FXURL             string        `mapstructure:"fx_url"`
	DefiLlamaURL      string        `mapstructure:"defillama_url"`
	Timeout           time.Duration `mapstructure:"timeout"`
	MaxRetries        int           `mapstructure:"max_retries"`
	Pace              time.Duration `mapstructure:"pace"`
}

// EngineConfig holds classification engine configuration
type EngineConfig struct {
	// Aggregation toggles the composite bullish/bearish verdict; when false
	// the briefing shows per-indicator tiers only.
	Aggregation bool `mapstructure:"aggregation"`
}

// ReportConfig holds briefing schedule configuration
type ReportConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

// TelegramConfig holds Telegram delivery configuration
type TelegramConfig struct {
	BotToken       string        `mapstructure:"bot_token"`
	ChatID         string        `mapstructure:"chat_id"`
	Enabled        bool          `mapstructure:"enabled"`
	MaxRetries     int           `mapstructure:"max_retries"`
	RetryDelayBase time.Duration `mapstructure:"retry_delay_base"`
}

// EmailConfig holds SMTP delivery configuration
type EmailConfig struct {
	Enabled  bool     `mapstructure:"enabled"`
	Host     string   `mapstructure:"host"`
	Port     string   `mapstructure:"port"`
	Username string   `mapstructure:"username"`
	Password string   `mapstructure:"password"`
	From     string   `mapstructure:"from"`
	To       []string `mapstructure:"to"`
}

// StorageConfig holds history persistence configuration
type StorageConfig struct {
	MaxCycles int    `mapstructure:"max_cycles"`
	DBPath    string `mapstructure:"db_path"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables
func Load(path string) (*Config, error) {
	v := viper.New()

	// Set config file
	v.SetConfigFile(path)

	// Set defaults
	setDefaults(v)

	// Enable environment variable override
	v.SetEnvPrefix("CRYPTOBRIEF")
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values for all configuration options
func setDefaults(v *viper.Viper) {
	// Sources defaults
	v.SetDefault("sources.coingecko_url", "https://api.coingecko.com")
	v.SetDefault("sources.feargreed_url", "https://api.alternative.me")
	v.SetDefault("sources.fred_url", "https://api.stlouisfed.org")
	v.SetDefault("sources.binance_futures_url", "https://fapi.binance.com")
	v.SetDefault("sources.binance_spot_url", "https://api.binance.com")
	v.SetDefault("sources.upbit_url", "https://api.upbit.com")
	v.SetDefault("sources.fx_url", "https://api.exchangerate-api.com")
	v.SetDefault("sources.defillama_url", "https://stablecoins.llama.fi")
	v.SetDefault("sources.timeout", "10s")
	v.SetDefault("sources.max_retries", 3)
	v.SetDefault("sources.pace", "1s")

	// Engine defaults
	v.SetDefault("engine.aggregation", true)

	// Report defaults
	v.SetDefault("report.interval", "24h")

	// Telegram defaults
	v.SetDefault("telegram.max_retries", 3)
	v.SetDefault("telegram.retry_delay_base", "1s")

	// Storage defaults
	v.SetDefault("storage.max_cycles", 30)
	v.SetDefault("storage.db_path", "./data/cryptobrief.db")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	// Validate Sources config
	urls := map[string]string{
		"sources.coingecko_url":       c.Sources.CoinGeckoURL,
		"sources.feargreed_url":       c.Sources.FearGreedURL,
		"sources.fred_url":            c.Sources.FREDURL,
		"sources.binance_futures_url": c.Sources.BinanceFuturesURL,
		"sources.binance_spot_url":    c.Sources.BinanceSpotURL,
		"sources.upbit_url":           c.Sources.UpbitURL,
		"sources.fx_url":              c.Sources.FXURL,
		"sources.defillama_url":       c.Sources.DefiLlamaURL,
	}
	for name, value := range urls {
		if value == "" {
			return fmt.Errorf("%s is required", name)
		}
	}
	if c.Sources.Timeout < 1*time.Second {
		return fmt.Errorf("sources.timeout must be at least 1 second")
	}
	if c.Sources.MaxRetries < 1 {
		return fmt.Errorf("sources.max_retries must be at least 1")
	}
	if c.Sources.Pace < 0 {
		return fmt.Errorf("sources.pace must not be negative")
	}

	// Validate Report config
	if c.Report.Interval < 1*time.Minute {
		return fmt.Errorf("report.interval must be at least 1 minute")
	}

	// Validate Telegram config
	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required when telegram is enabled")
		}
		if c.Telegram.ChatID == "" {
			return fmt.Errorf("telegram.chat_id is required when telegram is enabled")
		}
	}

	// Validate Email config
	if c.Email.Enabled {
		if c.Email.Host == "" || c.Email.Port == "" {
			return fmt.Errorf("email.host and email.port are required when email is enabled")
		}
		if c.Email.From == "" {
			return fmt.Errorf("email.from is required when email is enabled")
		}
		if len(c.Email.To) == 0 {
			return fmt.Errorf("email.to must contain at least one recipient when email is enabled")
		}
	}

	// Validate Storage config
	if c.Storage.MaxCycles < 1 {
		return fmt.Errorf("storage.max_cycles must be at least 1")
	}
	if c.Storage.DBPath == "" {
		return fmt.Errorf("storage.db_path is required")
	}

	// Validate Logging config
	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	return nil
}
