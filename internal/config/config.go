package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"SignalSentinel/internal/analysis/window"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		Enabled  bool   `yaml:"enabled" toml:"enabled"`
		BotToken string `yaml:"bot_token" toml:"bot_token"`
		ChatID   string `yaml:"chat_id" toml:"chat_id"`
	} `yaml:"telegram" toml:"telegram"`
	DataSource struct {
		Provider     string `yaml:"provider" toml:"provider"`
		Token        string `yaml:"token" toml:"token"`
		Symbol       string `yaml:"symbol" toml:"symbol"`
		HistoryDays  int    `yaml:"history_days" toml:"history_days"`
		FallbackMock bool   `yaml:"fallback_mock" toml:"fallback_mock"`
	} `yaml:"data_source" toml:"data_source"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron" toml:"daily_cron"`
	} `yaml:"schedule" toml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path" toml:"sqlite_path"`
	} `yaml:"database" toml:"database"`
	Redis struct {
		Addr     string        `yaml:"addr" toml:"addr"`
		Password string        `yaml:"password" toml:"password"`
		DB       int           `yaml:"db" toml:"db"`
		TTL      time.Duration `yaml:"ttl" toml:"ttl"`
	} `yaml:"redis" toml:"redis"`
	HTTP struct {
		Addr string `yaml:"addr" toml:"addr"`
	} `yaml:"http" toml:"http"`
	Report struct {
		APIKey  string `yaml:"api_key" toml:"api_key"`
		BaseURL string `yaml:"base_url" toml:"base_url"`
		Model   string `yaml:"model" toml:"model"`
	} `yaml:"report" toml:"report"`
	Watchlist struct {
		StateFile string   `yaml:"state_file" toml:"state_file"`
		Symbols   []string `yaml:"symbols" toml:"symbols"`
	} `yaml:"watchlist" toml:"watchlist"`
	Analysis window.Config `yaml:"analysis" toml:"analysis"`
	Proxy    string        `yaml:"proxy" toml:"proxy"`
}

// Load reads an optional .env file and config file (TOML by extension,
// YAML otherwise), then applies environment overrides and defaults.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := decode(path, data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return toml.Unmarshal(data, cfg)
	}
	return yaml.Unmarshal(data, cfg)
}

// Environment variable overrides
func applyEnv(cfg *Config) {
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("TUSHARE_TOKEN"); v != "" {
		cfg.DataSource.Token = v
	}
	if v := os.Getenv("SYMBOL"); v != "" {
		cfg.DataSource.Symbol = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Report.APIKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		cfg.Report.BaseURL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = "yahoo"
	}
	if cfg.DataSource.Symbol == "" {
		cfg.DataSource.Symbol = "000001.SZ"
	}
	if cfg.DataSource.HistoryDays == 0 {
		cfg.DataSource.HistoryDays = 800
	}
	if cfg.Schedule.DailyCron == "" {
		cfg.Schedule.DailyCron = "0 0 18 * * 1-5"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/signal_sentinel.db"
	}
	if cfg.Redis.TTL == 0 {
		cfg.Redis.TTL = 6 * time.Hour
	}
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.Report.Model == "" {
		cfg.Report.Model = "gpt-4o-mini"
	}
	if cfg.Watchlist.StateFile == "" {
		cfg.Watchlist.StateFile = "data/watchlist.json"
	}
	cfg.Analysis = cfg.Analysis.Normalize()
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required")
		}
		if c.Telegram.ChatID == "" {
			return fmt.Errorf("telegram.chat_id is required")
		}
	}
	switch c.DataSource.Provider {
	case "yahoo", "mock":
	case "tushare":
		if c.DataSource.Token == "" {
			return fmt.Errorf("data_source.token is required for tushare")
		}
	default:
		return fmt.Errorf("data_source.provider %q is not supported", c.DataSource.Provider)
	}
	if c.DataSource.HistoryDays <= 0 {
		return fmt.Errorf("data_source.history_days must be positive")
	}
	if err := c.Analysis.Validate(); err != nil {
		return err
	}
	return nil
}
