package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/MrJamesThe3rd/finny/internal/importer"
	"github.com/MrJamesThe3rd/finny/internal/session"
)

const (
	TokenStoreSQLite = "sqlite"
	TokenStoreMemory = "memory"
)

type Config struct {
	App struct {
		Name     string `envconfig:"APP_NAME" default:"Finny"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
		LogFile  string `envconfig:"LOG_FILE" default:"finny.log"`
	}

	API struct {
		BaseURL   string        `envconfig:"API_BASE_URL" default:"http://localhost:8080"`
		Timeout   time.Duration `envconfig:"API_TIMEOUT" default:"30s"`
		RateLimit float64       `envconfig:"API_RATE_LIMIT" default:"10"`
		RateBurst int           `envconfig:"API_RATE_BURST" default:"5"`
	}

	TokenStore struct {
		Kind string `envconfig:"TOKEN_STORE" default:"sqlite"`
		Path string `envconfig:"TOKEN_STORE_PATH" default:"./data/session.db"`
	}

	Session struct {
		VerifyPolicy     string        `envconfig:"SESSION_VERIFY_POLICY" default:"clear"`
		ReverifyInterval time.Duration `envconfig:"SESSION_REVERIFY_INTERVAL" default:"0s"`
	}

	Reports struct {
		WindowMonths int `envconfig:"REPORT_WINDOW_MONTHS" default:"6"`
	}

	FakeAPI struct {
		Port         int           `envconfig:"FAKEAPI_PORT" default:"8080"`
		Secret       string        `envconfig:"FAKEAPI_SECRET" default:"dev-secret"`
		TokenTTL     time.Duration `envconfig:"FAKEAPI_TOKEN_TTL" default:"24h"`
		CORSOrigins  []string      `envconfig:"FAKEAPI_CORS_ORIGINS" default:"http://localhost:5173"`
		DemoUser     string        `envconfig:"FAKEAPI_DEMO_USER" default:"demo"`
		DemoPassword string        `envconfig:"FAKEAPI_DEMO_PASSWORD" default:"demo"`
		SeedCSV      string        `envconfig:"FAKEAPI_SEED_CSV"`
		SeedBank     string        `envconfig:"FAKEAPI_SEED_BANK" default:"cgd"`
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.TokenStore.Kind {
	case TokenStoreSQLite, TokenStoreMemory:
	default:
		return fmt.Errorf("TOKEN_STORE must be %q or %q, got %q", TokenStoreSQLite, TokenStoreMemory, c.TokenStore.Kind)
	}

	if _, err := c.VerifyPolicy(); err != nil {
		return err
	}

	if _, err := c.LogLevel(); err != nil {
		return err
	}

	if c.Reports.WindowMonths < 1 {
		return fmt.Errorf("REPORT_WINDOW_MONTHS must be at least 1, got %d", c.Reports.WindowMonths)
	}

	if c.Session.ReverifyInterval < 0 {
		return fmt.Errorf("SESSION_REVERIFY_INTERVAL must not be negative")
	}

	if _, err := importer.ParseBank(c.FakeAPI.SeedBank); err != nil {
		return fmt.Errorf("FAKEAPI_SEED_BANK: %w", err)
	}

	return nil
}

func (c *Config) VerifyPolicy() (session.Policy, error) {
	switch strings.ToLower(c.Session.VerifyPolicy) {
	case "clear":
		return session.ClearAlways, nil
	case "keep-on-network-error":
		return session.KeepOnTransport, nil
	}

	return 0, fmt.Errorf("SESSION_VERIFY_POLICY must be \"clear\" or \"keep-on-network-error\", got %q", c.Session.VerifyPolicy)
}

func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.App.LogLevel)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	return level, nil
}
