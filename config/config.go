package config

import (
	"fmt"
	"sync"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all application configuration
type Config struct {
	// HTTP server
	HTTPAddr string `env:"HTTP_ADDR" env-default:":8080"`

	// Database
	DBHost     string `env:"DB_HOST" env-default:"localhost"`
	DBPort     int    `env:"DB_PORT" env-default:"5432"`
	DBName     string `env:"DB_NAME" env-default:"countrydex"`
	DBUser     string `env:"DB_USER" env-default:"postgres"`
	DBPassword string `env:"DB_PASSWORD" env-default:"postgres"`
	DBPoolSize int    `env:"DB_POOL_SIZE" env-default:"10"`
	DBSSLMode  string `env:"DB_SSLMODE" env-default:"disable"`

	// External feeds
	CountriesAPIURL   string `env:"COUNTRIES_API_URL" env-default:"https://restcountries.com/v2/all?fields=name,capital,region,population,flag,currencies"`
	ExchangeAPIURL    string `env:"EXCHANGE_API_URL" env-default:"https://open.er-api.com/v6/latest/USD"`
	APITimeoutSeconds int    `env:"API_TIMEOUT_SECONDS" env-default:"30"`

	// Summary image artifact
	ImagePath string `env:"IMAGE_PATH" env-default:"cache/summary.png"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `env:"LOG_FORMAT" env-default:"text"`

	// Optional Discord webhook notifications
	DiscordWebhookID    string `env:"DISCORD_WEBHOOK_ID" env-default:""`
	DiscordWebhookToken string `env:"DISCORD_WEBHOOK_TOKEN" env-default:""`
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load reads configuration from environment variables with defaults
func load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	return &cfg, nil
}

// DatabaseURL assembles the connection URL for the pgx pool from the
// individual DB_* settings.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s&pool_max_conns=%d",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode, c.DBPoolSize)
}

// WebhookEnabled reports whether Discord refresh notifications are configured
func (c *Config) WebhookEnabled() bool {
	return c.DiscordWebhookID != "" && c.DiscordWebhookToken != ""
}
