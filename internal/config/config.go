package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// DefaultConferences is the fixed allow-list of "major" conference
// identifiers whose games are imported.
var DefaultConferences = []string{"2", "4", "7", "8", "23"}

// DefaultSpreadCeiling is the largest spread magnitude still imported.
// Blowout lines make for uninteresting picks.
const DefaultSpreadCeiling = 12.0

// Config holds all application configuration
type Config struct {
	// Scoreboard feed
	ScoreboardBaseURL string        `envconfig:"SCOREBOARD_BASE_URL" default:"https://site.api.espn.com/apis/site/v2/sports/basketball/mens-college-basketball"`
	ScoreboardTimeout time.Duration `envconfig:"SCOREBOARD_TIMEOUT" default:"30s"`

	// Secondary odds feed
	OddsAPIKey     string        `envconfig:"ODDS_API_KEY" default:""`
	OddsBaseURL    string        `envconfig:"ODDS_BASE_URL" default:"https://api.the-odds-api.com/v4"`
	OddsTimeout    time.Duration `envconfig:"ODDS_TIMEOUT" default:"30s"`
	OddsFeedEnable bool          `envconfig:"ODDS_FEED_ENABLED" default:"true"`

	// Database
	DatabaseHost     string `envconfig:"DATABASE_HOST" default:"localhost"`
	DatabasePort     int    `envconfig:"DATABASE_PORT" default:"5432"`
	DatabaseName     string `envconfig:"DATABASE_NAME" default:"pickem"`
	DatabaseUser     string `envconfig:"DATABASE_USER" default:"pickem_user"`
	DatabasePassword string `envconfig:"DATABASE_PASSWORD" required:"true"`
	DatabaseSSLMode  string `envconfig:"DATABASE_SSL_MODE" default:"disable"`

	// Redis
	RedisHost     string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	// Application
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Import policy
	Conferences   []string `envconfig:"ALLOWED_CONFERENCES"`
	SpreadCeiling float64  `envconfig:"SPREAD_CEILING" default:"12"`

	// Scheduler
	EnableScheduler    bool   `envconfig:"ENABLE_SCHEDULER" default:"true"`
	InitialSyncEnabled bool   `envconfig:"INITIAL_SYNC_ENABLED" default:"true"`
	NightlyRefreshCron string `envconfig:"NIGHTLY_REFRESH_CRON" default:"0 4 * * *"`
	WeeklyFinalizeCron string `envconfig:"WEEKLY_FINALIZE_CRON" default:"30 4 * * 1"`
	LivePollInterval   int    `envconfig:"LIVE_POLL_INTERVAL" default:"60"`

	// Caching TTL (in seconds)
	CacheTTLStandings int `envconfig:"CACHE_TTL_STANDINGS" default:"120"`
	CacheTTLFeedDay   int `envconfig:"CACHE_TTL_FEED_DAY" default:"60"`

	// Monitoring
	EnableMetrics bool `envconfig:"ENABLE_METRICS" default:"true"`
	MetricsPort   int  `envconfig:"METRICS_PORT" default:"9090"`
}

// Load loads configuration from environment variables
// It first attempts to load from .env file if in development mode
func Load() (*Config, error) {
	// Try to load .env file (ignore error if doesn't exist)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	if len(cfg.Conferences) == 0 {
		cfg.Conferences = DefaultConferences
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.DatabasePassword == "" {
		return fmt.Errorf("DATABASE_PASSWORD is required")
	}

	if c.SpreadCeiling <= 0 {
		return fmt.Errorf("SPREAD_CEILING must be positive")
	}

	if c.OddsFeedEnable && c.OddsAPIKey == "" && c.AppEnv == "production" {
		return fmt.Errorf("ODDS_API_KEY is required when the odds feed is enabled in production")
	}

	return nil
}

// ConferenceSet returns the allow-list as a lookup set.
func (c *Config) ConferenceSet() map[string]bool {
	set := make(map[string]bool, len(c.Conferences))
	for _, id := range c.Conferences {
		set[id] = true
	}
	return set
}

// RedisAddr returns the Redis address
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// MustLoad loads configuration or panics on error
// Use this in main() where we want to fail fast
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
