package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string
	Region      string
	Tables      TablesConfig
	Store       StoreConfig
	RateLimit   RateLimitConfig
	Logging     LoggingConfig
}

// TablesConfig names the collections the handlers read from
type TablesConfig struct {
	Movies    string // primary table, keyed by "id"
	MovieCast string // cast table keyed by "movieId" (movie handler only)
	RoleIndex string // secondary index over roleName (cast member handler only)
}

// StoreConfig holds store client configuration
type StoreConfig struct {
	Type           string // "dynamodb", "sqlite" or "memory"
	Endpoint       string // optional DynamoDB endpoint override (DynamoDB Local)
	SQLitePath     string
	FixturesPath   string
	RetryAttempts  int
	RequestTimeout time.Duration
}

// RateLimitConfig holds rate limiting for the local server
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// LoggingConfig holds logrus settings
type LoggingConfig struct {
	Level  string
	Format string // "json" or "text"
}

// Load loads configuration from environment variables and an optional .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetDefault("PORT", "8081")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("ROLE_INDEX_NAME", "roleIx")
	viper.SetDefault("STORE_TYPE", "dynamodb")
	viper.SetDefault("SQLITE_PATH", "./data/movies.db")
	viper.SetDefault("STORE_RETRY_MAX_ATTEMPTS", 1)
	viper.SetDefault("STORE_TIMEOUT", "0s")
	viper.SetDefault("RATE_LIMIT_RPS", 50.0)
	viper.SetDefault("RATE_LIMIT_BURST", 100)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")

	region := viper.GetString("REGION")
	if region == "" {
		region = viper.GetString("AWS_REGION")
	}

	config := &Config{
		Environment: viper.GetString("ENVIRONMENT"),
		Port:        viper.GetString("PORT"),
		Region:      region,
		Tables: TablesConfig{
			Movies:    viper.GetString("TABLE_NAME"),
			MovieCast: viper.GetString("MOVIE_CAST_TABLE_NAME"),
			RoleIndex: viper.GetString("ROLE_INDEX_NAME"),
		},
		Store: StoreConfig{
			Type:           viper.GetString("STORE_TYPE"),
			Endpoint:       viper.GetString("DYNAMODB_ENDPOINT"),
			SQLitePath:     viper.GetString("SQLITE_PATH"),
			FixturesPath:   viper.GetString("STORE_FIXTURES"),
			RetryAttempts:  viper.GetInt("STORE_RETRY_MAX_ATTEMPTS"),
			RequestTimeout: viper.GetDuration("STORE_TIMEOUT"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             viper.GetInt("RATE_LIMIT_BURST"),
		},
		Logging: LoggingConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Format: viper.GetString("LOG_FORMAT"),
		},
	}

	return config, nil
}

// Validate checks that the tables required by the given handler are configured.
// withCastTable is true for the movie handler, which reads a separate cast table.
func (c *Config) Validate(withCastTable bool) error {
	if c.Tables.Movies == "" {
		return fmt.Errorf("TABLE_NAME is required")
	}
	if withCastTable && c.Tables.MovieCast == "" {
		return fmt.Errorf("MOVIE_CAST_TABLE_NAME is required")
	}
	if !withCastTable && c.Tables.RoleIndex == "" {
		return fmt.Errorf("ROLE_INDEX_NAME must not be empty")
	}
	switch c.Store.Type {
	case "dynamodb", "sqlite", "memory":
	default:
		return fmt.Errorf("unsupported STORE_TYPE: %s", c.Store.Type)
	}
	if c.Store.RetryAttempts < 1 {
		return fmt.Errorf("STORE_RETRY_MAX_ATTEMPTS must be at least 1")
	}
	return nil
}

// ValidateAll checks the configuration for a process serving both lookup
// variants
func (c *Config) ValidateAll() error {
	if err := c.Validate(true); err != nil {
		return err
	}
	return c.Validate(false)
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

