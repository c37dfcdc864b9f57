package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Environment
	GoEnv    string `env:"GO_ENV" default:"development"`
	HTTPPort int    `env:"PORT" default:"3000"`

	// Database
	DBHost     string `env:"DB_HOST" default:"localhost"`
	DBPort     int    `env:"DB_PORT" default:"5432"`
	DBUser     string `env:"DB_USER" default:"gasikara_user"`
	DBPassword string `env:"DB_PASSWORD" default:"password"`
	DBName     string `env:"DB_NAME" default:"gasikara_gaming"`
	DBSSLMode  string `env:"DB_SSLMODE" default:"disable"`

	// Connection pool
	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" default:"20"`
	DBConnMaxIdleTime time.Duration `env:"DB_CONN_MAX_IDLE_TIME" default:"30s"`
	DBConnectTimeout  time.Duration `env:"DB_CONNECT_TIMEOUT" default:"2s"`

	// Authentication
	JWTSecret       string        `env:"JWT_SECRET" required:"true"`
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL" default:"15m"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL" default:"168h"`

	// Bootstrap admin account, seeded when the admins table is empty
	AdminUsername string `env:"ADMIN_USERNAME" default:"admin"`
	AdminEmail    string `env:"ADMIN_EMAIL" default:"admin@gasikara.local"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	// Redis (visitor counters)
	RedisURL      string `env:"REDIS_URL" default:"redis://localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	// HTTP behavior
	FrontendURL       string        `env:"FRONTEND_URL" default:"http://localhost:3000"`
	RateLimitRequests int           `env:"RATE_LIMIT_REQUESTS" default:"100"`
	RateLimitWindow   time.Duration `env:"RATE_LIMIT_WINDOW" default:"15m"`

	// When true, POST /api/games/:id/download returns 404 for a missing id
	// instead of the legacy permissive 200.
	DownloadStrict404 bool `env:"DOWNLOAD_STRICT_404" default:"false"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" default:"debug"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	// A missing .env file is fine, system env vars still apply.
	if err := godotenv.Load(".env"); err != nil {
		fmt.Printf("Warning: .env file not found: %v\n", err)
	}

	config := &Config{}

	if err := loadEnvString(&config.GoEnv, "GO_ENV", "development"); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.HTTPPort, "PORT", 3000); err != nil {
		return nil, err
	}

	// Database
	if err := loadEnvString(&config.DBHost, "DB_HOST", "localhost"); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.DBPort, "DB_PORT", 5432); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.DBUser, "DB_USER", "gasikara_user"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.DBPassword, "DB_PASSWORD", "password"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.DBName, "DB_NAME", "gasikara_gaming"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.DBSSLMode, "DB_SSLMODE", "disable"); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.DBMaxOpenConns, "DB_MAX_OPEN_CONNS", 20); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.DBConnMaxIdleTime, "DB_CONN_MAX_IDLE_TIME", 30*time.Second); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.DBConnectTimeout, "DB_CONNECT_TIMEOUT", 2*time.Second); err != nil {
		return nil, err
	}

	// Authentication
	if err := loadEnvStringRequired(&config.JWTSecret, "JWT_SECRET"); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.AccessTokenTTL, "ACCESS_TOKEN_TTL", 15*time.Minute); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.RefreshTokenTTL, "REFRESH_TOKEN_TTL", 7*24*time.Hour); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.AdminUsername, "ADMIN_USERNAME", "admin"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.AdminEmail, "ADMIN_EMAIL", "admin@gasikara.local"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.AdminPassword, "ADMIN_PASSWORD", ""); err != nil {
		return nil, err
	}

	// Redis
	if err := loadEnvString(&config.RedisURL, "REDIS_URL", "redis://localhost:6379"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.RedisPassword, "REDIS_PASSWORD", ""); err != nil {
		return nil, err
	}

	// HTTP behavior
	if err := loadEnvString(&config.FrontendURL, "FRONTEND_URL", "http://localhost:3000"); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.RateLimitRequests, "RATE_LIMIT_REQUESTS", 100); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.RateLimitWindow, "RATE_LIMIT_WINDOW", 15*time.Minute); err != nil {
		return nil, err
	}
	if err := loadEnvBool(&config.DownloadStrict404, "DOWNLOAD_STRICT_404", false); err != nil {
		return nil, err
	}

	// Logging
	if err := loadEnvString(&config.LogLevel, "LOG_LEVEL", "debug"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.LogFormat, "LOG_FORMAT", "text"); err != nil {
		return nil, err
	}

	return config, nil
}

// DSN builds the Postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s connect_timeout=%d",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
		c.DBSSLMode, int(c.DBConnectTimeout.Seconds()),
	)
}

// Helper functions for type conversion and validation
func loadEnvString(target *string, key, defaultValue string) error {
	if value := os.Getenv(key); value != "" {
		*target = value
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvStringRequired(target *string, key string) error {
	value := os.Getenv(key)
	if value == "" {
		return fmt.Errorf("required environment variable %s is not set", key)
	}
	*target = value
	return nil
}

func loadEnvInt(target *int, key string, defaultValue int) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvBool(target *bool, key string, defaultValue bool) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvDuration(target *time.Duration, key string, defaultValue time.Duration) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

// Validate performs validation on the loaded configuration.
func (c *Config) Validate() error {
	var errs []string

	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		errs = append(errs, "PORT must be between 1 and 65535")
	}
	if c.DBMaxOpenConns < 1 {
		errs = append(errs, "DB_MAX_OPEN_CONNS must be at least 1")
	}
	if c.RateLimitRequests < 1 {
		errs = append(errs, "RATE_LIMIT_REQUESTS must be at least 1")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL must be one of: %s", strings.Join(validLogLevels, ", ")))
	}

	validLogFormats := []string{"text", "json"}
	if !contains(validLogFormats, c.LogFormat) {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT must be one of: %s", strings.Join(validLogFormats, ", ")))
	}

	if len(c.JWTSecret) < 32 {
		errs = append(errs, "JWT_SECRET should be at least 32 characters long")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
