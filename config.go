package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/KingGimer44/VideoJuego/database"
	"github.com/KingGimer44/VideoJuego/services"
)

const (
	dbSecretName  = "videojuego/DB_CREDENTIALS"
	jwtSecretName = "videojuego/JWT_SECRET"
)

// Config holds all configuration for the API.
type Config struct {
	Port   string
	AppEnv string

	LogLevel          string
	LogFile           string
	LogMaxSizeMB      int
	LogMaxBackups     int
	LogMaxAgeDays     int
	CloudWatchEnabled bool
	CloudWatchGroup   string
	MetricsNamespace  string

	DB        database.Config
	SeedGames bool

	RedisURL string
	CacheTTL time.Duration

	JWTSecret            string
	JWTTTL               time.Duration
	VerifyPassword       bool
	PasswordHashing      string
	RequireAuthForWrites bool

	CatalogSNSTopicARN string

	RateLimitPerMinute int
	RateLimitBurst     int
	RequestTimeout     time.Duration

	UseSecrets bool
}

// secretSource is the part of the Secrets Manager client the config needs.
type secretSource interface {
	GetSecret(ctx context.Context, name string) (string, error)
	GetSecretMap(ctx context.Context, name string) (map[string]string, error)
}

// LoadConfig reads configuration from environment variables. Malformed
// numbers, durations and booleans are reported together.
func LoadConfig() (*Config, error) {
	p := &envParser{}
	cfg := &Config{
		Port:   getEnv("PORT", "8080"),
		AppEnv: getEnv("APP_ENV", "development"),

		LogLevel:          os.Getenv("LOG_LEVEL"),
		LogFile:           os.Getenv("LOG_FILE"),
		LogMaxSizeMB:      p.getInt("LOG_MAX_SIZE_MB", 100),
		LogMaxBackups:     p.getInt("LOG_MAX_BACKUPS", 3),
		LogMaxAgeDays:     p.getInt("LOG_MAX_AGE_DAYS", 28),
		CloudWatchEnabled: p.getBool("CLOUDWATCH_ENABLED", false),
		CloudWatchGroup:   getEnv("CLOUDWATCH_LOG_GROUP", "/videojuego/api"),
		MetricsNamespace:  getEnv("CLOUDWATCH_NAMESPACE", "VideoJuego"),

		DB: database.Config{
			Driver:           getEnv("DB_DRIVER", database.DriverSQLite),
			SQLitePath:       getEnv("SQLITE_PATH", "videojuego.db"),
			PostgresUser:     os.Getenv("POSTGRES_USER"),
			PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
			PostgresDB:       os.Getenv("POSTGRES_DB"),
			PostgresHost:     os.Getenv("POSTGRES_HOST"),
			PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
			PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
			PostgresTimeZone: getEnv("POSTGRES_TIMEZONE", "UTC"),
		},
		SeedGames: p.getBool("SEED_GAMES", true),

		RedisURL: os.Getenv("REDIS_URL"),
		CacheTTL: p.getDuration("CACHE_TTL", services.DefaultCacheTTL),

		JWTSecret:            os.Getenv("JWT_SECRET"),
		JWTTTL:               p.getDuration("JWT_TTL", 24*time.Hour),
		VerifyPassword:       p.getBool("AUTH_VERIFY_PASSWORD", false),
		PasswordHashing:      getEnv("PASSWORD_HASHING", services.HashingPlain),
		RequireAuthForWrites: p.getBool("REQUIRE_AUTH_FOR_WRITES", false),

		CatalogSNSTopicARN: os.Getenv("CATALOG_SNS_TOPIC_ARN"),

		RateLimitPerMinute: p.getInt("RATE_LIMIT_PER_MINUTE", 100),
		RateLimitBurst:     p.getInt("RATE_LIMIT_BURST", 50),
		RequestTimeout:     p.getDuration("REQUEST_TIMEOUT", 30*time.Second),

		UseSecrets: p.getBool("AWS_USE_SECRETS", false),
	}
	if p.err != nil {
		return nil, p.err
	}
	return cfg, nil
}

// applySecrets overrides database credentials and the JWT secret from
// Secrets Manager. Missing secrets leave the env values in place.
func (c *Config) applySecrets(ctx context.Context, sm secretSource) {
	if m, err := sm.GetSecretMap(ctx, dbSecretName); err == nil {
		override := func(dst *string, key string) {
			if v := m[key]; v != "" {
				*dst = v
			}
		}
		override(&c.DB.PostgresUser, "POSTGRES_USER")
		override(&c.DB.PostgresPassword, "POSTGRES_PASSWORD")
		override(&c.DB.PostgresDB, "POSTGRES_DB")
		override(&c.DB.PostgresHost, "POSTGRES_HOST")
		override(&c.DB.PostgresPort, "POSTGRES_PORT")
	}
	if v, err := sm.GetSecret(ctx, jwtSecretName); err == nil && v != "" {
		c.JWTSecret = v
	}
}

// Validate checks cross-field rules once every source has been applied.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case database.DriverPostgres:
		if c.DB.PostgresUser == "" || c.DB.PostgresPassword == "" || c.DB.PostgresDB == "" || c.DB.PostgresHost == "" {
			return fmt.Errorf("database config incomplete")
		}
	case database.DriverSQLite:
		if c.DB.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}

	if c.PasswordHashing != services.HashingPlain && c.PasswordHashing != services.HashingBcrypt {
		return fmt.Errorf("unsupported PASSWORD_HASHING %q", c.PasswordHashing)
	}
	if c.RequireAuthForWrites && c.JWTSecret == "" {
		return fmt.Errorf("REQUIRE_AUTH_FOR_WRITES needs JWT_SECRET")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

type envParser struct {
	err error
}

func (p *envParser) getInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.err = errors.Join(p.err, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return v
}

func (p *envParser) getBool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		p.err = errors.Join(p.err, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return v
}

func (p *envParser) getDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		p.err = errors.Join(p.err, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return v
}
