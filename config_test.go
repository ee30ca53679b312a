package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KingGimer44/VideoJuego/database"
	"github.com/KingGimer44/VideoJuego/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("JWT_SECRET", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, database.DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, "videojuego.db", cfg.DB.SQLitePath)
	assert.Equal(t, "5432", cfg.DB.PostgresPort)
	assert.Equal(t, services.DefaultCacheTTL, cfg.CacheTTL)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, services.HashingPlain, cfg.PasswordHashing)
	assert.Equal(t, 100, cfg.RateLimitPerMinute)
	assert.Equal(t, 50, cfg.RateLimitBurst)
	assert.True(t, cfg.SeedGames)
	assert.False(t, cfg.VerifyPassword)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("POSTGRES_USER", "store")
	t.Setenv("POSTGRES_PASSWORD", "pw")
	t.Setenv("POSTGRES_DB", "games")
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("AUTH_VERIFY_PASSWORD", "true")
	t.Setenv("PASSWORD_HASHING", "bcrypt")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("SEED_GAMES", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "9000", cfg.Port)
	assert.True(t, cfg.VerifyPassword)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.False(t, cfg.SeedGames)
	assert.Contains(t, cfg.DB.DSN(), "host=db user=store")
}

func TestLoadConfig_MalformedValuesReportedTogether(t *testing.T) {
	t.Setenv("RATE_LIMIT_PER_MINUTE", "lots")
	t.Setenv("CACHE_TTL", "forever")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.ErrorContains(t, err, "RATE_LIMIT_PER_MINUTE")
	assert.ErrorContains(t, err, "CACHE_TTL")
}

func TestConfig_Validate(t *testing.T) {
	base := func() *Config {
		return &Config{
			DB:              database.Config{Driver: database.DriverSQLite, SQLitePath: "x.db"},
			PasswordHashing: services.HashingPlain,
		}
	}

	cfg := base()
	cfg.DB.Driver = database.DriverPostgres
	assert.ErrorContains(t, cfg.Validate(), "database config incomplete")

	cfg = base()
	cfg.DB.Driver = "mysql"
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.PasswordHashing = "md5"
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.RequireAuthForWrites = true
	assert.Error(t, cfg.Validate())
	cfg.JWTSecret = "s"
	assert.NoError(t, cfg.Validate())
}

type fakeSecrets struct {
	maps    map[string]map[string]string
	strings map[string]string
}

func (f fakeSecrets) GetSecret(_ context.Context, name string) (string, error) {
	if v, ok := f.strings[name]; ok {
		return v, nil
	}
	return "", errors.New("not found")
}

func (f fakeSecrets) GetSecretMap(_ context.Context, name string) (map[string]string, error) {
	if m, ok := f.maps[name]; ok {
		return m, nil
	}
	return nil, errors.New("not found")
}

func TestConfig_ApplySecrets(t *testing.T) {
	cfg := &Config{DB: database.Config{PostgresUser: "env-user", PostgresPort: "5432"}, JWTSecret: "env-secret"}

	cfg.applySecrets(context.Background(), fakeSecrets{
		maps: map[string]map[string]string{
			dbSecretName: {"POSTGRES_USER": "sm-user", "POSTGRES_HOST": "sm-host", "POSTGRES_PORT": ""},
		},
		strings: map[string]string{jwtSecretName: "sm-secret"},
	})

	assert.Equal(t, "sm-user", cfg.DB.PostgresUser)
	assert.Equal(t, "sm-host", cfg.DB.PostgresHost)
	assert.Equal(t, "5432", cfg.DB.PostgresPort)
	assert.Equal(t, "sm-secret", cfg.JWTSecret)

	cfg.applySecrets(context.Background(), fakeSecrets{})
	assert.Equal(t, "sm-user", cfg.DB.PostgresUser)
}
