package config

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	for _, k := range []string{
		"PORT", "DATABASE_DRIVER", "DATABASE_HOST", "DATABASE_PORT", "DATABASE_USER",
		"DATABASE_PASSWORD", "DATABASE_NAME", "SQLITE_PATH", "REDIS_HOST", "REDIS_PORT",
		"REDIS_PASSWORD", "SESSION_TTL", "SESSION_SECRET", "CATALOG_FILE", "LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadSQLiteDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_DRIVER", "sqlite3")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "bakery.db", cfg.DSN())
	assert.False(t, cfg.UseRedis())
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadPostgres(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_HOST", "db")
	t.Setenv("DATABASE_USER", "bakery")
	t.Setenv("DATABASE_PASSWORD", "pw")
	t.Setenv("DATABASE_NAME", "shop")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("SESSION_TTL", "30m")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://bakery:pw@db:5432/shop?sslmode=disable", cfg.DSN())
	assert.True(t, cfg.UseRedis())
	assert.Equal(t, "cache:6379", cfg.RedisAddr())
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
}

func TestDSNEscapesCredentials(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_HOST", "db")
	t.Setenv("DATABASE_USER", "bakery")
	t.Setenv("DATABASE_PASSWORD", "p@ss/w:rd")
	t.Setenv("DATABASE_NAME", "shop")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://bakery:p%40ss%2Fw%3Ard@db:5432/shop?sslmode=disable", cfg.DSN())

	u, err := url.Parse(cfg.DSN())
	require.NoError(t, err)
	pw, _ := u.User.Password()
	assert.Equal(t, "p@ss/w:rd", pw)
	assert.Equal(t, "db:5432", u.Host)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]map[string]string{
		"postgres without host": {"DATABASE_DRIVER": "postgres"},
		"unknown driver":        {"DATABASE_DRIVER": "oracle"},
		"bad ttl":               {"DATABASE_DRIVER": "sqlite3", "SESSION_TTL": "soon"},
		"negative ttl":          {"DATABASE_DRIVER": "sqlite3", "SESSION_TTL": "-1h"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
