package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	DatabaseDriver   string
	DatabaseHost     string
	DatabasePort     string
	DatabaseUser     string
	DatabasePassword string
	DatabaseName     string
	SQLitePath       string

	RedisHost     string
	RedisPort     string
	RedisPassword string

	SessionTTL    time.Duration
	SessionSecret string
	CatalogFile   string
	LogLevel      string
}

// Load reads the environment. Outside production a .env file in the
// working directory is applied first; variables already set win.
func Load() (cfg Config, err error) {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	cfg = Config{
		Port:             getenv("PORT", "8080"),
		DatabaseDriver:   getenv("DATABASE_DRIVER", "postgres"),
		DatabaseHost:     os.Getenv("DATABASE_HOST"),
		DatabasePort:     getenv("DATABASE_PORT", "5432"),
		DatabaseUser:     os.Getenv("DATABASE_USER"),
		DatabasePassword: os.Getenv("DATABASE_PASSWORD"),
		DatabaseName:     os.Getenv("DATABASE_NAME"),
		SQLitePath:       getenv("SQLITE_PATH", "bakery.db"),
		RedisHost:        os.Getenv("REDIS_HOST"),
		RedisPort:        getenv("REDIS_PORT", "6379"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		SessionSecret:    os.Getenv("SESSION_SECRET"),
		CatalogFile:      os.Getenv("CATALOG_FILE"),
		LogLevel:         getenv("LOG_LEVEL", "info"),
	}

	cfg.SessionTTL, err = time.ParseDuration(getenv("SESSION_TTL", "24h"))
	if err != nil {
		err = fmt.Errorf("SESSION_TTL: %w", err)
		return
	}
	if cfg.SessionTTL <= 0 {
		err = fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.SessionTTL)
		return
	}

	switch cfg.DatabaseDriver {
	case "postgres":
		if cfg.DatabaseHost == "" || cfg.DatabaseName == "" {
			err = fmt.Errorf("DATABASE_HOST and DATABASE_NAME are required for postgres")
			return
		}
	case "sqlite3":
	default:
		err = fmt.Errorf("DATABASE_DRIVER must be postgres or sqlite3, got %q", cfg.DatabaseDriver)
		return
	}
	return
}

// DSN is the data source name for the configured driver.
func (c Config) DSN() string {
	if c.DatabaseDriver == "sqlite3" {
		return c.SQLitePath
	}
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DatabaseUser, c.DatabasePassword),
		Host:     net.JoinHostPort(c.DatabaseHost, c.DatabasePort),
		Path:     "/" + c.DatabaseName,
		RawQuery: "sslmode=disable",
	}
	return dsn.String()
}

// UseRedis reports whether sessions and notifications go through Redis.
func (c Config) UseRedis() bool {
	return c.RedisHost != ""
}

func (c Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
