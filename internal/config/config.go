// Package config loads service configuration from an optional YAML file, an
// optional .env file and environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage drivers.
const (
	DriverSpanner  = "spanner"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds application configuration.
type Config struct {
	Driver   string         `yaml:"driver"`
	Spanner  SpannerConfig  `yaml:"spanner"`
	Postgres PostgresConfig `yaml:"postgres"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	HTTP     ServerConfig   `yaml:"http"`
	GRPC     ServerConfig   `yaml:"grpc"`
	Redis    RedisConfig    `yaml:"redis"`
	Log      LogConfig      `yaml:"log"`
	Catalog  CatalogConfig  `yaml:"catalog"`
}

type SpannerConfig struct {
	Database string `yaml:"database"`
}

type PostgresConfig struct {
	URL string `yaml:"url"`
}

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

// RedisConfig configures the brand-name cache. An empty Addr disables it.
type RedisConfig struct {
	Addr string        `yaml:"addr"`
	TTL  time.Duration `yaml:"ttl"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type CatalogConfig struct {
	DefaultPageSize int           `yaml:"default_page_size"`
	MaxPageSize     int           `yaml:"max_page_size"`
	CascadeTimeout  time.Duration `yaml:"cascade_timeout"`
}

// Default returns the local development configuration.
func Default() Config {
	return Config{
		Driver: DriverSpanner,
		Spanner: SpannerConfig{
			// Default for local development with emulator
			Database: "projects/test-project/instances/dev-instance/databases/catalog-db",
		},
		SQLite:  SQLiteConfig{Path: "catalog.db"},
		HTTP:    ServerConfig{Port: "8080"},
		GRPC:    ServerConfig{Port: "9090"},
		Redis:   RedisConfig{TTL: 10 * time.Minute},
		Log:     LogConfig{Level: "info", Format: "text"},
		Catalog: CatalogConfig{DefaultPageSize: 10, MaxPageSize: 100, CascadeTimeout: 30 * time.Second},
	}
}

// Load builds the configuration. path may be empty; a missing .env file is
// ignored.
func Load(path string) (Config, error) {
	cfg := Default()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("failed to load .env: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config) error {
	cfg.Driver = getEnvOrDefault("CATALOG_DRIVER", cfg.Driver)
	cfg.Spanner.Database = getEnvOrDefault("SPANNER_DATABASE", cfg.Spanner.Database)
	cfg.Postgres.URL = getEnvOrDefault("DATABASE_URL", cfg.Postgres.URL)
	cfg.SQLite.Path = getEnvOrDefault("SQLITE_PATH", cfg.SQLite.Path)
	cfg.HTTP.Port = getEnvOrDefault("HTTP_PORT", cfg.HTTP.Port)
	cfg.GRPC.Port = getEnvOrDefault("GRPC_PORT", cfg.GRPC.Port)
	cfg.Redis.Addr = getEnvOrDefault("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Log.Level = getEnvOrDefault("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnvOrDefault("LOG_FORMAT", cfg.Log.Format)

	var err error
	if cfg.Redis.TTL, err = durationEnv("REDIS_TTL", cfg.Redis.TTL); err != nil {
		return err
	}
	if cfg.Catalog.CascadeTimeout, err = durationEnv("CASCADE_TIMEOUT", cfg.Catalog.CascadeTimeout); err != nil {
		return err
	}
	if cfg.Catalog.DefaultPageSize, err = intEnv("DEFAULT_PAGE_SIZE", cfg.Catalog.DefaultPageSize); err != nil {
		return err
	}
	if cfg.Catalog.MaxPageSize, err = intEnv("MAX_PAGE_SIZE", cfg.Catalog.MaxPageSize); err != nil {
		return err
	}
	return nil
}

// Validate checks that the selected driver has what it needs.
func (c Config) Validate() error {
	switch c.Driver {
	case DriverSpanner:
		if c.Spanner.Database == "" {
			return errors.New("spanner.database is required for the spanner driver")
		}
	case DriverPostgres:
		if c.Postgres.URL == "" {
			return errors.New("postgres.url is required for the postgres driver")
		}
	case DriverSQLite:
		if c.SQLite.Path == "" {
			return errors.New("sqlite.path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unsupported driver %q", c.Driver)
	}
	if c.Catalog.DefaultPageSize > c.Catalog.MaxPageSize {
		return fmt.Errorf("catalog.default_page_size %d exceeds max_page_size %d",
			c.Catalog.DefaultPageSize, c.Catalog.MaxPageSize)
	}
	return nil
}

// DSN returns the connection string for the SQL drivers.
func (c Config) DSN() string {
	if c.Driver == DriverPostgres {
		return c.Postgres.URL
	}
	return c.SQLite.Path
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return def, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func intEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
