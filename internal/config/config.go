// Package config loads the server configuration.
//
// Sources, highest priority first:
//
//  1. command-line flags that were set explicitly
//  2. environment variables (PORT, DATABASE_URL, DB_PATH, LOG_LEVEL, LOG_FORMAT)
//  3. a .env file in the working directory (never overrides real env vars)
//  4. built-in defaults
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultPort      = 3000
	DefaultDBPath    = "data/starwars.db"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

type Config struct {
	Port        int    `mapstructure:"port"`
	DatabaseURL string `mapstructure:"database_url"`
	DBPath      string `mapstructure:"db_path"`
	LogLevel    string `mapstructure:"log_level"`
	LogFormat   string `mapstructure:"log_format"`
}

// flagKeys maps CLI flag names to config keys.
var flagKeys = map[string]string{
	"port":         "port",
	"database-url": "database_url",
	"db-path":      "db_path",
	"log-level":    "log_level",
	"log-format":   "log_format",
}

// RegisterFlags adds the configuration flags to flags. Flag defaults match the
// built-in defaults, so an unset flag never masks an env var.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.Int("port", DefaultPort, "HTTP listen port")
	flags.String("database-url", "", "database DSN; postgres:// selects PostgreSQL")
	flags.String("db-path", DefaultDBPath, "SQLite file used when --database-url is empty")
	flags.String("log-level", DefaultLogLevel, "debug, info, warn or error")
	flags.String("log-format", DefaultLogFormat, "text or json")
}

// Load reads the configuration. envFiles defaults to ".env"; a missing file
// is not an error. flags may be nil.
func Load(flags *pflag.FlagSet, envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	v := viper.New()
	v.SetDefault("port", DefaultPort)
	v.SetDefault("database_url", "")
	v.SetDefault("db_path", DefaultDBPath)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_format", DefaultLogFormat)
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if flag := flags.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, fmt.Errorf("binding flag --%s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	cfg.DatabaseURL = strings.TrimSpace(cfg.DatabaseURL)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the server cannot start with.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", c.Port)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q: must be text or json", c.LogFormat)
	}
	if c.DatabaseURL == "" && c.DBPath == "" {
		return errors.New("one of DATABASE_URL or DB_PATH must be set")
	}
	return nil
}

// DSN is the data source handed to the store: DATABASE_URL when set,
// otherwise the SQLite file at DB_PATH.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DBPath
}

// NewLogger builds the slog logger described by LogLevel and LogFormat.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, _ := parseLevel(c.LogLevel)
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("invalid log level %q: must be debug, info, warn or error", s)
}
