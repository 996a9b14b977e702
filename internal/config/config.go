package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr            string        `yaml:"addr"`
	APITimeout      time.Duration `yaml:"timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	DatabasePath    string        `yaml:"database_path"`
	LogLevel        string        `yaml:"log_level"`
	MigrateOnStart  bool          `yaml:"migrate_on_start"`
}

func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Addr:            getEnv("PYBO_ADDR", ":8080"),
		APITimeout:      15 * time.Second,
		ShutdownTimeout: 30 * time.Second,
		DatabasePath:    getEnv("PYBO_DATABASE_PATH", "pybo.db"),
		LogLevel:        getEnv("PYBO_LOG_LEVEL", "info"),
		MigrateOnStart:  getEnvBool("PYBO_MIGRATE_ON_START", true),
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate reports the first setting that would keep the server from starting.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return errors.New("addr must not be empty")
	}
	if strings.TrimSpace(c.DatabasePath) == "" {
		return errors.New("database_path must not be empty")
	}
	if c.APITimeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.APITimeout)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive, got %s", c.ShutdownTimeout)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}

	return nil
}

// Level returns the slog level for LogLevel, defaulting to info.
func (c *Config) Level() slog.Level {
	l, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}

	return l
}

// IsDevelopment reports whether PYBO_ENV is unset or "development".
func IsDevelopment() bool {
	env := os.Getenv("PYBO_ENV")
	return env == "" || env == "development"
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}

	return slog.LevelInfo, fmt.Errorf("unknown log_level %q", s)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}

	return b
}
