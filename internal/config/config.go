// Package config loads the server and CLI configuration.
//
// Values come from a YAML file when one is given, then from environment
// variables, which override the file. Anything still unset takes the
// env-default from the struct tag.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultSessionSecret is the development secret shipped in the defaults.
// Load rejects it when Env is "prod".
const DefaultSessionSecret = "dev-only-session-secret-change-me"

// Config is the root configuration structure. Every field maps to a YAML
// key and can be overridden by the environment variable in its env tag.
type Config struct {
	// Env is "local", "dev" or "prod".
	Env string `yaml:"env" env:"ENV" env-default:"local"`

	// StoragePath is the SQLite database file. ":memory:" works for throwaway runs.
	StoragePath string `yaml:"storage_path" env:"STORAGE_PATH" env-default:"data/students.db"`

	LogFormat string `yaml:"log_format" env:"LOG_FORMAT" env-default:"text"`
	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`

	HTTPServer HTTPServer `yaml:"http_server"`
	Auth       Auth       `yaml:"auth"`
}

// HTTPServer holds settings for the HTTP listener.
type HTTPServer struct {
	Port         int           `yaml:"port" env:"PORT" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env-default:"15s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env-default:"15s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// Auth holds the session token settings.
type Auth struct {
	SessionSecret string        `yaml:"session_secret" env:"SESSION_SECRET" env-default:"dev-only-session-secret-change-me"`
	SessionTTL    time.Duration `yaml:"session_ttl" env:"SESSION_TTL" env-default:"24h"`
}

// Load reads the config file at path, or only the environment when path is
// empty, and validates the result.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: reading environment: %w", err)
		}
	} else {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MustLoad resolves the config path from CONFIG_PATH or the --config flag
// and exits the process if the config can't be loaded.
func MustLoad() *Config {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		flagPath := flag.String("config", "", "path to the configuration YAML file")
		flag.Parse()
		path = *flagPath
	}

	cfg, err := Load(path)
	if err != nil {
		log.Fatalf("cannot load config: %s", err)
	}
	return cfg
}

func (c *Config) validate() error {
	var errs []error

	if c.HTTPServer.Port <= 0 || c.HTTPServer.Port > 65535 {
		errs = append(errs, fmt.Errorf("config: http_server.port %d out of range", c.HTTPServer.Port))
	}
	if c.StoragePath == "" {
		errs = append(errs, errors.New("config: storage_path is empty"))
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("config: log_format %q must be text or json", c.LogFormat))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if len(c.Auth.SessionSecret) < 16 {
		errs = append(errs, errors.New("config: auth.session_secret must be at least 16 characters"))
	}
	if c.IsProd() && c.Auth.SessionSecret == DefaultSessionSecret {
		errs = append(errs, errors.New("config: auth.session_secret must be set in prod"))
	}
	if c.Auth.SessionTTL <= 0 {
		errs = append(errs, errors.New("config: auth.session_ttl must be positive"))
	}

	return errors.Join(errs...)
}

// IsProd reports whether the config is for production.
func (c *Config) IsProd() bool {
	return c.Env == "prod"
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("config: log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// NewLogger builds the application logger from LogFormat and LogLevel.
func (c *Config) NewLogger() *slog.Logger {
	level, err := c.Level()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
