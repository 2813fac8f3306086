package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/dmitrijs2005/fittrack/internal/logging"
)

// Config holds runtime settings for the fittrack CLI.
//
// Fields:
//   - ServerURL: base URL of the fittrack backend API.
//   - DatabasePath: SQLite file holding the local session token.
//   - RequestTimeout: upper bound for a single API request.
//   - OnlineCheckInterval: how often the CLI checks backend reachability.
//   - LogLevel, LogFormat: slog level name and "text" or "json".
type Config struct {
	ServerURL           string        `env:"SERVER_URL"`
	DatabasePath        string        `env:"DATABASE_PATH"`
	RequestTimeout      time.Duration `env:"REQUEST_TIMEOUT"`
	OnlineCheckInterval time.Duration `env:"ONLINE_CHECK_INTERVAL"`
	LogLevel            string        `env:"LOG_LEVEL"`
	LogFormat           string        `env:"LOG_FORMAT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8000"
	c.DatabasePath = "fittrack.db"
	c.RequestTimeout = 30 * time.Second
	c.OnlineCheckInterval = 10 * time.Second
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid server url %q", c.ServerURL)
	}
	if c.DatabasePath == "" {
		return errors.New("database path is empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.OnlineCheckInterval <= 0 {
		return fmt.Errorf("online check interval must be positive, got %s", c.OnlineCheckInterval)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}

// LoadConfig builds a Config from defaults, then the environment, then the
// JSON file named by -c/-config, then command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:], nil)
}

// load is LoadConfig with explicit arguments. A nil environ means the process
// environment.
func load(args []string, environ map[string]string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg, environ); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	if err := parseJSON(cfg, args); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
