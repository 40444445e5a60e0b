// Package config loads the console configuration.
// Precedence: flags → CASINO_* environment variables → defaults.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix префикс переменных окружения
const EnvPrefix = "CASINO_"

// Бэкенды локального хранилища
const (
	StoreBolt   = "bolt"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the console configuration
type Config struct {
	ServerURL       string        `koanf:"server_url"`
	RPCBasePath     string        `koanf:"rpc_base_path"`
	AdminBasePath   string        `koanf:"admin_base_path"`
	StoreBackend    string        `koanf:"store_backend"`
	StorePath       string        `koanf:"store_path"`
	StorePassphrase string        `koanf:"store_passphrase"`
	LogLevel        string        `koanf:"log_level"`
	LogFormat       string        `koanf:"log_format"`
	HTTPTimeout     time.Duration `koanf:"http_timeout"`
	ShowVersion     bool          `koanf:"-"`
}

func defaults() *Config {
	return &Config{
		ServerURL:     "http://localhost:8080",
		RPCBasePath:   "/rpc",
		AdminBasePath: "/admin/rpc",
		StoreBackend:  StoreBolt,
		StorePath:     "casino-console.db",
		LogLevel:      "warn",
		LogFormat:     "text",
		HTTPTimeout:   30 * time.Second,
	}
}

// Load builds the config from defaults, the environment and args (without
// the program name). It returns the positional arguments left after flags.
func Load(args []string, output io.Writer) (*Config, []string, error) {
	cfg := defaults()

	k := koanf.New(".")
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, nil, fmt.Errorf("load env vars: %w", err)
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, nil, fmt.Errorf("unmarshal config: %w", err)
	}

	rest, err := parseFlags(cfg, args, output)
	if err != nil {
		return nil, nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, rest, nil
}

// parseFlags перекрывает значения только явно заданными флагами
func parseFlags(cfg *Config, args []string, output io.Writer) ([]string, error) {
	fs := flag.NewFlagSet("casino-console", flag.ContinueOnError)
	if output != nil {
		fs.SetOutput(output)
	}

	fs.StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL")
	fs.StringVar(&cfg.RPCBasePath, "rpc-path", cfg.RPCBasePath, "JSON-RPC base path")
	fs.StringVar(&cfg.AdminBasePath, "admin-rpc-path", cfg.AdminBasePath, "Admin JSON-RPC base path")
	fs.StringVar(&cfg.StoreBackend, "store", cfg.StoreBackend, "Local store backend: bolt, sqlite or memory")
	fs.StringVar(&cfg.StorePath, "db", cfg.StorePath, "Path to local database")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format: text or json")
	fs.DurationVar(&cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "HTTP request timeout")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return fs.Args(), nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: server url %q must be http(s)://host", ErrInvalidConfig, c.ServerURL)
	}
	c.ServerURL = strings.TrimRight(c.ServerURL, "/")

	for name, p := range map[string]string{"rpc base path": c.RPCBasePath, "admin base path": c.AdminBasePath} {
		if !strings.HasPrefix(p, "/") {
			return fmt.Errorf("%w: %s %q must start with /", ErrInvalidConfig, name, p)
		}
	}

	switch c.StoreBackend {
	case StoreBolt, StoreSQLite:
		if c.StorePath == "" {
			return fmt.Errorf("%w: store path is required for %s", ErrInvalidConfig, c.StoreBackend)
		}
	case StoreMemory:
	default:
		return fmt.Errorf("%w: unknown store backend %q", ErrInvalidConfig, c.StoreBackend)
	}

	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("%w: http timeout must be positive", ErrInvalidConfig)
	}
	return nil
}
