// Package config loads the service configuration.
//
// Sources, lowest priority first: built-in defaults, an optional JSON file,
// then STACINDEX_ environment variables. A double underscore in a variable
// name marks nesting, so STACINDEX_PROXY__TIMEOUT sets proxy.timeout.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"stac-index/internal/infra/db"
	"stac-index/internal/infra/fetcher"
)

const (
	// EnvPrefix prefixes every configuration environment variable.
	EnvPrefix = "STACINDEX_"
	// EnvConfigFile names the JSON file to load when no path is passed to Load.
	EnvConfigFile = EnvPrefix + "CONFIG"
)

// Config is the complete service configuration.
type Config struct {
	ListenAddr      string        `koanf:"listen_addr" validate:"required"`
	PublicURL       string        `koanf:"public_url" validate:"required,url"`
	Hostname        string        `koanf:"hostname" validate:"required"`
	DatabaseURL     string        `koanf:"database_url" validate:"required"`
	LogLevel        string        `koanf:"log_level" validate:"oneof=debug info warn warning error"`
	LogFormat       string        `koanf:"log_format" validate:"oneof=json text"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`

	DBPool    DBPool      `koanf:"db_pool"`
	Proxy     FetchLimits `koanf:"proxy"`
	Verify    FetchLimits `koanf:"verify"`
	Fetch     FetchPolicy `koanf:"fetch"`
	RateLimit RateLimit   `koanf:"rate_limit"`
	CORS      CORS        `koanf:"cors"`
}

// DBPool tunes the database connection pool.
type DBPool struct {
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"min=1"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"min=1"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime" validate:"gt=0"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time" validate:"gt=0"`
}

// FetchLimits bounds one kind of outbound fetch.
type FetchLimits struct {
	Timeout     time.Duration `koanf:"timeout" validate:"gt=0"`
	MaxBodySize int64         `koanf:"max_body_size" validate:"min=1024,max=104857600"`
}

// FetchPolicy applies to every outbound fetch.
type FetchPolicy struct {
	MaxRedirects   int  `koanf:"max_redirects" validate:"min=0,max=10"`
	DenyPrivateIPs bool `koanf:"deny_private_ips"`
}

// RateLimit configures the per-client limits on /add and /proxy.
type RateLimit struct {
	Enabled         bool `koanf:"enabled"`
	SubmitPerMinute int  `koanf:"submit_per_minute" validate:"min=1"`
	ProxyPerMinute  int  `koanf:"proxy_per_minute" validate:"min=1"`
	// TrustedProxies lists the peers (IP or CIDR) whose X-Forwarded-For is honoured.
	// Empty means forwarding headers are ignored.
	TrustedProxies []string `koanf:"trusted_proxies"`
}

// CORS configures cross-origin responses.
type CORS struct {
	ExposeHeaders string `koanf:"expose_headers"`
}

// Defaults returns the built-in configuration values keyed by koanf path.
func Defaults() map[string]any {
	return map[string]any{
		"listen_addr":                  ":9999",
		"public_url":                   "http://localhost:9999",
		"hostname":                     "stacindex.org",
		"log_level":                    "info",
		"log_format":                   "json",
		"shutdown_timeout":             "10s",
		"db_pool.max_open_conns":       25,
		"db_pool.max_idle_conns":       10,
		"db_pool.conn_max_lifetime":    "1h",
		"db_pool.conn_max_idle_time":   "30m",
		"proxy.timeout":                "1s",
		"proxy.max_body_size":          100000,
		"verify.timeout":               "10s",
		"verify.max_body_size":         5000000,
		"fetch.max_redirects":          5,
		"fetch.deny_private_ips":       true,
		"rate_limit.enabled":           true,
		"rate_limit.submit_per_minute": 10,
		"rate_limit.proxy_per_minute":  120,
		"rate_limit.trusted_proxies":   []string{},
		"cors.expose_headers":          "X-Request-ID",
	}
}

// Load builds the configuration. path names an optional JSON file; when it is
// empty the STACINDEX_CONFIG variable is consulted. A named file must exist.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	for key, value := range Defaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("failed to set default %s: %w", key, err)
		}
	}

	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.RateLimit.TrustedProxies = splitList(cfg.RateLimit.TrustedProxies)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the struct constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// DBConnection returns the connection pool settings.
func (c *Config) DBConnection() db.ConnectionConfig {
	return db.ConnectionConfig{
		MaxOpenConns:    c.DBPool.MaxOpenConns,
		MaxIdleConns:    c.DBPool.MaxIdleConns,
		ConnMaxLifetime: c.DBPool.ConnMaxLifetime,
		ConnMaxIdleTime: c.DBPool.ConnMaxIdleTime,
	}
}

// ProxyFetcher returns the fetch limits of the link rewrite proxy.
func (c *Config) ProxyFetcher() fetcher.Config {
	return c.fetcherConfig(c.Proxy)
}

// VerifyFetcher returns the fetch limits of live URL verification.
func (c *Config) VerifyFetcher() fetcher.Config {
	return c.fetcherConfig(c.Verify)
}

func (c *Config) fetcherConfig(limits FetchLimits) fetcher.Config {
	cfg := fetcher.DefaultConfig()
	cfg.Timeout = limits.Timeout
	cfg.MaxBodySize = limits.MaxBodySize
	cfg.MaxRedirects = c.Fetch.MaxRedirects
	cfg.DenyPrivateIPs = c.Fetch.DenyPrivateIPs
	return cfg
}

// envTransform converts environment variable names to config keys
// Example: STACINDEX_RATE_LIMIT__PROXY_PER_MINUTE -> rate_limit.proxy_per_minute
func envTransform(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// splitList accepts both JSON arrays and comma separated environment values.
func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
