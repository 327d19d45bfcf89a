package fetcher

import (
	"fmt"
	"time"
)

// Config holds the limits applied to one outbound fetch.
//
// Security settings:
//   - DenyPrivateIPs: Prevents SSRF attacks by blocking private IP addresses
//   - MaxBodySize: Prevents memory exhaustion from oversized responses
//   - MaxRedirects: Prevents infinite redirect loops
//   - Timeout: Prevents resource starvation from slow servers
type Config struct {
	// Timeout is the maximum duration for a single request including the body read.
	Timeout time.Duration

	// MaxBodySize is the maximum response body size in bytes.
	// This is enforced while reading, not based on the Content-Length header.
	MaxBodySize int64

	// MaxRedirects is the maximum number of HTTP redirects to follow.
	// Each redirect target is validated for security (SSRF check).
	MaxRedirects int

	// DenyPrivateIPs blocks URLs that resolve to private, loopback or link-local addresses.
	// Should always be true in production.
	DenyPrivateIPs bool

	// UserAgent identifies the service to upstream servers.
	UserAgent string
}

const defaultUserAgent = "STACIndex/1.0 (+https://stacindex.org)"

// DefaultConfig returns the limits used when verifying submitted catalog URLs.
func DefaultConfig() Config {
	return Config{
		Timeout:        10 * time.Second,
		MaxBodySize:    5 * 1000 * 1000,
		MaxRedirects:   5,
		DenyPrivateIPs: true,
		UserAgent:      defaultUserAgent,
	}
}

// ProxyConfig returns the tighter limits used by the link rewrite proxy:
// one second and 100 000 bytes.
func ProxyConfig() Config {
	cfg := DefaultConfig()
	cfg.Timeout = 1000 * time.Millisecond
	cfg.MaxBodySize = 100000
	return cfg
}

// Validate checks if the configuration values are valid and safe.
//
// Validation rules:
//   - Timeout: > 0 (must have timeout)
//   - MaxBodySize: 1KB-100MB (prevent memory issues)
//   - MaxRedirects: 0-10 (reasonable redirect limit)
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}

	minBodySize := int64(1024)              // 1KB
	maxBodySize := int64(100 * 1024 * 1024) // 100MB
	if c.MaxBodySize < minBodySize || c.MaxBodySize > maxBodySize {
		return fmt.Errorf("max body size must be between %d and %d bytes, got %d", minBodySize, maxBodySize, c.MaxBodySize)
	}

	if c.MaxRedirects < 0 || c.MaxRedirects > 10 {
		return fmt.Errorf("max redirects must be between 0 and 10, got %d", c.MaxRedirects)
	}

	return nil
}
