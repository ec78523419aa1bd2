package cliconfig

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"
)

// DefaultServiceURL is the service URL the sample settings start with.
const DefaultServiceURL = "https://api.apphash.io"

// Config is the settings bean bound by the beanwire CLI. Nested settings are
// addressed with dotted property paths such as interval.poll or
// gating.cpuThreshold.
type Config struct {
	NodeHome string `validate:"required"`
	NodeID   string
	ChainID  string
	WALDir   string
	StateDir string

	Service  ServiceConfig
	Interval IntervalConfig
	Batch    BatchConfig
	Gating   *GatingConfig

	Verify bool
	Meta   bool
	Once   bool
}

// ServiceConfig describes the remote endpoint. The URL and auth key are only
// reachable through accessors: the URL is normalized on write and the key
// can be set but never read back.
type ServiceConfig struct {
	url     string
	authKey string

	Timeout time.Duration `validate:"gt=0"`
}

// URL returns the service base URL without a trailing slash.
func (s *ServiceConfig) URL() string { return s.url }

// SetURL sets the service base URL. It must be an absolute http(s) URL.
func (s *ServiceConfig) SetURL(raw string) error {
	raw = strings.TrimRight(raw, "/")
	if raw == "" {
		s.url = ""
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse service url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("service url %q must be an absolute http(s) URL", raw)
	}
	s.url = raw
	return nil
}

// SetAuthKey sets the API key used to authenticate against the service.
func (s *ServiceConfig) SetAuthKey(key string) { s.authKey = key }

// BearerToken returns the API key for the Authorization header.
func (s *ServiceConfig) BearerToken() string { return s.authKey }

// IsAuthenticated reports whether an API key is set.
func (s *ServiceConfig) IsAuthenticated() bool { return s.authKey != "" }

// IntervalConfig holds the polling and send cadence.
type IntervalConfig struct {
	Poll time.Duration `validate:"gt=0"`
	Send time.Duration `validate:"gt=0"`
	// Hard sends regardless of gating; it must not be shorter than Send.
	Hard time.Duration `validate:"gtefield=Send"`
}

// BatchConfig limits the size of a single batch.
type BatchConfig struct {
	MaxBytes int `validate:"gt=0"`
}

// GatingConfig delays sends while the host is busy.
type GatingConfig struct {
	Enabled        bool
	CPUThreshold   float64 `validate:"gte=0,lte=1"`
	NetThreshold   float64 `validate:"gte=0,lte=1"`
	Iface          string
	IfaceSpeedMbps int `validate:"gte=0"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		NodeID: "default",
		Service: ServiceConfig{
			url:     DefaultServiceURL,
			Timeout: 15 * time.Second,
		},
		Interval: IntervalConfig{
			Poll: 500 * time.Millisecond,
			Send: 5 * time.Second,
			Hard: 10 * time.Second,
		},
		Batch: BatchConfig{
			MaxBytes: 4 << 20, // 4MB
		},
		Gating: &GatingConfig{
			Enabled:        true,
			CPUThreshold:   0.85,
			NetThreshold:   0.70,
			IfaceSpeedMbps: 1000,
		},
	}
}

// InitBean fills in the settings derived from others once binding and
// validation succeeded: node identity from the node home, the data and state
// directories, and the service URL.
func (c *Config) InitBean() error {
	if err := LoadNodeInfo(c); err != nil {
		return err
	}

	if c.WALDir == "" {
		if c.NodeID == "" {
			return fmt.Errorf("wal-dir is required (or node-id)")
		}
		// fallback derived layout
		c.WALDir = filepath.Join(c.NodeHome, "data", "log.wal", "node-"+c.NodeID)
	}

	if c.StateDir == "" {
		c.StateDir = c.WALDir
	}

	if c.Service.URL() == "" {
		c.Service.url = DefaultServiceURL
	}
	return nil
}
