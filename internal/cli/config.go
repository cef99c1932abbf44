package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/cargo-info/pkg/buildinfo"
	"github.com/matzehuels/cargo-info/pkg/cache"
	"github.com/matzehuels/cargo-info/pkg/errors"
	"github.com/matzehuels/cargo-info/pkg/integrations"
	"github.com/matzehuels/cargo-info/pkg/integrations/crates"
	"github.com/matzehuels/cargo-info/pkg/pipeline"
)

// envRegistry overrides the registry URL from the config file.
const envRegistry = "CARGO_INFO_REGISTRY"

// Config is the on-disk configuration.
//
//	registry_url = "https://crates.io/api/v1"
//	timeout      = "10s"
//	cache_ttl    = "1h"
//	concurrency  = 4
//	pager        = false
//
//	[cache]
//	backend   = "redis"
//	redis_url = "redis://localhost:6379/0"
type Config struct {
	RegistryURL string      `toml:"registry_url"`
	UserAgent   string      `toml:"user_agent"`
	Timeout     Duration    `toml:"timeout"`
	CacheTTL    Duration    `toml:"cache_ttl"`
	Concurrency int         `toml:"concurrency"`
	Pager       bool        `toml:"pager"`
	Cache       CacheConfig `toml:"cache"`
}

// CacheConfig selects the response cache backend.
type CacheConfig struct {
	Backend  string `toml:"backend"`
	Dir      string `toml:"dir"`
	RedisURL string `toml:"redis_url"`
}

// Duration decodes TOML strings such as "30s" or "1h".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// defaultConfig returns the built-in settings.
func defaultConfig() *Config {
	return &Config{
		RegistryURL: crates.DefaultBaseURL,
		UserAgent:   buildinfo.UserAgent(),
		Timeout:     Duration{integrations.DefaultTimeout},
		CacheTTL:    Duration{time.Hour},
		Concurrency: pipeline.DefaultConcurrency,
		Cache:       CacheConfig{Backend: cache.BackendFile},
	}
}

// loadConfig reads path over the defaults. An empty path means the default
// location, where a missing file is not an error; an explicit path must exist.
func loadConfig(path string, logger *log.Logger) (*Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		p, err := configFile()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	if _, err := os.Stat(path); err == nil || explicit {
		md, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			logger.Warn("ignoring unknown config keys", "file", path, "keys", strings.Join(keys, ", "))
		}
		logger.Debug("loaded config", "file", path)
	}

	if v := os.Getenv(envRegistry); v != "" {
		cfg.RegistryURL = v
	}
	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	switch c.Cache.Backend {
	case "", cache.BackendFile, cache.BackendRedis, cache.BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.Backend == cache.BackendRedis && c.Cache.RedisURL == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_url is required for the redis backend")
	}
	if c.Timeout.Duration <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "timeout must be positive, got %s", c.Timeout.Duration)
	}
	if c.Concurrency < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "concurrency must not be negative")
	}
	if !strings.HasPrefix(c.RegistryURL, "http://") && !strings.HasPrefix(c.RegistryURL, "https://") {
		return errors.New(errors.ErrCodeInvalidConfig, "registry_url must be an http(s) URL: %s", c.RegistryURL)
	}
	return nil
}

// String summarizes the effective settings for debug logs.
func (c *Config) String() string {
	return fmt.Sprintf("registry=%s timeout=%s cache=%s ttl=%s concurrency=%d",
		c.RegistryURL, c.Timeout.Duration, c.Cache.Backend, c.CacheTTL.Duration, c.Concurrency)
}
