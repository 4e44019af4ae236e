// Package config loads the optional eml configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/eml/config.toml (or
// ~/.config/eml/config.toml). Every key is optional:
//
//	[render]
//	formats = ["svg", "png"]
//	viz_type = "timeline"
//	arrowheads = true
//	scale = 2.0
//
//	[cache]
//	backend = "redis"          # file (default), redis or none
//	dir = "/var/cache/eml"     # file backend
//	redis_addr = "localhost:6379"
//	ttl = "24h"
//
//	[server]
//	addr = ":8080"
//
// Command-line flags override the file, and the file overrides [Default].
package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/waiteperspectives/eml/pkg/cache"
	emlerrors "github.com/waiteperspectives/eml/pkg/errors"
	"github.com/waiteperspectives/eml/pkg/pipeline"
)

// AppName names the config and cache directories.
const AppName = "eml"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// DefaultAddr is the listen address of the HTTP server.
const DefaultAddr = ":8080"

// Config is the decoded configuration file.
type Config struct {
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// RenderConfig holds default render options.
type RenderConfig struct {
	Formats    []string `toml:"formats"`
	VizType    string   `toml:"viz_type"`
	Arrowheads bool     `toml:"arrowheads"`
	Detailed   bool     `toml:"detailed"`
	Scale      float64  `toml:"scale"`
}

// CacheConfig selects and configures the artifact cache.
type CacheConfig struct {
	Backend       string        `toml:"backend"`
	Dir           string        `toml:"dir"`
	RedisAddr     string        `toml:"redis_addr"`
	RedisURL      string        `toml:"redis_url"`
	RedisPassword string        `toml:"redis_password"`
	RedisDB       int           `toml:"redis_db"`
	Prefix        string        `toml:"prefix"`
	TTL           time.Duration `toml:"ttl"`
}

// ServerConfig configures eml serve.
type ServerConfig struct {
	Addr string `toml:"addr"`
	// MaxBodyBytes limits the size of a render request body.
	MaxBodyBytes int64 `toml:"max_body_bytes"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Render: RenderConfig{
			Formats: []string{pipeline.FormatSVG},
			VizType: pipeline.DefaultVizType,
			Scale:   pipeline.DefaultScale,
		},
		Cache: CacheConfig{
			Backend: BackendFile,
			TTL:     cache.TTLArtifact,
		},
		Server: ServerConfig{
			Addr:         DefaultAddr,
			MaxBodyBytes: 1 << 20,
		},
	}
}

// DefaultPath returns the config file location using the XDG standard.
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// DefaultCacheDir returns the file cache directory using the XDG standard
// (~/.cache/eml/).
func DefaultCacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}

// Load reads the config file at path over [Default].
//
// An empty path means [DefaultPath], and a missing default file is not an
// error. A path given explicitly must exist. Unknown keys are rejected so
// typos do not pass silently.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, emlerrors.Wrap(emlerrors.ErrCodeInvalidInput, err, "config file %s", path)
		}
		return Config{}, emlerrors.Wrap(emlerrors.ErrCodeInvalidInput, err, "%s: failed to parse TOML", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, emlerrors.New(emlerrors.ErrCodeInvalidInput, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, emlerrors.Wrap(emlerrors.GetCode(err), err, "%s", path)
	}
	return cfg, nil
}

// Validate checks the values that have a closed set of choices.
func (c Config) Validate() error {
	if _, err := c.Options(); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return emlerrors.New(emlerrors.ErrCodeInvalidInput, "invalid cache backend %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return emlerrors.New(emlerrors.ErrCodeInvalidInput, "cache ttl must not be negative")
	}
	if c.Server.MaxBodyBytes < 0 {
		return emlerrors.New(emlerrors.ErrCodeInvalidInput, "max_body_bytes must not be negative")
	}
	return nil
}

// Options returns the [render] section as validated pipeline options.
func (c Config) Options() (pipeline.Options, error) {
	opts := pipeline.Options{
		Formats:    c.Render.Formats,
		VizType:    c.Render.VizType,
		Arrowheads: c.Render.Arrowheads,
		Detailed:   c.Render.Detailed,
		Scale:      c.Render.Scale,
	}
	if err := opts.Validate(); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}

// OpenCache opens the configured cache backend. A file backend without a
// dir uses [DefaultCacheDir].
func (c CacheConfig) OpenCache(ctx context.Context) (cache.Cache, error) {
	switch c.Backend {
	case BackendNone:
		return cache.NewNullCache(), nil
	case BackendRedis:
		return cache.NewRedisCache(ctx, cache.RedisOptions{
			URL:      c.RedisURL,
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
			Prefix:   c.Prefix,
		})
	case BackendFile, "":
		dir := c.Dir
		if dir == "" {
			d, err := DefaultCacheDir()
			if err != nil {
				return cache.NewNullCache(), nil
			}
			dir = d
		}
		return cache.NewFileCache(dir)
	}
	return nil, emlerrors.New(emlerrors.ErrCodeInvalidInput, "invalid cache backend %q", c.Backend)
}

// Keyer returns the cache keyer, scoped by Prefix for non-Redis backends.
// Redis applies the prefix itself.
func (c CacheConfig) Keyer() cache.Keyer {
	if c.Prefix != "" && c.Backend != BackendRedis {
		return cache.NewScopedKeyer(cache.NewDefaultKeyer(), c.Prefix)
	}
	return cache.NewDefaultKeyer()
}
