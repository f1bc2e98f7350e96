// Package config loads barnframe settings.
//
// Settings come from three layers, later layers winning:
//
//  1. Built-in defaults ([Default])
//  2. A TOML file (sections [beams], [beams.horizontal], [space], [cache], [server])
//  3. BARNFRAME_* environment variables, optionally read from a .env file
//
// CLI flags are applied on top by the caller.
//
// Example file:
//
//	[beams]
//	max_spacing = 6.0
//
//	[beams.horizontal]
//	height_ratios = [0.33, 0.66]
//
//	[cache]
//	backend = "redis"
//	url = "redis://localhost:6379/0"
//
//	[server]
//	addr = ":9090"
//	request_timeout = "10s"
package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/barnframe/pkg/beams"
	"github.com/matzehuels/barnframe/pkg/cache"
	"github.com/matzehuels/barnframe/pkg/errors"
	"github.com/matzehuels/barnframe/pkg/space"
)

// Server defaults.
const (
	DefaultAddr           = ":8080"
	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxBodyBytes   = 1 << 20
)

// Environment variables read by Load.
const (
	EnvConfig          = "BARNFRAME_CONFIG"
	EnvAddr            = "BARNFRAME_ADDR"
	EnvPort            = "PORT"
	EnvCacheBackend    = "BARNFRAME_CACHE_BACKEND"
	EnvCacheDir        = "BARNFRAME_CACHE_DIR"
	EnvCacheSize       = "BARNFRAME_CACHE_SIZE"
	EnvCacheURL        = "BARNFRAME_CACHE_URL"
	EnvCachePrefix     = "BARNFRAME_CACHE_PREFIX"
	EnvCacheDatabase   = "BARNFRAME_CACHE_DATABASE"
	EnvCacheCollection = "BARNFRAME_CACHE_COLLECTION"
)

// Config is the complete barnframe configuration.
type Config struct {
	Beams  beams.Policy `toml:"beams"`
	Space  space.Policy `toml:"space"`
	Cache  cache.Config `toml:"cache"`
	Server Server       `toml:"server"`
}

// Server configures the HTTP API.
type Server struct {
	Addr           string   `toml:"addr"`
	RequestTimeout Duration `toml:"request_timeout"`
	MaxBodyBytes   int64    `toml:"max_body_bytes"`
}

// Duration is a time.Duration written as a string such as "30s" in TOML.
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

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Beams: beams.DefaultPolicy(),
		Space: space.DefaultPolicy(),
		Cache: cache.Config{
			Backend: cache.BackendFile,
			Size:    cache.DefaultMemoryEntries,
		},
		Server: Server{
			Addr:           DefaultAddr,
			RequestTimeout: Duration{DefaultRequestTimeout},
			MaxBodyBytes:   DefaultMaxBodyBytes,
		},
	}
}

// Load builds the configuration from defaults, the TOML file at path and the
// environment. An empty path falls back to $BARNFRAME_CONFIG; when that is
// unset too, no file is read. A .env file in the working directory is loaded
// first if present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	if path == "" {
		path = os.Getenv(EnvConfig)
	}

	cfg := Default()
	if path != "" {
		if err := cfg.decodeFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode reads TOML from r on top of the defaults. It does not consult the
// environment.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if err := checkUndecoded(md); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decodeFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s not found", path)
		}
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config %s", path)
	}
	return checkUndecoded(md)
}

func checkUndecoded(md toml.MetaData) error {
	if keys := md.Undecoded(); len(keys) > 0 {
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(names, ", "))
	}
	return nil
}

// applyEnv overrides server and cache settings from the environment.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	if port := get(EnvPort); port != "" {
		if !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		c.Server.Addr = port
	}
	setString(&c.Server.Addr, get(EnvAddr))

	setString(&c.Cache.Backend, get(EnvCacheBackend))
	setString(&c.Cache.Dir, get(EnvCacheDir))
	setString(&c.Cache.URL, get(EnvCacheURL))
	setString(&c.Cache.Prefix, get(EnvCachePrefix))
	setString(&c.Cache.Database, get(EnvCacheDatabase))
	setString(&c.Cache.Collection, get(EnvCacheCollection))

	if raw := get(EnvCacheSize); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s must be an integer", EnvCacheSize)
		}
		c.Cache.Size = n
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// Validate checks every section and reports all problems together.
func (c *Config) Validate() error {
	code := errors.ErrCodeInvalidConfig
	errs := []error{
		c.Beams.Validate(),
		c.Space.Validate(),
		errors.ValidateOneOf(code, "cache.backend", c.Cache.Backend,
			cache.BackendNone, cache.BackendFile, cache.BackendMemory, cache.BackendRedis, cache.BackendMongo),
	}
	if c.Cache.Backend == cache.BackendMemory && c.Cache.Size <= 0 {
		errs = append(errs, errors.New(code, "cache.size must be positive for the memory backend (got %d)", c.Cache.Size))
	}
	if (c.Cache.Backend == cache.BackendRedis || c.Cache.Backend == cache.BackendMongo) && c.Cache.URL == "" {
		errs = append(errs, errors.New(code, "cache.url is required for the %s backend", c.Cache.Backend))
	}
	if c.Server.Addr == "" {
		errs = append(errs, errors.New(code, "server.addr is required"))
	}
	if c.Server.RequestTimeout.Duration <= 0 {
		errs = append(errs, errors.New(code, "server.request_timeout must be positive (got %s)", c.Server.RequestTimeout))
	}
	if c.Server.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New(code, "server.max_body_bytes must be positive (got %d)", c.Server.MaxBodyBytes))
	}
	return errors.Join(errs...)
}

// Write encodes the configuration as TOML.
func (c *Config) Write(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
