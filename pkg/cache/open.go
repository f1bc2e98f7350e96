package cache

import (
	"context"
	"fmt"
)

// Backend names accepted by Open.
const (
	BackendNone   = "none"
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Config selects and configures a cache backend.
type Config struct {
	Backend string `toml:"backend" json:"backend"`
	// Dir is the FileCache directory; empty means DefaultDir.
	Dir string `toml:"dir" json:"dir,omitempty"`
	// Size is the MemoryCache entry limit.
	Size int `toml:"size" json:"size,omitempty"`
	// URL is the Redis or Mongo connection string.
	URL string `toml:"url" json:"url,omitempty"`
	// Prefix namespaces Redis keys.
	Prefix     string `toml:"prefix" json:"prefix,omitempty"`
	Database   string `toml:"database" json:"database,omitempty"`
	Collection string `toml:"collection" json:"collection,omitempty"`
}

// Open creates the backend named by cfg.Backend. An empty backend opens a
// FileCache.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	var (
		c   Cache
		err error
	)
	switch cfg.Backend {
	case BackendNone:
		c = NewNullCache()
	case BackendFile, "":
		c, err = openFile(cfg.Dir)
	case BackendMemory:
		c, err = fromBackend(NewMemoryCache(cfg.Size))
	case BackendRedis:
		if cfg.URL == "" {
			return nil, fmt.Errorf("redis cache: url is required")
		}
		c, err = fromBackend(NewRedisCache(ctx, cfg.URL, cfg.Prefix))
	case BackendMongo:
		if cfg.URL == "" {
			return nil, fmt.Errorf("mongo cache: url is required")
		}
		c, err = fromBackend(NewMongoCache(ctx, cfg.URL, cfg.Database, cfg.Collection))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func openFile(dir string) (Cache, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	return fromBackend(NewFileCache(dir))
}

// fromBackend converts a typed constructor result without leaking a typed
// nil into the interface.
func fromBackend[T Cache](c T, err error) (Cache, error) {
	if err != nil {
		return nil, err
	}
	return c, nil
}
