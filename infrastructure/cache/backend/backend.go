// ABOUTME: Cache backend selection shared by the server and the command line client
// ABOUTME: Opens memory, Redis or SQLite storage by name and returns a closer for shutdown

package backend

import (
	"fmt"
	"strings"

	"feeds-app-api/core/interfaces"
	"feeds-app-api/infrastructure/cache/memory"
	"feeds-app-api/infrastructure/cache/redis"
	"feeds-app-api/infrastructure/cache/sqlite"
	"feeds-app-api/pkg/config"
)

const (
	TypeMemory = "memory"
	TypeRedis  = "redis"
	TypeSQLite = "sqlite"
)

// Backend is an opened cache and the function that releases it
type Backend struct {
	Cache interfaces.Cache
	Type  string
	close func() error
}

// Close releases the backend's connections; memory backends have none
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// Open creates the backend named by typ using the connection settings in cfg.
// A Redis backend that cannot be reached falls back to memory and logs why.
func Open(typ string, cfg config.CacheConfig, logger interfaces.Logger) (*Backend, error) {
	return open(typ, cfg, logger, true)
}

// OpenStore is Open for state that must outlive the process: an unreachable
// Redis is an error rather than a silent switch to memory.
func OpenStore(typ string, cfg config.CacheConfig, logger interfaces.Logger) (*Backend, error) {
	return open(typ, cfg, logger, false)
}

func open(typ string, cfg config.CacheConfig, logger interfaces.Logger, fallback bool) (*Backend, error) {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}

	switch strings.ToLower(typ) {
	case "", TypeMemory:
		return &Backend{Cache: memory.NewMemoryCache(), Type: TypeMemory}, nil

	case TypeRedis:
		client, err := redis.NewRedisCache(cfg.Redis)
		if err != nil && !fallback {
			return nil, fmt.Errorf("open redis store %s: %w", cfg.Redis.Address, err)
		}
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"address": cfg.Redis.Address,
				"error":   err.Error(),
			})
			return &Backend{Cache: memory.NewMemoryCache(), Type: TypeMemory}, nil
		}
		return &Backend{Cache: client, Type: TypeRedis, close: client.Close}, nil

	case TypeSQLite:
		client, err := sqlite.NewSQLiteCache(cfg.SQLite.Path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite cache %s: %w", cfg.SQLite.Path, err)
		}
		return &Backend{Cache: client, Type: TypeSQLite, close: client.Close}, nil

	default:
		return nil, fmt.Errorf("unknown cache type %q", typ)
	}
}
