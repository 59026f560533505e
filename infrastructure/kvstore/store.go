// ABOUTME: KVStore adapter over any Cache backend, storing entries without expiry
// ABOUTME: Cache misses become "absent" so snapshot code never sees NotFound errors

package kvstore

import (
	"context"

	"feeds-app-api/core/errors"
	"feeds-app-api/core/interfaces"
)

// CacheStore implements interfaces.KVStore on top of an interfaces.Cache
type CacheStore struct {
	cache  interfaces.Cache
	prefix string
}

// New creates a store; prefix namespaces its keys inside a shared cache
func New(cache interfaces.Cache, prefix string) *CacheStore {
	return &CacheStore{cache: cache, prefix: prefix}
}

// Get implements interfaces.KVStore
func (s *CacheStore) Get(ctx context.Context, key string) (string, bool, error) {
	data, err := s.cache.Get(ctx, s.prefix+key)
	if errors.IsNotFound(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(data), true, nil
}

// Set implements interfaces.KVStore
func (s *CacheStore) Set(ctx context.Context, key, value string) error {
	return s.cache.Set(ctx, s.prefix+key, []byte(value), 0)
}

// Delete implements interfaces.KVStore
func (s *CacheStore) Delete(ctx context.Context, key string) error {
	return s.cache.Delete(ctx, s.prefix+key)
}
