package data

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
)

const apiKeySet = "truthmint:apikeys"

// KeyStore tracks issued API keys. Has must be cheap; it gates every
// request on the paid surface.
type KeyStore interface {
	Add(ctx context.Context, key string) error
	Has(ctx context.Context, key string) bool
}

// NewKeyStore returns a Redis-backed store when a client is available,
// falling back to an in-process set. The fallback does not survive a
// restart, which is acceptable for demo keys.
func NewKeyStore(rdb *redis.Client) KeyStore {
	if rdb == nil {
		return &memoryKeys{keys: make(map[string]struct{})}
	}
	return &redisKeys{rdb: rdb}
}

type redisKeys struct {
	rdb *redis.Client
}

func (s *redisKeys) Add(ctx context.Context, key string) error {
	return s.rdb.SAdd(ctx, apiKeySet, key).Err()
}

func (s *redisKeys) Has(ctx context.Context, key string) bool {
	ok, err := s.rdb.SIsMember(ctx, apiKeySet, key).Result()
	if err != nil {
		return false
	}
	return ok
}

type memoryKeys struct {
	mu   sync.RWMutex
	keys map[string]struct{}
}

func (s *memoryKeys) Add(_ context.Context, key string) error {
	s.mu.Lock()
	s.keys[key] = struct{}{}
	s.mu.Unlock()
	return nil
}

func (s *memoryKeys) Has(_ context.Context, key string) bool {
	s.mu.RLock()
	_, ok := s.keys[key]
	s.mu.RUnlock()
	return ok
}
