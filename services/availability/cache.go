package availability

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// CacheStore is the advisory cache the engine reads through. Entries are
// disposable: a hit must never be trusted on the booking write path, and the
// whole store may be dropped at any time without correctness impact.
type CacheStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// DayKey builds the deterministic fingerprint for a day computation. Every
// parameter that affects the result is part of the key.
func DayKey(serviceID, agentID, locationID string, stepMin int, date string) string {
	return fmt.Sprintf("avail:v1:day:%s:%s:%s:%d:%s", serviceID, orAny(agentID), orDash(locationID), stepMin, date)
}

// MonthKey builds the fingerprint for a month summary.
func MonthKey(serviceID, agentID, locationID string, stepMin int, month string, withSlots bool) string {
	return fmt.Sprintf("avail:v1:month:%s:%s:%s:%d:%s:%t", serviceID, orAny(agentID), orDash(locationID), stepMin, month, withSlots)
}

func orAny(agentID string) string {
	if agentID == "" {
		return "any"
	}
	return agentID
}

func orDash(locationID string) string {
	if locationID == "" {
		return "-"
	}
	return locationID
}

// RedisCacheStore backs CacheStore with Redis; values are JSON blobs with a
// server-side TTL.
type RedisCacheStore struct {
	Client *redis.Client
}

func NewRedisCacheStore(client *redis.Client) *RedisCacheStore {
	return &RedisCacheStore{Client: client}
}

func (s *RedisCacheStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := s.Client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get %s: %w", key, err)
	}
	return val, true, nil
}

func (s *RedisCacheStore) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	if err := s.Client.Set(ctx, key, val, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

func (s *RedisCacheStore) Delete(ctx context.Context, key string) error {
	if err := s.Client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("cache delete %s: %w", key, err)
	}
	return nil
}

// MemoryCacheStore is an in-process CacheStore used by tests and as a
// fallback when Redis is unavailable. Expiry is checked lazily on read.
type MemoryCacheStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	// NowFn is overridable so tests can drive TTL expiry deterministically.
	NowFn func() time.Time
}

type memoryEntry struct {
	val       []byte
	expiresAt time.Time
}

func NewMemoryCacheStore() *MemoryCacheStore {
	return &MemoryCacheStore{entries: make(map[string]memoryEntry), NowFn: time.Now}
}

func (s *MemoryCacheStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	if s.NowFn().After(entry.expiresAt) {
		delete(s.entries, key)
		return nil, false, nil
	}
	return entry.val, true, nil
}

func (s *MemoryCacheStore) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memoryEntry{val: val, expiresAt: s.NowFn().Add(ttl)}
	return nil
}

func (s *MemoryCacheStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}
