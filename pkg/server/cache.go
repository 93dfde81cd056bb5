package server

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cache miss")

// ResponseCache stores encoded responses.
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte, expiration time.Duration) error
}

type LocalEntry struct {
	Expires time.Time
	Data    []byte
}

const maxLocalEntries = 10_000

// Cache is a redis backed response cache with a short lived local layer in front. The
// local layer holds at most maxLocalEntries; expired entries are swept on write.
type Cache struct {
	client    *redis.Client
	local     time.Duration
	now       func() time.Time
	mu        sync.Mutex
	memCache  map[string]LocalEntry
	lastSweep time.Time
}

func NewCache(addr, password string, db int) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewCacheFromClient(rdb)
}

func NewCacheFromClient(client *redis.Client) *Cache {
	return &Cache{
		client:   client,
		local:    10 * time.Second,
		now:      time.Now,
		memCache: make(map[string]LocalEntry),
	}
}

func (c *Cache) getLocal(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.memCache[key]
	if !ok {
		return nil, false
	}
	if entry.Expires.Before(c.now()) {
		delete(c.memCache, key)
		return nil, false
	}
	return entry.Data, true
}

// sweep drops expired entries, then arbitrary ones until there is room for one more.
// Must be called with mu held.
func (c *Cache) sweep(now time.Time) {
	for key, entry := range c.memCache {
		if entry.Expires.Before(now) {
			delete(c.memCache, key)
		}
	}
	c.lastSweep = now
	for key := range c.memCache {
		if len(c.memCache) < maxLocalEntries {
			break
		}
		delete(c.memCache, key)
	}
}

func (c *Cache) setLocal(key string, data []byte, expiration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	if len(c.memCache) >= maxLocalEntries || now.Sub(c.lastSweep) > c.local {
		c.sweep(now)
	}
	c.memCache[key] = LocalEntry{Expires: now.Add(min(expiration, c.local)), Data: data}
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	if data, ok := c.getLocal(key); ok {
		return data, nil
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	c.setLocal(key, data, c.local)
	return data, nil
}

func (c *Cache) Set(ctx context.Context, key string, data []byte, expiration time.Duration) error {
	c.setLocal(key, data, expiration)
	return c.client.Set(ctx, key, data, expiration).Err()
}

func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	return c.client.Close()
}

// cacheKey scopes a response to the catalog version it was computed from, so a catalog
// replacement never serves stale results.
func cacheKey(kind string, version uint64, category, sub, selection string, rest ...any) string {
	return fmt.Sprintf("storefront:%s:%d:%s:%s:%s:%v", kind, version, category, sub, selection, rest)
}
