package models

import (
	"sync"
	"time"
)

// CacheData is one cached value and the unix time it was stored at
type CacheData[T any] struct {
	Timestamp int64
	Value     T
}

// Cache keeps dropdown listings in memory for a bounded time.
// A zero MaxAge disables caching.
type Cache[T any] struct {
	MaxAge time.Duration

	mu      sync.Mutex
	entries map[string]CacheData[T]
	now     func() time.Time
}

func NewCache[T any](maxAge time.Duration) *Cache[T] {
	return &Cache[T]{
		MaxAge:  maxAge,
		entries: make(map[string]CacheData[T]),
		now:     time.Now,
	}
}

func (c *Cache[T]) Load(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	entry, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	if !isCacheValid(entry, c.MaxAge, c.now()) {
		delete(c.entries, key)
		return zero, false
	}
	return entry.Value, true
}

func (c *Cache[T]) Store(key string, value T) {
	if c.MaxAge <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = CacheData[T]{Timestamp: c.now().Unix(), Value: value}
}

func isCacheValid[T any](cache CacheData[T], maxAge time.Duration, now time.Time) bool {
	age := now.Sub(time.Unix(cache.Timestamp, 0))
	return age <= maxAge
}
