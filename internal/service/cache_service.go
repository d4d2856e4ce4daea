package service

import (
	"context"
	"sync"
	"time"
)

// CacheService provides in-memory caching with TTL and invalidation support.
type CacheService struct {
	mu       sync.RWMutex
	cache    map[string]*cacheEntry
	maxItems int
	stop     chan struct{}
	stopOnce sync.Once
}

type cacheEntry struct {
	data      interface{}
	expiresAt time.Time
}

// NewCacheService creates a new cache service. maxItems <= 0 means no limit.
func NewCacheService(maxItems int) *CacheService {
	cs := &CacheService{
		cache:    make(map[string]*cacheEntry),
		maxItems: maxItems,
		stop:     make(chan struct{}),
	}

	go cs.cleanup(5 * time.Minute)

	return cs
}

// Get retrieves a value from cache.
func (cs *CacheService) Get(key string) (interface{}, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	entry, exists := cs.cache[key]
	if !exists || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.data, true
}

// Set stores a value in cache with TTL. When the cache is full, expired entries
// are dropped first; if that is not enough, the new value is not stored.
func (cs *CacheService) Set(key string, value interface{}, ttl time.Duration) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if _, exists := cs.cache[key]; !exists && cs.maxItems > 0 && len(cs.cache) >= cs.maxItems {
		cs.evictExpiredLocked(time.Now())
		if len(cs.cache) >= cs.maxItems {
			return
		}
	}

	cs.cache[key] = &cacheEntry{
		data:      value,
		expiresAt: time.Now().Add(ttl),
	}
}

// Len returns the number of stored entries, expired ones included.
func (cs *CacheService) Len() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return len(cs.cache)
}

// Close stops the background cleanup.
func (cs *CacheService) Close() {
	cs.stopOnce.Do(func() { close(cs.stop) })
}

func (cs *CacheService) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-cs.stop:
			return
		case now := <-ticker.C:
			cs.mu.Lock()
			cs.evictExpiredLocked(now)
			cs.mu.Unlock()
		}
	}
}

func (cs *CacheService) evictExpiredLocked(now time.Time) {
	for key, entry := range cs.cache {
		if now.After(entry.expiresAt) {
			delete(cs.cache, key)
		}
	}
}

// QueryVectorCacheKey builds the key for a user query vector.
func QueryVectorCacheKey(modelVersion, text string) string {
	return "query_vector:" + modelVersion + ":" + text
}

// GetOrSet retrieves a value from cache or computes it if not found.
// Errors are not cached.
func (cs *CacheService) GetOrSet(
	ctx context.Context,
	key string,
	ttl time.Duration,
	fn func(ctx context.Context) (interface{}, error),
) (value interface{}, hit bool, err error) {
	if value, found := cs.Get(key); found {
		return value, true, nil
	}

	value, err = fn(ctx)
	if err != nil {
		return nil, false, err
	}

	cs.Set(key, value, ttl)
	return value, false, nil
}
