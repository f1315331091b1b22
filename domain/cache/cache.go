package cache

import (
	"sync"
	"time"
)

// Cache is a TTL key-value store with lazy expiration.
//
// Expired entries are not proactively deleted; they are observed as absent
// on read and overwritten by the next Set for the same key. No lock is taken
// for concurrent writes to the same key: values are derived from the same
// upstream source, so a duplicate concurrent miss simply overwrites with an
// equivalent value.
type Cache struct {
	store sync.Map

	defaultExpiry time.Duration
}

// cacheEntry represents a cached value with its expiration time.
type cacheEntry struct {
	value     interface{}
	expiresAt time.Time
}

// New creates a new cache. defaultExpiry is applied by Set; a non-positive
// defaultExpiry makes every Set entry immediately stale, effectively
// disabling the cache.
func New(defaultExpiry time.Duration) *Cache {
	return &Cache{
		defaultExpiry: defaultExpiry,
	}
}

// Set adds an item to the cache under the given key with the default expiry.
func (c *Cache) Set(key string, value interface{}) {
	c.SetWithExpiry(key, value, c.defaultExpiry)
}

// SetWithExpiry adds an item to the cache under the given key, expiring
// after the given duration. There is no special-casing of non-positive
// durations: the entry's expiration is simply in the past and every read
// misses.
func (c *Cache) SetWithExpiry(key string, value interface{}, expiry time.Duration) {
	c.store.Store(key, cacheEntry{
		value:     value,
		expiresAt: time.Now().Add(expiry),
	})
}

// Get retrieves the value associated with the key. Returns false if the key
// does not exist or its entry has expired. The stale entry, if any, is left
// in place to be overwritten by the next Set.
func (c *Cache) Get(key string) (interface{}, bool) {
	stored, ok := c.store.Load(key)
	if !ok {
		return nil, false
	}

	entry := stored.(cacheEntry)
	if !time.Now().Before(entry.expiresAt) {
		return nil, false
	}

	return entry.value, true
}

// Delete removes the item under the given key unconditionally.
func (c *Cache) Delete(key string) {
	c.store.Delete(key)
}

// Clear empties the whole store.
func (c *Cache) Clear() {
	c.store.Range(func(key, _ interface{}) bool {
		c.store.Delete(key)
		return true
	})
}
