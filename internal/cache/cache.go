package cache

import (
	"encoding/json"
	"time"
)

const (
	// DefaultTTL is the staleness window applied when none is configured.
	DefaultTTL = time.Hour

	// DefaultPrefix namespaces entries away from other users of the same medium.
	DefaultPrefix = "forecast."
)

// Store is the backing key-value medium the cache persists to. Reads and
// writes are atomic at single-key granularity; no cross-key consistency is
// assumed. The cache is the only component serializing JSON over it.
type Store interface {
	GetString(key string) (string, bool)
	SetString(key, value string)
	Remove(key string)
}

// entry is the serialized envelope stored per key.
type entry struct {
	TS    int64           `json:"ts"` // unix milliseconds at write time
	Value json.RawMessage `json:"value"`
}

// Cache memoizes arbitrary JSON-serializable values with per-entry
// expiration. Expired entries are not purged; only visibility through Get is
// governed by the TTL. GetItem deliberately bypasses the freshness check so
// callers can paint a stale-but-present view while deciding to refetch.
type Cache struct {
	store  Store
	ttl    time.Duration
	prefix string
	now    func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL sets the staleness window. Non-positive values are ignored.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithPrefix sets the key namespace.
func WithPrefix(prefix string) Option {
	return func(c *Cache) {
		c.prefix = prefix
	}
}

// New creates a Cache over the given medium.
func New(store Store, opts ...Option) *Cache {
	c := &Cache{
		store:  store,
		ttl:    DefaultTTL,
		prefix: DefaultPrefix,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Set serializes value with the current timestamp under the namespaced key
// and returns the value unchanged, so writes compose with returns. Failures
// of the medium are its own concern and are never raised here.
func (c *Cache) Set(key string, value interface{}) interface{} {
	raw, err := json.Marshal(value)
	if err != nil {
		return value
	}
	data, err := json.Marshal(entry{TS: c.now().UnixMilli(), Value: raw})
	if err != nil {
		return value
	}
	c.store.SetString(c.prefix+key, string(data))
	return value
}

// Get unmarshals a fresh entry into out and reports whether one was found.
// A miss, an expired entry and a malformed entry all report false; none of
// them is an error.
func (c *Cache) Get(key string, out interface{}) bool {
	e, ok := c.read(key)
	if !ok || e.TS == 0 {
		return false
	}
	if e.TS+c.ttl.Milliseconds() <= c.now().UnixMilli() {
		return false
	}
	return json.Unmarshal(e.Value, out) == nil
}

// GetItem unmarshals the stored entry into out irrespective of its age and
// reports whether one was found. Malformed entries report false.
func (c *Cache) GetItem(key string, out interface{}) bool {
	e, ok := c.read(key)
	if !ok {
		return false
	}
	return json.Unmarshal(e.Value, out) == nil
}

// Remove deletes the namespaced entry. Removing an absent key is a no-op.
func (c *Cache) Remove(key string) {
	c.store.Remove(c.prefix + key)
}

func (c *Cache) read(key string) (entry, bool) {
	raw, ok := c.store.GetString(c.prefix + key)
	if !ok {
		return entry{}, false
	}
	var e entry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return entry{}, false
	}
	if len(e.Value) == 0 {
		return entry{}, false
	}
	return e, true
}
