package hint

// DefaultCacheCapacity bounds each hint cache.
const DefaultCacheCapacity = 2048

// Cache memoizes hints by packed anchor position.
//
// When an insert would take the cache past its capacity the whole cache is
// dropped first. A Cache belongs to one worker and is not safe for
// concurrent use.
type Cache struct {
	entries  map[int64]string
	capacity int
	clears   int
}

// NewCache returns an empty cache. Non-positive capacity selects the default.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &Cache{entries: make(map[int64]string), capacity: capacity}
}

// Get returns the cached hint for key.
func (c *Cache) Get(key int64) (string, bool) {
	v, ok := c.entries[key]
	return v, ok
}

// Put stores a hint for key.
func (c *Cache) Put(key int64, value string) {
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.capacity {
		clear(c.entries)
		c.clears++
	}
	c.entries[key] = value
}

// GetOrResolve returns the cached hint for key, resolving and storing it on a miss.
func (c *Cache) GetOrResolve(key int64, resolve func() string) string {
	if v, ok := c.entries[key]; ok {
		return v
	}
	v := resolve()
	c.Put(key, v)
	return v
}

// Len returns the number of cached hints.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Cap returns the capacity.
func (c *Cache) Cap() int {
	return c.capacity
}

// Clears returns how many times the cache has been dropped for space.
func (c *Cache) Clears() int {
	return c.clears
}

// Caches is the per-worker set of hint caches.
type Caches struct {
	Rock *Cache
	Soil *Cache
	Wood *Cache
}

// NewCaches returns three empty caches of the given capacity.
func NewCaches(capacity int) *Caches {
	return &Caches{
		Rock: NewCache(capacity),
		Soil: NewCache(capacity),
		Wood: NewCache(capacity),
	}
}

// For returns the cache holding kind.
func (c *Caches) For(kind Kind) *Cache {
	switch kind {
	case Rock:
		return c.Rock
	case Soil:
		return c.Soil
	default:
		return c.Wood
	}
}
