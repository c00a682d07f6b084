package geocode

import geohash "github.com/TomiHiltunen/geohash-golang"

// Cache memoizes resolved city names by coordinate geohash, so zone
// clusters with near-identical centroids spend one rate-limited call
// instead of many. Only non-empty resolutions are stored; unresolved
// positions stay retryable.
type Cache struct {
	entries   map[string]string
	precision int
}

// NewCache builds a cache keyed at the given geohash precision.
// Precision 6 buckets positions to roughly a kilometre. A precision
// of 0 or less disables caching entirely.
func NewCache(precision int) *Cache {
	if precision <= 0 {
		return &Cache{}
	}

	return &Cache{entries: make(map[string]string), precision: precision}
}

// Get returns the memoized city for the position, if any.
func (c *Cache) Get(lat, lon float64) (string, bool) {
	if c.entries == nil {
		return "", false
	}
	city, ok := c.entries[geohash.EncodeWithPrecision(lat, lon, c.precision)]

	return city, ok
}

// Put memoizes a resolved city.
func (c *Cache) Put(lat, lon float64, city string) {
	if c.entries == nil || city == "" {
		return
	}
	c.entries[geohash.EncodeWithPrecision(lat, lon, c.precision)] = city
}

// Len returns the number of memoized positions.
func (c *Cache) Len() int {
	return len(c.entries)
}
