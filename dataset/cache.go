package dataset

import (
	"sync"

	"gonum.org/v1/gonum/mat"
)

// sampleCache memoizes decoded samples by catalog index, up to a fixed
// capacity. It stores the decoded, range-omitted cloud before resampling,
// so every epoch still draws a fresh random subset of points. Entries are
// never evicted: once the capacity is reached, further samples are decoded
// on every access. Safe for concurrent use.
type sampleCache struct {
	mu       sync.Mutex
	entries  map[int]*mat.Dense
	capacity int

	hits, misses uint64
}

func newSampleCache(capacity int) *sampleCache {
	return &sampleCache{
		entries:  make(map[int]*mat.Dense),
		capacity: capacity,
	}
}

// getOrDecode returns the cached cloud for catalog index idx, decoding it
// with the supplied function on a miss. The decoded cloud is retained only
// while the cache has free capacity.
func (c *sampleCache) getOrDecode(idx int, decode func() (*mat.Dense, error)) (*mat.Dense, error) {
	c.mu.Lock()
	if x, ok := c.entries[idx]; ok {
		c.hits++
		c.mu.Unlock()
		return x, nil
	}
	c.misses++
	c.mu.Unlock()

	x, err := decode()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if len(c.entries) < c.capacity {
		c.entries[idx] = x
	}
	c.mu.Unlock()
	return x, nil
}

// stats returns the cumulative hit and miss counts and the current entry
// count.
func (c *sampleCache) stats() (hits, misses uint64, size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses, len(c.entries)
}
