package combinatorics

import (
	"math/big"
	"sync"
)

// FactorialProvider returns exact factorials. Returned values may be shared
// with an internal cache and must be treated as read-only.
type FactorialProvider interface {
	Factorial(n uint64) *big.Int
}

// CachedProvider is a FactorialProvider backed by a monotonically growing
// cache that can be pre-extended before a parallel fan-out.
type CachedProvider interface {
	FactorialProvider
	// Warm extends the cache so that every index up to n is cached.
	Warm(n uint64)
	// Len returns the number of cached entries (the cache frontier).
	Len() int
}

// FactorialCache memoizes n! for all n up to the largest value requested so
// far. The cache is seeded with 0! = 1 and 1! = 1 and only ever grows: entry
// i always holds entry i-1 multiplied by i.
//
// Lookups take a read lock; extension takes the write lock, so concurrent
// callers never interleave appends. Pre-warming with Warm before a fan-out
// keeps every later call on the read path.
type FactorialCache struct {
	mu     sync.RWMutex
	values []*big.Int
}

// NewFactorialCache creates a cache seeded with 0! and 1!.
func NewFactorialCache() *FactorialCache {
	return &FactorialCache{values: []*big.Int{big.NewInt(1), big.NewInt(1)}}
}

// Factorial returns n!. A cached value is returned without recomputation;
// otherwise the cache is extended from its frontier up to n, appending every
// intermediate factorial on the way.
//
// The returned value is owned by the cache. Callers must not modify it.
func (c *FactorialCache) Factorial(n uint64) *big.Int {
	c.mu.RLock()
	if n < uint64(len(c.values)) {
		v := c.values[n]
		c.mu.RUnlock()
		return v
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.extendLocked(n)
}

// Warm extends the cache up to n without returning the value.
func (c *FactorialCache) Warm(n uint64) {
	c.Factorial(n)
}

// Len returns the number of cached factorials.
func (c *FactorialCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.values)
}

// extendLocked grows the cache to cover n. The caller must hold the write
// lock. The frontier is re-read under the lock since another writer may have
// extended the cache in the meantime.
func (c *FactorialCache) extendLocked(n uint64) *big.Int {
	factor := new(big.Int)
	for i := uint64(len(c.values)); i <= n; i++ {
		factor.SetUint64(i)
		next := new(big.Int).Mul(c.values[i-1], factor)
		c.values = append(c.values, next)
	}
	return c.values[n]
}
