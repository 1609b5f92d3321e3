//go:build gmp

// This file provides a GMP-backed factorial cache, conditionally compiled
// with the "gmp" build tag. Building without the tag keeps the binary free
// of cgo and libgmp:
//
//	go build -tags=gmp ./cmd/bincross
//
// System Requirements for GMP:
//   - Linux: sudo apt-get install libgmp-dev (Debian/Ubuntu)
//   - macOS: brew install gmp

package combinatorics

import (
	"math/big"
	"sync"

	"github.com/ncw/gmp"
)

func init() {
	RegisterBackend("gmp", func() CachedProvider { return NewGMPFactorialCache() })
}

// GMPFactorialCache extends the factorial sequence with GMP multiplication
// and mirrors every entry as a *big.Int so that the rest of the engine stays
// on math/big. The running product is kept as a gmp.Int to avoid converting
// back on each extension.
type GMPFactorialCache struct {
	mu      sync.RWMutex
	values  []*big.Int
	running *gmp.Int
}

// NewGMPFactorialCache creates a cache seeded with 0! and 1!.
func NewGMPFactorialCache() *GMPFactorialCache {
	return &GMPFactorialCache{
		values:  []*big.Int{big.NewInt(1), big.NewInt(1)},
		running: gmp.NewInt(1),
	}
}

// Factorial returns n!. The returned value must not be modified.
func (c *GMPFactorialCache) Factorial(n uint64) *big.Int {
	c.mu.RLock()
	if n < uint64(len(c.values)) {
		v := c.values[n]
		c.mu.RUnlock()
		return v
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	factor := new(gmp.Int)
	for i := uint64(len(c.values)); i <= n; i++ {
		factor.SetUint64(i)
		c.running.Mul(c.running, factor)
		c.values = append(c.values, new(big.Int).SetBytes(c.running.Bytes()))
	}
	return c.values[n]
}

// Warm extends the cache up to n.
func (c *GMPFactorialCache) Warm(n uint64) {
	c.Factorial(n)
}

// Len returns the number of cached factorials.
func (c *GMPFactorialCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.values)
}
