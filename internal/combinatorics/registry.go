package combinatorics

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// DefaultBackend is the name of the math/big factorial backend.
const DefaultBackend = "big"

var (
	backendsMu sync.RWMutex
	backends   = map[string]func() CachedProvider{
		DefaultBackend: func() CachedProvider { return NewFactorialCache() },
	}
)

// RegisterBackend makes a factorial backend available under name.
// Optional backends register themselves from init functions guarded by
// build tags.
func RegisterBackend(name string, ctor func() CachedProvider) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	backends[name] = ctor
}

// NewBackend instantiates the named factorial backend.
func NewBackend(name string) (CachedProvider, error) {
	backendsMu.RLock()
	ctor, ok := backends[name]
	backendsMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown factorial backend %q (available: %s)", name, strings.Join(Backends(), ", "))
	}
	return ctor(), nil
}

// Backends returns the registered backend names in sorted order.
func Backends() []string {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
