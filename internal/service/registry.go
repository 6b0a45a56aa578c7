package service

import (
	"sync"

	"github.com/you/go-clonar-search/internal/providers"
)

// providerRegistry maps a field type to its providers in registration order.
// Duplicate names are kept as-is; all of them get raced.
type providerRegistry struct {
	mu      sync.RWMutex
	byField map[providers.FieldType][]providers.Provider
}

func newProviderRegistry() *providerRegistry {
	return &providerRegistry{byField: make(map[providers.FieldType][]providers.Provider)}
}

func (r *providerRegistry) register(p providers.Provider) {
	r.mu.Lock()
	r.byField[p.FieldType()] = append(r.byField[p.FieldType()], p)
	r.mu.Unlock()
}

// providersFor returns a copy so callers can range without holding the lock.
func (r *providerRegistry) providersFor(ft providers.FieldType) []providers.Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]providers.Provider, len(r.byField[ft]))
	copy(out, r.byField[ft])
	return out
}
