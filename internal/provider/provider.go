// Package provider defines the adapter interface for external company-data
// sources and the ordered registry the fan-out runs against.
package provider

import (
	"context"
	"sync"

	"github.com/sells-group/prospect-search/internal/model"
)

// Result is a provider's contribution to one search: normalized records plus
// optional provider-reported pagination totals.
type Result struct {
	Records []model.CompanyRecord
	Page    *model.PageInfo
}

// Provider translates the common query into one external source's request
// shape and normalizes that source's response into CompanyRecords.
//
// Search returns (nil, nil) when the source has no data for the query, when
// the call fails with a non-2xx status, or when the payload is malformed.
// An error is reserved for unexpected conditions (e.g. a network timeout);
// the coordinator logs it and treats the provider as empty either way.
type Provider interface {
	Name() string
	Search(ctx context.Context, query model.SearchQuery) (*Result, error)
}

// Registry holds providers in registration order. The order is significant:
// it decides which provider is primary when the merge engine sees the same
// company from several sources.
type Registry struct {
	mu        sync.RWMutex
	providers []Provider
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a provider. Registration order is preserved.
func (r *Registry) Register(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers = append(r.providers, p)
}

// Providers returns the registered providers in registration order.
func (r *Registry) Providers() []Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Provider, len(r.providers))
	copy(out, r.providers)
	return out
}

// Names returns the registered provider names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.providers))
	for _, p := range r.providers {
		names = append(names, p.Name())
	}
	return names
}

// Len returns the number of registered providers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.providers)
}
