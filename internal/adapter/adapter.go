// Package adapter defines the discovery-adapter contract and registry
// (§6, §9 "capability records"). The core treats a provider as a value
// satisfying this interface; there is no inheritance hierarchy.
package adapter

import (
	"context"

	"github.com/cloudgraph/ikg/pkg/model"
)

// ResourceError is one per-resource failure reported by an adapter
// during discovery; it does not abort the cycle.
type ResourceError struct {
	ResourceType string
	Region       string
	Message      string
}

// DiscoveryOptions narrows what an adapter discovers. Providers may
// ignore fields they don't support.
type DiscoveryOptions struct {
	Regions       []string
	ResourceTypes []model.ResourceType
}

// DiscoveryResult is what adapter.discover returns.
type DiscoveryResult struct {
	Nodes  []model.NodeInput
	Edges  []model.EdgeInput
	Errors []ResourceError
}

// Adapter is the capability set a discovery source must implement:
// discover, healthCheck, and its provider tag.
type Adapter interface {
	Provider() model.Provider
	HealthCheck(ctx context.Context) (bool, error)
	Discover(ctx context.Context, opts *DiscoveryOptions) (DiscoveryResult, error)
}

// Registry is a map from provider identifier to a discovery adapter.
// It holds no business logic beyond lookup and registration.
type Registry struct {
	adapters map[model.Provider]Adapter
}

func NewRegistry() *Registry {
	return &Registry{adapters: make(map[model.Provider]Adapter)}
}

func (r *Registry) Register(a Adapter) {
	r.adapters[a.Provider()] = a
}

func (r *Registry) Get(provider model.Provider) (Adapter, bool) {
	a, ok := r.adapters[provider]
	return a, ok
}

func (r *Registry) Providers() []model.Provider {
	out := make([]model.Provider, 0, len(r.adapters))
	for p := range r.adapters {
		out = append(out, p)
	}
	return out
}
