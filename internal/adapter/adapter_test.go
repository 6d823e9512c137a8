package adapter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cloudgraph/ikg/pkg/model"
)

type stubAdapter struct {
	provider model.Provider
}

func (s *stubAdapter) Provider() model.Provider { return s.provider }
func (s *stubAdapter) HealthCheck(ctx context.Context) (bool, error) { return true, nil }
func (s *stubAdapter) Discover(ctx context.Context, opts *DiscoveryOptions) (DiscoveryResult, error) {
	return DiscoveryResult{}, nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	aws := &stubAdapter{provider: model.ProviderAWS}
	r.Register(aws)

	got, ok := r.Get(model.ProviderAWS)
	assert.True(t, ok)
	assert.Same(t, aws, got)
}

func TestRegistry_GetMissingProvider(t *testing.T) {
	r := NewRegistry()
	_, ok := r.Get(model.ProviderAzure)
	assert.False(t, ok)
}

func TestRegistry_ProvidersListsAllRegistered(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubAdapter{provider: model.ProviderAWS})
	r.Register(&stubAdapter{provider: model.ProviderAzure})

	providers := r.Providers()
	assert.ElementsMatch(t, []model.Provider{model.ProviderAWS, model.ProviderAzure}, providers)
}

func TestRegistry_RegisterOverwritesSameProvider(t *testing.T) {
	r := NewRegistry()
	first := &stubAdapter{provider: model.ProviderAWS}
	second := &stubAdapter{provider: model.ProviderAWS}
	r.Register(first)
	r.Register(second)

	got, ok := r.Get(model.ProviderAWS)
	assert.True(t, ok)
	assert.Same(t, second, got)
}
