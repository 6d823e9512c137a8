package sync

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudgraph/ikg/internal/adapter"
	"github.com/cloudgraph/ikg/internal/config"
	"github.com/cloudgraph/ikg/internal/graph"
	"github.com/cloudgraph/ikg/internal/metrics"
	"github.com/cloudgraph/ikg/pkg/model"
)

type fakeAdapter struct {
	provider model.Provider
	result   adapter.DiscoveryResult
	err      error
}

func (f *fakeAdapter) Provider() model.Provider { return f.provider }
func (f *fakeAdapter) HealthCheck(ctx context.Context) (bool, error) { return true, nil }
func (f *fakeAdapter) Discover(ctx context.Context, opts *adapter.DiscoveryOptions) (adapter.DiscoveryResult, error) {
	return f.result, f.err
}

func floatPtr(f float64) *float64 { return &f }

func TestRunSync_ColdStart(t *testing.T) {
	store := graph.NewMemoryStore()
	engine := NewEngine(store, nil)

	a := &fakeAdapter{
		provider: model.ProviderAWS,
		result: adapter.DiscoveryResult{
			Nodes: []model.NodeInput{
				{ID: "a:1:c:x", Provider: model.ProviderAWS, ResourceType: model.ResourceCompute, Name: "x", Status: model.StatusRunning, CostMonthly: floatPtr(100)},
				{ID: "a:1:c:y", Provider: model.ProviderAWS, ResourceType: model.ResourceCompute, Name: "y", Status: model.StatusRunning, CostMonthly: floatPtr(200)},
			},
			Edges: []model.EdgeInput{
				{ID: model.CanonicalEdgeID("a:1:c:x", model.RelDependsOn, "a:1:c:y"), SourceNodeID: "a:1:c:x", TargetNodeID: "a:1:c:y", RelationshipType: model.RelDependsOn, Confidence: 1.0},
			},
		},
	}

	rec, err := engine.RunSync(context.Background(), a, nil)
	require.NoError(t, err)

	assert.Equal(t, model.SyncCompleted, rec.Status)
	assert.Equal(t, 2, rec.NodesCreated)
	assert.Equal(t, 0, rec.NodesUpdated)
	assert.Equal(t, 0, rec.NodesDisappeared)
	assert.Equal(t, 1, rec.EdgesCreated)
	assert.Equal(t, 3, rec.ChangesRecorded)

	nodes, err := store.QueryNodes(context.Background(), model.NodeFilter{})
	require.NoError(t, err)
	assert.Len(t, nodes, 2)
}

func TestRunSync_DriftedField(t *testing.T) {
	store := graph.NewMemoryStore()
	ctx := context.Background()
	_, err := store.UpsertNode(ctx, model.NodeInput{
		ID: "n1", Provider: model.ProviderAWS, ResourceType: model.ResourceCompute,
		Name: "n1", Status: model.StatusRunning, CostMonthly: floatPtr(100),
	})
	require.NoError(t, err)

	engine := NewEngine(store, nil)
	a := &fakeAdapter{
		provider: model.ProviderAWS,
		result: adapter.DiscoveryResult{
			Nodes: []model.NodeInput{
				{ID: "n1", Provider: model.ProviderAWS, ResourceType: model.ResourceCompute, Name: "n1", Status: model.StatusStopped, CostMonthly: floatPtr(100)},
			},
		},
	}

	rec, err := engine.RunSync(ctx, a, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.NodesUpdated)

	timeline, err := store.GetNodeTimeline(ctx, "n1", 10)
	require.NoError(t, err)

	var statusChanges, costChanges int
	for _, c := range timeline {
		if c.ChangeType == model.ChangeNodeUpdated && c.Field == "status" {
			statusChanges++
			require.NotNil(t, c.PreviousValue)
			require.NotNil(t, c.NewValue)
			assert.Equal(t, "running", *c.PreviousValue)
			assert.Equal(t, "stopped", *c.NewValue)
		}
		if c.ChangeType == model.ChangeCostChanged {
			costChanges++
		}
	}
	assert.Equal(t, 1, statusChanges)
	assert.Equal(t, 0, costChanges)
}

func TestRunSync_SerializesPerProvider(t *testing.T) {
	store := graph.NewMemoryStore()
	engine := NewEngine(store, nil)
	provider := model.ProviderAWS

	require.NoError(t, engine.beginCycle(provider))
	err := engine.beginCycle(provider)
	assert.Error(t, err)
	engine.endCycle(provider)
	assert.NoError(t, engine.beginCycle(provider))
	engine.endCycle(provider)
}

func TestRunSync_DiscoverErrorFailsCycle(t *testing.T) {
	store := graph.NewMemoryStore()
	engine := NewEngine(store, nil)
	a := &fakeAdapter{provider: model.ProviderAWS, err: assert.AnError}

	rec, err := engine.RunSync(context.Background(), a, nil)
	require.NoError(t, err)
	assert.Equal(t, model.SyncFailed, rec.Status)
	assert.NotEmpty(t, rec.Errors)
}

func TestRunSync_ReportsMetricsWhenRegistryAttached(t *testing.T) {
	store := graph.NewMemoryStore()
	reg := prometheus.NewRegistry()
	m := metrics.NewRegistry(reg)
	engine := NewEngine(store, nil).WithMetrics(m)

	a := &fakeAdapter{
		provider: model.ProviderAWS,
		result: adapter.DiscoveryResult{
			Nodes: []model.NodeInput{
				{ID: "a:1:c:x", Provider: model.ProviderAWS, ResourceType: model.ResourceCompute, Name: "x", Status: model.StatusRunning},
			},
		},
	}
	_, err := engine.RunSync(context.Background(), a, nil)
	require.NoError(t, err)

	counter, err := m.SyncCyclesTotal.GetMetricWithLabelValues("aws", "completed")
	require.NoError(t, err)
	var out dto.Metric
	require.NoError(t, counter.Write(&out))
	assert.Equal(t, float64(1), out.GetCounter().GetValue())

	var gaugeOut dto.Metric
	require.NoError(t, m.NodesTotal.Write(&gaugeOut))
	assert.Equal(t, float64(1), gaugeOut.GetGauge().GetValue())
}

func TestNewEngineFromConfig_AppliesTunablesAndValidates(t *testing.T) {
	store := graph.NewMemoryStore()
	cfg := config.Default()
	cfg.Engine.StaleThresholdMs = 3_600_000
	cfg.Engine.PruneOrphanedEdges = false

	engine, err := NewEngineFromConfig(cfg, store, nil)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, engine.StaleThreshold)
	assert.False(t, engine.PruneOrphanedEdges)

	cfg.Engine.MaxTraversalDepth = 0
	_, err = NewEngineFromConfig(cfg, store, nil)
	assert.Error(t, err)
}
