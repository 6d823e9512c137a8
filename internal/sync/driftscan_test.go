package sync

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudgraph/ikg/internal/adapter"
	"github.com/cloudgraph/ikg/internal/graph"
	"github.com/cloudgraph/ikg/pkg/model"
)

func TestDriftScan_ReportsDriftWithoutMutatingStore(t *testing.T) {
	store := graph.NewMemoryStore()
	ctx := context.Background()
	original, err := store.UpsertNode(ctx, model.NodeInput{
		ID: "n1", Provider: model.ProviderAWS, ResourceType: model.ResourceCompute,
		Name: "n1", Status: model.StatusRunning,
	})
	require.NoError(t, err)

	engine := NewEngine(store, nil)
	a := &fakeAdapter{
		provider: model.ProviderAWS,
		result: adapter.DiscoveryResult{
			Nodes: []model.NodeInput{
				{ID: "n1", Provider: model.ProviderAWS, ResourceType: model.ResourceCompute, Name: "n1", Status: model.StatusStopped},
			},
		},
	}

	result, err := engine.DriftScan(ctx, a, nil)
	require.NoError(t, err)

	require.Len(t, result.DriftedNodes, 1)
	assert.Equal(t, "n1", result.DriftedNodes[0].Node.ID)
	require.Len(t, result.DriftedNodes[0].Changes, 1)
	assert.Equal(t, model.ChangeNodeDrifted, result.DriftedNodes[0].Changes[0].ChangeType)
	assert.Equal(t, model.DetectedViaDriftScan, result.DriftedNodes[0].Changes[0].DetectedVia)

	unchanged, err := store.GetNode(ctx, "n1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusRunning, unchanged.Status)
	assert.Equal(t, original.UpdatedAt, unchanged.UpdatedAt)

	timeline, err := store.GetNodeTimeline(ctx, "n1", 10)
	require.NoError(t, err)
	assert.Empty(t, timeline, "a scan must not append to the change log")
}

func TestDriftScan_ReportsNewAndDisappearedNodes(t *testing.T) {
	store := graph.NewMemoryStore()
	ctx := context.Background()
	stale, err := store.UpsertNode(ctx, model.NodeInput{
		ID: "stale1", Provider: model.ProviderAWS, ResourceType: model.ResourceCompute,
		Name: "stale1", Status: model.StatusRunning,
	})
	require.NoError(t, err)

	engine := NewEngine(store, nil)
	engine.StaleThreshold = -time.Hour // force every existing node to be considered stale

	a := &fakeAdapter{
		provider: model.ProviderAWS,
		result: adapter.DiscoveryResult{
			Nodes: []model.NodeInput{
				{ID: "new1", Provider: model.ProviderAWS, ResourceType: model.ResourceCompute, Name: "new1", Status: model.StatusRunning},
			},
		},
	}

	result, err := engine.DriftScan(ctx, a, nil)
	require.NoError(t, err)

	require.Len(t, result.NewNodes, 1)
	assert.Equal(t, "new1", result.NewNodes[0].ID)

	require.Len(t, result.DisappearedNodes, 1)
	assert.Equal(t, stale.ID, result.DisappearedNodes[0].ID)

	n, err := store.GetNode(ctx, "stale1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusRunning, n.Status, "a scan must not mutate status")
}
