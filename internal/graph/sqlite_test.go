package graph

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudgraph/ikg/pkg/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ikg.db")
	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func mustUpsertSQLiteNode(t *testing.T, s *SQLiteStore, id string) model.Node {
	t.Helper()
	n, err := s.UpsertNode(context.Background(), model.NodeInput{
		ID: id, Provider: model.ProviderAWS, ResourceType: model.ResourceCompute,
		Name: id, Status: model.StatusRunning,
	})
	require.NoError(t, err)
	return n
}

func TestSQLiteStore_UpsertNode_PreservesDiscoveredAt(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()
	first := mustUpsertSQLiteNode(t, s, "n1")

	time.Sleep(10 * time.Millisecond)
	second, err := s.UpsertNode(ctx, model.NodeInput{ID: "n1", Name: "n1-renamed", Status: model.StatusRunning})
	require.NoError(t, err)

	assert.Equal(t, first.DiscoveredAt.Unix(), second.DiscoveredAt.Unix())
	assert.Equal(t, "n1-renamed", second.Name)
}

func TestSQLiteStore_GetNeighbors_MonotoneInDepth(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		mustUpsertSQLiteNode(t, s, id)
	}
	edges := [][3]string{{"ab", "a", "b"}, {"bc", "b", "c"}, {"bd", "b", "d"}, {"de", "d", "e"}}
	for _, e := range edges {
		_, err := s.UpsertEdge(ctx, model.EdgeInput{ID: e[0], SourceNodeID: e[1], TargetNodeID: e[2], RelationshipType: model.RelDependsOn, Confidence: 1.0})
		require.NoError(t, err)
	}

	d1, err := s.GetNeighbors(ctx, "b", 1, model.DirectionBoth, nil)
	require.NoError(t, err)
	d2, err := s.GetNeighbors(ctx, "b", 2, model.DirectionBoth, nil)
	require.NoError(t, err)

	ids1 := nodeIDSet(d1.Nodes)
	ids2 := nodeIDSet(d2.Nodes)
	assert.Equal(t, map[string]bool{"a": true, "b": true, "c": true, "d": true}, ids1)
	assert.Equal(t, map[string]bool{"a": true, "b": true, "c": true, "d": true, "e": true}, ids2)
	for id := range ids1 {
		assert.True(t, ids2[id])
	}
}

func TestSQLiteStore_DeleteStaleEdges(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()
	mustUpsertSQLiteNode(t, s, "a")
	mustUpsertSQLiteNode(t, s, "b")
	_, err := s.UpsertEdge(ctx, model.EdgeInput{ID: "ab", SourceNodeID: "a", TargetNodeID: "b", RelationshipType: model.RelDependsOn, Confidence: 1.0})
	require.NoError(t, err)

	removed, err := s.DeleteStaleEdges(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	edges, err := s.GetEdgesForNode(ctx, "a", model.DirectionDownstream)
	require.NoError(t, err)
	assert.Empty(t, edges)
}

func TestSQLiteStore_MarkNodesDisappeared(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()
	mustUpsertSQLiteNode(t, s, "stale1")

	ids, err := s.MarkNodesDisappeared(ctx, time.Now().Add(time.Hour), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"stale1"}, ids)

	n, err := s.GetNode(ctx, "stale1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusDisappeared, n.Status)
}

func TestSQLiteStore_ChangeTimelineRoundTrip(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()
	mustUpsertSQLiteNode(t, s, "n1")

	prev, next := "running", "stopped"
	err := s.AppendChanges(ctx, []model.Change{
		{ID: "c1", TargetID: "n1", ChangeType: model.ChangeNodeUpdated, DetectedAt: time.Now(), Field: "status", PreviousValue: &prev, NewValue: &next},
	})
	require.NoError(t, err)

	timeline, err := s.GetNodeTimeline(ctx, "n1", 10)
	require.NoError(t, err)
	require.Len(t, timeline, 1)
	assert.Equal(t, "status", timeline[0].Field)
	assert.Equal(t, "running", *timeline[0].PreviousValue)
	assert.Equal(t, "stopped", *timeline[0].NewValue)
}

func TestSQLiteStore_SnapshotRoundTrip(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()
	err := s.SaveSnapshot(ctx, model.Snapshot{CreatedAt: time.Now(), TotalCostMonthly: 150.0, NodeCount: 3})
	require.NoError(t, err)

	snaps, err := s.ListSnapshots(ctx, model.SnapshotFilter{})
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.InDelta(t, 150.0, snaps[0].TotalCostMonthly, 0.001)
	assert.Equal(t, 3, snaps[0].NodeCount)
}
