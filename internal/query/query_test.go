package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudgraph/ikg/internal/graph"
	"github.com/cloudgraph/ikg/pkg/model"
)

func seedNode(t *testing.T, s *graph.MemoryStore, id string) model.Node {
	t.Helper()
	n, err := s.UpsertNode(context.Background(), model.NodeInput{
		ID: id, Provider: model.ProviderAWS, ResourceType: model.ResourceCompute,
		Name: id, Status: model.StatusRunning,
	})
	require.NoError(t, err)
	return n
}

func seedEdge(t *testing.T, s *graph.MemoryStore, src, dst string) {
	t.Helper()
	_, err := s.UpsertEdge(context.Background(), model.EdgeInput{
		ID: model.CanonicalEdgeID(src, model.RelDependsOn, dst), SourceNodeID: src, TargetNodeID: dst,
		RelationshipType: model.RelDependsOn, Confidence: 1.0,
	})
	require.NoError(t, err)
}

func pathGraph(t *testing.T) *graph.MemoryStore {
	s := graph.NewMemoryStore()
	for _, id := range []string{"a", "b", "c", "d"} {
		seedNode(t, s, id)
	}
	seedEdge(t, s, "a", "b")
	seedEdge(t, s, "b", "c")
	seedEdge(t, s, "c", "d")
	return s
}

func TestGetBlastRadius_S4(t *testing.T) {
	s := graph.NewMemoryStore()
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		seedNode(t, s, id)
	}
	seedEdge(t, s, "a", "b")
	seedEdge(t, s, "b", "c")
	seedEdge(t, s, "b", "d")
	seedEdge(t, s, "d", "e")

	depth2, err := GetBlastRadius(ctx, s, "b", 2, nil)
	require.NoError(t, err)
	assert.True(t, depth2.Found)
	assert.ElementsMatch(t, []string{"b"}, depth2.HopBuckets[0])
	assert.ElementsMatch(t, []string{"a", "c", "d"}, depth2.HopBuckets[1])
	assert.ElementsMatch(t, []string{"e"}, depth2.HopBuckets[2])
}

func TestGetBlastRadius_MissingRoot(t *testing.T) {
	s := graph.NewMemoryStore()
	res, err := GetBlastRadius(context.Background(), s, "missing", 2, nil)
	require.NoError(t, err)
	assert.False(t, res.Found)
}

func TestShortestPath_Symmetric(t *testing.T) {
	s := pathGraph(t)
	ctx := context.Background()

	forward, err := ShortestPath(ctx, s, "a", "d", nil)
	require.NoError(t, err)
	backward, err := ShortestPath(ctx, s, "d", "a", nil)
	require.NoError(t, err)

	require.True(t, forward.Found)
	require.True(t, backward.Found)
	assert.Equal(t, forward.Hops, backward.Hops)
	assert.Equal(t, reverse(forward.Path), backward.Path)
}

func TestShortestPath_Identity(t *testing.T) {
	s := pathGraph(t)
	res, err := ShortestPath(context.Background(), s, "a", "a", nil)
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, 0, res.Hops)
}

func TestShortestPath_NotFound(t *testing.T) {
	s := graph.NewMemoryStore()
	seedNode(t, s, "a")
	seedNode(t, s, "b")
	res, err := ShortestPath(context.Background(), s, "a", "b", nil)
	require.NoError(t, err)
	assert.False(t, res.Found)
}

func TestSPOFs_Path(t *testing.T) {
	s := pathGraph(t)
	nodes, err := SPOFs(context.Background(), s, model.NodeFilter{})
	require.NoError(t, err)

	var ids []string
	for _, n := range nodes {
		ids = append(ids, n.ID)
	}
	assert.ElementsMatch(t, []string{"b", "c"}, ids)
}

func TestSPOFs_Cycle(t *testing.T) {
	s := pathGraph(t)
	seedEdge(t, s, "d", "a")

	nodes, err := SPOFs(context.Background(), s, model.NodeFilter{})
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

func TestFindClusters_PartitionsNodeSet(t *testing.T) {
	s := graph.NewMemoryStore()
	seedNode(t, s, "a")
	seedNode(t, s, "b")
	seedNode(t, s, "iso")
	seedEdge(t, s, "a", "b")

	result, err := FindClusters(context.Background(), s, model.NodeFilter{})
	require.NoError(t, err)
	require.Len(t, result.Clusters, 1)
	assert.Len(t, result.Clusters[0].Nodes, 2)
	require.Len(t, result.Isolated, 1)
	assert.Equal(t, "iso", result.Isolated[0].ID)
}

func TestOrphans(t *testing.T) {
	s := graph.NewMemoryStore()
	seedNode(t, s, "a")
	seedNode(t, s, "b")
	seedNode(t, s, "iso")
	seedEdge(t, s, "a", "b")

	orphans, err := Orphans(context.Background(), s, model.NodeFilter{})
	require.NoError(t, err)
	require.Len(t, orphans, 1)
	assert.Equal(t, "iso", orphans[0].ID)
}

func reverse(in []string) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}
