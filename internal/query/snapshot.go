package query

import (
	"context"

	"github.com/cloudgraph/ikg/internal/graph"
	"github.com/cloudgraph/ikg/pkg/model"
)

// adjacencySnapshot is an in-memory undirected adjacency list over the
// nodes matched by a filter, built once and reused by the
// whole-graph analyses (orphans, critical nodes, clusters, SPOF) so
// each algorithm runs in O(V+E) instead of re-querying Storage per step.
type adjacencySnapshot struct {
	nodeIDs  []string
	nodes    map[string]model.Node
	adjUndir map[string]map[string]bool
	inDeg    map[string]int
	outDeg   map[string]int
	outAdj   map[string][]string // directed outgoing, for reachability
}

func buildAdjacencySnapshot(ctx context.Context, store graph.Store, filter model.NodeFilter) (*adjacencySnapshot, error) {
	nodes, err := store.QueryNodes(ctx, filter)
	if err != nil {
		return nil, err
	}
	snap := &adjacencySnapshot{
		nodes:    make(map[string]model.Node, len(nodes)),
		adjUndir: make(map[string]map[string]bool, len(nodes)),
		inDeg:    make(map[string]int, len(nodes)),
		outDeg:   make(map[string]int, len(nodes)),
		outAdj:   make(map[string][]string, len(nodes)),
	}
	inSet := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		snap.nodeIDs = append(snap.nodeIDs, n.ID)
		snap.nodes[n.ID] = n
		snap.adjUndir[n.ID] = make(map[string]bool)
		inSet[n.ID] = true
	}

	seenEdge := make(map[string]bool)
	for _, n := range nodes {
		edges, err := store.GetEdgesForNode(ctx, n.ID, model.DirectionBoth)
		if err != nil {
			return nil, err
		}
		for _, e := range edges {
			if seenEdge[e.ID] {
				continue
			}
			if !inSet[e.SourceNodeID] || !inSet[e.TargetNodeID] {
				continue
			}
			seenEdge[e.ID] = true
			snap.adjUndir[e.SourceNodeID][e.TargetNodeID] = true
			snap.adjUndir[e.TargetNodeID][e.SourceNodeID] = true
			snap.outDeg[e.SourceNodeID]++
			snap.inDeg[e.TargetNodeID]++
			snap.outAdj[e.SourceNodeID] = append(snap.outAdj[e.SourceNodeID], e.TargetNodeID)
		}
	}
	return snap, nil
}
