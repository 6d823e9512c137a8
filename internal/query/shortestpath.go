package query

import (
	"context"

	"github.com/cloudgraph/ikg/internal/graph"
	"github.com/cloudgraph/ikg/pkg/model"
)

// ShortestPathResult is a BFS shortest path treating edges as
// undirected; identity path has zero hops.
type ShortestPathResult struct {
	Path  []string
	Edges []model.Edge
	Hops  int
	Found bool
}

// ShortestPath finds the shortest path between from and to via BFS
// with parent-and-edge tracking. If edgeTypes is non-empty, only
// matching edges are usable.
func ShortestPath(ctx context.Context, store graph.Store, from, to string, edgeTypes []model.RelationshipType) (ShortestPathResult, error) {
	if from == to {
		n, err := store.GetNode(ctx, from)
		if err != nil {
			return ShortestPathResult{}, err
		}
		if n == nil {
			return ShortestPathResult{}, nil
		}
		return ShortestPathResult{Path: []string{from}, Hops: 0, Found: true}, nil
	}

	fromNode, err := store.GetNode(ctx, from)
	if err != nil {
		return ShortestPathResult{}, err
	}
	toNode, err := store.GetNode(ctx, to)
	if err != nil {
		return ShortestPathResult{}, err
	}
	if fromNode == nil || toNode == nil {
		return ShortestPathResult{}, nil
	}

	type parentLink struct {
		node string
		edge model.Edge
	}
	parents := map[string]parentLink{from: {}}
	frontier := []string{from}

	for len(frontier) > 0 {
		var next []string
		for _, id := range frontier {
			one, err := store.GetNeighbors(ctx, id, 1, model.DirectionBoth, edgeTypes)
			if err != nil {
				return ShortestPathResult{}, err
			}
			for _, e := range one.Edges {
				other := e.SourceNodeID
				if other == id {
					other = e.TargetNodeID
				}
				if _, seen := parents[other]; seen {
					continue
				}
				parents[other] = parentLink{node: id, edge: e}
				if other == to {
					// reconstruct path
					path := []string{to}
					var edges []model.Edge
					cur := to
					for cur != from {
						link := parents[cur]
						edges = append([]model.Edge{link.edge}, edges...)
						path = append([]string{link.node}, path...)
						cur = link.node
					}
					return ShortestPathResult{Path: path, Edges: edges, Hops: len(edges), Found: true}, nil
				}
				next = append(next, other)
			}
		}
		frontier = next
	}
	return ShortestPathResult{}, nil
}
