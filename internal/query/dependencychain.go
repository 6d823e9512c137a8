package query

import (
	"context"

	"github.com/cloudgraph/ikg/internal/graph"
	"github.com/cloudgraph/ikg/pkg/model"
)

// DependencyChainResult is the directional analogue of blast radius:
// upstream follows inbound edges only, downstream follows outbound
// edges only.
type DependencyChainResult struct {
	Nodes      []model.Node
	Edges      []model.Edge
	HopBuckets map[int][]string
	Found      bool
}

// GetDependencyChain returns the subgraph reachable from id within
// depth hops following only the requested direction.
func GetDependencyChain(ctx context.Context, store graph.Store, id string, direction model.Direction, depth int, edgeTypes []model.RelationshipType) (DependencyChainResult, error) {
	root, err := store.GetNode(ctx, id)
	if err != nil {
		return DependencyChainResult{}, err
	}
	if root == nil {
		return DependencyChainResult{HopBuckets: map[int][]string{}}, nil
	}

	neighbors, err := store.GetNeighbors(ctx, id, depth, direction, edgeTypes)
	if err != nil {
		return DependencyChainResult{}, err
	}

	hops := map[string]int{id: 0}
	frontier := []string{id}
	for h := 1; h <= depth && len(frontier) > 0; h++ {
		var next []string
		for _, nid := range frontier {
			one, err := store.GetNeighbors(ctx, nid, 1, direction, edgeTypes)
			if err != nil {
				return DependencyChainResult{}, err
			}
			for _, n := range one.Nodes {
				if n.ID == nid {
					continue
				}
				if _, seen := hops[n.ID]; seen {
					continue
				}
				hops[n.ID] = h
				next = append(next, n.ID)
			}
		}
		frontier = next
	}

	buckets := map[int][]string{}
	for _, n := range neighbors.Nodes {
		if h, ok := hops[n.ID]; ok {
			buckets[h] = append(buckets[h], n.ID)
		}
	}

	return DependencyChainResult{Nodes: neighbors.Nodes, Edges: neighbors.Edges, HopBuckets: buckets, Found: true}, nil
}
