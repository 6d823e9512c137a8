package query

import (
	"context"
	"sort"

	"github.com/cloudgraph/ikg/internal/graph"
	"github.com/cloudgraph/ikg/pkg/model"
)

// Orphans returns nodes with zero incident edges after applying filter.
func Orphans(ctx context.Context, store graph.Store, filter model.NodeFilter) ([]model.Node, error) {
	snap, err := buildAdjacencySnapshot(ctx, store, filter)
	if err != nil {
		return nil, err
	}
	var out []model.Node
	ids := append([]string{}, snap.nodeIDs...)
	sort.Strings(ids)
	for _, id := range ids {
		if len(snap.adjUndir[id]) == 0 {
			out = append(out, snap.nodes[id])
		}
	}
	return out, nil
}
