package query

import (
	"context"
	"sort"

	"github.com/cloudgraph/ikg/internal/graph"
	"github.com/cloudgraph/ikg/pkg/model"
)

// CriticalNode is one node's structural-importance ranking.
type CriticalNode struct {
	Node              model.Node
	InDegree          int
	OutDegree         int
	Degree            int
	ReachabilityRatio float64
	Score             float64
}

// CriticalNodes ranks nodes by degree x reachabilityRatio, where
// reachabilityRatio is the fraction of the filtered node set reachable
// downstream from that node.
func CriticalNodes(ctx context.Context, store graph.Store, filter model.NodeFilter, topN int) ([]CriticalNode, error) {
	snap, err := buildAdjacencySnapshot(ctx, store, filter)
	if err != nil {
		return nil, err
	}
	total := len(snap.nodeIDs)
	var out []CriticalNode
	for _, id := range snap.nodeIDs {
		reachable := downstreamReachableCount(snap, id)
		ratio := 0.0
		if total > 0 {
			ratio = float64(reachable) / float64(total)
		}
		degree := snap.inDeg[id] + snap.outDeg[id]
		out = append(out, CriticalNode{
			Node: snap.nodes[id], InDegree: snap.inDeg[id], OutDegree: snap.outDeg[id],
			Degree: degree, ReachabilityRatio: ratio, Score: float64(degree) * ratio,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Node.ID < out[j].Node.ID
	})
	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out, nil
}

func downstreamReachableCount(snap *adjacencySnapshot, root string) int {
	visited := map[string]bool{root: true}
	frontier := []string{root}
	count := 0
	for len(frontier) > 0 {
		var next []string
		for _, id := range frontier {
			for _, nb := range snap.outAdj[id] {
				if visited[nb] {
					continue
				}
				visited[nb] = true
				count++
				next = append(next, nb)
			}
		}
		frontier = next
	}
	return count
}
