package query

import (
	"context"
	"sort"

	"github.com/cloudgraph/ikg/internal/graph"
	"github.com/cloudgraph/ikg/pkg/model"
)

// Cluster is one connected component of the undirected graph.
type Cluster struct {
	Nodes []model.Node
}

// ClustersResult partitions the filtered node set into isolated
// (degree-0) nodes and multi-node clusters, sorted by size desc.
type ClustersResult struct {
	Clusters []Cluster
	Isolated []model.Node
}

// FindClusters computes connected components over the undirected
// graph induced by filter.
func FindClusters(ctx context.Context, store graph.Store, filter model.NodeFilter) (ClustersResult, error) {
	snap, err := buildAdjacencySnapshot(ctx, store, filter)
	if err != nil {
		return ClustersResult{}, err
	}

	ids := append([]string{}, snap.nodeIDs...)
	sort.Strings(ids)

	visited := make(map[string]bool, len(ids))
	var result ClustersResult

	for _, id := range ids {
		if visited[id] {
			continue
		}
		if len(snap.adjUndir[id]) == 0 {
			visited[id] = true
			result.Isolated = append(result.Isolated, snap.nodes[id])
			continue
		}
		var component []string
		frontier := []string{id}
		visited[id] = true
		for len(frontier) > 0 {
			var next []string
			for _, cur := range frontier {
				component = append(component, cur)
				for nb := range snap.adjUndir[cur] {
					if visited[nb] {
						continue
					}
					visited[nb] = true
					next = append(next, nb)
				}
			}
			frontier = next
		}
		sort.Strings(component)
		var nodes []model.Node
		for _, nid := range component {
			nodes = append(nodes, snap.nodes[nid])
		}
		result.Clusters = append(result.Clusters, Cluster{Nodes: nodes})
	}

	sort.Slice(result.Clusters, func(i, j int) bool {
		return len(result.Clusters[i].Nodes) > len(result.Clusters[j].Nodes)
	})
	sort.Slice(result.Isolated, func(i, j int) bool { return result.Isolated[i].ID < result.Isolated[j].ID })

	return result, nil
}
