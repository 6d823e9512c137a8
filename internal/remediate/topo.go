package remediate

import "github.com/cloudgraph/ikg/pkg/model"

// kahnOrder runs Kahn's algorithm on the subgraph induced by
// patchTargets using edges. Returns the ordered node ids and whether a
// full order was found (false means a cycle was present and the
// caller must fall back to the original order).
func kahnOrder(patchTargets []string, edges []model.Edge) ([]string, bool) {
	inSet := make(map[string]bool, len(patchTargets))
	for _, id := range patchTargets {
		inSet[id] = true
	}

	indegree := make(map[string]int, len(patchTargets))
	adj := make(map[string][]string)
	for _, id := range patchTargets {
		indegree[id] = 0
	}
	for _, e := range edges {
		if !inSet[e.SourceNodeID] || !inSet[e.TargetNodeID] {
			continue
		}
		adj[e.SourceNodeID] = append(adj[e.SourceNodeID], e.TargetNodeID)
		indegree[e.TargetNodeID]++
	}

	var queue []string
	for _, id := range patchTargets {
		if indegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	var order []string
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		order = append(order, n)
		for _, m := range adj[n] {
			indegree[m]--
			if indegree[m] == 0 {
				queue = append(queue, m)
			}
		}
	}

	if len(order) != len(patchTargets) {
		return nil, false
	}
	return order, true
}
