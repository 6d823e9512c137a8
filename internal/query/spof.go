package query

import (
	"context"
	"sort"

	"github.com/cloudgraph/ikg/internal/graph"
	"github.com/cloudgraph/ikg/pkg/model"
)

// SPOFs returns the articulation points of the undirected graph
// induced by filter, via Tarjan's algorithm run iteratively (to avoid
// recursion depth limits on large graphs). A node u is an articulation
// point iff it is a DFS root with >=2 DFS children, or it is non-root
// and some child v has low[v] >= disc[u]. Graphs with fewer than 3
// nodes yield no SPOFs.
func SPOFs(ctx context.Context, store graph.Store, filter model.NodeFilter) ([]model.Node, error) {
	snap, err := buildAdjacencySnapshot(ctx, store, filter)
	if err != nil {
		return nil, err
	}
	if len(snap.nodeIDs) < 3 {
		return nil, nil
	}

	ids := append([]string{}, snap.nodeIDs...)
	sort.Strings(ids)

	disc := make(map[string]int)
	low := make(map[string]int)
	parent := make(map[string]string)
	isArticulation := make(map[string]bool)
	timer := 0

	type frame struct {
		node       string
		childIter  int
		neighbors  []string
		rootChild  int
	}

	for _, start := range ids {
		if _, visited := disc[start]; visited {
			continue
		}
		rootChildren := 0
		stack := []*frame{{node: start, neighbors: sortedNeighbors(snap, start)}}
		disc[start] = timer
		low[start] = timer
		timer++

		for len(stack) > 0 {
			top := stack[len(stack)-1]
			if top.childIter < len(top.neighbors) {
				next := top.neighbors[top.childIter]
				top.childIter++
				if next == parent[top.node] {
					continue
				}
				if _, visited := disc[next]; !visited {
					parent[next] = top.node
					if top.node == start {
						rootChildren++
					}
					disc[next] = timer
					low[next] = timer
					timer++
					stack = append(stack, &frame{node: next, neighbors: sortedNeighbors(snap, next)})
				} else {
					if disc[next] < low[top.node] {
						low[top.node] = disc[next]
					}
				}
			} else {
				stack = stack[:len(stack)-1]
				if len(stack) > 0 {
					par := stack[len(stack)-1]
					if low[top.node] < low[par.node] {
						low[par.node] = low[top.node]
					}
					if par.node != start && low[top.node] >= disc[par.node] {
						isArticulation[par.node] = true
					}
				}
			}
		}
		if rootChildren >= 2 {
			isArticulation[start] = true
		}
	}

	var out []string
	for id, is := range isArticulation {
		if is {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	var nodes []model.Node
	for _, id := range out {
		nodes = append(nodes, snap.nodes[id])
	}
	return nodes, nil
}

func sortedNeighbors(snap *adjacencySnapshot, id string) []string {
	var out []string
	for nb := range snap.adjUndir[id] {
		out = append(out, nb)
	}
	sort.Strings(out)
	return out
}
