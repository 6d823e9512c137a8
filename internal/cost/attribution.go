// Package cost implements cost attribution across arbitrary subgraphs,
// filters, or groups (spec.md §2 "Cost Attribution"), grounded on the
// teacher's internal/cost/analyzer.go provider/type cost breakdowns.
package cost

import (
	"context"
	"sort"

	"github.com/cloudgraph/ikg/internal/graph"
	"github.com/cloudgraph/ikg/pkg/model"
)

// Attribution is the aggregate cost result for a set of nodes.
type Attribution struct {
	TotalMonthly float64
	NodeCount    int
	ByProvider   map[model.Provider]float64
	ByType       map[model.ResourceType]float64
	TopNodes     []NodeCost
}

// NodeCost pairs a node id/name with its monthly cost, used for the
// top cost-driver roll-up.
type NodeCost struct {
	NodeID      string
	Name        string
	CostMonthly float64
}

// Attribute sums non-null costMonthly across the nodes matching
// filter, with provider and resource-type breakdowns and the top-N
// cost-driving nodes.
func Attribute(ctx context.Context, store graph.Store, filter model.NodeFilter, topN int) (Attribution, error) {
	nodes, err := store.QueryNodes(ctx, filter)
	if err != nil {
		return Attribution{}, err
	}
	return attributeNodes(nodes, topN), nil
}

// AttributeSubgraph sums cost over an explicit node set (e.g. a blast
// radius or dependency chain result).
func AttributeSubgraph(nodes []model.Node, topN int) Attribution {
	return attributeNodes(nodes, topN)
}

func attributeNodes(nodes []model.Node, topN int) Attribution {
	result := Attribution{
		ByProvider: make(map[model.Provider]float64),
		ByType:     make(map[model.ResourceType]float64),
	}
	var costed []NodeCost
	for _, n := range nodes {
		result.NodeCount++
		if n.CostMonthly == nil {
			continue
		}
		c := *n.CostMonthly
		result.TotalMonthly += c
		result.ByProvider[n.Provider] += c
		result.ByType[n.ResourceType] += c
		costed = append(costed, NodeCost{NodeID: n.ID, Name: n.Name, CostMonthly: c})
	}
	sort.Slice(costed, func(i, j int) bool { return costed[i].CostMonthly > costed[j].CostMonthly })
	if topN <= 0 {
		topN = 5
	}
	if len(costed) > topN {
		costed = costed[:topN]
	}
	result.TopNodes = costed
	return result
}
