package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cloudgraph/ikg/pkg/model"
)

// renderDOT builds a Graphviz "digraph" with one subgraph cluster per
// provider, edge labels set to the relationship type, low-confidence
// edges dashed, and cost appended to the node label when requested.
func renderDOT(t Topology, opts Options) string {
	var b strings.Builder
	b.WriteString("digraph topology {\n")
	b.WriteString("  rankdir=LR;\n")

	byProvider := map[model.Provider][]model.Node{}
	for _, n := range t.Nodes {
		byProvider[n.Provider] = append(byProvider[n.Provider], n)
	}
	var providers []string
	for p := range byProvider {
		providers = append(providers, string(p))
	}
	sort.Strings(providers)

	for _, p := range providers {
		fmt.Fprintf(&b, "  subgraph \"cluster_%s\" {\n", dotEscape(p))
		fmt.Fprintf(&b, "    label=%q;\n", p)
		nodes := byProvider[model.Provider(p)]
		sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
		for _, n := range nodes {
			fmt.Fprintf(&b, "    %q [label=%q];\n", n.ID, dotNodeLabel(n, opts))
		}
		b.WriteString("  }\n")
	}

	edges := append([]model.Edge(nil), t.Edges...)
	sort.Slice(edges, func(i, j int) bool { return edges[i].ID < edges[j].ID })
	for _, e := range edges {
		label := string(e.RelationshipType)
		if opts.isLowConfidence(e) {
			fmt.Fprintf(&b, "  %q -> %q [label=%q, style=dashed];\n", e.SourceNodeID, e.TargetNodeID, label)
		} else {
			fmt.Fprintf(&b, "  %q -> %q [label=%q];\n", e.SourceNodeID, e.TargetNodeID, label)
		}
	}

	b.WriteString("}\n")
	return b.String()
}

func dotNodeLabel(n model.Node, opts Options) string {
	label := n.Name
	if label == "" {
		label = n.ID
	}
	if opts.IncludeCost && n.CostMonthly != nil {
		label = fmt.Sprintf("%s\\n$%.2f/mo", label, *n.CostMonthly)
	}
	return label
}

func dotEscape(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
