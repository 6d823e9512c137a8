package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cloudgraph/ikg/pkg/model"
)

// renderMermaid builds a `flowchart LR` with one subgraph per
// provider, resource-type-specific node shapes for database and VPC,
// low-confidence edges dashed, and cost appended to the node label
// when requested.
func renderMermaid(t Topology, opts Options) string {
	var b strings.Builder
	b.WriteString("flowchart LR\n")

	byProvider := map[model.Provider][]model.Node{}
	for _, n := range t.Nodes {
		byProvider[n.Provider] = append(byProvider[n.Provider], n)
	}
	var providers []string
	for p := range byProvider {
		providers = append(providers, string(p))
	}
	sort.Strings(providers)

	ids := mermaidIDTable(t.Nodes)

	for _, p := range providers {
		fmt.Fprintf(&b, "  subgraph %s[%q]\n", mermaidSafeID("provider_"+p), p)
		nodes := byProvider[model.Provider(p)]
		sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
		for _, n := range nodes {
			fmt.Fprintf(&b, "    %s\n", mermaidNodeDecl(ids[n.ID], n, opts))
		}
		b.WriteString("  end\n")
	}

	edges := append([]model.Edge(nil), t.Edges...)
	sort.Slice(edges, func(i, j int) bool { return edges[i].ID < edges[j].ID })
	for _, e := range edges {
		arrow := "-->"
		if opts.isLowConfidence(e) {
			arrow = "-.->"
		}
		fmt.Fprintf(&b, "  %s %s|%s| %s\n", ids[e.SourceNodeID], arrow, e.RelationshipType, ids[e.TargetNodeID])
	}

	return b.String()
}

func mermaidIDTable(nodes []model.Node) map[string]string {
	out := make(map[string]string, len(nodes))
	for i, n := range nodes {
		out[n.ID] = fmt.Sprintf("n%d", i)
	}
	return out
}

func mermaidNodeDecl(id string, n model.Node, opts Options) string {
	label := n.Name
	if label == "" {
		label = n.ID
	}
	if opts.IncludeCost && n.CostMonthly != nil {
		label = fmt.Sprintf("%s ($%.2f/mo)", label, *n.CostMonthly)
	}
	label = mermaidEscapeLabel(label)

	switch n.ResourceType {
	case model.ResourceDatabase:
		return fmt.Sprintf("%s[(%s)]", id, label)
	case model.ResourceVPC:
		return fmt.Sprintf("%s{{%s}}", id, label)
	default:
		return fmt.Sprintf("%s[%s]", id, label)
	}
}

func mermaidEscapeLabel(s string) string {
	r := strings.NewReplacer(`"`, "'", "\n", " ")
	return r.Replace(s)
}

func mermaidSafeID(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
