// Package export renders a topology subgraph into the three formats
// spec.md §6 names: JSON, DOT and Mermaid.
package export

import "github.com/cloudgraph/ikg/pkg/model"

// Format is a requested topology export encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatDOT     Format = "dot"
	FormatMermaid Format = "mermaid"
)

// Options configures export rendering.
type Options struct {
	Format        Format
	IncludeCost   bool
	LowConfidence float64 // edges with Confidence below this render dashed; 0 disables
}

// Topology is the subgraph to export.
type Topology struct {
	Nodes []model.Node
	Edges []model.Edge
}

func (o Options) isLowConfidence(e model.Edge) bool {
	return o.LowConfidence > 0 && e.Confidence < o.LowConfidence
}
