package export

import "fmt"

// Render dispatches a topology to the renderer for opts.Format. The
// subgraph is expected to already satisfy the invariant that every
// edge's endpoints are present in t.Nodes (the query layer enforces
// this); Render does not filter dangling edges itself.
func Render(t Topology, opts Options) (string, error) {
	switch opts.Format {
	case FormatJSON:
		b, err := renderJSON(t)
		if err != nil {
			return "", err
		}
		return string(b), nil
	case FormatDOT:
		return renderDOT(t, opts), nil
	case FormatMermaid:
		return renderMermaid(t, opts), nil
	default:
		return "", fmt.Errorf("export: unsupported format %q", opts.Format)
	}
}
