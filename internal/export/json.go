package export

import "encoding/json"

// jsonDoc is the full-fidelity export shape: every field of every node
// and edge in the subgraph.
type jsonDoc struct {
	Nodes interface{} `json:"nodes"`
	Edges interface{} `json:"edges"`
}

func renderJSON(t Topology) ([]byte, error) {
	doc := jsonDoc{Nodes: t.Nodes, Edges: t.Edges}
	return json.MarshalIndent(doc, "", "  ")
}
