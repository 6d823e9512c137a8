package model

// Edge is a directed relationship from SourceNodeID to TargetNodeID.
//
// Endpoints need not exist at ingestion time; dangling edges are legal
// to support staged loads. A topology query result must include only
// edges whose endpoints are both present in the result set.
type Edge struct {
	ID               string                 `json:"id"`
	SourceNodeID     string                 `json:"sourceNodeId"`
	TargetNodeID     string                 `json:"targetNodeId"`
	RelationshipType RelationshipType       `json:"relationshipType"`
	Confidence       float64                `json:"confidence"`
	DiscoveredVia    string                 `json:"discoveredVia"`
	Metadata         map[string]interface{} `json:"metadata"`

	// lastSeenAt is maintained internally by Storage (see SPEC_FULL.md /
	// DESIGN.md open-question decisions) to support stale-edge pruning;
	// it has no public JSON tag because spec.md's Edge shape does not
	// expose it.
	lastSeenAt int64 `json:"-"`
}

// EdgeInput is the shape an adapter returns for an edge.
type EdgeInput struct {
	ID               string
	SourceNodeID     string
	TargetNodeID     string
	RelationshipType RelationshipType
	Confidence       float64
	DiscoveredVia    string
	Metadata         map[string]interface{}
}

// CanonicalEdgeID builds the deterministic id for an edge from its triple.
func CanonicalEdgeID(sourceID string, rel RelationshipType, targetID string) string {
	return sourceID + "--" + string(rel) + "--" + targetID
}

// LastSeenUnixMilli returns the internally tracked last-seen timestamp.
func (e Edge) LastSeenUnixMilli() int64 { return e.lastSeenAt }

// WithLastSeenUnixMilli returns a copy of e with lastSeenAt updated.
func (e Edge) WithLastSeenUnixMilli(ms int64) Edge {
	e.lastSeenAt = ms
	return e
}
