package model

import (
	"strings"
	"time"
)

// Node represents one infrastructure resource in the graph.
//
// id follows the canonical form "provider::region:resourceType:nativeId"
// verbatim as supplied by the adapter; the core never reformats it.
type Node struct {
	ID           string                 `json:"id"`
	Provider     Provider               `json:"provider"`
	ResourceType ResourceType           `json:"resourceType"`
	NativeID     string                 `json:"nativeId"`
	Name         string                 `json:"name"`
	Region       string                 `json:"region"`
	Account      string                 `json:"account"`
	Owner        *string                `json:"owner,omitempty"`
	CreatedAt    *time.Time             `json:"createdAt,omitempty"`
	Status       Status                 `json:"status"`
	Tags         map[string]string      `json:"tags"`
	Metadata     map[string]interface{} `json:"metadata"`
	CostMonthly  *float64               `json:"costMonthly,omitempty"`

	DiscoveredAt time.Time `json:"discoveredAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	LastSeenAt   time.Time `json:"lastSeenAt"`
}

// NodeInput is the shape an adapter returns: a Node without the
// storage-maintained timestamps.
type NodeInput struct {
	ID           string
	Provider     Provider
	ResourceType ResourceType
	NativeID     string
	Name         string
	Region       string
	Account      string
	Owner        *string
	CreatedAt    *time.Time
	Status       Status
	Tags         map[string]string
	Metadata     map[string]interface{}
	CostMonthly  *float64
}

// Clone returns a deep-enough copy for diffing and storage round-trips.
func (n Node) Clone() Node {
	out := n
	if n.Tags != nil {
		out.Tags = make(map[string]string, len(n.Tags))
		for k, v := range n.Tags {
			out.Tags[k] = v
		}
	}
	if n.Metadata != nil {
		out.Metadata = make(map[string]interface{}, len(n.Metadata))
		for k, v := range n.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}

// NodeFilter narrows a node query. Zero-value fields are unconstrained.
type NodeFilter struct {
	Provider     *Provider
	Account      string
	Region       string
	ResourceType *ResourceType
	Status       []Status
	Tags         map[string]string
	NameContains string
}

// Matches reports whether n satisfies every populated constraint in f.
func (f NodeFilter) Matches(n Node) bool {
	if f.Provider != nil && n.Provider != *f.Provider {
		return false
	}
	if f.Account != "" && n.Account != f.Account {
		return false
	}
	if f.Region != "" && n.Region != f.Region {
		return false
	}
	if f.ResourceType != nil && n.ResourceType != *f.ResourceType {
		return false
	}
	if len(f.Status) > 0 {
		found := false
		for _, s := range f.Status {
			if n.Status == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for k, v := range f.Tags {
		if n.Tags[k] != v {
			return false
		}
	}
	if f.NameContains != "" && !strings.Contains(strings.ToLower(n.Name), strings.ToLower(f.NameContains)) {
		return false
	}
	return true
}
