// Package compliance implements the rule-dispatch evaluation engine of
// spec.md §4.4: a registry of tagged control records evaluated over
// the graph, grounded on the teacher's internal/compliance/service.go
// service shape. Built-in controls are Go closures per spec.md §9's
// explicit "registry of closures" option.
package compliance

import (
	"github.com/cloudgraph/ikg/pkg/model"
)

// Severity is a control's failure severity.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Status is the outcome of evaluating one control against one node.
type Status string

const (
	StatusPass          Status = "pass"
	StatusFail          Status = "fail"
	StatusWarning       Status = "warning"
	StatusNotApplicable Status = "not-applicable"
)

// Context is what a control's Evaluate function receives: the node,
// its neighbors one hop in either direction, and relationship-type
// helpers.
type Context struct {
	Node      model.Node
	Neighbors []model.Node
	edgeTypes map[model.RelationshipType]bool
}

// NewContext builds an evaluation context.
func NewContext(node model.Node, neighbors []model.Node, incidentTypes []model.RelationshipType) Context {
	set := make(map[model.RelationshipType]bool, len(incidentTypes))
	for _, t := range incidentTypes {
		set[t] = true
	}
	return Context{Node: node, Neighbors: neighbors, edgeTypes: set}
}

// HasEdge reports whether relType is incident on the node being evaluated.
func (c Context) HasEdge(relType model.RelationshipType) bool {
	return c.edgeTypes[relType]
}

// RelationshipTypes returns the set of relationship types incident on
// the node being evaluated.
func (c Context) RelationshipTypes() []model.RelationshipType {
	out := make([]model.RelationshipType, 0, len(c.edgeTypes))
	for t := range c.edgeTypes {
		out = append(out, t)
	}
	return out
}

// Control is a declarative compliance rule: a predicate over a node
// plus its neighborhood.
type Control struct {
	ID                    string
	Framework             string
	Section               string
	Title                 string
	Description           string
	Severity              Severity
	ApplicableResourceTypes []model.ResourceType
	Evaluate              func(ctx Context) Status
	Reason                func(ctx Context, status Status) string
}

func (c Control) appliesTo(rt model.ResourceType) bool {
	for _, t := range c.ApplicableResourceTypes {
		if t == rt {
			return true
		}
	}
	return false
}
