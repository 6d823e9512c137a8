package compliance

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/rego"

	"github.com/cloudgraph/ikg/pkg/model"
)

// RegoControlSpec describes a control whose evaluation is delegated to
// a Rego policy instead of a Go closure, the secondary registration
// mechanism spec.md §9 allows alongside the built-in closures.
type RegoControlSpec struct {
	ID                      string
	Framework               string
	Section                 string
	Title                   string
	Severity                Severity
	ApplicableResourceTypes []model.ResourceType
	Module                  string // Rego source, package ikg
	Query                   string // e.g. "data.ikg.allow"
}

// regoInput is the shape passed into the policy as `input`.
type regoInput struct {
	Node      model.Node                  `json:"node"`
	Neighbors []model.Node                `json:"neighbors"`
	EdgeTypes []model.RelationshipType    `json:"edgeTypes"`
}

// CompileRegoControl prepares a query against the given module so it
// can be evaluated repeatedly without recompiling per node.
func CompileRegoControl(ctx context.Context, spec RegoControlSpec) (*rego.PreparedEvalQuery, error) {
	r := rego.New(
		rego.Query(spec.Query),
		rego.Module(spec.ID+".rego", spec.Module),
	)
	pq, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("compile rego control %s: %w", spec.ID, err)
	}
	return &pq, nil
}

// RegisterRegoControl compiles spec's module and registers it on e as
// an ordinary Control, so it participates in EvaluateFramework exactly
// like a built-in closure control.
func (e *Engine) RegisterRegoControl(ctx context.Context, spec RegoControlSpec) error {
	pq, err := CompileRegoControl(ctx, spec)
	if err != nil {
		return err
	}

	c := Control{
		ID:                      spec.ID,
		Framework:               spec.Framework,
		Section:                 spec.Section,
		Title:                   spec.Title,
		Severity:                spec.Severity,
		ApplicableResourceTypes: spec.ApplicableResourceTypes,
		Evaluate: func(evalCtx Context) Status {
			input := regoInput{
				Node:      evalCtx.Node,
				Neighbors: evalCtx.Neighbors,
				EdgeTypes: evalCtx.RelationshipTypes(),
			}
			rs, err := pq.Eval(context.Background(), rego.EvalInput(input))
			if err != nil {
				panic(fmt.Sprintf("rego eval error: %v", err))
			}
			if len(rs) == 0 || len(rs[0].Expressions) == 0 {
				return StatusWarning
			}
			allowed, ok := rs[0].Expressions[0].Value.(bool)
			if !ok {
				return StatusWarning
			}
			if allowed {
				return StatusPass
			}
			return StatusFail
		},
		Reason: func(evalCtx Context, status Status) string {
			return fmt.Sprintf("evaluated by rego policy %s", spec.ID)
		},
	}
	e.Register(c)
	return nil
}
