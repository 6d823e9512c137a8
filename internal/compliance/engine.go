package compliance

import (
	"context"
	"fmt"
	"sort"

	"github.com/cloudgraph/ikg/internal/graph"
	"github.com/cloudgraph/ikg/internal/ikgerrors"
	"github.com/cloudgraph/ikg/internal/metrics"
	"github.com/cloudgraph/ikg/pkg/model"
)

// ControlResult is one control's outcome against one node (or a
// synthetic not-applicable result when no node qualifies).
type ControlResult struct {
	ControlID string
	NodeID    string
	Status    Status
	Reason    string
	Severity  Severity
}

// FrameworkReport aggregates one framework's evaluation.
type FrameworkReport struct {
	Framework       string
	Results         []ControlResult
	Passed          int
	Failed          int
	Warnings        int
	NotApplicable   int
	TotalControls   int
	Score           float64
	FailuresBySeverity map[Severity]int
}

// CriticalResource is a node with at least one failing critical/high
// severity control, ranked by failure count.
type CriticalResource struct {
	NodeID       string
	FailureCount int
}

// Assessment is a multi-framework evaluation result.
type Assessment struct {
	Frameworks       []FrameworkReport
	CriticalResources []CriticalResource
}

// Engine holds the built-in and runtime-registered controls.
type Engine struct {
	store    graph.Store
	controls []Control
	metrics  *metrics.Registry
}

// NewEngine constructs an engine with the built-in controls registered
// (SOC2, HIPAA, PCI-DSS, ISO 27001, CIS, NIST 800-53).
func NewEngine(store graph.Store) *Engine {
	e := &Engine{store: store}
	e.controls = append(e.controls, soc2Controls()...)
	e.controls = append(e.controls, hipaaControls()...)
	e.controls = append(e.controls, pciDSSControls()...)
	e.controls = append(e.controls, iso27001Controls()...)
	e.controls = append(e.controls, cisControls()...)
	e.controls = append(e.controls, nist80053Controls()...)
	return e
}

// Register adds a control at runtime (the "mechanism to register
// additional controls" spec.md §4.4 requires). Used both for
// hand-written Go closures and for rego-backed controls (see rego.go).
func (e *Engine) Register(c Control) {
	e.controls = append(e.controls, c)
}

// WithMetrics attaches a metrics registry the engine reports each
// framework's most recent score to. Optional.
func (e *Engine) WithMetrics(reg *metrics.Registry) *Engine {
	e.metrics = reg
	return e
}

func (e *Engine) controlsForFramework(framework string) []Control {
	var out []Control
	for _, c := range e.controls {
		if c.Framework == framework {
			out = append(out, c)
		}
	}
	return out
}

// Frameworks lists every distinct framework with registered controls.
func (e *Engine) Frameworks() []string {
	seen := map[string]bool{}
	var out []string
	for _, c := range e.controls {
		if !seen[c.Framework] {
			seen[c.Framework] = true
			out = append(out, c.Framework)
		}
	}
	sort.Strings(out)
	return out
}

// EvaluateFramework runs the evaluation procedure of spec.md §4.4 for
// one framework against the nodes matching filter.
func (e *Engine) EvaluateFramework(ctx context.Context, framework string, filter model.NodeFilter) (FrameworkReport, error) {
	nodes, err := e.store.QueryNodes(ctx, filter)
	if err != nil {
		return FrameworkReport{}, err
	}
	controls := e.controlsForFramework(framework)

	report := FrameworkReport{Framework: framework, FailuresBySeverity: map[Severity]int{}}

	for _, control := range controls {
		var applicable []model.Node
		for _, n := range nodes {
			if control.appliesTo(n.ResourceType) {
				applicable = append(applicable, n)
			}
		}
		if len(applicable) == 0 {
			report.Results = append(report.Results, ControlResult{
				ControlID: control.ID, Status: StatusNotApplicable, Severity: control.Severity,
			})
			report.NotApplicable++
			continue
		}
		for _, n := range applicable {
			result := e.evaluateOne(ctx, control, n)
			report.Results = append(report.Results, result)
			switch result.Status {
			case StatusPass:
				report.Passed++
			case StatusFail:
				report.Failed++
				report.FailuresBySeverity[control.Severity]++
			case StatusWarning:
				report.Warnings++
			case StatusNotApplicable:
				report.NotApplicable++
			}
		}
	}

	report.TotalControls = len(report.Results)
	applicableCount := report.TotalControls - report.NotApplicable
	if applicableCount == 0 {
		report.Score = 100
	} else {
		report.Score = round1(float64(report.Passed) / float64(applicableCount) * 100)
	}
	if e.metrics != nil {
		e.metrics.SetComplianceScore(framework, report.Score)
	}
	return report, nil
}

// evaluateOne evaluates a single control against a single node,
// isolating any evaluation exception as a fail result rather than
// aborting the framework (§4.4, §7 ControlEvaluationError).
func (e *Engine) evaluateOne(ctx context.Context, control Control, node model.Node) (result ControlResult) {
	result = ControlResult{ControlID: control.ID, NodeID: node.ID, Severity: control.Severity}
	defer func() {
		if r := recover(); r != nil {
			err := ikgerrors.NewControlEvaluationError(node.ID, fmt.Sprintf("panic: %v", r), nil)
			result.Status = StatusFail
			result.Reason = err.Message
		}
	}()

	neighbors, err := e.store.GetNeighbors(ctx, node.ID, 1, model.DirectionBoth, nil)
	if err != nil {
		result.Status = StatusFail
		result.Reason = err.Error()
		return result
	}
	var others []model.Node
	for _, n := range neighbors.Nodes {
		if n.ID != node.ID {
			others = append(others, n)
		}
	}
	var incidentTypes []model.RelationshipType
	for _, edge := range neighbors.Edges {
		incidentTypes = append(incidentTypes, edge.RelationshipType)
	}

	evalCtx := NewContext(node, others, incidentTypes)
	status := control.Evaluate(evalCtx)
	reason := ""
	if control.Reason != nil {
		reason = control.Reason(evalCtx, status)
	}
	result.Status = status
	result.Reason = reason
	return result
}

// EvaluateFrameworks runs EvaluateFramework over every named framework
// and derives the critical-resources roll-up.
func (e *Engine) EvaluateFrameworks(ctx context.Context, frameworks []string, filter model.NodeFilter) (Assessment, error) {
	var assessment Assessment
	failureCounts := map[string]int{}

	for _, fw := range frameworks {
		report, err := e.EvaluateFramework(ctx, fw, filter)
		if err != nil {
			return Assessment{}, err
		}
		assessment.Frameworks = append(assessment.Frameworks, report)
		for _, r := range report.Results {
			if r.Status == StatusFail && (r.Severity == SeverityCritical || r.Severity == SeverityHigh) {
				failureCounts[r.NodeID]++
			}
		}
	}

	for nodeID, count := range failureCounts {
		assessment.CriticalResources = append(assessment.CriticalResources, CriticalResource{NodeID: nodeID, FailureCount: count})
	}
	sort.Slice(assessment.CriticalResources, func(i, j int) bool {
		if assessment.CriticalResources[i].FailureCount != assessment.CriticalResources[j].FailureCount {
			return assessment.CriticalResources[i].FailureCount > assessment.CriticalResources[j].FailureCount
		}
		return assessment.CriticalResources[i].NodeID < assessment.CriticalResources[j].NodeID
	})

	return assessment, nil
}

func round1(f float64) float64 {
	return float64(int(f*10+0.5)) / 10
}
