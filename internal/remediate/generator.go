package remediate

import (
	"sort"

	syncpkg "github.com/cloudgraph/ikg/internal/sync"
	"github.com/cloudgraph/ikg/pkg/model"
)

// driftedFieldsFromChanges builds DriftedField[] from changes whose
// type is node-drifted or node-updated and whose field is non-empty.
func driftedFieldsFromChanges(changes []model.Change) []DriftedField {
	var out []DriftedField
	for _, c := range changes {
		if c.Field == "" {
			continue
		}
		if c.ChangeType != model.ChangeNodeDrifted && c.ChangeType != model.ChangeNodeUpdated {
			continue
		}
		prev, next := "", ""
		if c.PreviousValue != nil {
			prev = *c.PreviousValue
		}
		if c.NewValue != nil {
			next = *c.NewValue
		}
		out = append(out, DriftedField{Field: c.Field, PreviousValue: prev, NewValue: next})
	}
	return out
}

// renderPatch dispatches to the dialect-specific renderer.
func renderPatch(node model.Node, fields []DriftedField, dialect Dialect, opts Options) (string, bool) {
	switch dialect {
	case DialectTerraform, DialectOpenTofu:
		return renderTerraform(node, fields, opts)
	case DialectCloudFormation:
		return renderCloudFormation(node, fields)
	case DialectPulumi:
		return renderPulumi(node, fields)
	default:
		return "", false
	}
}

// Generate builds a remediation plan from a drift scan result for the
// given dialect, per the §4.6 procedure: per-node patch rendering,
// risk assessment, topological ordering of the patch set, import
// block generation, and dependency warnings for sensitive fields
// crossing an edge within the patch set.
func Generate(driftResult syncpkg.DriftScanResult, dialect Dialect, opts Options) Plan {
	var plan Plan

	type built struct {
		patch       Patch
		nodeID      string
		fields      []DriftedField
		unremediable bool
	}
	var items []built
	fieldsByNode := map[string][]DriftedField{}

	for _, dn := range driftResult.DriftedNodes {
		fields := driftedFieldsFromChanges(dn.Changes)
		if len(fields) == 0 {
			continue
		}
		fieldsByNode[dn.Node.ID] = fields

		if !dialectSupportsProvider(dialect, dn.Node.Provider) {
			items = append(items, built{
				patch: Patch{NodeID: dn.Node.ID, Dialect: dialect, Risk: RiskHigh,
					Reason: "dialect does not support this provider"},
				nodeID: dn.Node.ID, unremediable: true,
			})
			continue
		}

		text, ok := renderPatch(dn.Node, fields, dialect, opts)
		if !ok {
			items = append(items, built{
				patch: Patch{NodeID: dn.Node.ID, Dialect: dialect, Risk: RiskHigh,
					Reason: "resource type has no mapping for this dialect"},
				nodeID: dn.Node.ID, unremediable: true,
			})
			continue
		}

		risk := classifyRisk(dn.Node, fields)
		importBlock := ""
		if opts.GenerateImports && (dialect == DialectTerraform || dialect == DialectOpenTofu) {
			if blk, ok := terraformImportBlock(dn.Node); ok {
				importBlock = blk
			}
		}
		items = append(items, built{
			patch: Patch{NodeID: dn.Node.ID, Dialect: dialect, Risk: risk, PatchText: text, ImportBlock: importBlock},
			nodeID: dn.Node.ID, fields: fields,
		})
	}

	for _, n := range driftResult.DisappearedNodes {
		plan.Unremediable = append(plan.Unremediable, Patch{
			NodeID: n.ID, Dialect: dialect, Risk: RiskHigh,
			Reason: "node has disappeared and cannot be remediated",
		})
	}

	// Order the renderable patch set topologically when edges are supplied.
	var renderableIDs []string
	renderableByID := map[string]built{}
	for _, it := range items {
		if it.unremediable {
			plan.Unremediable = append(plan.Unremediable, it.patch)
			continue
		}
		renderableIDs = append(renderableIDs, it.nodeID)
		renderableByID[it.nodeID] = it
	}

	ordered := renderableIDs
	if len(opts.Edges) > 0 {
		if o, ok := kahnOrder(renderableIDs, opts.Edges); ok {
			ordered = o
		}
	}

	for _, id := range ordered {
		it := renderableByID[id]
		if it.patch.Risk == RiskLow {
			plan.AutoRemediable = append(plan.AutoRemediable, it.patch)
		} else {
			plan.ManualReview = append(plan.ManualReview, it.patch)
		}
	}

	plan.DependencyWarnings = dependencyWarnings(fieldsByNode, opts.Edges)
	return plan
}

// dependencyWarnings implements §4.6's rule: for each edge u->v where
// both endpoints are in the patch set, if u's drifted fields include
// any sensitive field, emit a warning.
func dependencyWarnings(fieldsByNode map[string][]DriftedField, edges []model.Edge) []DependencyWarning {
	var warnings []DependencyWarning
	for _, e := range edges {
		srcFields, srcOK := fieldsByNode[e.SourceNodeID]
		_, tgtOK := fieldsByNode[e.TargetNodeID]
		if !srcOK || !tgtOK {
			continue
		}
		var sensitive []string
		for _, f := range srcFields {
			if isSensitiveDependencyField(f.Field) {
				sensitive = append(sensitive, f.Field)
			}
		}
		if len(sensitive) == 0 {
			continue
		}
		sort.Strings(sensitive)
		warnings = append(warnings, DependencyWarning{
			SourceNodeID: e.SourceNodeID, TargetNodeID: e.TargetNodeID,
			RelationshipType: e.RelationshipType, Fields: sensitive,
		})
	}
	return warnings
}
