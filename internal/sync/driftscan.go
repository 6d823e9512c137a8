package sync

import (
	"context"
	"time"

	"github.com/cloudgraph/ikg/internal/adapter"
	"github.com/cloudgraph/ikg/pkg/model"
)

// DriftedNode pairs a persisted node with the drifted-field changes a
// scan observed for it.
type DriftedNode struct {
	Node    model.Node
	Changes []model.Change
}

// DriftScanResult is the read-only scan output (spec.md §4.2).
type DriftScanResult struct {
	DriftedNodes     []DriftedNode
	DisappearedNodes []model.Node
	NewNodes         []model.NodeInput
	ScannedAt        time.Time
}

// DriftScan runs steps 2-3 and 6 of the reconciliation algorithm
// without mutating storage and without appending changes. Discovered
// fields that differ are reported with changeType = node-drifted and
// detectedVia = drift-scan.
func (e *Engine) DriftScan(ctx context.Context, a adapter.Adapter, opts *adapter.DiscoveryOptions) (DriftScanResult, error) {
	now := time.Now().UTC()
	result := DriftScanResult{ScannedAt: now}

	discovery, err := a.Discover(ctx, opts)
	if err != nil {
		return result, err
	}

	existing := e.fetchExisting(ctx, discovery.Nodes)
	for i, in := range discovery.Nodes {
		prior := existing[i]
		if prior == nil {
			result.NewNodes = append(result.NewNodes, in)
			continue
		}
		diffs := mutableFieldDiffs(*prior, in)
		if len(diffs) == 0 {
			continue
		}
		var changes []model.Change
		for _, d := range diffs {
			changes = append(changes, model.Change{
				TargetID: in.ID, ChangeType: model.ChangeNodeDrifted,
				DetectedAt: now, DetectedVia: model.DetectedViaDriftScan,
				Field: d.Field, PreviousValue: model.StrPtr(d.Previous), NewValue: model.StrPtr(d.New),
			})
		}
		result.DriftedNodes = append(result.DriftedNodes, DriftedNode{Node: *prior, Changes: changes})
	}

	staleBefore := now.Add(-e.StaleThreshold)
	p := a.Provider()
	all, err := e.store.QueryNodes(ctx, model.NodeFilter{Provider: &p})
	if err != nil {
		return result, err
	}
	for _, n := range all {
		if n.Status != model.StatusDisappeared && n.LastSeenAt.Before(staleBefore) {
			result.DisappearedNodes = append(result.DisappearedNodes, n)
		}
	}
	return result, nil
}
