// Package sync implements the reconciliation cycle that drives
// discovery results into Storage and produces the append-only change
// log (spec.md §4.2), plus a read-only drift scan. Grounded on the
// teacher's worker-pool drift detector and recursive comparator.
package sync

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cloudgraph/ikg/internal/adapter"
	"github.com/cloudgraph/ikg/internal/config"
	"github.com/cloudgraph/ikg/internal/graph"
	"github.com/cloudgraph/ikg/internal/logx"
	"github.com/cloudgraph/ikg/internal/metrics"
	"github.com/cloudgraph/ikg/pkg/model"
)

// Engine drives reconciliation cycles against a Store. At most one
// cycle per provider may be in flight; the engine enforces that itself
// with a mutex-guarded per-provider flag (a RunSync for a provider whose
// cycle is still running returns an error instead of waiting), since the
// core assumes Storage only serializes at the row level.
type Engine struct {
	store   graph.Store
	log     logx.Logger
	metrics *metrics.Registry

	StaleThreshold     time.Duration
	PruneOrphanedEdges bool
	EnableDriftDetect  bool
	MaxWorkers         int

	mu          sync.Mutex
	providerRun map[model.Provider]bool
}

// NewEngine builds a reconciliation engine over store.
func NewEngine(store graph.Store, log logx.Logger) *Engine {
	if log == nil {
		log = logx.Get()
	}
	return &Engine{
		store:              store,
		log:                log,
		StaleThreshold:     24 * time.Hour,
		PruneOrphanedEdges: true,
		EnableDriftDetect:  true,
		MaxWorkers:         8,
		providerRun:        make(map[model.Provider]bool),
	}
}

// WithMetrics attaches a metrics registry the engine reports sync cycle
// counts and the current node total to. Optional; a nil registry (the
// NewEngine default) disables instrumentation entirely.
func (e *Engine) WithMetrics(reg *metrics.Registry) *Engine {
	e.metrics = reg
	return e
}

// NewEngineFromConfig builds a reconciliation engine whose tunables
// come from cfg.Engine instead of NewEngine's hardcoded defaults,
// validating cfg first.
func NewEngineFromConfig(cfg *config.Config, store graph.Store, log logx.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	e := NewEngine(store, log)
	e.StaleThreshold = time.Duration(cfg.Engine.StaleThresholdMs) * time.Millisecond
	e.PruneOrphanedEdges = cfg.Engine.PruneOrphanedEdges
	e.EnableDriftDetect = cfg.Engine.EnableDriftDetection
	return e, nil
}

func (e *Engine) beginCycle(provider model.Provider) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.providerRun[provider] {
		return fmt.Errorf("sync already in progress for provider %s", provider)
	}
	e.providerRun[provider] = true
	return nil
}

func (e *Engine) endCycle(provider model.Provider) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.providerRun, provider)
}

// RunSync executes one reconciliation cycle for a single provider,
// following the nine steps of spec.md §4.2.
func (e *Engine) RunSync(ctx context.Context, a adapter.Adapter, opts *adapter.DiscoveryOptions) (model.SyncRecord, error) {
	provider := a.Provider()
	if err := e.beginCycle(provider); err != nil {
		return model.SyncRecord{}, err
	}
	defer e.endCycle(provider)

	started := time.Now().UTC()
	rec := model.SyncRecord{
		ID:        uuid.NewString(),
		Provider:  provider,
		Status:    model.SyncRunning,
		StartedAt: started,
	}

	result, discoverErr := a.Discover(ctx, opts)
	if discoverErr != nil {
		rec.Errors = append(rec.Errors, discoverErr.Error())
		rec.Status = model.SyncFailed
		completed := time.Now().UTC()
		rec.CompletedAt = &completed
		rec.DurationMs = completed.Sub(started).Milliseconds()
		if err := e.store.SaveSyncRecord(ctx, rec); err != nil {
			return rec, err
		}
		e.observeCompletion(ctx, rec)
		return rec, nil
	}

	rec.NodesDiscovered = len(result.Nodes)
	rec.EdgesDiscovered = len(result.Edges)
	for _, re := range result.Errors {
		rec.Errors = append(rec.Errors, fmt.Sprintf("%s/%s: %s", re.ResourceType, re.Region, re.Message))
	}

	var changes []model.Change
	now := time.Now().UTC()

	// Step 3: diff each discovered node against the persisted view,
	// fetched concurrently via a bounded worker pool (grounded on the
	// teacher's detector worker-pool idiom), diffed sequentially once
	// fetched to keep change ordering deterministic.
	existing := e.fetchExisting(ctx, result.Nodes)
	for i, in := range result.Nodes {
		prior := existing[i]
		if prior == nil {
			changes = append(changes, model.Change{
				ID: uuid.NewString(), TargetID: in.ID, ChangeType: model.ChangeNodeCreated,
				DetectedAt: now, CorrelationID: rec.ID, DetectedVia: model.DetectedViaSync,
			})
			rec.NodesCreated++
			continue
		}
		if !e.EnableDriftDetect {
			continue
		}
		diffs := mutableFieldDiffs(*prior, in)
		if len(diffs) > 0 {
			rec.NodesUpdated++
		}
		for _, d := range diffs {
			changes = append(changes, model.Change{
				ID: uuid.NewString(), TargetID: in.ID, ChangeType: model.ChangeNodeUpdated,
				DetectedAt: now, CorrelationID: rec.ID, DetectedVia: model.DetectedViaSync,
				Field: d.Field, PreviousValue: model.StrPtr(d.Previous), NewValue: model.StrPtr(d.New),
			})
			if d.Field == "costMonthly" {
				changes = append(changes, model.Change{
					ID: uuid.NewString(), TargetID: in.ID, ChangeType: model.ChangeCostChanged,
					DetectedAt: now, CorrelationID: rec.ID, DetectedVia: model.DetectedViaSync,
					Field: d.Field, PreviousValue: model.StrPtr(d.Previous), NewValue: model.StrPtr(d.New),
				})
			}
		}
	}

	// Step 4: batch-upsert all discovered nodes.
	if _, err := e.store.UpsertNodes(ctx, result.Nodes); err != nil {
		return e.fail(ctx, rec, started, err)
	}

	// Step 5: emit edge-created for genuinely new edges, then upsert all.
	for _, in := range result.Edges {
		existingEdge, err := e.store.GetEdge(ctx, in.ID)
		if err != nil {
			return e.fail(ctx, rec, started, err)
		}
		if existingEdge == nil {
			changes = append(changes, model.Change{
				ID: uuid.NewString(), TargetID: in.ID, ChangeType: model.ChangeEdgeCreated,
				DetectedAt: now, CorrelationID: rec.ID, DetectedVia: model.DetectedViaSync,
			})
			rec.EdgesCreated++
		}
	}
	if _, err := e.store.UpsertEdges(ctx, result.Edges); err != nil {
		return e.fail(ctx, rec, started, err)
	}

	// Step 6: mark stale nodes disappeared.
	staleBefore := now.Add(-e.StaleThreshold)
	p := provider
	disappearedIDs, err := e.store.MarkNodesDisappeared(ctx, staleBefore, &p)
	if err != nil {
		return e.fail(ctx, rec, started, err)
	}
	for _, id := range disappearedIDs {
		changes = append(changes, model.Change{
			ID: uuid.NewString(), TargetID: id, ChangeType: model.ChangeNodeDisappeared,
			DetectedAt: now, CorrelationID: rec.ID, DetectedVia: model.DetectedViaSync,
			Field: "status", NewValue: model.StrPtr(string(model.StatusDisappeared)),
		})
	}
	rec.NodesDisappeared = len(disappearedIDs)

	// Step 7: prune stale edges if enabled.
	if e.PruneOrphanedEdges {
		removed, err := e.store.DeleteStaleEdges(ctx, staleBefore)
		if err != nil {
			return e.fail(ctx, rec, started, err)
		}
		rec.EdgesRemoved = removed
	}

	// Step 8: append all accumulated changes atomically, in production order.
	if len(changes) > 0 {
		if err := e.store.AppendChanges(ctx, changes); err != nil {
			return e.fail(ctx, rec, started, err)
		}
	}
	rec.ChangesRecorded = len(changes)

	// Step 9: finalize.
	if len(rec.Errors) > 0 {
		rec.Status = model.SyncPartial
	} else {
		rec.Status = model.SyncCompleted
	}
	completed := time.Now().UTC()
	rec.CompletedAt = &completed
	rec.DurationMs = completed.Sub(started).Milliseconds()

	if err := e.store.SaveSyncRecord(ctx, rec); err != nil {
		return rec, err
	}
	e.log.Info("sync cycle completed", logx.String("provider", string(provider)), logx.String("status", string(rec.Status)), logx.Int("changes", rec.ChangesRecorded))
	e.observeCompletion(ctx, rec)
	return rec, nil
}

func (e *Engine) fail(ctx context.Context, rec model.SyncRecord, started time.Time, err error) (model.SyncRecord, error) {
	rec.Errors = append(rec.Errors, err.Error())
	rec.Status = model.SyncFailed
	completed := time.Now().UTC()
	rec.CompletedAt = &completed
	rec.DurationMs = completed.Sub(started).Milliseconds()
	_ = e.store.SaveSyncRecord(ctx, rec)
	e.log.Error("sync cycle failed", logx.String("provider", string(rec.Provider)), logx.ErrField(err))
	e.observeCompletion(ctx, rec)
	return rec, err
}

// observeCompletion reports the finished cycle's terminal status and the
// store's current node total to the metrics registry, if one is attached.
func (e *Engine) observeCompletion(ctx context.Context, rec model.SyncRecord) {
	if e.metrics == nil {
		return
	}
	e.metrics.ObserveSync(string(rec.Provider), string(rec.Status))
	if nodes, err := e.store.QueryNodes(ctx, model.NodeFilter{}); err == nil {
		e.metrics.SetNodesTotal(len(nodes))
	}
}

// fetchExisting looks up the persisted node for each discovered input,
// concurrently, bounded by MaxWorkers — the same buffered-channel
// semaphore + WaitGroup pattern the teacher's drift detector uses.
func (e *Engine) fetchExisting(ctx context.Context, inputs []model.NodeInput) []*model.Node {
	out := make([]*model.Node, len(inputs))
	if len(inputs) == 0 {
		return out
	}
	workers := e.MaxWorkers
	if workers <= 0 {
		workers = 1
	}
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i, in := range inputs {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, id string) {
			defer wg.Done()
			defer func() { <-sem }()
			n, err := e.store.GetNode(ctx, id)
			if err != nil {
				e.log.Warn("failed to fetch existing node", logx.String("nodeId", id), logx.ErrField(err))
				return
			}
			out[i] = n
		}(i, in.ID)
	}
	wg.Wait()
	return out
}
