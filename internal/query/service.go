package query

import (
	"context"

	"github.com/cloudgraph/ikg/internal/config"
	"github.com/cloudgraph/ikg/internal/graph"
	"github.com/cloudgraph/ikg/internal/metrics"
	"github.com/cloudgraph/ikg/pkg/model"
)

// Service wraps the package's free traversal functions with the
// ambient concerns a caller expects from an entry point: query-latency
// instrumentation and a traversal-depth ceiling. The underlying
// algorithms stay package-level functions operating directly on a
// graph.Store, since that's how this package's own tests exercise
// them; Service is the thin front door production callers use.
type Service struct {
	store             graph.Store
	metrics           *metrics.Registry
	maxTraversalDepth int
}

// NewService builds a Service with no depth ceiling and no metrics.
func NewService(store graph.Store) *Service {
	return &Service{store: store}
}

// WithMetrics attaches a metrics registry that records the latency of
// each operation below, keyed by operation name.
func (s *Service) WithMetrics(reg *metrics.Registry) *Service {
	s.metrics = reg
	return s
}

// WithMaxTraversalDepth clamps every depth argument passed to the
// hop-bounded operations below to at most max. A non-positive max
// disables the ceiling.
func (s *Service) WithMaxTraversalDepth(max int) *Service {
	s.maxTraversalDepth = max
	return s
}

// NewServiceFromConfig builds a Service with its depth ceiling taken
// from cfg.Engine.MaxTraversalDepth.
func NewServiceFromConfig(cfg *config.Config, store graph.Store) *Service {
	return &Service{store: store, maxTraversalDepth: cfg.Engine.MaxTraversalDepth}
}

func (s *Service) clampDepth(depth int) int {
	if s.maxTraversalDepth > 0 && depth > s.maxTraversalDepth {
		return s.maxTraversalDepth
	}
	return depth
}

func (s *Service) timeIt(operation string) func() {
	if s.metrics == nil {
		return func() {}
	}
	return s.metrics.TimeQuery(operation)
}

// GetBlastRadius delegates to the package-level GetBlastRadius, timed
// and depth-clamped.
func (s *Service) GetBlastRadius(ctx context.Context, id string, depth int, edgeTypes []model.RelationshipType) (BlastRadiusResult, error) {
	defer s.timeIt("blastRadius")()
	return GetBlastRadius(ctx, s.store, id, s.clampDepth(depth), edgeTypes)
}

// GetDependencyChain delegates to the package-level GetDependencyChain,
// timed and depth-clamped.
func (s *Service) GetDependencyChain(ctx context.Context, id string, direction model.Direction, depth int, edgeTypes []model.RelationshipType) (DependencyChainResult, error) {
	defer s.timeIt("dependencyChain")()
	return GetDependencyChain(ctx, s.store, id, direction, s.clampDepth(depth), edgeTypes)
}

// ShortestPath delegates to the package-level ShortestPath, timed.
func (s *Service) ShortestPath(ctx context.Context, from, to string, edgeTypes []model.RelationshipType) (ShortestPathResult, error) {
	defer s.timeIt("shortestPath")()
	return ShortestPath(ctx, s.store, from, to, edgeTypes)
}

// SPOFs delegates to the package-level SPOFs, timed.
func (s *Service) SPOFs(ctx context.Context, filter model.NodeFilter) ([]model.Node, error) {
	defer s.timeIt("spofs")()
	return SPOFs(ctx, s.store, filter)
}

// FindClusters delegates to the package-level FindClusters, timed.
func (s *Service) FindClusters(ctx context.Context, filter model.NodeFilter) (ClustersResult, error) {
	defer s.timeIt("clusters")()
	return FindClusters(ctx, s.store, filter)
}

// Orphans delegates to the package-level Orphans, timed.
func (s *Service) Orphans(ctx context.Context, filter model.NodeFilter) ([]model.Node, error) {
	defer s.timeIt("orphans")()
	return Orphans(ctx, s.store, filter)
}

// CriticalNodes delegates to the package-level CriticalNodes, timed.
func (s *Service) CriticalNodes(ctx context.Context, filter model.NodeFilter, topN int) ([]CriticalNode, error) {
	defer s.timeIt("criticalNodes")()
	return CriticalNodes(ctx, s.store, filter, topN)
}
