// Package graph implements the Storage contract (spec.md §4.1): the
// only stateful collaborator in the core, persisting nodes, edges,
// changes, snapshots and sync records.
package graph

import (
	"context"
	"time"

	"github.com/cloudgraph/ikg/pkg/model"
)

// Store is the narrow storage contract the rest of the core depends on.
// Every method is a suspension point (§5); implementations must be safe
// for concurrent use.
type Store interface {
	// Node ops.
	UpsertNode(ctx context.Context, input model.NodeInput) (model.Node, error)
	UpsertNodes(ctx context.Context, inputs []model.NodeInput) ([]model.Node, error)
	GetNode(ctx context.Context, id string) (*model.Node, error)
	QueryNodes(ctx context.Context, filter model.NodeFilter) ([]model.Node, error)
	MarkNodesDisappeared(ctx context.Context, staleBefore time.Time, provider *model.Provider) ([]string, error)

	// Edge ops.
	UpsertEdge(ctx context.Context, input model.EdgeInput) (model.Edge, error)
	UpsertEdges(ctx context.Context, inputs []model.EdgeInput) ([]model.Edge, error)
	GetEdge(ctx context.Context, id string) (*model.Edge, error)
	GetEdgesForNode(ctx context.Context, nodeID string, direction model.Direction) ([]model.Edge, error)
	DeleteStaleEdges(ctx context.Context, staleBefore time.Time) (int, error)

	// Neighbors.
	GetNeighbors(ctx context.Context, rootID string, depth int, direction model.Direction, edgeTypes []model.RelationshipType) (NeighborResult, error)

	// Changes.
	AppendChanges(ctx context.Context, changes []model.Change) error
	GetNodeTimeline(ctx context.Context, nodeID string, limit int) ([]model.Change, error)

	// Snapshots.
	ListSnapshots(ctx context.Context, filter model.SnapshotFilter) ([]model.Snapshot, error)
	SaveSnapshot(ctx context.Context, snap model.Snapshot) error

	// Sync records.
	SaveSyncRecord(ctx context.Context, rec model.SyncRecord) error
}

// NeighborResult is the bounded-BFS expansion result. Nodes includes
// the root. Edges are those traversed (not every edge in the induced
// subgraph).
type NeighborResult struct {
	Nodes []model.Node
	Edges []model.Edge
}
