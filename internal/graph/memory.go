package graph

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cloudgraph/ikg/pkg/model"
)

// MemoryStore is the default in-memory Storage implementation,
// grounded on the teacher's MemoryStorage (sync.RWMutex over maps).
type MemoryStore struct {
	mu sync.RWMutex

	nodes map[string]model.Node
	edges map[string]model.Edge

	// outgoing/incoming adjacency, kept in sync with edges for O(1) neighbor lookups.
	outgoing map[string][]string // nodeID -> edgeIDs where node is source
	incoming map[string][]string // nodeID -> edgeIDs where node is target

	changes   []model.Change
	snapshots []model.Snapshot
	syncs     []model.SyncRecord
}

// NewMemoryStore constructs an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nodes:    make(map[string]model.Node),
		edges:    make(map[string]model.Edge),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
	}
}

func (s *MemoryStore) UpsertNode(ctx context.Context, in model.NodeInput) (model.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.upsertNodeLocked(in), nil
}

func (s *MemoryStore) upsertNodeLocked(in model.NodeInput) model.Node {
	now := time.Now().UTC()
	existing, ok := s.nodes[in.ID]

	n := model.Node{
		ID:           in.ID,
		Provider:     in.Provider,
		ResourceType: in.ResourceType,
		NativeID:     in.NativeID,
		Name:         in.Name,
		Region:       in.Region,
		Account:      in.Account,
		Owner:        in.Owner,
		CreatedAt:    in.CreatedAt,
		Status:       in.Status,
		Tags:         in.Tags,
		Metadata:     in.Metadata,
		CostMonthly:  in.CostMonthly,
	}
	if ok {
		n.DiscoveredAt = existing.DiscoveredAt
	} else {
		n.DiscoveredAt = now
	}
	n.UpdatedAt = now
	n.LastSeenAt = now
	s.nodes[in.ID] = n
	return n
}

func (s *MemoryStore) UpsertNodes(ctx context.Context, inputs []model.NodeInput) ([]model.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Node, 0, len(inputs))
	for _, in := range inputs {
		out = append(out, s.upsertNodeLocked(in))
	}
	return out, nil
}

func (s *MemoryStore) GetNode(ctx context.Context, id string) (*model.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.nodes[id]
	if !ok {
		return nil, nil
	}
	cp := n.Clone()
	return &cp, nil
}

func (s *MemoryStore) QueryNodes(ctx context.Context, filter model.NodeFilter) ([]model.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Node
	for _, n := range s.nodes {
		if filter.Matches(n) {
			out = append(out, n.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) MarkNodesDisappeared(ctx context.Context, staleBefore time.Time, provider *model.Provider) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []string
	for id, n := range s.nodes {
		if provider != nil && n.Provider != *provider {
			continue
		}
		if n.Status == model.StatusDisappeared {
			continue
		}
		if n.LastSeenAt.Before(staleBefore) {
			n.Status = model.StatusDisappeared
			n.UpdatedAt = time.Now().UTC()
			s.nodes[id] = n
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *MemoryStore) UpsertEdge(ctx context.Context, in model.EdgeInput) (model.Edge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.upsertEdgeLocked(in), nil
}

func (s *MemoryStore) upsertEdgeLocked(in model.EdgeInput) model.Edge {
	now := time.Now().UTC().UnixMilli()
	_, existed := s.edges[in.ID]
	e := model.Edge{
		ID:               in.ID,
		SourceNodeID:     in.SourceNodeID,
		TargetNodeID:     in.TargetNodeID,
		RelationshipType: in.RelationshipType,
		Confidence:       in.Confidence,
		DiscoveredVia:    in.DiscoveredVia,
		Metadata:         in.Metadata,
	}
	e = e.WithLastSeenUnixMilli(now)
	s.edges[in.ID] = e
	if !existed {
		s.outgoing[in.SourceNodeID] = append(s.outgoing[in.SourceNodeID], in.ID)
		s.incoming[in.TargetNodeID] = append(s.incoming[in.TargetNodeID], in.ID)
	}
	return e
}

func (s *MemoryStore) UpsertEdges(ctx context.Context, inputs []model.EdgeInput) ([]model.Edge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Edge, 0, len(inputs))
	for _, in := range inputs {
		out = append(out, s.upsertEdgeLocked(in))
	}
	return out, nil
}

func (s *MemoryStore) GetEdge(ctx context.Context, id string) (*model.Edge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.edges[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (s *MemoryStore) GetEdgesForNode(ctx context.Context, nodeID string, direction model.Direction) ([]model.Edge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]bool)
	var out []model.Edge
	add := func(ids []string) {
		for _, id := range ids {
			if seen[id] {
				continue
			}
			seen[id] = true
			if e, ok := s.edges[id]; ok {
				out = append(out, e)
			}
		}
	}
	switch direction {
	case model.DirectionUpstream:
		add(s.incoming[nodeID])
	case model.DirectionDownstream:
		add(s.outgoing[nodeID])
	default:
		add(s.outgoing[nodeID])
		add(s.incoming[nodeID])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) DeleteStaleEdges(ctx context.Context, staleBefore time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	threshold := staleBefore.UnixMilli()
	removed := 0
	for id, e := range s.edges {
		if e.LastSeenUnixMilli() < threshold {
			delete(s.edges, id)
			s.outgoing[e.SourceNodeID] = removeID(s.outgoing[e.SourceNodeID], id)
			s.incoming[e.TargetNodeID] = removeID(s.incoming[e.TargetNodeID], id)
			removed++
		}
	}
	return removed, nil
}

func removeID(ids []string, target string) []string {
	out := ids[:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}

// GetNeighbors runs a bounded breadth-first expansion from rootID,
// treating the graph as undirected unless direction narrows it,
// restricted to edgeTypes if provided. The root is always included.
// Implementation deduplicates nodes/edges and terminates even with
// cycles via a visited set.
func (s *MemoryStore) GetNeighbors(ctx context.Context, rootID string, depth int, direction model.Direction, edgeTypes []model.RelationshipType) (NeighborResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := NeighborResult{}
	if _, ok := s.nodes[rootID]; !ok {
		return result, nil
	}

	allowed := make(map[model.RelationshipType]bool)
	for _, t := range edgeTypes {
		allowed[t] = true
	}
	typeOK := func(t model.RelationshipType) bool {
		if len(allowed) == 0 {
			return true
		}
		return allowed[t]
	}

	visitedNodes := map[string]bool{rootID: true}
	visitedEdges := map[string]bool{}
	order := []string{rootID}

	type frontierEntry struct{ id string }
	frontier := []frontierEntry{{rootID}}

	for hop := 0; hop < depth && len(frontier) > 0; hop++ {
		var next []frontierEntry
		for _, f := range frontier {
			edgeIDs := s.incidentEdgeIDsLocked(f.id, direction)
			for _, eid := range edgeIDs {
				e, ok := s.edges[eid]
				if !ok || !typeOK(e.RelationshipType) {
					continue
				}
				other := otherEndpoint(e, f.id)
				if other == "" {
					continue
				}
				if !visitedEdges[eid] {
					visitedEdges[eid] = true
					result.Edges = append(result.Edges, e)
				}
				if !visitedNodes[other] {
					if _, ok := s.nodes[other]; ok {
						visitedNodes[other] = true
						order = append(order, other)
						next = append(next, frontierEntry{other})
					}
				}
			}
		}
		frontier = next
	}

	for _, id := range order {
		result.Nodes = append(result.Nodes, s.nodes[id].Clone())
	}
	return result, nil
}

func (s *MemoryStore) incidentEdgeIDsLocked(nodeID string, direction model.Direction) []string {
	switch direction {
	case model.DirectionUpstream:
		return s.incoming[nodeID]
	case model.DirectionDownstream:
		return s.outgoing[nodeID]
	default:
		out := append([]string{}, s.outgoing[nodeID]...)
		out = append(out, s.incoming[nodeID]...)
		return out
	}
}

func otherEndpoint(e model.Edge, from string) string {
	if e.SourceNodeID == from {
		return e.TargetNodeID
	}
	if e.TargetNodeID == from {
		return e.SourceNodeID
	}
	return ""
}

func (s *MemoryStore) AppendChanges(ctx context.Context, changes []model.Change) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.changes = append(s.changes, changes...)
	return nil
}

func (s *MemoryStore) GetNodeTimeline(ctx context.Context, nodeID string, limit int) ([]model.Change, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Change
	for i := len(s.changes) - 1; i >= 0; i-- {
		if s.changes[i].TargetID == nodeID {
			out = append(out, s.changes[i])
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}

func (s *MemoryStore) ListSnapshots(ctx context.Context, filter model.SnapshotFilter) ([]model.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Snapshot
	for _, snap := range s.snapshots {
		if filter.Since != nil && snap.CreatedAt.Before(*filter.Since) {
			continue
		}
		if filter.Provider != nil {
			if snap.Provider == nil || *snap.Provider != *filter.Provider {
				continue
			}
		}
		out = append(out, snap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (s *MemoryStore) SaveSnapshot(ctx context.Context, snap model.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots = append(s.snapshots, snap)
	return nil
}

func (s *MemoryStore) SaveSyncRecord(ctx context.Context, rec model.SyncRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.syncs {
		if existing.ID == rec.ID {
			s.syncs[i] = rec
			return nil
		}
	}
	s.syncs = append(s.syncs, rec)
	return nil
}
