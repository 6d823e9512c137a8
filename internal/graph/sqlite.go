package graph

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/cloudgraph/ikg/pkg/model"
)

// SQLiteStore is an alternative Storage implementation backed by
// SQLite, grounded on the teacher's internal/database/db.go
// schema-init and connection-pool pattern. It satisfies the same Store
// contract as MemoryStore; callers choose between them via
// internal/config's Storage.Backend setting.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if necessary) a SQLite database at
// path and initializes its schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite writers are serialized; one connection keeps WAL contention low
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) initSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS nodes (
			id TEXT PRIMARY KEY,
			provider TEXT,
			resource_type TEXT,
			native_id TEXT,
			name TEXT,
			region TEXT,
			account TEXT,
			owner TEXT,
			created_at TEXT,
			status TEXT,
			tags TEXT,
			metadata TEXT,
			cost_monthly REAL,
			has_cost INTEGER,
			discovered_at TEXT,
			updated_at TEXT,
			last_seen_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_nodes_provider_account_region ON nodes(provider, account, region)`,
		`CREATE INDEX IF NOT EXISTS idx_nodes_resource_type ON nodes(resource_type)`,
		`CREATE INDEX IF NOT EXISTS idx_nodes_status ON nodes(status)`,
		`CREATE INDEX IF NOT EXISTS idx_nodes_last_seen ON nodes(last_seen_at)`,
		`CREATE TABLE IF NOT EXISTS edges (
			id TEXT PRIMARY KEY,
			source_node_id TEXT,
			target_node_id TEXT,
			relationship_type TEXT,
			confidence REAL,
			discovered_via TEXT,
			metadata TEXT,
			last_seen_at INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_edges_source ON edges(source_node_id)`,
		`CREATE INDEX IF NOT EXISTS idx_edges_target ON edges(target_node_id)`,
		`CREATE INDEX IF NOT EXISTS idx_edges_rel ON edges(relationship_type)`,
		`CREATE TABLE IF NOT EXISTS changes (
			id TEXT PRIMARY KEY,
			target_id TEXT,
			change_type TEXT,
			detected_at TEXT,
			correlation_id TEXT,
			initiator TEXT,
			initiator_type TEXT,
			detected_via TEXT,
			field TEXT,
			previous_value TEXT,
			new_value TEXT,
			metadata TEXT,
			seq INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_changes_target_time ON changes(target_id, detected_at)`,
		`CREATE TABLE IF NOT EXISTS snapshots (
			created_at TEXT,
			total_cost_monthly REAL,
			node_count INTEGER,
			provider TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS sync_records (
			id TEXT PRIMARY KEY,
			provider TEXT,
			status TEXT,
			started_at TEXT,
			completed_at TEXT,
			nodes_discovered INTEGER,
			nodes_created INTEGER,
			nodes_updated INTEGER,
			nodes_disappeared INTEGER,
			edges_discovered INTEGER,
			edges_created INTEGER,
			edges_removed INTEGER,
			changes_recorded INTEGER,
			errors TEXT,
			duration_ms INTEGER
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

func marshalJSON(v interface{}) string {
	if v == nil {
		return "null"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}

func unmarshalTags(s string) map[string]string {
	out := map[string]string{}
	if s == "" || s == "null" {
		return out
	}
	_ = json.Unmarshal([]byte(s), &out)
	return out
}

func unmarshalMeta(s string) map[string]interface{} {
	out := map[string]interface{}{}
	if s == "" || s == "null" {
		return out
	}
	_ = json.Unmarshal([]byte(s), &out)
	return out
}

func (s *SQLiteStore) UpsertNode(ctx context.Context, in model.NodeInput) (model.Node, error) {
	existing, err := s.GetNode(ctx, in.ID)
	if err != nil {
		return model.Node{}, err
	}
	now := time.Now().UTC()
	discoveredAt := now
	if existing != nil {
		discoveredAt = existing.DiscoveredAt
	}
	n := model.Node{
		ID: in.ID, Provider: in.Provider, ResourceType: in.ResourceType, NativeID: in.NativeID,
		Name: in.Name, Region: in.Region, Account: in.Account, Owner: in.Owner, CreatedAt: in.CreatedAt,
		Status: in.Status, Tags: in.Tags, Metadata: in.Metadata, CostMonthly: in.CostMonthly,
		DiscoveredAt: discoveredAt, UpdatedAt: now, LastSeenAt: now,
	}
	var createdAtStr *string
	if in.CreatedAt != nil {
		v := in.CreatedAt.UTC().Format(time.RFC3339)
		createdAtStr = &v
	}
	var owner *string = in.Owner
	var cost sql.NullFloat64
	hasCost := 0
	if in.CostMonthly != nil {
		cost = sql.NullFloat64{Float64: *in.CostMonthly, Valid: true}
		hasCost = 1
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO nodes
		(id, provider, resource_type, native_id, name, region, account, owner, created_at, status, tags, metadata, cost_monthly, has_cost, discovered_at, updated_at, last_seen_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
		ON CONFLICT(id) DO UPDATE SET
		provider=excluded.provider, resource_type=excluded.resource_type, native_id=excluded.native_id,
		name=excluded.name, region=excluded.region, account=excluded.account, owner=excluded.owner,
		created_at=excluded.created_at, status=excluded.status, tags=excluded.tags, metadata=excluded.metadata,
		cost_monthly=excluded.cost_monthly, has_cost=excluded.has_cost, updated_at=excluded.updated_at, last_seen_at=excluded.last_seen_at`,
		n.ID, string(n.Provider), string(n.ResourceType), n.NativeID, n.Name, n.Region, n.Account, owner,
		createdAtStr, string(n.Status), marshalJSON(n.Tags), marshalJSON(n.Metadata), cost, hasCost,
		discoveredAt.Format(time.RFC3339), now.Format(time.RFC3339), now.Format(time.RFC3339))
	if err != nil {
		return model.Node{}, fmt.Errorf("upsert node: %w", err)
	}
	return n, nil
}

func (s *SQLiteStore) UpsertNodes(ctx context.Context, inputs []model.NodeInput) ([]model.Node, error) {
	out := make([]model.Node, 0, len(inputs))
	for _, in := range inputs {
		n, err := s.UpsertNode(ctx, in)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func scanNode(row interface {
	Scan(dest ...interface{}) error
}) (*model.Node, error) {
	var n model.Node
	var provider, rtype, status string
	var owner, createdAt sql.NullString
	var tags, meta string
	var cost sql.NullFloat64
	var hasCost int
	var discoveredAt, updatedAt, lastSeenAt string
	err := row.Scan(&n.ID, &provider, &rtype, &n.NativeID, &n.Name, &n.Region, &n.Account, &owner,
		&createdAt, &status, &tags, &meta, &cost, &hasCost, &discoveredAt, &updatedAt, &lastSeenAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	n.Provider = model.Provider(provider)
	n.ResourceType = model.ResourceType(rtype)
	n.Status = model.Status(status)
	n.Tags = unmarshalTags(tags)
	n.Metadata = unmarshalMeta(meta)
	if owner.Valid {
		v := owner.String
		n.Owner = &v
	}
	if createdAt.Valid {
		if t, err := time.Parse(time.RFC3339, createdAt.String); err == nil {
			n.CreatedAt = &t
		}
	}
	if hasCost == 1 && cost.Valid {
		v := cost.Float64
		n.CostMonthly = &v
	}
	n.DiscoveredAt, _ = time.Parse(time.RFC3339, discoveredAt)
	n.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	n.LastSeenAt, _ = time.Parse(time.RFC3339, lastSeenAt)
	return &n, nil
}

const nodeColumns = `id, provider, resource_type, native_id, name, region, account, owner, created_at, status, tags, metadata, cost_monthly, has_cost, discovered_at, updated_at, last_seen_at`

func (s *SQLiteStore) GetNode(ctx context.Context, id string) (*model.Node, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+nodeColumns+` FROM nodes WHERE id = ?`, id)
	return scanNode(row)
}

func (s *SQLiteStore) QueryNodes(ctx context.Context, filter model.NodeFilter) ([]model.Node, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+nodeColumns+` FROM nodes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query nodes: %w", err)
	}
	defer rows.Close()
	var out []model.Node
	for rows.Next() {
		n, err := scanNode(rows)
		if err != nil {
			return nil, err
		}
		if n != nil && filter.Matches(*n) {
			out = append(out, *n)
		}
	}
	return out, rows.Err()
}

func (s *SQLiteStore) MarkNodesDisappeared(ctx context.Context, staleBefore time.Time, provider *model.Provider) ([]string, error) {
	nodes, err := s.QueryNodes(ctx, model.NodeFilter{})
	if err != nil {
		return nil, err
	}
	var ids []string
	now := time.Now().UTC().Format(time.RFC3339)
	for _, n := range nodes {
		if provider != nil && n.Provider != *provider {
			continue
		}
		if n.Status == model.StatusDisappeared {
			continue
		}
		if n.LastSeenAt.Before(staleBefore) {
			_, err := s.db.ExecContext(ctx, `UPDATE nodes SET status = ?, updated_at = ? WHERE id = ?`,
				string(model.StatusDisappeared), now, n.ID)
			if err != nil {
				return nil, fmt.Errorf("mark disappeared: %w", err)
			}
			ids = append(ids, n.ID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *SQLiteStore) UpsertEdge(ctx context.Context, in model.EdgeInput) (model.Edge, error) {
	now := time.Now().UTC().UnixMilli()
	e := model.Edge{ID: in.ID, SourceNodeID: in.SourceNodeID, TargetNodeID: in.TargetNodeID,
		RelationshipType: in.RelationshipType, Confidence: in.Confidence, DiscoveredVia: in.DiscoveredVia, Metadata: in.Metadata}
	e = e.WithLastSeenUnixMilli(now)
	_, err := s.db.ExecContext(ctx, `INSERT INTO edges
		(id, source_node_id, target_node_id, relationship_type, confidence, discovered_via, metadata, last_seen_at)
		VALUES (?,?,?,?,?,?,?,?)
		ON CONFLICT(id) DO UPDATE SET
		source_node_id=excluded.source_node_id, target_node_id=excluded.target_node_id,
		relationship_type=excluded.relationship_type, confidence=excluded.confidence,
		discovered_via=excluded.discovered_via, metadata=excluded.metadata, last_seen_at=excluded.last_seen_at`,
		e.ID, e.SourceNodeID, e.TargetNodeID, string(e.RelationshipType), e.Confidence, e.DiscoveredVia, marshalJSON(e.Metadata), now)
	if err != nil {
		return model.Edge{}, fmt.Errorf("upsert edge: %w", err)
	}
	return e, nil
}

func (s *SQLiteStore) UpsertEdges(ctx context.Context, inputs []model.EdgeInput) ([]model.Edge, error) {
	out := make([]model.Edge, 0, len(inputs))
	for _, in := range inputs {
		e, err := s.UpsertEdge(ctx, in)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func scanEdge(row interface {
	Scan(dest ...interface{}) error
}) (*model.Edge, error) {
	var e model.Edge
	var rel, meta string
	var lastSeen int64
	err := row.Scan(&e.ID, &e.SourceNodeID, &e.TargetNodeID, &rel, &e.Confidence, &e.DiscoveredVia, &meta, &lastSeen)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	e.RelationshipType = model.RelationshipType(rel)
	e.Metadata = unmarshalMeta(meta)
	e = e.WithLastSeenUnixMilli(lastSeen)
	return &e, nil
}

const edgeColumns = `id, source_node_id, target_node_id, relationship_type, confidence, discovered_via, metadata, last_seen_at`

func (s *SQLiteStore) GetEdge(ctx context.Context, id string) (*model.Edge, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+edgeColumns+` FROM edges WHERE id = ?`, id)
	return scanEdge(row)
}

func (s *SQLiteStore) GetEdgesForNode(ctx context.Context, nodeID string, direction model.Direction) ([]model.Edge, error) {
	var query string
	switch direction {
	case model.DirectionUpstream:
		query = `SELECT ` + edgeColumns + ` FROM edges WHERE target_node_id = ? ORDER BY id`
	case model.DirectionDownstream:
		query = `SELECT ` + edgeColumns + ` FROM edges WHERE source_node_id = ? ORDER BY id`
	default:
		query = `SELECT ` + edgeColumns + ` FROM edges WHERE source_node_id = ? OR target_node_id = ? ORDER BY id`
	}
	var rows *sql.Rows
	var err error
	if direction == model.DirectionBoth || direction == "" {
		rows, err = s.db.QueryContext(ctx, query, nodeID, nodeID)
	} else {
		rows, err = s.db.QueryContext(ctx, query, nodeID)
	}
	if err != nil {
		return nil, fmt.Errorf("edges for node: %w", err)
	}
	defer rows.Close()
	var out []model.Edge
	for rows.Next() {
		e, err := scanEdge(rows)
		if err != nil {
			return nil, err
		}
		if e != nil {
			out = append(out, *e)
		}
	}
	return out, rows.Err()
}

func (s *SQLiteStore) DeleteStaleEdges(ctx context.Context, staleBefore time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM edges WHERE last_seen_at < ?`, staleBefore.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("delete stale edges: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// GetNeighbors performs the same bounded BFS as MemoryStore.GetNeighbors
// but sources adjacency from SQL one hop at a time.
func (s *SQLiteStore) GetNeighbors(ctx context.Context, rootID string, depth int, direction model.Direction, edgeTypes []model.RelationshipType) (NeighborResult, error) {
	result := NeighborResult{}
	root, err := s.GetNode(ctx, rootID)
	if err != nil {
		return result, err
	}
	if root == nil {
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
	frontier := []string{rootID}

	for hop := 0; hop < depth && len(frontier) > 0; hop++ {
		var next []string
		for _, id := range frontier {
			edges, err := s.GetEdgesForNode(ctx, id, direction)
			if err != nil {
				return result, err
			}
			for _, e := range edges {
				if !typeOK(e.RelationshipType) {
					continue
				}
				other := otherEndpoint(e, id)
				if other == "" {
					continue
				}
				if !visitedEdges[e.ID] {
					visitedEdges[e.ID] = true
					result.Edges = append(result.Edges, e)
				}
				if !visitedNodes[other] {
					n, err := s.GetNode(ctx, other)
					if err != nil {
						return result, err
					}
					if n != nil {
						visitedNodes[other] = true
						order = append(order, other)
						next = append(next, other)
					}
				}
			}
		}
		frontier = next
	}

	for _, id := range order {
		n, err := s.GetNode(ctx, id)
		if err != nil {
			return result, err
		}
		if n != nil {
			result.Nodes = append(result.Nodes, *n)
		}
	}
	return result, nil
}

func (s *SQLiteStore) AppendChanges(ctx context.Context, changes []model.Change) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	for i, c := range changes {
		var prev, next sql.NullString
		if c.PreviousValue != nil {
			prev = sql.NullString{String: *c.PreviousValue, Valid: true}
		}
		if c.NewValue != nil {
			next = sql.NullString{String: *c.NewValue, Valid: true}
		}
		_, err := tx.ExecContext(ctx, `INSERT INTO changes
			(id, target_id, change_type, detected_at, correlation_id, initiator, initiator_type, detected_via, field, previous_value, new_value, metadata, seq)
			VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
			c.ID, c.TargetID, string(c.ChangeType), c.DetectedAt.UTC().Format(time.RFC3339Nano), c.CorrelationID,
			c.Initiator, c.InitiatorType, string(c.DetectedVia), c.Field, prev, next, marshalJSON(c.Metadata), i)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("append change: %w", err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) GetNodeTimeline(ctx context.Context, nodeID string, limit int) ([]model.Change, error) {
	query := `SELECT id, target_id, change_type, detected_at, correlation_id, initiator, initiator_type, detected_via, field, previous_value, new_value, metadata
		FROM changes WHERE target_id = ? ORDER BY detected_at DESC, seq DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	rows, err := s.db.QueryContext(ctx, query, nodeID)
	if err != nil {
		return nil, fmt.Errorf("node timeline: %w", err)
	}
	defer rows.Close()
	var out []model.Change
	for rows.Next() {
		var c model.Change
		var changeType, detectedAt, detectedVia string
		var prev, next sql.NullString
		var meta string
		if err := rows.Scan(&c.ID, &c.TargetID, &changeType, &detectedAt, &c.CorrelationID, &c.Initiator,
			&c.InitiatorType, &detectedVia, &c.Field, &prev, &next, &meta); err != nil {
			return nil, err
		}
		c.ChangeType = model.ChangeType(changeType)
		c.DetectedVia = model.DetectedVia(detectedVia)
		c.DetectedAt, _ = time.Parse(time.RFC3339Nano, detectedAt)
		if prev.Valid {
			v := prev.String
			c.PreviousValue = &v
		}
		if next.Valid {
			v := next.String
			c.NewValue = &v
		}
		c.Metadata = unmarshalMeta(meta)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) ListSnapshots(ctx context.Context, filter model.SnapshotFilter) ([]model.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT created_at, total_cost_monthly, node_count, provider FROM snapshots ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()
	var out []model.Snapshot
	for rows.Next() {
		var snap model.Snapshot
		var createdAt string
		var provider sql.NullString
		if err := rows.Scan(&createdAt, &snap.TotalCostMonthly, &snap.NodeCount, &provider); err != nil {
			return nil, err
		}
		snap.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		if provider.Valid {
			p := model.Provider(provider.String)
			snap.Provider = &p
		}
		if filter.Since != nil && snap.CreatedAt.Before(*filter.Since) {
			continue
		}
		if filter.Provider != nil && (snap.Provider == nil || *snap.Provider != *filter.Provider) {
			continue
		}
		out = append(out, snap)
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}
	return out, rows.Err()
}

func (s *SQLiteStore) SaveSnapshot(ctx context.Context, snap model.Snapshot) error {
	var provider *string
	if snap.Provider != nil {
		v := string(*snap.Provider)
		provider = &v
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO snapshots (created_at, total_cost_monthly, node_count, provider) VALUES (?,?,?,?)`,
		snap.CreatedAt.UTC().Format(time.RFC3339), snap.TotalCostMonthly, snap.NodeCount, provider)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (s *SQLiteStore) SaveSyncRecord(ctx context.Context, rec model.SyncRecord) error {
	var completedAt *string
	if rec.CompletedAt != nil {
		v := rec.CompletedAt.UTC().Format(time.RFC3339)
		completedAt = &v
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO sync_records
		(id, provider, status, started_at, completed_at, nodes_discovered, nodes_created, nodes_updated, nodes_disappeared,
		 edges_discovered, edges_created, edges_removed, changes_recorded, errors, duration_ms)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
		ON CONFLICT(id) DO UPDATE SET
		status=excluded.status, completed_at=excluded.completed_at, nodes_discovered=excluded.nodes_discovered,
		nodes_created=excluded.nodes_created, nodes_updated=excluded.nodes_updated, nodes_disappeared=excluded.nodes_disappeared,
		edges_discovered=excluded.edges_discovered, edges_created=excluded.edges_created, edges_removed=excluded.edges_removed,
		changes_recorded=excluded.changes_recorded, errors=excluded.errors, duration_ms=excluded.duration_ms`,
		rec.ID, string(rec.Provider), string(rec.Status), rec.StartedAt.UTC().Format(time.RFC3339), completedAt,
		rec.NodesDiscovered, rec.NodesCreated, rec.NodesUpdated, rec.NodesDisappeared,
		rec.EdgesDiscovered, rec.EdgesCreated, rec.EdgesRemoved, rec.ChangesRecorded,
		marshalJSON(rec.Errors), rec.DurationMs)
	if err != nil {
		return fmt.Errorf("save sync record: %w", err)
	}
	return nil
}
