package model

import "time"

// SyncRecord tracks one reconciliation cycle for one provider.
type SyncRecord struct {
	ID          string     `json:"id"`
	Provider    Provider   `json:"provider"`
	Status      SyncStatus `json:"status"`
	StartedAt   time.Time  `json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`

	NodesDiscovered  int `json:"nodesDiscovered"`
	NodesCreated     int `json:"nodesCreated"`
	NodesUpdated     int `json:"nodesUpdated"`
	NodesDisappeared int `json:"nodesDisappeared"`
	EdgesDiscovered  int `json:"edgesDiscovered"`
	EdgesCreated     int `json:"edgesCreated"`
	EdgesRemoved     int `json:"edgesRemoved"`
	ChangesRecorded  int `json:"changesRecorded"`

	Errors     []string `json:"errors"`
	DurationMs int64    `json:"durationMs"`
}
