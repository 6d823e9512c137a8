package model

import "time"

// Snapshot is a periodic coarse-grained cost/count aggregate consumed
// by the forecast engine. Snapshots are read-only from the forecast
// perspective; the core never rewrites them.
type Snapshot struct {
	CreatedAt        time.Time `json:"createdAt"`
	TotalCostMonthly float64   `json:"totalCostMonthly"`
	NodeCount        int       `json:"nodeCount"`
	Provider         *Provider `json:"provider,omitempty"`
}

// SnapshotFilter narrows a snapshot listing.
type SnapshotFilter struct {
	Since    *time.Time
	Provider *Provider
	Limit    int
}
