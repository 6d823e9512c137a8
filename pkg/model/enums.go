// Package model defines the graph data model shared across the core:
// nodes, edges, changes, snapshots and sync records, plus their closed
// enumerations.
package model

// Provider identifies the cloud or source system a node was discovered from.
type Provider string

const (
	ProviderAWS       Provider = "aws"
	ProviderAzure     Provider = "azure"
	ProviderGCP       Provider = "gcp"
	ProviderTerraform Provider = "terraform"
	ProviderHybrid    Provider = "hybrid"
	ProviderCustom    Provider = "custom"
)

// ResourceType tags a node with its infrastructure kind.
type ResourceType string

const (
	ResourceCompute        ResourceType = "compute"
	ResourceDatabase       ResourceType = "database"
	ResourceStorage        ResourceType = "storage"
	ResourceVPC            ResourceType = "vpc"
	ResourceSubnet         ResourceType = "subnet"
	ResourceLoadBalancer   ResourceType = "load-balancer"
	ResourceSecurityGroup  ResourceType = "security-group"
	ResourceIAMRole        ResourceType = "iam-role"
	ResourceFunction       ResourceType = "function"
	ResourceAPIGateway     ResourceType = "api-gateway"
	ResourceCache          ResourceType = "cache"
	ResourceQueue          ResourceType = "queue"
	ResourceTopic          ResourceType = "topic"
	ResourceCluster        ResourceType = "cluster"
	ResourceContainer      ResourceType = "container"
	ResourceCDN            ResourceType = "cdn"
	ResourceDNS            ResourceType = "dns"
	ResourceCertificate    ResourceType = "certificate"
	ResourceSecret         ResourceType = "secret"
	ResourceStream         ResourceType = "stream"
	ResourceSnapshotDisk   ResourceType = "snapshot"
	ResourceVolume         ResourceType = "volume"
	ResourceImage          ResourceType = "image"
	ResourceNetworkACL     ResourceType = "network-acl"
	ResourceRouteTable     ResourceType = "route-table"
	ResourceInternetGW     ResourceType = "internet-gateway"
	ResourceNATGateway     ResourceType = "nat-gateway"
	ResourceVPNConnection  ResourceType = "vpn-connection"
	ResourceAutoscaleGroup ResourceType = "autoscaling-group"
	ResourceKeyPair        ResourceType = "key-pair"
	ResourceElasticIP      ResourceType = "elastic-ip"
)

// Status is a node's observed lifecycle state.
type Status string

const (
	StatusRunning     Status = "running"
	StatusStopped     Status = "stopped"
	StatusPending     Status = "pending"
	StatusCreating    Status = "creating"
	StatusTerminated  Status = "terminated"
	StatusError       Status = "error"
	StatusDisappeared Status = "disappeared"
	StatusUnknown     Status = "unknown"
)

// RelationshipType tags an edge with the kind of relationship it represents.
type RelationshipType string

const (
	RelRunsIn             RelationshipType = "runs-in"
	RelDependsOn          RelationshipType = "depends-on"
	RelSecuredBy          RelationshipType = "secured-by"
	RelConnectedTo        RelationshipType = "connected-to"
	RelMemberOf           RelationshipType = "member-of"
	RelMonitors           RelationshipType = "monitors"
	RelLogsTo             RelationshipType = "logs-to"
	RelEncryptsWith       RelationshipType = "encrypts-with"
	RelBacksUp            RelationshipType = "backs-up"
	RelMemberOfFleet      RelationshipType = "member-of-fleet"
	RelAuthenticatedBy    RelationshipType = "authenticated-by"
	RelDeployedAt         RelationshipType = "deployed-at"
	RelRoutesTo           RelationshipType = "routes-to"
	RelAttachedTo         RelationshipType = "attached-to"
	RelMountedOn          RelationshipType = "mounted-on"
	RelPeersWith          RelationshipType = "peers-with"
	RelForwardsTo         RelationshipType = "forwards-to"
	RelTriggers           RelationshipType = "triggers"
	RelInvokedBy          RelationshipType = "invoked-by"
	RelReadsFrom          RelationshipType = "reads-from"
	RelWritesTo           RelationshipType = "writes-to"
	RelCachesFor          RelationshipType = "caches-for"
	RelLoadBalances       RelationshipType = "load-balances"
	RelResolvesTo         RelationshipType = "resolves-to"
	RelIssuedFor          RelationshipType = "issued-for"
	RelScalesWith         RelationshipType = "scales-with"
	RelPublishesTo        RelationshipType = "publishes-to"
	RelSubscribesTo       RelationshipType = "subscribes-to"
	RelAssumesRole        RelationshipType = "assumes-role"
	RelGrantsAccessTo     RelationshipType = "grants-access-to"
	RelReplicatesTo       RelationshipType = "replicates-to"
	RelFrontedBy          RelationshipType = "fronted-by"
	RelProtectedBy        RelationshipType = "protected-by"
	RelHostedOn           RelationshipType = "hosted-on"
	RelBoundTo            RelationshipType = "bound-to"
	RelConfiguredBy       RelationshipType = "configured-by"
	RelExportsTo          RelationshipType = "exports-to"
	RelImportsFrom        RelationshipType = "imports-from"
	RelOwnedBy            RelationshipType = "owned-by"
	RelManagedBy          RelationshipType = "managed-by"
	RelTaggedWith         RelationshipType = "tagged-with"
)

// ChangeType tags an entry in the append-only change log.
type ChangeType string

const (
	ChangeNodeCreated     ChangeType = "node-created"
	ChangeNodeUpdated     ChangeType = "node-updated"
	ChangeNodeDrifted     ChangeType = "node-drifted"
	ChangeNodeDisappeared ChangeType = "node-disappeared"
	ChangeEdgeCreated     ChangeType = "edge-created"
	ChangeEdgeRemoved     ChangeType = "edge-removed"
	ChangeCostChanged     ChangeType = "cost-changed"
)

// DetectedVia records how a change was observed.
type DetectedVia string

const (
	DetectedViaSync      DetectedVia = "sync"
	DetectedViaDriftScan DetectedVia = "drift-scan"
	DetectedViaManual    DetectedVia = "manual"
	DetectedViaExternal  DetectedVia = "external"
)

// SyncStatus is the lifecycle state of one sync record.
type SyncStatus string

const (
	SyncRunning   SyncStatus = "running"
	SyncCompleted SyncStatus = "completed"
	SyncPartial   SyncStatus = "partial"
	SyncFailed    SyncStatus = "failed"
)

// Direction constrains which incident edges a traversal follows.
type Direction string

const (
	DirectionUpstream   Direction = "upstream"
	DirectionDownstream Direction = "downstream"
	DirectionBoth       Direction = "both"
)
