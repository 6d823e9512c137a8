package remediate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	syncpkg "github.com/cloudgraph/ikg/internal/sync"
	"github.com/cloudgraph/ikg/pkg/model"
)

func nodeUpdated(targetID, field, prev, next string) model.Change {
	return model.Change{
		TargetID: targetID, ChangeType: model.ChangeNodeUpdated,
		DetectedAt: time.Now(), Field: field,
		PreviousValue: model.StrPtr(prev), NewValue: model.StrPtr(next),
	}
}

func TestGenerate_TerraformPatchAndRisk(t *testing.T) {
	node := model.Node{
		ID: "aws::us-east-1:compute:i-1", Provider: model.ProviderAWS,
		ResourceType: model.ResourceCompute, Name: "web-1",
		Tags: map[string]string{"environment": "staging"},
	}
	changes := []model.Change{nodeUpdated(node.ID, "name", "web-0", "web-1")}

	result := syncpkg.DriftScanResult{
		DriftedNodes: []syncpkg.DriftedNode{{Node: node, Changes: changes}},
	}

	plan := Generate(result, DialectTerraform, Options{})
	require.Len(t, plan.AutoRemediable, 1)
	assert.Contains(t, plan.AutoRemediable[0].PatchText, "aws_instance")
	assert.Contains(t, plan.AutoRemediable[0].PatchText, "web-1")
}

func TestGenerate_HighRiskOnStatusChange(t *testing.T) {
	node := model.Node{
		ID: "n1", Provider: model.ProviderAWS, ResourceType: model.ResourceCompute, Name: "n1",
	}
	changes := []model.Change{nodeUpdated(node.ID, "status", "running", "stopped")}
	result := syncpkg.DriftScanResult{DriftedNodes: []syncpkg.DriftedNode{{Node: node, Changes: changes}}}

	plan := Generate(result, DialectTerraform, Options{})
	require.Len(t, plan.ManualReview, 1)
	assert.Equal(t, RiskHigh, plan.ManualReview[0].Risk)
}

func TestGenerate_UnsupportedDialectIsUnremediable(t *testing.T) {
	node := model.Node{
		ID: "n1", Provider: model.ProviderAzure, ResourceType: model.ResourceCompute, Name: "n1",
	}
	changes := []model.Change{nodeUpdated(node.ID, "name", "a", "b")}
	result := syncpkg.DriftScanResult{DriftedNodes: []syncpkg.DriftedNode{{Node: node, Changes: changes}}}

	plan := Generate(result, DialectCloudFormation, Options{})
	require.Len(t, plan.Unremediable, 1)
	assert.Equal(t, "n1", plan.Unremediable[0].NodeID)
}

func TestGenerate_DisappearedNodesAlwaysUnremediable(t *testing.T) {
	result := syncpkg.DriftScanResult{
		DisappearedNodes: []model.Node{{ID: "gone1"}},
	}
	plan := Generate(result, DialectTerraform, Options{})
	require.Len(t, plan.Unremediable, 1)
	assert.Equal(t, "gone1", plan.Unremediable[0].NodeID)
}

func TestGenerate_TopologicalOrdering(t *testing.T) {
	upstream := model.Node{ID: "x", Provider: model.ProviderAWS, ResourceType: model.ResourceCompute, Name: "x"}
	downstream := model.Node{ID: "y", Provider: model.ProviderAWS, ResourceType: model.ResourceCompute, Name: "y"}

	result := syncpkg.DriftScanResult{
		DriftedNodes: []syncpkg.DriftedNode{
			{Node: downstream, Changes: []model.Change{nodeUpdated("y", "name", "y0", "y1")}},
			{Node: upstream, Changes: []model.Change{nodeUpdated("x", "name", "x0", "x1")}},
		},
	}
	edges := []model.Edge{{ID: "e1", SourceNodeID: "x", TargetNodeID: "y", RelationshipType: model.RelDependsOn}}

	plan := Generate(result, DialectTerraform, Options{Edges: edges})
	require.Len(t, plan.AutoRemediable, 2)
	assert.Equal(t, "x", plan.AutoRemediable[0].NodeID)
	assert.Equal(t, "y", plan.AutoRemediable[1].NodeID)
}

func TestGenerate_DependencyWarningOnSensitiveField(t *testing.T) {
	upstream := model.Node{ID: "x", Provider: model.ProviderAWS, ResourceType: model.ResourceSecurityGroup, Name: "x"}
	downstream := model.Node{ID: "y", Provider: model.ProviderAWS, ResourceType: model.ResourceCompute, Name: "y"}

	result := syncpkg.DriftScanResult{
		DriftedNodes: []syncpkg.DriftedNode{
			{Node: upstream, Changes: []model.Change{nodeUpdated("x", "status", "active", "revoked")}},
			{Node: downstream, Changes: []model.Change{nodeUpdated("y", "name", "y0", "y1")}},
		},
	}
	edges := []model.Edge{{ID: "e1", SourceNodeID: "x", TargetNodeID: "y", RelationshipType: model.RelSecuredBy}}

	plan := Generate(result, DialectTerraform, Options{Edges: edges})
	require.Len(t, plan.DependencyWarnings, 1)
	assert.Equal(t, "x", plan.DependencyWarnings[0].SourceNodeID)
	assert.Equal(t, "y", plan.DependencyWarnings[0].TargetNodeID)
	assert.Contains(t, plan.DependencyWarnings[0].Fields, "status")
}

func TestGenerate_InjectionSafety(t *testing.T) {
	node := model.Node{ID: "n1", Provider: model.ProviderAWS, ResourceType: model.ResourceCompute, Name: "n1"}
	changes := []model.Change{nodeUpdated("n1", "name", "old", "evil ${exfil}")}
	result := syncpkg.DriftScanResult{DriftedNodes: []syncpkg.DriftedNode{{Node: node, Changes: changes}}}

	plan := Generate(result, DialectTerraform, Options{})
	require.Len(t, plan.AutoRemediable, 1)
	assert.Contains(t, plan.AutoRemediable[0].PatchText, "evil $${exfil}")
}

func TestGenerate_ImportBlock(t *testing.T) {
	node := model.Node{ID: "n1", Provider: model.ProviderAWS, ResourceType: model.ResourceCompute, Name: "n1"}
	changes := []model.Change{nodeUpdated("n1", "name", "old", "new")}
	result := syncpkg.DriftScanResult{DriftedNodes: []syncpkg.DriftedNode{{Node: node, Changes: changes}}}

	plan := Generate(result, DialectTerraform, Options{GenerateImports: true})
	require.Len(t, plan.AutoRemediable, 1)
	assert.Contains(t, plan.AutoRemediable[0].ImportBlock, "import {")
	assert.Contains(t, plan.AutoRemediable[0].ImportBlock, "n1")
}
