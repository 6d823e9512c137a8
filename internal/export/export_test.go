package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudgraph/ikg/pkg/model"
)

func sampleTopology() Topology {
	cost := 42.5
	return Topology{
		Nodes: []model.Node{
			{ID: "a", Provider: model.ProviderAWS, ResourceType: model.ResourceCompute, Name: "web-1"},
			{ID: "b", Provider: model.ProviderAWS, ResourceType: model.ResourceDatabase, Name: "db-1", CostMonthly: &cost},
			{ID: "c", Provider: model.ProviderAzure, ResourceType: model.ResourceVPC, Name: "vnet-1"},
		},
		Edges: []model.Edge{
			{ID: "e1", SourceNodeID: "a", TargetNodeID: "b", RelationshipType: model.RelDependsOn, Confidence: 1.0},
			{ID: "e2", SourceNodeID: "a", TargetNodeID: "c", RelationshipType: model.RelRunsIn, Confidence: 0.3},
		},
	}
}

func TestRender_JSON(t *testing.T) {
	out, err := Render(sampleTopology(), Options{Format: FormatJSON})
	require.NoError(t, err)
	assert.Contains(t, out, `"id": "a"`)
	assert.Contains(t, out, `"relationshipType": "depends-on"`)
}

func TestRender_DOT_ProviderSubgraphsAndDashedLowConfidence(t *testing.T) {
	out, err := Render(sampleTopology(), Options{Format: FormatDOT, LowConfidence: 0.5, IncludeCost: true})
	require.NoError(t, err)
	assert.Contains(t, out, "subgraph \"cluster_aws\"")
	assert.Contains(t, out, "subgraph \"cluster_azure\"")
	assert.Contains(t, out, "style=dashed")
	assert.Contains(t, out, "$42.50/mo")
}

func TestRender_Mermaid_ResourceShapes(t *testing.T) {
	out, err := Render(sampleTopology(), Options{Format: FormatMermaid, LowConfidence: 0.5})
	require.NoError(t, err)
	assert.Contains(t, out, "flowchart LR")
	assert.Contains(t, out, "[(db-1)]")
	assert.Contains(t, out, "{{vnet-1}}")
	assert.Contains(t, out, "-.->")
}

func TestRender_UnsupportedFormat(t *testing.T) {
	_, err := Render(sampleTopology(), Options{Format: "yaml"})
	assert.Error(t, err)
}
