package compliance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudgraph/ikg/internal/graph"
	"github.com/cloudgraph/ikg/pkg/model"
)

const denyUntaggedModule = `
package ikg

default allow = false

allow {
	input.node.tags.environment == "production"
}
`

func TestRegisterRegoControl_DispatchedLikeABuiltin(t *testing.T) {
	store := graph.NewMemoryStore()
	ctx := context.Background()

	_, err := store.UpsertNode(ctx, model.NodeInput{
		ID: "r1", Provider: model.ProviderAWS, ResourceType: model.ResourceCompute,
		Name: "r1", Status: model.StatusRunning,
		Tags: map[string]string{"environment": "production"},
	})
	require.NoError(t, err)
	_, err = store.UpsertNode(ctx, model.NodeInput{
		ID: "r2", Provider: model.ProviderAWS, ResourceType: model.ResourceCompute,
		Name: "r2", Status: model.StatusRunning,
		Tags: map[string]string{"environment": "staging"},
	})
	require.NoError(t, err)

	engine := NewEngine(store)
	spec := RegoControlSpec{
		ID:                      "custom-production-tag",
		Framework:               "CUSTOM",
		Section:                 "1.1",
		Title:                   "Resource must be tagged production",
		Severity:                SeverityMedium,
		ApplicableResourceTypes: []model.ResourceType{model.ResourceCompute},
		Module:                  denyUntaggedModule,
		Query:                   "data.ikg.allow",
	}
	require.NoError(t, engine.RegisterRegoControl(ctx, spec))

	report, err := engine.EvaluateFramework(ctx, "CUSTOM", model.NodeFilter{})
	require.NoError(t, err)
	require.Len(t, report.Results, 2)

	results := map[string]ControlResult{}
	for _, r := range report.Results {
		results[r.NodeID] = r
	}
	assert.Equal(t, StatusPass, results["r1"].Status)
	assert.Equal(t, StatusFail, results["r2"].Status)
	assert.Contains(t, results["r1"].Reason, spec.ID)
	assert.Equal(t, 1, report.Passed)
	assert.Equal(t, 1, report.Failed)
}

func TestCompileRegoControl_RejectsInvalidModule(t *testing.T) {
	_, err := CompileRegoControl(context.Background(), RegoControlSpec{
		ID:     "broken",
		Module: "not valid rego",
		Query:  "data.ikg.allow",
	})
	assert.Error(t, err)
}
