package compliance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudgraph/ikg/internal/graph"
	"github.com/cloudgraph/ikg/pkg/model"
)

func encryptedBucket(id string, encrypted bool, prod bool) model.NodeInput {
	env := "staging"
	if prod {
		env = "production"
	}
	return model.NodeInput{
		ID: id, Provider: model.ProviderAWS, ResourceType: model.ResourceStorage,
		Name: id, Status: model.StatusRunning,
		Tags:     map[string]string{"environment": env},
		Metadata: map[string]interface{}{"encrypted": encrypted},
	}
}

func TestEvaluateFramework_Builtins(t *testing.T) {
	store := graph.NewMemoryStore()
	ctx := context.Background()

	_, err := store.UpsertNode(ctx, encryptedBucket("b1", true, true))
	require.NoError(t, err)
	_, err = store.UpsertNode(ctx, encryptedBucket("b2", false, true))
	require.NoError(t, err)

	engine := NewEngine(store)
	report, err := engine.EvaluateFramework(ctx, "SOC2", model.NodeFilter{})
	require.NoError(t, err)

	assert.Equal(t, report.TotalControls, report.Passed+report.Failed+report.Warnings+report.NotApplicable)
	assert.GreaterOrEqual(t, report.Score, 0.0)
	assert.LessOrEqual(t, report.Score, 100.0)

	var sawFail bool
	for _, r := range report.Results {
		if r.ControlID == "soc2-cc6.1-encryption-at-rest" && r.NodeID == "b2" {
			assert.Equal(t, StatusFail, r.Status)
			sawFail = true
		}
	}
	assert.True(t, sawFail)
}

func TestEvaluateFramework_NotApplicableWhenNoNodesMatch(t *testing.T) {
	store := graph.NewMemoryStore()
	engine := NewEngine(store)

	report, err := engine.EvaluateFramework(context.Background(), "HIPAA", model.NodeFilter{})
	require.NoError(t, err)
	assert.Equal(t, float64(100), report.Score)
	for _, r := range report.Results {
		assert.Equal(t, StatusNotApplicable, r.Status)
	}
}

func TestBuiltinControlCounts(t *testing.T) {
	engine := NewEngine(graph.NewMemoryStore())
	counts := map[string]int{}
	for _, c := range engine.controls {
		counts[c.Framework]++
	}
	assert.GreaterOrEqual(t, counts["SOC2"], 5)
	assert.GreaterOrEqual(t, counts["HIPAA"], 4)
	assert.GreaterOrEqual(t, counts["PCI-DSS"], 4)
	assert.GreaterOrEqual(t, counts["ISO27001"], 4)
	assert.GreaterOrEqual(t, counts["CIS"], 10)
	assert.GreaterOrEqual(t, counts["NIST800-53"], 10)
}

func TestEvaluateOne_RecoversPanic(t *testing.T) {
	store := graph.NewMemoryStore()
	ctx := context.Background()
	_, err := store.UpsertNode(ctx, model.NodeInput{
		ID: "x1", Provider: model.ProviderAWS, ResourceType: model.ResourceCompute,
		Name: "x1", Status: model.StatusRunning,
	})
	require.NoError(t, err)

	engine := NewEngine(store)
	panicking := Control{
		ID: "panics", Framework: "TEST", Severity: SeverityLow,
		ApplicableResourceTypes: []model.ResourceType{model.ResourceCompute},
		Evaluate: func(ctx Context) Status {
			panic("boom")
		},
	}
	engine.Register(panicking)

	report, err := engine.EvaluateFramework(ctx, "TEST", model.NodeFilter{})
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	assert.Equal(t, StatusFail, report.Results[0].Status)
	assert.Contains(t, report.Results[0].Reason, "panic")
}
