package query

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudgraph/ikg/internal/config"
	"github.com/cloudgraph/ikg/internal/metrics"
	"github.com/cloudgraph/ikg/pkg/model"
)

func TestService_GetBlastRadius_RecordsLatency(t *testing.T) {
	s := pathGraph(t)
	reg := prometheus.NewRegistry()
	m := metrics.NewRegistry(reg)
	svc := NewService(s).WithMetrics(m)

	result, err := svc.GetBlastRadius(context.Background(), "a", 2, nil)
	require.NoError(t, err)
	assert.True(t, result.Found)

	hist, err := m.QueryLatency.GetMetricWithLabelValues("blastRadius")
	require.NoError(t, err)
	var out dto.Metric
	require.NoError(t, hist.(prometheus.Histogram).Write(&out))
	assert.Equal(t, uint64(1), out.GetHistogram().GetSampleCount())
}

func TestService_ClampsDepthToConfigCeiling(t *testing.T) {
	s := pathGraph(t)
	cfg := config.Default()
	cfg.Engine.MaxTraversalDepth = 1
	svc := NewServiceFromConfig(cfg, s)

	result, err := svc.GetBlastRadius(context.Background(), "a", 10, nil)
	require.NoError(t, err)
	// depth is clamped to 1, so only "b" is reachable from "a".
	assert.Len(t, result.Nodes, 2)
	assert.Contains(t, result.HopBuckets[1], "b")
	_, hasHopTwo := result.HopBuckets[2]
	assert.False(t, hasHopTwo)
}

func TestService_WithoutMetrics_DoesNotPanic(t *testing.T) {
	s := pathGraph(t)
	svc := NewService(s)
	_, err := svc.Orphans(context.Background(), model.NodeFilter{})
	assert.NoError(t, err)
}
