package ikgerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsKind_MatchesConstructedError(t *testing.T) {
	err := NewAdapterError("aws", "discover failed", errors.New("timeout"))
	assert.True(t, IsKind(err, KindAdapter))
	assert.False(t, IsKind(err, KindStorage))
}

func TestIsKind_FalseForPlainError(t *testing.T) {
	assert.False(t, IsKind(errors.New("plain"), KindStorage))
}

func TestError_UnwrapReturnsCause(t *testing.T) {
	cause := errors.New("root cause")
	err := NewStorageError("upsert failed", cause)
	require.ErrorIs(t, err, cause)
}

func TestError_MessageIncludesKindAndCause(t *testing.T) {
	cause := errors.New("boom")
	err := NewControlEvaluationError("node-1", "evaluation panicked", cause)
	msg := err.Error()
	assert.Contains(t, msg, string(KindControlEvaluation))
	assert.Contains(t, msg, "evaluation panicked")
	assert.Contains(t, msg, "boom")
}

func TestAggregator_CollectsMessagesInOrder(t *testing.T) {
	var agg Aggregator
	assert.False(t, agg.HasErrors())
	assert.Equal(t, []string{}, agg.Messages())

	agg.Add("first failure")
	agg.Addf("second failure: %d", 2)

	assert.True(t, agg.HasErrors())
	assert.Equal(t, []string{"first failure", "second failure: 2"}, agg.Messages())
}
