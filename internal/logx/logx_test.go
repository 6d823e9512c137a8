package logx

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesStructuredJSONFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "debug", Output: &buf})

	l.Info("sync completed", String("provider", "aws"), Int("nodes", 42))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "sync completed", decoded["message"])
	assert.Equal(t, "aws", decoded["provider"])
	assert.Equal(t, float64(42), decoded["nodes"])
}

func TestLevelFiltering_DebugSuppressedAtInfoLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "info", Output: &buf})

	l.Debug("should be filtered")
	assert.Empty(t, buf.String())

	l.Info("should appear")
	assert.NotEmpty(t, buf.String())
}

func TestWithFields_BindsContextToChildLogger(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "info", Output: &buf})
	child := l.WithFields(String("correlationId", "abc-123"))

	child.Info("cycle started")

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "abc-123", decoded["correlationId"])
}

func TestGet_ReturnsSingleton(t *testing.T) {
	first := Get()
	second := Get()
	assert.Same(t, first, second)
}

func TestErrField_RendersErrorMessage(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "info", Output: &buf})
	l.Error("sync failed", ErrField(assertErr{"connection refused"}))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "connection refused", decoded["error"])
}

type assertErr struct{ msg string }

func (e assertErr) Error() string { return e.msg }
