package graph

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudgraph/ikg/internal/config"
)

func TestNewStoreFromConfig_Memory(t *testing.T) {
	store, err := NewStoreFromConfig(context.Background(), config.StorageConfig{Backend: "memory"})
	require.NoError(t, err)
	_, ok := store.(*MemoryStore)
	assert.True(t, ok)
}

func TestNewStoreFromConfig_DefaultsToMemory(t *testing.T) {
	store, err := NewStoreFromConfig(context.Background(), config.StorageConfig{})
	require.NoError(t, err)
	_, ok := store.(*MemoryStore)
	assert.True(t, ok)
}

func TestNewStoreFromConfig_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ikg.db")
	store, err := NewStoreFromConfig(context.Background(), config.StorageConfig{Backend: "sqlite", Path: path})
	require.NoError(t, err)
	s, ok := store.(*SQLiteStore)
	require.True(t, ok)
	defer s.Close()
}

func TestNewStoreFromConfig_SQLiteRequiresPath(t *testing.T) {
	_, err := NewStoreFromConfig(context.Background(), config.StorageConfig{Backend: "sqlite"})
	assert.Error(t, err)
}

func TestNewStoreFromConfig_RejectsUnsupportedBackend(t *testing.T) {
	_, err := NewStoreFromConfig(context.Background(), config.StorageConfig{Backend: "postgres"})
	assert.Error(t, err)
}
