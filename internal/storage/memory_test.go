package storage

import (
	"context"
	"testing"

	config "github.com/blobscan/indexer/configs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryConnector_Checkpoint(t *testing.T) {
	m := NewMemoryConnector()
	ctx := context.Background()

	_, found, err := m.GetLastIndexedSlot(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, m.SetLastIndexedSlot(ctx, 123))

	slot, found, err := m.GetLastIndexedSlot(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, uint64(123), slot)

	require.NoError(t, m.SetLastIndexedSlot(ctx, 456))
	slot, _, _ = m.GetLastIndexedSlot(ctx)
	assert.Equal(t, uint64(456), slot)

	require.NoError(t, m.Close())
}

func TestNewOrchestratorStorage_DefaultsToMemory(t *testing.T) {
	s, err := NewOrchestratorStorage(&config.StorageConnectionConfig{})
	require.NoError(t, err)
	_, ok := s.(*MemoryConnector)
	assert.True(t, ok)
}
