package orchestrator

import (
	"context"
	"testing"

	config "github.com/blobscan/indexer/configs"
	"github.com/blobscan/indexer/internal/clients/beacon"
	"github.com/blobscan/indexer/internal/indexer"
	"github.com/blobscan/indexer/internal/storage"
	"github.com/blobscan/indexer/test/mocks"
	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func headBlock(slot uint64) *beacon.BeaconBlock {
	return &beacon.BeaconBlock{Message: beacon.BlockMessage{Slot: beacon.Uint64Str(slot)}}
}

func newTestSynchronizer(t *testing.T, beaconClient *mocks.MockIBeaconClient, checkpoint storage.IOrchestratorStorage) *Synchronizer {
	t.Helper()

	// Save original config and restore after test
	originalConfig := config.Cfg.Sync
	t.Cleanup(func() { config.Cfg.Sync = originalConfig })

	config.Cfg.Sync = config.SyncConfig{
		FromSlot:        1,
		SlotsPerChunk:   4,
		ParallelWorkers: 2,
	}

	executionClient := &mocks.MockIExecutionClient{}
	blobscanClient := &mocks.MockIBlobscanClient{}
	processor := indexer.NewSlotProcessor(beaconClient, executionClient, blobscanClient,
		indexer.WithBackOffFactory(func() backoff.BackOff {
			return backoff.WithMaxRetries(&backoff.ZeroBackOff{}, 1)
		}),
		indexer.WithProcessorLogger(zerolog.Nop()),
	)

	s := NewSynchronizer(beaconClient, processor, checkpoint)
	s.logger = zerolog.Nop()
	return s
}

func TestSyncToHead_WalksFullRangeAndCheckpoints(t *testing.T) {
	beaconClient := &mocks.MockIBeaconClient{}
	checkpoint := storage.NewMemoryConnector()

	// head lookup
	beaconClient.On("GetBlock", mock.Anything, (*uint64)(nil)).Return(headBlock(10), nil).Once()
	// every slot in [1,10] is empty: absent beacon block, processed as a skip
	beaconClient.On("GetBlock", mock.Anything, mock.MatchedBy(func(slot *uint64) bool {
		return slot != nil && *slot >= 1 && *slot <= 10
	})).Return(nil, nil).Times(10)

	s := newTestSynchronizer(t, beaconClient, checkpoint)
	require.NoError(t, s.syncToHead(context.Background()))

	slot, found, err := checkpoint.GetLastIndexedSlot(context.Background())
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, uint64(10), slot)

	beaconClient.AssertExpectations(t)
}

func TestSyncToHead_ResumesFromCheckpoint(t *testing.T) {
	beaconClient := &mocks.MockIBeaconClient{}
	checkpoint := storage.NewMemoryConnector()
	require.NoError(t, checkpoint.SetLastIndexedSlot(context.Background(), 8))

	beaconClient.On("GetBlock", mock.Anything, (*uint64)(nil)).Return(headBlock(10), nil).Once()
	beaconClient.On("GetBlock", mock.Anything, mock.MatchedBy(func(slot *uint64) bool {
		return slot != nil && *slot >= 9 && *slot <= 10
	})).Return(nil, nil).Times(2)

	s := newTestSynchronizer(t, beaconClient, checkpoint)
	require.NoError(t, s.syncToHead(context.Background()))

	slot, _, err := checkpoint.GetLastIndexedSlot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(10), slot)

	beaconClient.AssertExpectations(t)
}

func TestSyncToHead_NothingToDoWhenCaughtUp(t *testing.T) {
	beaconClient := &mocks.MockIBeaconClient{}
	checkpoint := storage.NewMemoryConnector()
	require.NoError(t, checkpoint.SetLastIndexedSlot(context.Background(), 10))

	beaconClient.On("GetBlock", mock.Anything, (*uint64)(nil)).Return(headBlock(10), nil).Once()

	s := newTestSynchronizer(t, beaconClient, checkpoint)
	require.NoError(t, s.syncToHead(context.Background()))

	// only the head lookup happened
	beaconClient.AssertNumberOfCalls(t, "GetBlock", 1)
}

func TestSyncToHead_HonorsUntilSlot(t *testing.T) {
	beaconClient := &mocks.MockIBeaconClient{}
	checkpoint := storage.NewMemoryConnector()

	beaconClient.On("GetBlock", mock.Anything, (*uint64)(nil)).Return(headBlock(100), nil).Once()
	beaconClient.On("GetBlock", mock.Anything, mock.MatchedBy(func(slot *uint64) bool {
		return slot != nil && *slot >= 1 && *slot <= 3
	})).Return(nil, nil).Times(3)

	s := newTestSynchronizer(t, beaconClient, checkpoint)
	s.untilSlot = 3
	require.NoError(t, s.syncToHead(context.Background()))

	slot, _, err := checkpoint.GetLastIndexedSlot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(3), slot)

	beaconClient.AssertExpectations(t)
}
