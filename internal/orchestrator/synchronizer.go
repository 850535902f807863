package orchestrator

import (
	"context"
	"fmt"
	"sync"
	"time"

	config "github.com/blobscan/indexer/configs"
	"github.com/blobscan/indexer/internal/clients/beacon"
	"github.com/blobscan/indexer/internal/indexer"
	customLog "github.com/blobscan/indexer/internal/log"
	"github.com/blobscan/indexer/internal/metrics"
	"github.com/blobscan/indexer/internal/storage"
	"github.com/rs/zerolog"
)

const (
	DEFAULT_SLOTS_PER_CHUNK          = 32
	DEFAULT_PARALLEL_WORKERS         = 4
	DEFAULT_SYNC_TRIGGER_INTERVAL_MS = 12000
)

// Synchronizer walks the chain from the checkpointed last indexed slot toward
// the beacon head, one chunk at a time. The checkpoint only advances when a
// whole chunk has been processed, so a crash re-processes at most one chunk;
// slot processing is idempotent-by-reconstruction, so that is safe.
type Synchronizer struct {
	beacon          beacon.IBeaconClient
	processor       *indexer.SlotProcessor
	storage         storage.IOrchestratorStorage
	fromSlot        uint64
	untilSlot       uint64
	slotsPerChunk   int
	parallelWorkers int
	triggerInterval time.Duration
	logger          zerolog.Logger
}

func NewSynchronizer(beaconClient beacon.IBeaconClient, processor *indexer.SlotProcessor, orchestratorStorage storage.IOrchestratorStorage) *Synchronizer {
	cfg := config.Cfg.Sync

	slotsPerChunk := cfg.SlotsPerChunk
	if slotsPerChunk <= 0 {
		slotsPerChunk = DEFAULT_SLOTS_PER_CHUNK
	}
	parallelWorkers := cfg.ParallelWorkers
	if parallelWorkers <= 0 {
		parallelWorkers = DEFAULT_PARALLEL_WORKERS
	}
	triggerIntervalMs := cfg.IntervalMs
	if triggerIntervalMs <= 0 {
		triggerIntervalMs = DEFAULT_SYNC_TRIGGER_INTERVAL_MS
	}

	return &Synchronizer{
		beacon:          beaconClient,
		processor:       processor,
		storage:         orchestratorStorage,
		fromSlot:        cfg.FromSlot,
		untilSlot:       cfg.UntilSlot,
		slotsPerChunk:   slotsPerChunk,
		parallelWorkers: parallelWorkers,
		triggerInterval: time.Duration(triggerIntervalMs) * time.Millisecond,
		logger:          customLog.NewLogger("synchronizer"),
	}
}

func (s *Synchronizer) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.triggerInterval)
	defer ticker.Stop()

	s.logger.Debug().Msg("Synchronizer running")
	for {
		if err := s.syncToHead(ctx); err != nil {
			if indexer.IsPermanent(err) || ctx.Err() != nil {
				return err
			}
			s.logger.Warn().Err(err).Msg("Sync run failed, will retry on next tick")
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// syncToHead processes every slot between the checkpoint and the current
// head (or the configured until slot), chunk by chunk.
func (s *Synchronizer) syncToHead(ctx context.Context) error {
	nextSlot := s.fromSlot
	lastIndexed, found, err := s.storage.GetLastIndexedSlot(ctx)
	if err != nil {
		return fmt.Errorf("failed to read last indexed slot: %w", err)
	}
	if found && lastIndexed+1 > nextSlot {
		nextSlot = lastIndexed + 1
	}

	headBlock, err := s.beacon.GetBlock(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to fetch beacon head: %w", err)
	}
	if headBlock == nil {
		return nil
	}
	targetSlot := uint64(headBlock.Message.Slot)
	if s.untilSlot > 0 && s.untilSlot < targetSlot {
		targetSlot = s.untilSlot
	}

	for nextSlot <= targetSlot {
		chunkEnd := nextSlot + uint64(s.slotsPerChunk) - 1
		if chunkEnd > targetSlot {
			chunkEnd = targetSlot
		}

		if err := s.processChunk(ctx, nextSlot, chunkEnd); err != nil {
			return err
		}

		if err := s.storage.SetLastIndexedSlot(ctx, chunkEnd); err != nil {
			return fmt.Errorf("failed to store last indexed slot: %w", err)
		}
		metrics.LastIndexedSlot.Set(float64(chunkEnd))
		metrics.SyncedChunkSize.Set(float64(chunkEnd - nextSlot + 1))

		s.logger.Info().
			Uint64("fromSlot", nextSlot).
			Uint64("toSlot", chunkEnd).
			Msg("Slot chunk processed")

		nextSlot = chunkEnd + 1
	}

	return nil
}

func (s *Synchronizer) processChunk(ctx context.Context, fromSlot, toSlot uint64) error {
	sem := make(chan struct{}, s.parallelWorkers)
	var wg sync.WaitGroup

	var mu sync.Mutex
	var firstErr error

	for slot := fromSlot; slot <= toSlot; slot++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(slot uint64) {
			defer wg.Done()
			defer func() { <-sem }()

			if err := s.processor.ProcessSlot(ctx, slot); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("failed to process slot %d: %w", slot, err)
				}
				mu.Unlock()
			}
		}(slot)
	}

	wg.Wait()
	return firstErr
}
