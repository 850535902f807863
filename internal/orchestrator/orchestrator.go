package orchestrator

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	config "github.com/blobscan/indexer/configs"
	"github.com/blobscan/indexer/internal/clients/beacon"
	"github.com/blobscan/indexer/internal/clients/blobscan"
	"github.com/blobscan/indexer/internal/clients/execution"
	"github.com/blobscan/indexer/internal/indexer"
	"github.com/blobscan/indexer/internal/storage"
	"github.com/rs/zerolog/log"
)

type Orchestrator struct {
	beacon      beacon.IBeaconClient
	processor   *indexer.SlotProcessor
	storage     storage.IOrchestratorStorage
	syncEnabled bool
	cancel      context.CancelFunc
}

func NewOrchestrator(beaconClient beacon.IBeaconClient, executionClient execution.IExecutionClient, blobscanClient blobscan.IBlobscanClient) (*Orchestrator, error) {
	orchestratorStorage, err := storage.NewOrchestratorStorage(&config.Cfg.Storage.Orchestrator)
	if err != nil {
		return nil, err
	}

	return &Orchestrator{
		beacon:      beaconClient,
		processor:   indexer.NewSlotProcessor(beaconClient, executionClient, blobscanClient),
		storage:     orchestratorStorage,
		syncEnabled: config.Cfg.Sync.Enabled,
	}, nil
}

func (o *Orchestrator) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	o.cancel = cancel

	var wg sync.WaitGroup

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		sig := <-sigChan
		log.Info().Msgf("Received signal %v, initiating graceful shutdown", sig)
		o.cancel()
	}()

	var syncErr error

	if o.syncEnabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			synchronizer := NewSynchronizer(o.beacon, o.processor, o.storage)
			if err := synchronizer.Start(ctx); err != nil && ctx.Err() == nil {
				log.Error().Err(err).Msg("Synchronizer stopped with error")
				syncErr = err
				o.cancel()
			}
		}()
	}

	// The head tracker is always running
	wg.Add(1)
	go func() {
		defer wg.Done()
		headTracker := NewHeadTracker(o.beacon, config.Cfg.HeadTracker.IntervalMs)
		headTracker.Start(ctx)
	}()

	wg.Wait()

	if err := o.storage.Close(); err != nil {
		log.Warn().Err(err).Msg("Failed to close orchestrator storage")
	}

	return syncErr
}

func (o *Orchestrator) Shutdown() {
	if o.cancel != nil {
		o.cancel()
	}
}
