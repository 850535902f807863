package indexer

import (
	"context"
	"errors"
	"time"

	config "github.com/blobscan/indexer/configs"
	"github.com/blobscan/indexer/internal/clients/api"
	"github.com/blobscan/indexer/internal/clients/beacon"
	"github.com/blobscan/indexer/internal/clients/blobscan"
	"github.com/blobscan/indexer/internal/clients/execution"
	customLog "github.com/blobscan/indexer/internal/log"
	"github.com/blobscan/indexer/internal/metrics"
	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

const (
	DefaultInitialInterval = 1 * time.Second
	DefaultMultiplier      = 2.0
	DefaultMaxInterval     = 1 * time.Minute
	DefaultMaxElapsedTime  = 10 * time.Minute
)

// BackOffFactory builds a fresh backoff policy for each processed slot. The
// policy is a replaceable collaborator; tests swap it for a zero-wait one.
type BackOffFactory func() backoff.BackOff

// NewBackOffFactory derives the retry policy from config, falling back to
// defaults for unset fields.
func NewBackOffFactory(cfg config.RetryConfig) BackOffFactory {
	initialInterval := DefaultInitialInterval
	if cfg.InitialIntervalMs > 0 {
		initialInterval = time.Duration(cfg.InitialIntervalMs) * time.Millisecond
	}
	multiplier := DefaultMultiplier
	if cfg.Multiplier > 1 {
		multiplier = cfg.Multiplier
	}
	maxInterval := DefaultMaxInterval
	if cfg.MaxIntervalMs > 0 {
		maxInterval = time.Duration(cfg.MaxIntervalMs) * time.Millisecond
	}
	maxElapsedTime := DefaultMaxElapsedTime
	if cfg.MaxElapsedTimeMs > 0 {
		maxElapsedTime = time.Duration(cfg.MaxElapsedTimeMs) * time.Millisecond
	}

	return func() backoff.BackOff {
		b := backoff.NewExponentialBackOff()
		b.InitialInterval = initialInterval
		b.Multiplier = multiplier
		b.MaxInterval = maxInterval
		b.MaxElapsedTime = maxElapsedTime
		return b
	}
}

// SlotProcessor runs the full indexing pipeline for single slots: fetch the
// two upstream views, cross-validate them, build the normalized entities and
// submit them to the indexing backend. It holds no mutable state between
// attempts; the client handles are shareable, so processing different slots
// concurrently is safe.
type SlotProcessor struct {
	beacon     beacon.IBeaconClient
	execution  execution.IExecutionClient
	blobscan   blobscan.IBlobscanClient
	newBackOff BackOffFactory
	logger     zerolog.Logger
}

type SlotProcessorOpt func(*SlotProcessor)

func WithBackOffFactory(f BackOffFactory) SlotProcessorOpt {
	return func(sp *SlotProcessor) {
		sp.newBackOff = f
	}
}

func WithProcessorLogger(logger zerolog.Logger) SlotProcessorOpt {
	return func(sp *SlotProcessor) {
		sp.logger = logger
	}
}

func NewSlotProcessor(beaconClient beacon.IBeaconClient, executionClient execution.IExecutionClient, blobscanClient blobscan.IBlobscanClient, opts ...SlotProcessorOpt) *SlotProcessor {
	sp := &SlotProcessor{
		beacon:     beaconClient,
		execution:  executionClient,
		blobscan:   blobscanClient,
		newBackOff: NewBackOffFactory(config.Cfg.Retry),
		logger:     customLog.NewLogger("slot_processor"),
	}
	for _, o := range opts {
		o(sp)
	}
	return sp
}

// ProcessSlot processes one slot to completion: it retries transient faults
// with exponential backoff and stops immediately on success or on a permanent
// fault. Intermediate retries surface only as warn events; the caller sees a
// single terminal result.
func (sp *SlotProcessor) ProcessSlot(ctx context.Context, slot uint64) error {
	operation := func() error {
		serr := sp.processSlotAttempt(ctx, slot)
		if serr == nil {
			return nil
		}
		if serr.permanent {
			metrics.PermanentSlotFailures.Inc()
			return backoff.Permanent(error(serr))
		}
		return serr
	}

	notify := func(err error, wait time.Duration) {
		metrics.SlotRetries.Inc()
		sp.logger.Warn().
			Uint64("slot", slot).
			Err(err).
			Dur("retryIn", wait).
			Msg("Failed to process slot. Retrying...")
	}

	return backoff.RetryNotify(operation, backoff.WithContext(sp.newBackOff(), ctx), notify)
}

// processSlotAttempt is one pass through the pipeline. Every early return is
// either a skip (nil), a transient fault or a permanent fault; a retry
// re-executes the whole attempt, so no partial state survives.
func (sp *SlotProcessor) processSlotAttempt(ctx context.Context, slot uint64) *slotError {
	beaconBlock, err := sp.beacon.GetBlock(ctx, &slot)
	if err != nil {
		return transientErr(err)
	}
	if beaconBlock == nil {
		sp.skip(slot, "there is no beacon block")
		return nil
	}

	executionPayload := beaconBlock.Message.Body.ExecutionPayload
	if executionPayload == nil {
		sp.skip(slot, "beacon block doesn't contain execution payload")
		return nil
	}

	if !beaconBlock.HasKzgCommitments() {
		sp.skip(slot, "beacon block doesn't contain blob kzg commitments")
		return nil
	}

	executionBlockHash := executionPayload.BlockHash

	// The hash comes from the beacon block, so the execution block must
	// exist; only a genuine not-found is a permanent fault.
	executionBlock, err := sp.execution.GetBlockWithTransactions(ctx, executionBlockHash)
	if err != nil {
		return transientErr(err)
	}
	if executionBlock == nil {
		return permanentErrf("execution block %s not found", executionBlockHash)
	}

	txToVersionedHashes, err := buildTxToVersionedHashes(executionBlock)
	if err != nil {
		return permanentErr(err)
	}
	if len(txToVersionedHashes) == 0 {
		return permanentErrf("blocks mismatch: beacon block contains blob kzg commitments, but execution block %s does not contain any blob transactions", executionBlockHash)
	}

	sidecars, err := sp.beacon.GetBlobSidecars(ctx, slot)
	if err != nil {
		return transientErr(err)
	}
	if len(sidecars) == 0 {
		sp.skip(slot, "there is no blobs sidecar")
		return nil
	}

	blockEntity, err := buildBlock(executionBlock, slot)
	if err != nil {
		return permanentErr(err)
	}

	transactionEntities := buildTransactions(executionBlock, txToVersionedHashes)

	versionedHashToSidecar, err := buildVersionedHashToSidecar(sidecars)
	if err != nil {
		return permanentErr(err)
	}

	blobEntities, err := buildBlobs(executionBlock, txToVersionedHashes, versionedHashToSidecar)
	if err != nil {
		return permanentErr(err)
	}

	if err := sp.blobscan.Index(ctx, blockEntity, transactionEntities, blobEntities); err != nil {
		var clientErr *api.ClientError
		if errors.As(err, &clientErr) && !clientErr.Retryable() {
			return permanentErr(err)
		}
		return transientErr(err)
	}

	metrics.IndexedSlots.Inc()
	metrics.IndexedBlobs.Add(float64(len(blobEntities)))

	txHashes := make([]string, 0, len(transactionEntities))
	for _, tx := range transactionEntities {
		txHashes = append(txHashes, tx.Hash)
	}
	blobVersionedHashes := make([]string, 0, len(blobEntities))
	for _, blob := range blobEntities {
		blobVersionedHashes = append(blobVersionedHashes, blob.VersionedHash)
	}

	sp.logger.Info().
		Uint64("slot", slot).
		Str("block", executionBlockHash.Hex()).
		Strs("transactions", txHashes).
		Strs("blobs", blobVersionedHashes).
		Msg("Block, transactions and blobs indexed successfully!")

	return nil
}

func (sp *SlotProcessor) skip(slot uint64, reason string) {
	metrics.SkippedSlots.Inc()
	sp.logger.Debug().Uint64("slot", slot).Msgf("Skipping as %s", reason)
}
