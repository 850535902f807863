package orchestrator

import (
	"context"
	"time"

	"github.com/blobscan/indexer/internal/clients/beacon"
	"github.com/blobscan/indexer/internal/metrics"
	"github.com/rs/zerolog/log"
)

const DEFAULT_HEAD_TRACKER_POLL_INTERVAL = 12000 // one slot

type HeadTracker struct {
	beacon            beacon.IBeaconClient
	triggerIntervalMs int
}

func NewHeadTracker(beaconClient beacon.IBeaconClient, triggerIntervalMs int) *HeadTracker {
	if triggerIntervalMs <= 0 {
		triggerIntervalMs = DEFAULT_HEAD_TRACKER_POLL_INTERVAL
	}
	return &HeadTracker{
		beacon:            beaconClient,
		triggerIntervalMs: triggerIntervalMs,
	}
}

func (ht *HeadTracker) Start(ctx context.Context) {
	interval := time.Duration(ht.triggerIntervalMs) * time.Millisecond
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Debug().Msg("Head tracker running")
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			headBlock, err := ht.beacon.GetBlock(ctx, nil)
			if err != nil {
				log.Error().Err(err).Msg("Error getting beacon head block")
				continue
			}
			if headBlock == nil {
				continue
			}
			metrics.HeadSlot.Set(float64(headBlock.Message.Slot))
		}
	}
}
