package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Slot processor metrics
var (
	IndexedSlots = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slot_processor_indexed_slots_total",
		Help: "The total number of slots indexed successfully",
	})

	SkippedSlots = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slot_processor_skipped_slots_total",
		Help: "The total number of slots skipped because they carry no blob data",
	})

	SlotRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slot_processor_retries_total",
		Help: "The total number of slot processing retries after transient failures",
	})

	PermanentSlotFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slot_processor_permanent_failures_total",
		Help: "The total number of slots that failed with a non-retryable fault",
	})

	IndexedBlobs = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slot_processor_indexed_blobs_total",
		Help: "The total number of blobs submitted to the indexing backend",
	})
)

// Synchronizer metrics
var (
	LastIndexedSlot = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "synchronizer_last_indexed_slot",
		Help: "The last slot checkpointed by the synchronizer",
	})

	SyncedChunkSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "synchronizer_chunk_size",
		Help: "The number of slots processed in the last sync chunk",
	})
)

// Head tracker metrics
var HeadSlot = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "head_tracker_head_slot",
	Help: "The latest slot observed at the head of the beacon chain",
})
