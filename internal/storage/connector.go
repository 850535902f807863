package storage

import (
	"context"

	config "github.com/blobscan/indexer/configs"
)

// IOrchestratorStorage keeps the synchronizer's progress between runs. The
// checkpoint is the highest slot known to be fully processed.
type IOrchestratorStorage interface {
	// GetLastIndexedSlot returns the checkpoint and whether one exists.
	GetLastIndexedSlot(ctx context.Context) (uint64, bool, error)
	SetLastIndexedSlot(ctx context.Context, slot uint64) error
	Close() error
}

func NewOrchestratorStorage(cfg *config.StorageConnectionConfig) (IOrchestratorStorage, error) {
	if cfg.Redis != nil {
		return NewRedisConnector(cfg.Redis)
	}
	return NewMemoryConnector(), nil
}
