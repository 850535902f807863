package storage

import (
	"context"
	"fmt"
	"strconv"

	config "github.com/blobscan/indexer/configs"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const DEFAULT_REDIS_POOL_SIZE = 20

type RedisConnector struct {
	client *redis.Client
	cfg    *config.RedisConfig
}

func NewRedisConnector(cfg *config.RedisConfig) (*RedisConnector, error) {
	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = DEFAULT_REDIS_POOL_SIZE
	}

	options := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: poolSize,
	}

	client := redis.NewClient(options)

	ctx := context.Background()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Debug().Msg("Connected to Redis")
	return &RedisConnector{
		client: client,
		cfg:    cfg,
	}, nil
}

func (r *RedisConnector) checkpointKey() string {
	prefix := r.cfg.KeyPrefix
	if prefix == "" {
		prefix = "blob_indexer"
	}
	return fmt.Sprintf("%s:last_indexed_slot", prefix)
}

func (r *RedisConnector) GetLastIndexedSlot(ctx context.Context) (uint64, bool, error) {
	value, err := r.client.Get(ctx, r.checkpointKey()).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get last indexed slot: %w", err)
	}

	slot, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("failed to parse last indexed slot %q: %w", value, err)
	}
	return slot, true, nil
}

func (r *RedisConnector) SetLastIndexedSlot(ctx context.Context, slot uint64) error {
	if err := r.client.Set(ctx, r.checkpointKey(), strconv.FormatUint(slot, 10), 0).Err(); err != nil {
		return fmt.Errorf("failed to store last indexed slot: %w", err)
	}
	return nil
}

func (r *RedisConnector) Close() error {
	return r.client.Close()
}
