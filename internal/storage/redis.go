package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	config "github.com/provscan/explorer-ingest/configs"
	"github.com/provscan/explorer-ingest/internal/common"
	"github.com/provscan/explorer-ingest/internal/registry"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var DEFAULT_REDIS_POOL_SIZE = 20

// RedisConnector stores each series as a sorted set scored by the record's
// unix-milli timestamp.
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
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Debug().Msgf("Connected to Redis at %s", cfg.Addr)
	return &RedisConnector{
		client: client,
		cfg:    cfg,
	}, nil
}

func (r *RedisConnector) InsertRecords(ctx context.Context, metric registry.Metric, network registry.Network, records []common.TimeSeriesRecord) error {
	if len(records) == 0 {
		return nil
	}
	members := make([]redis.Z, 0, len(records))
	for _, record := range records {
		encoded, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to marshal time series record: %w", err)
		}
		members = append(members, redis.Z{
			Score:  float64(record.Timestamp.UnixMilli()),
			Member: string(encoded),
		})
	}
	if err := r.client.ZAdd(ctx, seriesKey(metric, network), members...).Err(); err != nil {
		return fmt.Errorf("failed to insert time series records: %w", err)
	}
	return nil
}

func (r *RedisConnector) GetRecords(ctx context.Context, metric registry.Metric, network registry.Network, from, to time.Time, limit int) ([]common.TimeSeriesRecord, error) {
	rangeBy := &redis.ZRangeBy{
		Min: strconv.FormatInt(from.UnixMilli(), 10),
		Max: strconv.FormatInt(to.UnixMilli(), 10),
	}
	if limit > 0 {
		rangeBy.Count = int64(limit)
	}
	members, err := r.client.ZRevRangeByScore(ctx, seriesKey(metric, network), rangeBy).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read time series records: %w", err)
	}
	return decodeMembers(members)
}

func (r *RedisConnector) GetLatestRecord(ctx context.Context, metric registry.Metric, network registry.Network) (common.TimeSeriesRecord, bool, error) {
	members, err := r.client.ZRevRange(ctx, seriesKey(metric, network), 0, 0).Result()
	if err != nil {
		return common.TimeSeriesRecord{}, false, fmt.Errorf("failed to read latest record: %w", err)
	}
	if len(members) == 0 {
		return common.TimeSeriesRecord{}, false, nil
	}
	records, err := decodeMembers(members)
	if err != nil {
		return common.TimeSeriesRecord{}, false, err
	}
	return records[0], true, nil
}

func (r *RedisConnector) Close() error {
	return r.client.Close()
}

func decodeMembers(members []string) ([]common.TimeSeriesRecord, error) {
	records := make([]common.TimeSeriesRecord, 0, len(members))
	for _, member := range members {
		var record common.TimeSeriesRecord
		if err := json.Unmarshal([]byte(member), &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal time series record: %w", err)
		}
		records = append(records, record)
	}
	return records, nil
}
