package storage

import (
	"context"
	"fmt"
	"time"

	config "github.com/provscan/explorer-ingest/configs"
	"github.com/provscan/explorer-ingest/internal/common"
	"github.com/provscan/explorer-ingest/internal/registry"
)

// IMetricStore is the pluggable persistence boundary the pipeline writes its
// normalized time series to. Series are append-only from this side; the
// store owns retention.
type IMetricStore interface {
	InsertRecords(ctx context.Context, metric registry.Metric, network registry.Network, records []common.TimeSeriesRecord) error
	// GetRecords returns records within [from, to], newest first, at most
	// limit entries.
	GetRecords(ctx context.Context, metric registry.Metric, network registry.Network, from, to time.Time, limit int) ([]common.TimeSeriesRecord, error)
	GetLatestRecord(ctx context.Context, metric registry.Metric, network registry.Network) (common.TimeSeriesRecord, bool, error)
	Close() error
}

func NewConnector(cfg *config.StorageConfig) (IMetricStore, error) {
	if cfg.Redis != nil {
		return NewRedisConnector(cfg.Redis)
	}
	if cfg.Memory != nil {
		return NewMemoryConnector(cfg.Memory)
	}
	return nil, fmt.Errorf("no storage driver configured")
}

// seriesKey keys a series by the external series identifier the metric
// publishes under on the given network.
func seriesKey(metric registry.Metric, network registry.Network) string {
	if id, ok := registry.ExternalID(metric, network); ok {
		return fmt.Sprintf("ts:%s:%s", network, id)
	}
	return fmt.Sprintf("ts:%s:%s", network, metric)
}
