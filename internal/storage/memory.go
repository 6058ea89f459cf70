package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	config "github.com/provscan/explorer-ingest/configs"
	"github.com/provscan/explorer-ingest/internal/common"
	"github.com/provscan/explorer-ingest/internal/registry"
)

// MemoryConnector keeps each series as a JSON-encoded, timestamp-sorted array
// in an LRU cache. Suited to tests and local runs.
type MemoryConnector struct {
	cache *lru.Cache[string, string]
	mu    sync.Mutex
}

func NewMemoryConnector(cfg *config.MemoryConfig) (*MemoryConnector, error) {
	maxItems := 1000
	if cfg.MaxItems > 0 {
		maxItems = cfg.MaxItems
	}

	cache, err := lru.New[string, string](maxItems)
	if err != nil {
		return nil, fmt.Errorf("failed to create LRU cache: %w", err)
	}

	return &MemoryConnector{
		cache: cache,
	}, nil
}

func (m *MemoryConnector) InsertRecords(_ context.Context, metric registry.Metric, network registry.Network, records []common.TimeSeriesRecord) error {
	if len(records) == 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	key := seriesKey(metric, network)
	series, err := m.loadSeries(key)
	if err != nil {
		return err
	}
	series = append(series, records...)
	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Timestamp.Before(series[j].Timestamp)
	})

	encoded, err := json.Marshal(series)
	if err != nil {
		return err
	}
	m.cache.Add(key, string(encoded))
	return nil
}

func (m *MemoryConnector) GetRecords(_ context.Context, metric registry.Metric, network registry.Network, from, to time.Time, limit int) ([]common.TimeSeriesRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	series, err := m.loadSeries(seriesKey(metric, network))
	if err != nil {
		return nil, err
	}

	records := []common.TimeSeriesRecord{}
	for i := len(series) - 1; i >= 0; i-- {
		if limit > 0 && len(records) >= limit {
			break
		}
		record := series[i]
		if record.Timestamp.Before(from) || record.Timestamp.After(to) {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func (m *MemoryConnector) GetLatestRecord(_ context.Context, metric registry.Metric, network registry.Network) (common.TimeSeriesRecord, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	series, err := m.loadSeries(seriesKey(metric, network))
	if err != nil {
		return common.TimeSeriesRecord{}, false, err
	}
	if len(series) == 0 {
		return common.TimeSeriesRecord{}, false, nil
	}
	return series[len(series)-1], true, nil
}

func (m *MemoryConnector) Close() error {
	m.cache.Purge()
	return nil
}

func (m *MemoryConnector) loadSeries(key string) ([]common.TimeSeriesRecord, error) {
	encoded, ok := m.cache.Get(key)
	if !ok {
		return nil, nil
	}
	var series []common.TimeSeriesRecord
	if err := json.Unmarshal([]byte(encoded), &series); err != nil {
		return nil, err
	}
	return series, nil
}
