package orchestrator

import (
	"context"
	"time"

	config "github.com/provscan/explorer-ingest/configs"
	"github.com/provscan/explorer-ingest/internal/common"
	"github.com/provscan/explorer-ingest/internal/metrics"
	"github.com/provscan/explorer-ingest/internal/pricing"
	"github.com/provscan/explorer-ingest/internal/registry"
	"github.com/provscan/explorer-ingest/internal/rpc"
	"github.com/provscan/explorer-ingest/internal/status"
	"github.com/provscan/explorer-ingest/internal/storage"
	"github.com/rs/zerolog/log"
)

const DEFAULT_COLLECTOR_INTERVAL = 60000
const DEFAULT_NAV_PAGE_SIZE = 100

// NavCollector turns NAV observations from the valuation service into price
// and market cap series. One fetch per tick, no retries; a failed cycle
// waits for the next tick.
type NavCollector struct {
	nav               rpc.INavClient
	store             storage.IMetricStore
	network           registry.Network
	denom             string
	pageSize          int
	supplyNano        int64
	triggerIntervalMs int
}

func NewNavCollector(nav rpc.INavClient, store storage.IMetricStore, network registry.Network) *NavCollector {
	interval := config.Cfg.Collector.Interval
	if interval == 0 {
		interval = DEFAULT_COLLECTOR_INTERVAL
	}
	pageSize := config.Cfg.Collector.NavPageSize
	if pageSize == 0 {
		pageSize = DEFAULT_NAV_PAGE_SIZE
	}

	return &NavCollector{
		nav:               nav,
		store:             store,
		network:           network,
		denom:             config.Cfg.Nav.Denom,
		pageSize:          pageSize,
		supplyNano:        config.Cfg.Collector.SupplyNano,
		triggerIntervalMs: interval,
	}
}

func (c *NavCollector) Start(ctx context.Context) {
	interval := time.Duration(c.triggerIntervalMs) * time.Millisecond
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info().Msgf("NAV collector running every %v for denom %s", interval, c.denom)

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("NAV collector shutting down")
			return
		case <-ticker.C:
			c.collect(ctx)
		}
	}
}

func (c *NavCollector) collect(ctx context.Context) {
	from := c.lastObserved(ctx)
	events, err := c.nav.GetLatestNavPrices(ctx, c.denom, true, true, from, c.pageSize)
	if err != nil {
		logFailure(err, "Failed to fetch NAV prices")
		return
	}
	if len(events) == 0 {
		return
	}
	metrics.NavEventsFetched.Add(float64(len(events)))
	metrics.LastNavTimestamp.Set(float64(events[0].Timestamp.Unix()))

	priceRecords := make([]common.TimeSeriesRecord, 0, len(events))
	capRecords := make([]common.TimeSeriesRecord, 0, len(events))
	volumeRecords := make([]common.TimeSeriesRecord, 0, len(events))
	for _, event := range events {
		price := pricing.PricePerUnitFromMicroUSD(event.PriceMicroUSD, event.VolumeNano)
		priceRecords = append(priceRecords, common.TimeSeriesRecord{Timestamp: event.Timestamp, Value: price})
		volumeRecords = append(volumeRecords, common.TimeSeriesRecord{Timestamp: event.Timestamp, Value: pricing.UnitsFromNano(event.VolumeNano)})
		if c.supplyNano > 0 {
			capRecords = append(capRecords, common.TimeSeriesRecord{Timestamp: event.Timestamp, Value: pricing.MarketCapFromNav(price, c.supplyNano)})
		}
	}

	priceFloat, _ := priceRecords[0].Value.Float64()
	metrics.LastHashPrice.Set(priceFloat)

	c.insert(ctx, registry.HashPrice, priceRecords)
	c.insert(ctx, registry.HashVolume, volumeRecords)
	if len(capRecords) > 0 {
		c.insert(ctx, registry.HashMarketCap, capRecords)
	}
}

func (c *NavCollector) insert(ctx context.Context, metric registry.Metric, records []common.TimeSeriesRecord) {
	if err := c.store.InsertRecords(ctx, metric, c.network, records); err != nil {
		log.Error().Err(err).Msgf("Failed to store %s records", metric)
		return
	}
	metrics.RecordsInserted.Add(float64(len(records)))
}

// lastObserved bounds the fetch window below by what the store already has,
// so a restart does not re-ingest the whole history.
func (c *NavCollector) lastObserved(ctx context.Context) time.Time {
	record, ok, err := c.store.GetLatestRecord(ctx, registry.HashPrice, c.network)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to read latest stored price, fetching unbounded")
		return time.Time{}
	}
	if !ok {
		return time.Time{}
	}
	// The service treats the bound as inclusive and the store keys records at
	// millisecond granularity, so step past the stored point to keep the
	// newest event from being re-ingested every tick.
	return record.Timestamp.Add(time.Millisecond)
}

// logFailure routes a classified failure to the log according to its
// outcome; expected client-input failures stay at debug.
func logFailure(err error, msg string) {
	outcome := status.ClassifyError(err)
	metrics.ClassifiedFailures.WithLabelValues(string(outcome.Code)).Inc()
	if outcome.Loggable {
		log.Error().Err(err).Str("code", string(outcome.Code)).Msg(msg)
		return
	}
	log.Debug().Err(err).Str("code", string(outcome.Code)).Msg(msg)
}
