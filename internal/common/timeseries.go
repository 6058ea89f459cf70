package common

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimeSeriesRecord is one (timestamp, value) observation of a tracked metric.
// A series is ordered by timestamp and append-only from this pipeline's side;
// the store owns retention.
type TimeSeriesRecord struct {
	Timestamp time.Time       `json:"timestamp"`
	Value     decimal.Decimal `json:"value"`
}
