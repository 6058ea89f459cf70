package common

import (
	"time"
)

// NavEvent is a recorded valuation observation for an asset, produced by the
// external valuation service and read-only to this pipeline. PriceMicroUSD is
// the total valuation in the smallest USD unit; VolumeNano is the traded
// volume in nano-units.
type NavEvent struct {
	Denom         string    `json:"denom"`
	PriceMicroUSD int64     `json:"price_micro_usd"`
	VolumeNano    int64     `json:"volume_nano"`
	IsMarker      bool      `json:"is_marker"`
	IsScope       bool      `json:"is_scope"`
	Timestamp     time.Time `json:"timestamp"`
}
