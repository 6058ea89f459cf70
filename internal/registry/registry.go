package registry

// The registry is a compiled-in table: adding a metric is a code change, not
// a runtime operation, which keeps unsynchronized concurrent reads safe.

// Metric is the internal canonical identity of a tracked time series.
type Metric int

const (
	HashPrice Metric = iota
	HashMarketCap
	HashVolume
	HashTVL
	UniqueWalletCount
	DailyTransactionCount
)

func (m Metric) String() string {
	switch m {
	case HashPrice:
		return "hash_price"
	case HashMarketCap:
		return "hash_market_cap"
	case HashVolume:
		return "hash_volume"
	case HashTVL:
		return "hash_tvl"
	case UniqueWalletCount:
		return "unique_wallet_count"
	case DailyTransactionCount:
		return "daily_transaction_count"
	default:
		return "unknown_metric"
	}
}

// Network selects which external series id applies.
type Network string

const (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"
)

// Interval is the sampling cadence of a series.
type Interval string

const (
	Hourly Interval = "hourly"
	Daily  Interval = "daily"
)

// Entry holds the per-network external series identifiers and cadence of one
// metric.
type Entry struct {
	MainnetID string
	TestnetID string
	Interval  Interval
}

var table = map[Metric]Entry{
	HashPrice:             {MainnetID: "hash-price-usd", TestnetID: "hash-price-usd-test", Interval: Hourly},
	HashMarketCap:         {MainnetID: "hash-market-cap-usd", TestnetID: "hash-market-cap-usd-test", Interval: Hourly},
	HashVolume:            {MainnetID: "hash-volume", TestnetID: "hash-volume-test", Interval: Hourly},
	HashTVL:               {MainnetID: "hash-tvl-usd", TestnetID: "hash-tvl-usd-test", Interval: Daily},
	UniqueWalletCount:     {MainnetID: "unique-wallets", TestnetID: "unique-wallets-test", Interval: Daily},
	DailyTransactionCount: {MainnetID: "daily-tx-count", TestnetID: "daily-tx-count-test", Interval: Daily},
}

// Metrics lists every registered metric identity.
func Metrics() []Metric {
	return []Metric{HashPrice, HashMarketCap, HashVolume, HashTVL, UniqueWalletCount, DailyTransactionCount}
}

// Lookup returns the registry entry for a metric.
func Lookup(m Metric) (Entry, bool) {
	entry, ok := table[m]
	return entry, ok
}

// ExternalID returns the series id a metric publishes under on the given
// network.
func ExternalID(m Metric, network Network) (string, bool) {
	entry, ok := table[m]
	if !ok {
		return "", false
	}
	if network == Testnet {
		return entry.TestnetID, true
	}
	return entry.MainnetID, true
}

// ByExternalID resolves an externally-keyed series back to its internal
// metric identity, used when ingesting external time series.
func ByExternalID(network Network, externalID string) (Metric, bool) {
	for _, m := range Metrics() {
		id, ok := ExternalID(m, network)
		if ok && id == externalID {
			return m, true
		}
	}
	return 0, false
}
