package common

// EventAttribute is a single key/value observation inside an event. Values
// are always textual; numeric interpretation belongs to the caller. The same
// key may appear more than once within one event.
type EventAttribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Event is a typed, ordered list of attributes emitted during message
// execution. Types compare case-sensitively.
type Event struct {
	Type       string           `json:"type"`
	Attributes []EventAttribute `json:"attributes"`
}

// TxLogEntry groups the events produced by one message of a transaction.
// MsgIndex is unique within a transaction's log list.
type TxLogEntry struct {
	MsgIndex int     `json:"msg_index"`
	Events   []Event `json:"events"`
}

// TxResult is the execution outcome of one transaction, retrieved once per
// (height, index) or per hash and immutable afterwards. Logs carry the
// structured per-message events; Events is the raw response-level event list
// used as fallback when structured logs are absent (failed transactions still
// emit response-level events tagged with a msg_index attribute). RawLog keeps
// the unparsed response body for diagnosis.
type TxResult struct {
	Height  int64        `json:"height"`
	TxHash  string       `json:"tx_hash"`
	Code    uint32       `json:"code"`
	GasUsed int64        `json:"gas_used"`
	Logs    []TxLogEntry `json:"logs"`
	Events  []Event      `json:"events"`
	RawLog  string       `json:"raw_log"`
}
