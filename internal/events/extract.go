package events

import (
	"strconv"

	"github.com/provscan/explorer-ingest/internal/common"
)

// msgIndexAttr tags response-level events with the message that emitted them.
const msgIndexAttr = "msg_index"

// ExtractByLogs recovers requested attribute values from the structured log
// list of a transaction result. It selects the log entry whose message index
// equals msgIndex, scans its events in order for the first one of the target
// type, and collects the requested keys with first-occurrence-wins semantics.
// A missing entry or event type yields an empty map, never an error; keys the
// matched event does not carry are simply absent from the result.
func ExtractByLogs(tx *common.TxResult, msgIndex int, eventType string, keys []string) map[string]string {
	for _, entry := range tx.Logs {
		if entry.MsgIndex != msgIndex {
			continue
		}
		for _, event := range entry.Events {
			if event.Type == eventType {
				return collectAttributes(event, keys)
			}
		}
		return map[string]string{}
	}
	return map[string]string{}
}

// ExtractByMsgIndex recovers the same attribute values from the raw
// response-level event list, used when structured logs are unavailable (a
// failed transaction still carries response-level events). Events there are
// correlated to their message through a msg_index attribute. Given equivalent
// well-formed input this must produce the same map as ExtractByLogs.
func ExtractByMsgIndex(tx *common.TxResult, msgIndex int, eventType string, keys []string) map[string]string {
	want := strconv.Itoa(msgIndex)
	for _, event := range tx.Events {
		if event.Type != eventType {
			continue
		}
		if idx, ok := firstAttribute(event, msgIndexAttr); ok && idx == want {
			return collectAttributes(event, keys)
		}
	}
	return map[string]string{}
}

// collectAttributes maps each requested key to the value of its first
// matching attribute. Duplicate keys within one event are legal; the first
// occurrence wins, deterministically.
func collectAttributes(event common.Event, keys []string) map[string]string {
	result := make(map[string]string, len(keys))
	for _, key := range keys {
		if value, ok := firstAttribute(event, key); ok {
			result[key] = value
		}
	}
	return result
}

func firstAttribute(event common.Event, key string) (string, bool) {
	for _, attr := range event.Attributes {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}
