package events

import (
	"strconv"
	"testing"

	"github.com/provscan/explorer-ingest/internal/common"
	"github.com/stretchr/testify/assert"
)

// txWithBothViews builds a transaction result whose structured logs and raw
// response-level events describe the same execution, the response-level
// events carrying the msg_index tag.
func txWithBothViews() *common.TxResult {
	entries := []common.TxLogEntry{
		{
			MsgIndex: 0,
			Events: []common.Event{
				{Type: "transfer", Attributes: []common.EventAttribute{
					{Key: "sender", Value: "addr1"},
					{Key: "recipient", Value: "addr2"},
					{Key: "amount", Value: "100nhash"},
				}},
			},
		},
		{
			MsgIndex: 1,
			Events: []common.Event{
				{Type: "provenance.marker.v1.EventMarkerActivate", Attributes: []common.EventAttribute{
					{Key: "denom", Value: "nhash"},
					{Key: "administrator", Value: "addr3"},
				}},
				{Type: "transfer", Attributes: []common.EventAttribute{
					{Key: "sender", Value: "addr3"},
					{Key: "amount", Value: "5nhash"},
				}},
			},
		},
	}

	tx := &common.TxResult{Height: 42, TxHash: "AB12", Logs: entries}
	for _, entry := range entries {
		for _, event := range entry.Events {
			tagged := common.Event{Type: event.Type}
			tagged.Attributes = append(tagged.Attributes, event.Attributes...)
			tagged.Attributes = append(tagged.Attributes, common.EventAttribute{
				Key:   "msg_index",
				Value: strconv.Itoa(entry.MsgIndex),
			})
			tx.Events = append(tx.Events, tagged)
		}
	}
	return tx
}

func TestExtractByLogs(t *testing.T) {
	tx := txWithBothViews()
	result := ExtractByLogs(tx, 0, "transfer", []string{"sender", "amount"})
	assert.Equal(t, map[string]string{"sender": "addr1", "amount": "100nhash"}, result)
}

func TestExtractStrategiesAgree(t *testing.T) {
	tx := txWithBothViews()
	cases := []struct {
		msgIndex  int
		eventType string
		keys      []string
	}{
		{0, "transfer", []string{"sender", "recipient", "amount"}},
		{0, "transfer", []string{"amount"}},
		{1, "transfer", []string{"sender", "amount"}},
		{1, "provenance.marker.v1.EventMarkerActivate", []string{"denom", "administrator"}},
		{1, "provenance.marker.v1.EventMarkerActivate", []string{"denom", "missing_key"}},
		{0, "no_such_type", []string{"sender"}},
		{7, "transfer", []string{"sender"}},
	}
	for _, tc := range cases {
		byLogs := ExtractByLogs(tx, tc.msgIndex, tc.eventType, tc.keys)
		byMsgIndex := ExtractByMsgIndex(tx, tc.msgIndex, tc.eventType, tc.keys)
		assert.Equal(t, byLogs, byMsgIndex, "strategies disagree for msg %d type %s keys %v", tc.msgIndex, tc.eventType, tc.keys)
	}
}

func TestExtractFirstOccurrenceWins(t *testing.T) {
	tx := &common.TxResult{
		Logs: []common.TxLogEntry{
			{
				MsgIndex: 0,
				Events: []common.Event{
					{Type: "wasm", Attributes: []common.EventAttribute{
						{Key: "action", Value: "first"},
						{Key: "action", Value: "second"},
					}},
				},
			},
		},
	}
	result := ExtractByLogs(tx, 0, "wasm", []string{"action"})
	assert.Equal(t, "first", result["action"])
}

func TestExtractFirstEventOfTypeWins(t *testing.T) {
	tx := &common.TxResult{
		Logs: []common.TxLogEntry{
			{
				MsgIndex: 0,
				Events: []common.Event{
					{Type: "transfer", Attributes: []common.EventAttribute{{Key: "amount", Value: "1"}}},
					{Type: "transfer", Attributes: []common.EventAttribute{{Key: "amount", Value: "2"}}},
				},
			},
		},
	}
	result := ExtractByLogs(tx, 0, "transfer", []string{"amount"})
	assert.Equal(t, "1", result["amount"])
}

func TestExtractMissingMsgIndexYieldsEmptyMap(t *testing.T) {
	tx := txWithBothViews()
	assert.Empty(t, ExtractByLogs(tx, 99, "transfer", []string{"sender"}))
	assert.Empty(t, ExtractByMsgIndex(tx, 99, "transfer", []string{"sender"}))
}

func TestExtractMissingEventTypeYieldsEmptyMap(t *testing.T) {
	tx := txWithBothViews()
	assert.Empty(t, ExtractByLogs(tx, 0, "mint", []string{"amount"}))
	assert.Empty(t, ExtractByMsgIndex(tx, 0, "mint", []string{"amount"}))
}

func TestExtractMissingKeysAreAbsentNotErrors(t *testing.T) {
	tx := txWithBothViews()
	result := ExtractByLogs(tx, 0, "transfer", []string{"sender", "nonexistent"})
	assert.Equal(t, map[string]string{"sender": "addr1"}, result)
	_, present := result["nonexistent"]
	assert.False(t, present)
}

func TestExtractTypeComparisonIsCaseSensitive(t *testing.T) {
	tx := txWithBothViews()
	assert.Empty(t, ExtractByLogs(tx, 0, "Transfer", []string{"sender"}))
}
