package rpc

import (
	"errors"
	"testing"
	"time"

	"github.com/provscan/explorer-ingest/internal/common"
	"github.com/provscan/explorer-ingest/internal/events"
	"github.com/provscan/explorer-ingest/internal/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeBlock(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	raw := RawBlockResult{
		BlockID: RawBlockID{Hash: "ABCD"},
		Block: RawBlock{
			Header: RawBlockHeader{
				Height:      "1234",
				Time:        ts,
				LastBlockID: RawBlockID{Hash: "9876"},
			},
			Data: RawBlockData{Txs: []string{"dGVzdA==", "b3RoZXI="}},
		},
	}

	block, err := serializeBlock(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(1234), block.Height)
	assert.Equal(t, "ABCD", block.Hash)
	assert.Equal(t, "9876", block.ParentHash)
	assert.Equal(t, ts, block.Timestamp)
	assert.Equal(t, 2, block.TransactionCount)
	assert.NotZero(t, block.Size)
}

func TestSerializeBlockBadHeight(t *testing.T) {
	raw := RawBlockResult{Block: RawBlock{Header: RawBlockHeader{Height: "latest"}}}
	_, err := serializeBlock(raw)
	assert.Equal(t, status.CodeInvalidArgument, status.ClassifyError(err).Code)
}

func TestSerializeTxResultParsesStructuredLogs(t *testing.T) {
	raw := RawTx{
		Hash:   "AB12",
		Height: "42",
		TxResult: RawTxResult{
			Code:    0,
			GasUsed: "55123",
			Log:     `[{"msg_index":0,"events":[{"type":"transfer","attributes":[{"key":"sender","value":"addr1"},{"key":"amount","value":"10nhash"}]}]}]`,
		},
	}

	tx, err := serializeTxResult(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(42), tx.Height)
	assert.Equal(t, "AB12", tx.TxHash)
	assert.Equal(t, int64(55123), tx.GasUsed)
	require.Len(t, tx.Logs, 1)
	assert.Equal(t, 0, tx.Logs[0].MsgIndex)

	extracted := events.ExtractByLogs(&tx, 0, "transfer", []string{"sender", "amount"})
	assert.Equal(t, map[string]string{"sender": "addr1", "amount": "10nhash"}, extracted)
}

func TestSerializeTxResultFailedTxKeepsRawLog(t *testing.T) {
	raw := RawTx{
		Hash:   "CD34",
		Height: "43",
		TxResult: RawTxResult{
			Code:   5,
			Log:    "insufficient funds",
			Events: []common.Event{{Type: "tx", Attributes: []common.EventAttribute{{Key: "fee", Value: "100nhash"}}}},
		},
	}

	tx, err := serializeTxResult(raw)
	require.NoError(t, err)
	assert.Empty(t, tx.Logs)
	assert.Equal(t, "insufficient funds", tx.RawLog)
	require.Len(t, tx.Events, 1)
}

func TestSerializeTxResultMalformedLog(t *testing.T) {
	raw := RawTx{
		Hash:   "EF56",
		Height: "44",
		TxResult: RawTxResult{
			Code: 0,
			Log:  "{not json at all",
		},
	}

	_, err := serializeTxResult(raw)
	var reqErr *status.RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, status.KindMalformedPayload, reqErr.Kind)
	assert.Equal(t, status.CodeInvalidArgument, status.ClassifyError(err).Code)
}

func TestSerializeTxResultBadHeight(t *testing.T) {
	_, err := serializeTxResult(RawTx{Hash: "AA", Height: "not-a-number"})
	assert.Equal(t, status.CodeInvalidArgument, status.ClassifyError(err).Code)
}
