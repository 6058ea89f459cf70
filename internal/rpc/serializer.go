package rpc

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/provscan/explorer-ingest/internal/common"
	"github.com/provscan/explorer-ingest/internal/status"
)

// Raw node payloads. Framing and field layout are owned by the remote
// protocol; these types only mirror what the node sends.

type RawBlockResult struct {
	BlockID RawBlockID `json:"block_id"`
	Block   RawBlock   `json:"block"`
}

type RawBlockID struct {
	Hash string `json:"hash"`
}

type RawBlock struct {
	Header RawBlockHeader `json:"header"`
	Data   RawBlockData   `json:"data"`
}

type RawBlockHeader struct {
	Height      string     `json:"height"`
	Time        time.Time  `json:"time"`
	LastBlockID RawBlockID `json:"last_block_id"`
}

type RawBlockData struct {
	Txs []string `json:"txs"`
}

type RawTxSearchResult struct {
	Txs        []RawTx `json:"txs"`
	TotalCount string  `json:"total_count"`
}

type RawTx struct {
	Hash     string      `json:"hash"`
	Height   string      `json:"height"`
	TxResult RawTxResult `json:"tx_result"`
}

type RawTxResult struct {
	Code    uint32         `json:"code"`
	GasUsed string         `json:"gas_used"`
	Log     string         `json:"log"`
	Events  []common.Event `json:"events"`
}

// rawLogEntry is the element shape of the JSON-encoded log string inside a
// tx result.
type rawLogEntry struct {
	MsgIndex int            `json:"msg_index"`
	Events   []common.Event `json:"events"`
}

func serializeBlock(raw RawBlockResult) (common.Block, error) {
	height, err := strconv.ParseInt(raw.Block.Header.Height, 10, 64)
	if err != nil {
		return common.Block{}, status.MalformedPayload("block height %q is not an integer", raw.Block.Header.Height)
	}
	size := uint64(0)
	for _, tx := range raw.Block.Data.Txs {
		size += uint64(len(tx))
	}
	return common.Block{
		Height:           height,
		Hash:             raw.BlockID.Hash,
		ParentHash:       raw.Block.Header.LastBlockID.Hash,
		Timestamp:        raw.Block.Header.Time,
		Size:             size,
		TransactionCount: len(raw.Block.Data.Txs),
	}, nil
}

func serializeTxResult(raw RawTx) (common.TxResult, error) {
	height, err := strconv.ParseInt(raw.Height, 10, 64)
	if err != nil {
		return common.TxResult{}, status.MalformedPayload("tx height %q is not an integer", raw.Height)
	}
	gasUsed := int64(0)
	if raw.TxResult.GasUsed != "" {
		gasUsed, err = strconv.ParseInt(raw.TxResult.GasUsed, 10, 64)
		if err != nil {
			return common.TxResult{}, status.MalformedPayload("tx gas_used %q is not an integer", raw.TxResult.GasUsed)
		}
	}

	// A zero code means execution succeeded and the log field carries the
	// structured per-message entries as a JSON string. Failed transactions
	// keep a plain text log; their events survive only at response level.
	var logs []common.TxLogEntry
	if raw.TxResult.Code == 0 && raw.TxResult.Log != "" {
		var entries []rawLogEntry
		if err := json.Unmarshal([]byte(raw.TxResult.Log), &entries); err != nil {
			return common.TxResult{}, status.MalformedPayload("tx %s log is not parseable: %v", raw.Hash, err)
		}
		logs = make([]common.TxLogEntry, 0, len(entries))
		for _, entry := range entries {
			logs = append(logs, common.TxLogEntry{MsgIndex: entry.MsgIndex, Events: entry.Events})
		}
	}

	return common.TxResult{
		Height:  height,
		TxHash:  raw.Hash,
		Code:    raw.TxResult.Code,
		GasUsed: gasUsed,
		Logs:    logs,
		Events:  raw.TxResult.Events,
		RawLog:  raw.TxResult.Log,
	}, nil
}
