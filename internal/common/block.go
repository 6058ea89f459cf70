package common

import (
	"time"
)

// Block is immutable once retrieved; identity is (Height, Hash).
type Block struct {
	Height           int64     `json:"height"`
	Hash             string    `json:"hash"`
	ParentHash       string    `json:"parent_hash"`
	Timestamp        time.Time `json:"timestamp"`
	Size             uint64    `json:"size"`
	TransactionCount int       `json:"transaction_count"`
}
