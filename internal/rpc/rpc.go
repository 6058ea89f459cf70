package rpc

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"time"

	gethRpc "github.com/ethereum/go-ethereum/rpc"
	config "github.com/provscan/explorer-ingest/configs"
	"github.com/provscan/explorer-ingest/internal/common"
	"github.com/provscan/explorer-ingest/internal/status"
	"github.com/rs/zerolog/log"
)

const defaultCallTimeout = 30 * time.Second

// plainSchemes and secureSchemes are the recognized endpoint schemes; the
// scheme alone decides plaintext vs TLS transport. Anything else is a
// configuration error, fatal at dial time.
var (
	plainSchemes  = map[string]bool{"http": true, "ws": true}
	secureSchemes = map[string]bool{"https": true, "wss": true}
)

type INodeClient interface {
	GetBlockByHeight(ctx context.Context, height int64) (common.Block, error)
	GetLatestBlock(ctx context.Context) (common.Block, error)
	GetTransactionsByHeight(ctx context.Context, height int64, expectedCount int) ([]common.TxResult, error)
	GetURL() string
	IsSecure() bool
	Close()
}

type Client struct {
	rpcClient *gethRpc.Client
	url       string
	secure    bool
	timeout   time.Duration
}

var (
	clientCacheMu sync.Mutex
	clientCache   = map[string]*Client{}
)

// Dial returns the channel for an endpoint URI, establishing it on first use
// and reusing it afterwards. Dialing is idempotent per URI and safe for
// concurrent use.
func Dial(rawURL string) (INodeClient, error) {
	clientCacheMu.Lock()
	defer clientCacheMu.Unlock()

	if client, ok := clientCache[rawURL]; ok {
		return client, nil
	}

	client, err := dialNew(rawURL)
	if err != nil {
		return nil, err
	}
	clientCache[rawURL] = client
	return client, nil
}

func dialNew(rawURL string) (*Client, error) {
	if rawURL == "" {
		return nil, &status.ConfigError{Reason: "node URL is not set"}
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, &status.ConfigError{Reason: fmt.Sprintf("node URL %q is not parseable: %v", rawURL, err)}
	}
	if !plainSchemes[parsed.Scheme] && !secureSchemes[parsed.Scheme] {
		return nil, &status.ConfigError{Reason: fmt.Sprintf("unsupported scheme %q in node URL %q", parsed.Scheme, rawURL)}
	}
	log.Debug().Msgf("Dialing node at %s", rawURL)
	rpcClient, dialErr := gethRpc.Dial(rawURL)
	if dialErr != nil {
		return nil, &status.ConfigError{Reason: fmt.Sprintf("failed to dial %q: %v", rawURL, dialErr)}
	}

	timeout := defaultCallTimeout
	if config.Cfg.RPC.TimeoutSeconds > 0 {
		timeout = time.Duration(config.Cfg.RPC.TimeoutSeconds) * time.Second
	}
	return &Client{
		rpcClient: rpcClient,
		url:       rawURL,
		secure:    secureSchemes[parsed.Scheme],
		timeout:   timeout,
	}, nil
}

// Initialize dials the node configured under rpc.url.
func Initialize() (INodeClient, error) {
	return Dial(config.Cfg.RPC.URL)
}

func (c *Client) GetURL() string {
	return c.url
}

// IsSecure reports whether the channel runs over TLS, as decided by the
// endpoint scheme at dial time.
func (c *Client) IsSecure() bool {
	return c.secure
}

func (c *Client) Close() {
	c.rpcClient.Close()
}

// call issues one deadline-bounded remote call. No retries: one call, one
// outcome. Every failure leaves here as a classified variant.
func (c *Client) call(ctx context.Context, result interface{}, method string, args ...interface{}) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	if err := c.rpcClient.CallContext(ctx, result, method, args...); err != nil {
		return classifyCallError(err, method, c.url)
	}
	return nil
}

func (c *Client) GetBlockByHeight(ctx context.Context, height int64) (common.Block, error) {
	if height <= 0 {
		return common.Block{}, status.InvalidArgument("block height must be positive, got %d", height)
	}
	var raw RawBlockResult
	if err := c.call(ctx, &raw, "block", strconv.FormatInt(height, 10)); err != nil {
		return common.Block{}, err
	}
	return serializeBlock(raw)
}

func (c *Client) GetLatestBlock(ctx context.Context) (common.Block, error) {
	var raw RawBlockResult
	if err := c.call(ctx, &raw, "block"); err != nil {
		return common.Block{}, err
	}
	return serializeBlock(raw)
}

// GetTransactionsByHeight fetches every transaction at a height. The returned
// sequence always has exactly expectedCount entries; a shorter or longer
// remote result set surfaces as a not-found failure, never as a silently
// truncated sequence.
func (c *Client) GetTransactionsByHeight(ctx context.Context, height int64, expectedCount int) ([]common.TxResult, error) {
	if height <= 0 {
		return nil, status.InvalidArgument("block height must be positive, got %d", height)
	}
	if expectedCount < 0 {
		return nil, status.InvalidArgument("expected count must be non-negative, got %d", expectedCount)
	}
	if expectedCount == 0 {
		return []common.TxResult{}, nil
	}

	query := fmt.Sprintf("tx.height=%d", height)
	var raw RawTxSearchResult
	if err := c.call(ctx, &raw, "tx_search", query, false, "1", strconv.Itoa(expectedCount), "asc"); err != nil {
		return nil, err
	}
	totalCount, convErr := strconv.Atoi(raw.TotalCount)
	if convErr != nil {
		return nil, status.MalformedPayload("tx_search total_count %q is not an integer", raw.TotalCount)
	}
	// total_count covers the whole result set, not just the returned page,
	// so a block holding more transactions than requested fails here instead
	// of passing back a full page that looks complete.
	if totalCount != expectedCount {
		return nil, status.NotFound("expected %d transactions at height %d, node reports %d", expectedCount, height, totalCount)
	}
	if len(raw.Txs) != expectedCount {
		return nil, status.NotFound("expected %d transactions at height %d, node returned %d", expectedCount, height, len(raw.Txs))
	}

	txs := make([]common.TxResult, 0, expectedCount)
	for _, rawTx := range raw.Txs {
		tx, err := serializeTxResult(rawTx)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, nil
}
