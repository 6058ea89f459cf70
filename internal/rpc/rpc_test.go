package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	gethRpc "github.com/ethereum/go-ethereum/rpc"
	"github.com/provscan/explorer-ingest/internal/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialRejectsUnsupportedScheme(t *testing.T) {
	for _, rawURL := range []string{"ftp://node:26657", "grpc://node:9090", "node:26657", "unix:///tmp/node.sock"} {
		_, err := Dial(rawURL)
		var cfgErr *status.ConfigError
		assert.True(t, errors.As(err, &cfgErr), "expected config error for %s, got %v", rawURL, err)
	}
}

func TestDialRejectsEmptyURL(t *testing.T) {
	_, err := Dial("")
	var cfgErr *status.ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestDialCachesChannelPerURI(t *testing.T) {
	first, err := Dial("http://localhost:26657")
	require.NoError(t, err)
	second, err := Dial("http://localhost:26657")
	require.NoError(t, err)
	assert.Same(t, first, second)

	other, err := Dial("https://localhost:26657")
	require.NoError(t, err)
	assert.NotSame(t, first, other)
}

func TestDialSelectsTransportSecurityFromScheme(t *testing.T) {
	plain, err := Dial("http://localhost:26657")
	require.NoError(t, err)
	assert.False(t, plain.IsSecure())

	secure, err := Dial("https://localhost:26657")
	require.NoError(t, err)
	assert.True(t, secure.IsSecure())
}

// txSearchServer answers every call with a fixed tx_search result page.
func txSearchServer(t *testing.T, txCount int, totalCount string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID json.RawMessage `json:"id"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		txs := make([]string, 0, txCount)
		for i := 0; i < txCount; i++ {
			txs = append(txs, fmt.Sprintf(`{"hash":"T%d","height":"12","tx_result":{"code":0,"gas_used":"10","log":"","events":[]}}`, i+1))
		}
		body := fmt.Sprintf(`{"txs":[%s],"total_count":%q}`, strings.Join(txs, ","), totalCount)

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"result":%s}`, req.ID, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGetTransactionsByHeightFullBlock(t *testing.T) {
	srv := txSearchServer(t, 2, "2")
	client, err := Dial(srv.URL)
	require.NoError(t, err)

	txs, err := client.GetTransactionsByHeight(context.Background(), 12, 2)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "T1", txs[0].TxHash)
	assert.Equal(t, int64(12), txs[0].Height)
}

func TestGetTransactionsByHeightDetectsOversizedBlock(t *testing.T) {
	// The node returns a full page of exactly the requested size, but the
	// block holds more; total_count is the tell.
	srv := txSearchServer(t, 3, "5")
	client, err := Dial(srv.URL)
	require.NoError(t, err)

	_, err = client.GetTransactionsByHeight(context.Background(), 12, 3)
	require.Error(t, err)
	assert.Equal(t, status.CodeNotFound, status.ClassifyError(err).Code)
}

func TestGetTransactionsByHeightMalformedTotalCount(t *testing.T) {
	srv := txSearchServer(t, 1, "lots")
	client, err := Dial(srv.URL)
	require.NoError(t, err)

	_, err = client.GetTransactionsByHeight(context.Background(), 12, 1)
	require.Error(t, err)
	var reqErr *status.RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, status.KindMalformedPayload, reqErr.Kind)
}

func TestGetTransactionsByHeightValidatesArguments(t *testing.T) {
	client, err := Dial("http://localhost:26657")
	require.NoError(t, err)

	_, err = client.GetTransactionsByHeight(context.Background(), 0, 1)
	assert.Equal(t, status.CodeInvalidArgument, status.ClassifyError(err).Code)

	_, err = client.GetTransactionsByHeight(context.Background(), 10, -1)
	assert.Equal(t, status.CodeInvalidArgument, status.ClassifyError(err).Code)
}

func TestGetTransactionsByHeightZeroExpected(t *testing.T) {
	client, err := Dial("http://localhost:26657")
	require.NoError(t, err)

	txs, err := client.GetTransactionsByHeight(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestClassifyCallErrorHTTPNotFound(t *testing.T) {
	err := classifyCallError(gethRpc.HTTPError{StatusCode: http.StatusNotFound, Status: "404 Not Found", Body: []byte("no such height")}, "block", "http://node")
	outcome := status.ClassifyError(err)
	assert.Equal(t, status.CodeNotFound, outcome.Code)
	assert.False(t, outcome.Loggable)
}

func TestClassifyCallErrorHTTPBadRequest(t *testing.T) {
	err := classifyCallError(gethRpc.HTTPError{StatusCode: http.StatusBadRequest, Status: "400 Bad Request"}, "block", "http://node")
	assert.Equal(t, status.CodeInvalidArgument, status.ClassifyError(err).Code)
}

func TestClassifyCallErrorRemoteFault(t *testing.T) {
	err := classifyCallError(gethRpc.HTTPError{StatusCode: http.StatusInternalServerError, Status: "500 Internal Server Error", Body: []byte("node panic")}, "tx_search", "http://node")
	var protoErr *status.ProtocolError
	require.True(t, errors.As(err, &protoErr))
	assert.Equal(t, 500, protoErr.RemoteStatus)
	assert.Equal(t, "tx_search", protoErr.Method)
	assert.Equal(t, "http://node", protoErr.URL)
	assert.Equal(t, "node panic", protoErr.Body)

	outcome := status.ClassifyError(err)
	assert.Equal(t, status.CodeInternal, outcome.Code)
	assert.True(t, outcome.Loggable)
}

func TestClassifyCallErrorLocalDeadline(t *testing.T) {
	err := classifyCallError(context.DeadlineExceeded, "block", "http://node")
	outcome := status.ClassifyError(err)
	assert.Equal(t, status.CodeUnknown, outcome.Code)
	assert.True(t, outcome.Loggable)
}

func TestClassifyCallErrorTransportFault(t *testing.T) {
	err := classifyCallError(errors.New("dial tcp: connection refused"), "block", "http://node")
	outcome := status.ClassifyError(err)
	assert.Equal(t, status.CodeUnknown, outcome.Code)
	assert.True(t, outcome.Loggable)
}
