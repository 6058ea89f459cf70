package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	gethRpc "github.com/ethereum/go-ethereum/rpc"
	"github.com/provscan/explorer-ingest/internal/status"
)

// classifyCallError routes every fault a remote call can produce onto the
// closed failure set. Nothing escapes unclassified past this point.
func classifyCallError(err error, method, url string) error {
	var httpErr gethRpc.HTTPError
	if errors.As(err, &httpErr) {
		body := strings.TrimSpace(string(httpErr.Body))
		switch {
		case httpErr.StatusCode == http.StatusNotFound:
			return status.NotFound("%s on %s: %s", method, url, body)
		case httpErr.StatusCode == http.StatusBadRequest:
			return status.InvalidArgument("%s on %s: %s", method, url, body)
		case httpErr.StatusCode >= 500:
			// The remote explicitly signaled its failure, timeouts included.
			return &status.ProtocolError{
				Kind:         status.KindIllegalState,
				Method:       method,
				URL:          url,
				RemoteStatus: httpErr.StatusCode,
				Body:         body,
			}
		default:
			return &status.ProtocolError{
				Kind:         status.KindUnknown,
				Method:       method,
				URL:          url,
				RemoteStatus: httpErr.StatusCode,
				Body:         body,
			}
		}
	}

	var remoteErr gethRpc.Error
	if errors.As(err, &remoteErr) {
		return &status.ProtocolError{
			Kind:         status.KindIllegalState,
			Method:       method,
			URL:          url,
			RemoteStatus: remoteErr.ErrorCode(),
			Body:         remoteErr.Error(),
		}
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return status.MalformedPayload("%s on %s returned an unparseable payload: %v", method, url, err)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		// Deadline observed locally, without a remote signal.
		return &status.ProtocolError{
			Kind:   status.KindUnknown,
			Method: method,
			URL:    url,
			Err:    err,
		}
	}

	return &status.ProtocolError{
		Kind:   status.KindUnknown,
		Method: method,
		URL:    url,
		Err:    err,
	}
}
