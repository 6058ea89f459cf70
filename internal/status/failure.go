package status

import (
	"fmt"
)

// The retrieval boundary produces exactly three failure variants. They form a
// closed set consumed exhaustively by ClassifyError; nothing else should
// cross the boundary.

// ConfigError is a fatal configuration fault (unsupported endpoint scheme,
// missing URL). Raised at connect time, never retried.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

// RequestError is a caller-recoverable fault: bad argument, unparseable
// payload, or missing resource.
type RequestError struct {
	Kind    Kind
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request error (%s): %s", e.Kind, e.Message)
}

// ProtocolError is a transport or remote fault. It carries the remote status
// and any diagnostic body text alongside the method and URL that produced it.
type ProtocolError struct {
	Kind         Kind
	Method       string
	URL          string
	RemoteStatus int
	Body         string
	Err          error
}

func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("protocol error (%s) calling %s on %s: %v", e.Kind, e.Method, e.URL, e.Err)
	}
	return fmt.Sprintf("protocol error (%s) calling %s on %s: status %d %s", e.Kind, e.Method, e.URL, e.RemoteStatus, e.Body)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

func InvalidArgument(format string, args ...interface{}) error {
	return &RequestError{Kind: KindInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

func MalformedPayload(format string, args ...interface{}) error {
	return &RequestError{Kind: KindMalformedPayload, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) error {
	return &RequestError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}
