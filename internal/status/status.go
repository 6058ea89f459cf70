package status

import (
	"errors"
)

// Code is the protocol-level status vocabulary surfaced past the retrieval
// boundary. It is deliberately small; boundaries translate it into their own
// error responses.
type Code string

const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeInternal        Code = "INTERNAL"
	CodeUnknown         Code = "UNKNOWN"
)

// Kind tags a failure with its class. Classification keys off the tag only,
// never the free-text message.
type Kind string

const (
	KindInvalidArgument  Kind = "invalid_argument"
	KindMalformedPayload Kind = "malformed_payload"
	KindNotFound         Kind = "not_found"
	KindIllegalState     Kind = "illegal_state"
	KindUnknown          Kind = "unknown"
)

// Outcome is the classifier's verdict: the status code to surface and whether
// the failure merits error-level logging. Expected client-input failures are
// high volume and low signal, so they are not loggable.
type Outcome struct {
	Code     Code
	Loggable bool
}

// Classify maps a failure kind to its protocol outcome. Total and stable:
// every recognized kind maps to exactly one outcome, anything unrecognized
// maps to (UNKNOWN, loggable).
func Classify(kind Kind) Outcome {
	switch kind {
	case KindInvalidArgument, KindMalformedPayload:
		return Outcome{Code: CodeInvalidArgument, Loggable: false}
	case KindNotFound:
		return Outcome{Code: CodeNotFound, Loggable: false}
	case KindIllegalState:
		return Outcome{Code: CodeInternal, Loggable: true}
	default:
		return Outcome{Code: CodeUnknown, Loggable: true}
	}
}

// ClassifyError resolves an error to an outcome through its tagged variant.
// Errors that never passed through the failure constructors classify as
// unknown.
func ClassifyError(err error) Outcome {
	var cfg *ConfigError
	if errors.As(err, &cfg) {
		return Outcome{Code: CodeInternal, Loggable: true}
	}
	var req *RequestError
	if errors.As(err, &req) {
		return Classify(req.Kind)
	}
	var proto *ProtocolError
	if errors.As(err, &proto) {
		return Classify(proto.Kind)
	}
	return Outcome{Code: CodeUnknown, Loggable: true}
}
