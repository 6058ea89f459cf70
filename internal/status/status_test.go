package status

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyMappingIsTotalAndStable(t *testing.T) {
	cases := []struct {
		kind     Kind
		code     Code
		loggable bool
	}{
		{KindInvalidArgument, CodeInvalidArgument, false},
		{KindMalformedPayload, CodeInvalidArgument, false},
		{KindNotFound, CodeNotFound, false},
		{KindIllegalState, CodeInternal, true},
		{KindUnknown, CodeUnknown, true},
	}
	for _, tc := range cases {
		outcome := Classify(tc.kind)
		assert.Equal(t, tc.code, outcome.Code, "kind %s", tc.kind)
		assert.Equal(t, tc.loggable, outcome.Loggable, "kind %s", tc.kind)
		// stable across repeated lookups
		assert.Equal(t, outcome, Classify(tc.kind))
	}
}

func TestClassifyUnrecognizedKind(t *testing.T) {
	outcome := Classify(Kind("something_new"))
	assert.Equal(t, CodeUnknown, outcome.Code)
	assert.True(t, outcome.Loggable)
}

func TestClassifyErrorRequestVariants(t *testing.T) {
	assert.Equal(t, Outcome{Code: CodeInvalidArgument, Loggable: false}, ClassifyError(InvalidArgument("bad height")))
	assert.Equal(t, Outcome{Code: CodeInvalidArgument, Loggable: false}, ClassifyError(MalformedPayload("bad json")))
	assert.Equal(t, Outcome{Code: CodeNotFound, Loggable: false}, ClassifyError(NotFound("no block")))
}

func TestClassifyErrorProtocolVariant(t *testing.T) {
	err := &ProtocolError{Kind: KindIllegalState, Method: "block", URL: "http://node", RemoteStatus: 500, Body: "boom"}
	assert.Equal(t, Outcome{Code: CodeInternal, Loggable: true}, ClassifyError(err))

	unknown := &ProtocolError{Kind: KindUnknown, Method: "block", URL: "http://node"}
	assert.Equal(t, Outcome{Code: CodeUnknown, Loggable: true}, ClassifyError(unknown))
}

func TestClassifyErrorConfigVariant(t *testing.T) {
	err := &ConfigError{Reason: "unsupported scheme"}
	assert.Equal(t, Outcome{Code: CodeInternal, Loggable: true}, ClassifyError(err))
}

func TestClassifyErrorWrappedVariant(t *testing.T) {
	wrapped := fmt.Errorf("fetching block: %w", NotFound("no block at height 5"))
	assert.Equal(t, Outcome{Code: CodeNotFound, Loggable: false}, ClassifyError(wrapped))
}

func TestClassifyErrorUnrecognized(t *testing.T) {
	outcome := ClassifyError(errors.New("something else entirely"))
	assert.Equal(t, CodeUnknown, outcome.Code)
	assert.True(t, outcome.Loggable)
}

func TestProtocolErrorMessageCarriesDiagnostics(t *testing.T) {
	err := &ProtocolError{Kind: KindIllegalState, Method: "tx_search", URL: "https://node", RemoteStatus: 503, Body: "overloaded"}
	assert.Contains(t, err.Error(), "tx_search")
	assert.Contains(t, err.Error(), "https://node")
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "overloaded")
}
