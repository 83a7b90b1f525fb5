package main

import (
	"fmt"
	"net/http"
)

// error taxonomy for the engine pipelines.  request/parse/engine failures
// stop at the owning engine's result bundle; not-found conditions are not
// errors at all from the aggregator's perspective.

type errorKind int

const (
	errKindUnknown errorKind = iota
	errKindRequest           // network/timeout talking to an engine
	errKindParse             // malformed/unexpected response shape
	errKindEngine            // engine returned 200 with an embedded error payload
	errKindNotFound          // recognized empty-result condition
	errKindInvalidRecord     // parsed record lacks a required id
)

// wire codes for each kind, surfaced as ErrorInfo.Code
const (
	errCodeRequest       = 1001
	errCodeParse         = 1002
	errCodeEngine        = 1003
	errCodeNotFound      = 1004
	errCodeInvalidRecord = 1005
)

type searchError struct {
	kind    errorKind
	code    int
	message string
}

func (e *searchError) Error() string {
	return e.message
}

func (e *searchError) info() *ErrorInfo {
	return &ErrorInfo{Code: e.code, Message: e.message}
}

func (e *searchError) httpStatus() int {
	switch e.kind {
	case errKindRequest:
		return http.StatusBadGateway
	case errKindNotFound:
		return http.StatusNotFound
	case errKindParse, errKindEngine, errKindInvalidRecord:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func requestError(format string, args ...interface{}) *searchError {
	return &searchError{kind: errKindRequest, code: errCodeRequest, message: fmt.Sprintf(format, args...)}
}

func parseError(format string, args ...interface{}) *searchError {
	return &searchError{kind: errKindParse, code: errCodeParse, message: fmt.Sprintf(format, args...)}
}

func engineError(code int, message string) *searchError {
	return &searchError{kind: errKindEngine, code: errCodeEngine, message: fmt.Sprintf("engine error %d: %s", code, message)}
}

func notFoundError(format string, args ...interface{}) *searchError {
	return &searchError{kind: errKindNotFound, code: errCodeNotFound, message: fmt.Sprintf(format, args...)}
}

func invalidRecordError(format string, args ...interface{}) *searchError {
	return &searchError{kind: errKindInvalidRecord, code: errCodeInvalidRecord, message: fmt.Sprintf(format, args...)}
}

func errorIsKind(err error, kind errorKind) bool {
	if se, ok := err.(*searchError); ok {
		return se.kind == kind
	}

	return false
}

// asErrorInfo shapes any error for the response; non-searchError values are
// reported with the generic request code.
func asErrorInfo(err error) *ErrorInfo {
	if err == nil {
		return nil
	}

	if se, ok := err.(*searchError); ok {
		return se.info()
	}

	return &ErrorInfo{Code: errCodeRequest, Message: err.Error()}
}
