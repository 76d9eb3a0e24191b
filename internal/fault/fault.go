// Package fault defines the error taxonomy shared by every pipeline stage.
// Each error carries a Kind so handlers can map it to an HTTP status without
// string matching, and an optional upstream status when a provider supplied
// a more specific one.
package fault

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	// Input: a required field is missing or empty. Caller's fault, do not retry.
	Input Kind = iota
	// Decoding: malformed base64 audio payload. Caller's fault.
	Decoding
	// Configuration: provider credential absent. Operator's fault, identical
	// for every request until fixed.
	Configuration
	// UpstreamUnavailable: non-success status from a dependency. Transient.
	UpstreamUnavailable
	// MalformedUpstreamResponse: dependency returned success but the content
	// violates the expected schema. Not retryable until prompt/schema change.
	MalformedUpstreamResponse
)

func (k Kind) String() string {
	switch k {
	case Input:
		return "input"
	case Decoding:
		return "decoding"
	case Configuration:
		return "configuration"
	case UpstreamUnavailable:
		return "upstream_unavailable"
	case MalformedUpstreamResponse:
		return "malformed_upstream_response"
	}
	return "unknown"
}

type Error struct {
	Kind Kind
	// UpstreamStatus is the provider's own HTTP status when it returned one,
	// 0 otherwise.
	UpstreamStatus int
	Msg            string
	Err            error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPStatus maps the error to the status code the handler should write.
// The provider's own status wins over the category default when present.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case Input, Decoding:
		return http.StatusBadRequest
	case UpstreamUnavailable:
		if e.UpstreamStatus >= 400 {
			return e.UpstreamStatus
		}
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func Inputf(format string, args ...any) *Error {
	return &Error{Kind: Input, Msg: fmt.Sprintf(format, args...)}
}

func Decodingf(err error, format string, args ...any) *Error {
	return &Error{Kind: Decoding, Msg: fmt.Sprintf(format, args...), Err: err}
}

func Configurationf(format string, args ...any) *Error {
	return &Error{Kind: Configuration, Msg: fmt.Sprintf(format, args...)}
}

func Upstream(status int, err error, msg string) *Error {
	return &Error{Kind: UpstreamUnavailable, UpstreamStatus: status, Msg: msg, Err: err}
}

func Malformedf(err error, format string, args ...any) *Error {
	return &Error{Kind: MalformedUpstreamResponse, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf reports the Kind of err, or ok=false when err is not a fault error.
func KindOf(err error) (Kind, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind, true
	}
	return 0, false
}

// Is lets callers test kinds without digging the *Error out themselves.
func Is(err error, k Kind) bool {
	got, ok := KindOf(err)
	return ok && got == k
}
