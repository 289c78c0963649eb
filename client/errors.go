package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies failures the way flows present them to the user.
type ErrorKind string

const (
	// KindTransport: the server was not reached, or answered with something
	// that is not JSON.
	KindTransport ErrorKind = "transport"
	// KindAuthExpired is recovered inside AuthenticatedCall and never surfaces.
	KindAuthExpired ErrorKind = "auth_expired"
	// KindAuthDenied: 401 after a successful refresh, or any 403.
	KindAuthDenied ErrorKind = "auth_denied"
	// KindValidation: any other non-2xx answer.
	KindValidation ErrorKind = "validation"
	// KindSessionInvalid: refresh or page-entry verification failed; the
	// session has been destroyed.
	KindSessionInvalid ErrorKind = "session_invalid"
)

var (
	// ErrSessionInvalid is returned by AuthenticatedCall, in place of a
	// response, when the access token expired and could not be renewed.
	ErrSessionInvalid = errors.New("session invalid: re-authentication required")
	// ErrMalformedResponse reports a response body that is not JSON.
	ErrMalformedResponse = errors.New("malformed response body")
)

// TransportError wraps a request that produced no response.
type TransportError struct {
	Method   string
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIError is a non-2xx answer carrying the server's message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Kind() ErrorKind {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindAuthDenied
	default:
		return KindValidation
	}
}

// KindOf classifies err; it returns "" for nil or unknown errors.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrSessionInvalid) {
		return KindSessionInvalid
	}
	if errors.Is(err, ErrMalformedResponse) {
		return KindTransport
	}
	var te *TransportError
	if errors.As(err, &te) {
		return KindTransport
	}
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Kind()
	}
	return ""
}
