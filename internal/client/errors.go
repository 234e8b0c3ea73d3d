// internal/client/errors.go
package client

import "fmt"

// ErrorKind categorizes transport failures. The controller treats every kind
// the same way; the kind is kept for logs and metrics.
type ErrorKind int

const (
	// ErrUnreachable indicates the request could not be sent or no response arrived.
	ErrUnreachable ErrorKind = iota
	// ErrTimeout indicates the request deadline was exceeded.
	ErrTimeout
	// ErrHTTPStatus indicates the oracle answered with a non-2xx status.
	ErrHTTPStatus
	// ErrMalformedBody indicates the response body was not JSON.
	ErrMalformedBody
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnreachable:
		return "unreachable"
	case ErrTimeout:
		return "timeout"
	case ErrHTTPStatus:
		return "http_status"
	case ErrMalformedBody:
		return "malformed_body"
	default:
		return "unknown"
	}
}

// TransportError is returned by OracleClient.Send for every failed call.
type TransportError struct {
	Kind       ErrorKind
	Message    string
	StatusCode int
	Cause      error
}

func (e *TransportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// Is matches any *TransportError of the same kind, so callers can write
// errors.Is(err, &TransportError{Kind: ErrTimeout}).
func (e *TransportError) Is(target error) bool {
	t, ok := target.(*TransportError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}
