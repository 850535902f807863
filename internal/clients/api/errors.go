package api

import "fmt"

type ErrorKind int

const (
	// KindSendFailure is a transport-level failure: the request never got a
	// response (DNS, connection, timeout).
	KindSendFailure ErrorKind = iota
	// KindInvalidResponse is a response body that could not be parsed as the
	// expected envelope.
	KindInvalidResponse
	// KindServerError is a parsed error envelope or a non-2xx status.
	KindServerError
)

func (k ErrorKind) String() string {
	switch k {
	case KindSendFailure:
		return "send_failure"
	case KindInvalidResponse:
		return "invalid_response"
	case KindServerError:
		return "server_error"
	default:
		return "unknown"
	}
}

// ClientError is the single error type returned by the envelope layer. The
// caller decides what to do with each kind; Retryable is the default
// classification used at submission time.
type ClientError struct {
	Kind       ErrorKind
	Method     string
	URL        string
	StatusCode int

	// RawBody carries the response text when the envelope could not be
	// parsed, for diagnostics.
	RawBody string
	Message string
	Err     error
}

func (e *ClientError) Error() string {
	switch e.Kind {
	case KindSendFailure:
		return fmt.Sprintf("%s %s: failed to send request: %v", e.Method, e.URL, e.Err)
	case KindInvalidResponse:
		return fmt.Sprintf("%s %s: unexpected response from server: %v", e.Method, e.URL, e.Err)
	default:
		if e.Message != "" {
			return fmt.Sprintf("%s %s: server error: %s", e.Method, e.URL, e.Message)
		}
		return fmt.Sprintf("%s %s: server error: status %d", e.Method, e.URL, e.StatusCode)
	}
}

func (e *ClientError) Unwrap() error {
	return e.Err
}

// Retryable reports whether a retry has a chance of succeeding. A malformed
// envelope indicates a contract violation rather than a fault that clears
// on its own.
func (e *ClientError) Retryable() bool {
	return e.Kind == KindSendFailure || e.Kind == KindServerError
}
