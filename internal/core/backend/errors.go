package backend

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated means the credential was missing or rejected. It is
// fatal to the dashboard pipeline and is never retried.
var ErrUnauthenticated = errors.New("authentication missing or expired")

// ErrorKind classifies a failure for display and tests.
type ErrorKind string

const (
	KindNone            ErrorKind = ""
	KindUnauthenticated ErrorKind = "unauthenticated"
	KindTransport       ErrorKind = "transport"
	KindMalformed       ErrorKind = "malformed_response"
)

// TransportError covers everything between "request could not be sent" and
// "server answered with a non-success status".
type TransportError struct {
	Op         string
	StatusCode int
	// Message is the server-provided error text, when the body carried one.
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		if e.Message != "" {
			return fmt.Sprintf("%s: backend returned status %d: %s", e.Op, e.StatusCode, e.Message)
		}
		return fmt.Sprintf("%s: backend returned status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// MalformedResponseError is returned when the server answered but the body
// does not satisfy the expected shape. The whole payload is rejected.
type MalformedResponseError struct {
	Op     string
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s: malformed response: %s", e.Op, e.Reason)
}

func malformed(op, format string, args ...interface{}) error {
	return &MalformedResponseError{Op: op, Reason: fmt.Sprintf(format, args...)}
}

// KindOf maps an error returned by this package to its ErrorKind. Unknown
// errors are reported as transport failures.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	if errors.Is(err, ErrUnauthenticated) {
		return KindUnauthenticated
	}
	var me *MalformedResponseError
	if errors.As(err, &me) {
		return KindMalformed
	}
	return KindTransport
}
