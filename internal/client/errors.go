package client

import (
	"errors"
	"fmt"
)

// APIError is a backend-signaled or transport-level failure. The transport
// interceptor never swallows it: after optionally emitting a notification it
// always propagates, so callers can still branch on the status code (e.g.
// treat HTTP 400 from a recommendation endpoint as "no data yet").
type APIError struct {
	StatusCode int // 0 for transport failures with no response
	Message    string
	Method     string
	Path       string
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s %s: %s", e.Method, e.Path, e.Message)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// IsStatus reports whether err carries an APIError with the given status.
func IsStatus(err error, code int) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.StatusCode == code
}
