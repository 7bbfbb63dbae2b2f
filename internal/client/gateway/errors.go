package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError reports input rejected on the client, before any network
// call was attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// RemoteError is the single normalized failure shape for every gateway call
// that reached (or tried to reach) the server. Status is the HTTP status
// code, or 0 when the server could not be reached at all. Timeout marks
// deadline expiry so callers can distinguish it from a rejection.
type RemoteError struct {
	Status  int
	Message string
	Timeout bool
}

func (e *RemoteError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("remote call timed out: %s", e.Message)
	}
	if e.Status == 0 {
		return fmt.Sprintf("server unreachable: %s", e.Message)
	}
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// IsAuthError reports whether err is a RemoteError carrying 401 or 403.
// The session must be treated as invalid when this returns true, regardless
// of which operation produced the error.
func IsAuthError(err error) bool {
	var re *RemoteError
	if !errors.As(err, &re) {
		return false
	}
	return re.Status == http.StatusUnauthorized || re.Status == http.StatusForbidden
}

// IsTimeout reports whether err is a RemoteError caused by a deadline.
func IsTimeout(err error) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.Timeout
}
