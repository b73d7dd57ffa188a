package twoauth

import (
	"errors"
	"fmt"
)

// ErrNoCurrentSession is returned when an operation needs a persisted session
// and none exists.
var ErrNoCurrentSession = errors.New("no current session")

// BackendError is a business-level negative acknowledgement: an HTTP-success
// response whose payload reported failure. Message carries the backend's
// user-facing text when it supplied one.
type BackendError struct {
	Status  string
	Code    int
	Message string
}

func (e *BackendError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Status != "" {
		return fmt.Sprintf("backend rejected request: %s", e.Status)
	}
	return "backend rejected request"
}
