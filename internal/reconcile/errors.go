package reconcile

import (
	"errors"
	"fmt"
)

// Errors returned before any request is made. Client implementations also
// return ErrCapacityExceeded when the server rejects an add as over
// capacity, and ErrAuthRequired when it rejects the credentials.
var (
	ErrAuthRequired     = errors.New("login required")
	ErrCapacityExceeded = errors.New("compare list is full: you can only compare up to 2 colleges")
)

// ErrAlreadyCompared is returned by clients when the server already holds
// the college in the compare list. The Reconciler treats it as a confirmed
// add and never returns it.
var ErrAlreadyCompared = errors.New("college already in compare list")

// UpstreamError wraps a failure from the API client. The cause is passed
// through unchanged and is available via errors.Unwrap.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func upstream(op string, err error) error {
	return &UpstreamError{Op: op, Err: err}
}
