package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/HerbHall/collegefinder/internal/reconcile"
	"github.com/HerbHall/collegefinder/internal/server"
)

// StatusError is a non-2xx response from the API. Problem holds the decoded
// problem details when the body carried them.
type StatusError struct {
	StatusCode int
	Problem    server.Problem
}

func (e *StatusError) Error() string {
	msg := e.Problem.Detail
	if msg == "" {
		msg = e.Problem.Title
	}
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("collegefinder api: %d %s", e.StatusCode, msg)
}

// mapError translates API status errors into the errors the reconciler
// understands. The status error stays in the chain.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("request timed out or cancelled: %w", err)
	}

	var se *StatusError
	if errors.As(err, &se) {
		switch {
		case se.StatusCode == http.StatusUnauthorized:
			return fmt.Errorf("%w: %w", reconcile.ErrAuthRequired, se)
		case se.StatusCode == http.StatusConflict && se.Problem.Type == server.ProblemTypeCapacityExceeded:
			return fmt.Errorf("%w: %w", reconcile.ErrCapacityExceeded, se)
		case se.StatusCode == http.StatusBadRequest && se.Problem.Type == server.ProblemTypeAlreadyPresent:
			return fmt.Errorf("%w: %w", reconcile.ErrAlreadyCompared, se)
		}
	}
	return err
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}
