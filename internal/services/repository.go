// Package services provides repository interfaces and SQLite implementations
// for data access. This layer bridges the raw SQLite store with the HTTP
// handlers and keeps SQL out of the plugin packages.
package services

import (
	"errors"
	"strings"
)

// Sentinel errors returned by repositories.
var (
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrCapacityExceeded = errors.New("capacity exceeded")
)

// isUniqueViolation reports whether err came from a UNIQUE constraint.
// modernc.org/sqlite does not export typed constraint errors.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// placeholders returns "?, ?, ..." with n markers.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}
