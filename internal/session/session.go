// Package session carries the authenticated caller through request contexts
// and client-side flows. It replaces ambient global login state with an
// explicit value.
package session

import "context"

// Role is the caller's privilege level.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleAdmin
}

// Session identifies an authenticated caller. Admins authenticated from
// configuration have no user row and therefore UserID 0.
type Session struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     Role   `json:"role"`
}

// HasUser reports whether the session belongs to a registered user. Per-user
// data such as liked and compared colleges require one.
func (s *Session) HasUser() bool {
	return s != nil && s.UserID > 0
}

// IsAdmin reports whether the session has the admin role.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

// CanActAs reports whether the session may read or modify data owned by
// userID.
func (s *Session) CanActAs(userID int64) bool {
	if s == nil {
		return false
	}
	return s.IsAdmin() || (s.UserID > 0 && s.UserID == userID)
}

type ctxKey struct{}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session stored in ctx, or nil.
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(ctxKey{}).(*Session)
	return s
}
