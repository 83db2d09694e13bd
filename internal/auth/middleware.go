package auth

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/HerbHall/collegefinder/internal/server"
	"github.com/HerbHall/collegefinder/internal/session"
)

// Middleware attaches the session carried by an "Authorization: Bearer"
// header to the request context. Requests without the header pass through
// anonymously; a malformed or invalid token is rejected with 401.
func (m *Module) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || m.tokens == nil {
			next.ServeHTTP(w, r)
			return
		}

		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
			server.Unauthorized(w, "Invalid Authorization header format", r.URL.Path)
			return
		}

		sess, err := m.tokens.Parse(strings.TrimSpace(token))
		if err != nil {
			m.logger.Debug("rejected bearer token", zap.Error(err))
			server.Unauthorized(w, "Invalid or expired token", r.URL.Path)
			return
		}
		next.ServeHTTP(w, r.WithContext(session.WithSession(r.Context(), sess)))
	})
}

// RequireUser returns the caller's session when it belongs to a registered
// user, writing 401 otherwise.
func RequireUser(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess := session.FromContext(r.Context())
	if !sess.HasUser() {
		server.Unauthorized(w, "login required", r.URL.Path)
		return nil, false
	}
	return sess, true
}

// RequireAdmin returns the caller's session when it is an admin, writing
// 401 for anonymous callers and 403 for everyone else.
func RequireAdmin(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess := session.FromContext(r.Context())
	if sess == nil {
		server.Unauthorized(w, "login required", r.URL.Path)
		return nil, false
	}
	if !sess.IsAdmin() {
		server.Forbidden(w, "admin access required", r.URL.Path)
		return nil, false
	}
	return sess, true
}

// RequireActingAs returns the caller's session when it may act on userID's
// shortlists, writing 401 or 403 otherwise.
func RequireActingAs(w http.ResponseWriter, r *http.Request, userID int64) (*session.Session, bool) {
	sess := session.FromContext(r.Context())
	if sess == nil {
		server.Unauthorized(w, "login required", r.URL.Path)
		return nil, false
	}
	if !sess.CanActAs(userID) {
		server.Forbidden(w, "cannot access another user's lists", r.URL.Path)
		return nil, false
	}
	return sess, true
}
