package auth

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/HerbHall/collegefinder/internal/server"
	"github.com/HerbHall/collegefinder/internal/services"
	"github.com/HerbHall/collegefinder/internal/session"
)

const maxAuthBody = 1 << 16

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Message   string       `json:"message"`
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresAt time.Time    `json:"expires_at"`
	UserID    int64        `json:"user_id"`
	Username  string       `json:"username,omitempty"`
	Email     string       `json:"email"`
	Role      session.Role `json:"role"`
}

// handleRegister creates a student account.
//
//	@Summary		Register
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RegisterRequest	true	"New account"
//	@Success		201		{object}	map[string]any
//	@Failure		400		{object}	server.Problem
//	@Failure		409		{object}	server.Problem
//	@Router			/auth/register [post]
func (m *Module) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAuthBody)).Decode(&req); err != nil {
		server.BadRequest(w, "invalid request body", r.URL.Path)
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if req.Username == "" || req.Email == "" || req.Password == "" {
		server.BadRequest(w, "username, email, and password are required", r.URL.Path)
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		server.BadRequest(w, "invalid email address", r.URL.Path)
		return
	}
	if m.adminEmail != "" && strings.EqualFold(req.Email, m.adminEmail) {
		server.Conflict(w, "Email already registered", r.URL.Path)
		return
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		server.BadRequest(w, err.Error(), r.URL.Path)
		return
	}

	user := &services.User{Username: req.Username, Email: req.Email, PasswordHash: hash}
	if err := m.users.Create(r.Context(), user); err != nil {
		if errors.Is(err, services.ErrAlreadyExists) {
			server.Conflict(w, "Email already registered", r.URL.Path)
			return
		}
		m.logger.Error("register user", zap.Error(err))
		server.InternalError(w, "failed to register user", r.URL.Path)
		return
	}

	m.logger.Info("user registered", zap.Int64("user_id", user.ID))
	server.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "User registered successfully",
		"user":    user,
	})
}

// handleLogin exchanges credentials for a bearer token.
//
//	@Summary		Login
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"Credentials"
//	@Success		200		{object}	LoginResponse
//	@Failure		401		{object}	server.Problem
//	@Failure		429		{object}	server.Problem
//	@Router			/auth/login [post]
func (m *Module) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !m.limiter.Allow(clientIP(r)) {
		w.Header().Set("Retry-After", "1")
		server.RateLimited(w, "too many login attempts, try again shortly", r.URL.Path)
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAuthBody)).Decode(&req); err != nil {
		server.BadRequest(w, "invalid request body", r.URL.Path)
		return
	}
	if req.Email == "" || req.Password == "" {
		server.BadRequest(w, "email and password are required", r.URL.Path)
		return
	}

	sess, ok := m.authenticate(r, req)
	if !ok {
		server.Unauthorized(w, "Invalid credentials", r.URL.Path)
		return
	}

	token, expires, err := m.tokens.Issue(*sess)
	if err != nil {
		m.logger.Error("issue token", zap.Error(err))
		server.InternalError(w, "failed to issue token", r.URL.Path)
		return
	}

	m.logger.Info("login", zap.Int64("user_id", sess.UserID), zap.String("role", string(sess.Role)))
	server.WriteJSON(w, http.StatusOK, LoginResponse{
		Message:   "Login successful",
		Token:     token,
		TokenType: "bearer",
		ExpiresAt: expires,
		UserID:    sess.UserID,
		Username:  sess.Username,
		Email:     sess.Email,
		Role:      sess.Role,
	})
}

// authenticate checks the configured admin first, then registered users.
func (m *Module) authenticate(r *http.Request, req LoginRequest) (*session.Session, bool) {
	email := strings.TrimSpace(req.Email)
	if m.adminEmail != "" && m.adminPassword != "" && strings.EqualFold(email, m.adminEmail) {
		if subtle.ConstantTimeCompare([]byte(req.Password), []byte(m.adminPassword)) != 1 {
			return nil, false
		}
		return &session.Session{Email: m.adminEmail, Username: "admin", Role: session.RoleAdmin}, true
	}

	user, err := m.users.GetByEmail(r.Context(), email)
	if err != nil {
		if !errors.Is(err, services.ErrNotFound) {
			m.logger.Error("lookup user", zap.Error(err))
		}
		return nil, false
	}
	if !CheckPassword(user.PasswordHash, req.Password) {
		return nil, false
	}
	return &session.Session{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     session.RoleStudent,
	}, true
}

// handleMe returns the caller's session.
//
//	@Summary		Current session
//	@Tags			auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	session.Session
//	@Failure		401	{object}	server.Problem
//	@Router			/auth/me [get]
func (m *Module) handleMe(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	if sess == nil {
		server.Unauthorized(w, "login required", r.URL.Path)
		return
	}
	server.WriteJSON(w, http.StatusOK, sess)
}
