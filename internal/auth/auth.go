// Package auth registers users, logs them in, and authenticates API
// requests with HS256 bearer tokens.
package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/HerbHall/collegefinder/internal/plugin"
	"github.com/HerbHall/collegefinder/internal/services"
)

// Compile-time interface guards.
var (
	_ plugin.Plugin        = (*Module)(nil)
	_ plugin.HTTPProvider  = (*Module)(nil)
	_ plugin.HealthChecker = (*Module)(nil)
)

// Module is the auth plugin.
type Module struct {
	logger  *zap.Logger
	users   services.UserRepository
	tokens  *TokenIssuer
	limiter *LoginLimiter

	adminEmail    string
	adminPassword string
	now           func() time.Time
}

// New returns an auth module. A nil now uses time.Now.
func New(now func() time.Time) *Module {
	if now == nil {
		now = time.Now
	}
	return &Module{logger: zap.NewNop(), now: now}
}

func (m *Module) Info() plugin.PluginInfo {
	return plugin.PluginInfo{
		Name:        "auth",
		Version:     "1.0.0",
		Description: "User registration, login, and bearer token authentication",
		Required:    true,
	}
}

func (m *Module) Init(ctx context.Context, deps plugin.Dependencies) error {
	m.logger = deps.Logger
	cfg := deps.Config

	users, err := services.NewSQLiteUserRepository(ctx, deps.Store)
	if err != nil {
		return err
	}
	m.users = users

	secret := []byte(cfg.GetString("auth.jwt_secret"))
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return fmt.Errorf("generate jwt secret: %w", err)
		}
		m.logger.Warn("auth.jwt_secret not set; using a random secret, tokens will not survive restarts")
	}
	ttl := cfg.GetDuration("auth.token_ttl")
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if m.tokens, err = NewTokenIssuer(secret, ttl, m.now); err != nil {
		return err
	}

	m.limiter = NewLoginLimiter(cfg.GetFloat64("auth.login_rate"), cfg.GetInt("auth.login_burst"), m.now)

	m.adminEmail = cfg.GetString("auth.admin_email")
	m.adminPassword = cfg.GetString("auth.admin_password")
	if m.adminEmail == "" || m.adminPassword == "" {
		m.logger.Warn("admin credentials not configured; admin endpoints are unreachable")
	}

	m.logger.Info("auth module initialized", zap.Duration("token_ttl", ttl))
	return nil
}

func (m *Module) Start(_ context.Context) error { return nil }

func (m *Module) Stop(_ context.Context) error { return nil }

// Health reports degraded when no admin account is configured.
func (m *Module) Health(_ context.Context) plugin.HealthStatus {
	if m.adminEmail == "" || m.adminPassword == "" {
		return plugin.HealthStatus{Status: "degraded", Message: "admin credentials not configured"}
	}
	return plugin.HealthStatus{Status: "healthy"}
}

// Tokens exposes the issuer, e.g. for tests that need a signed token.
func (m *Module) Tokens() *TokenIssuer {
	return m.tokens
}

func (m *Module) Routes() []plugin.Route {
	return []plugin.Route{
		{Method: "POST", Path: "/register", Handler: m.handleRegister},
		{Method: "POST", Path: "/login", Handler: m.handleLogin},
		{Method: "GET", Path: "/me", Handler: m.handleMe},
	}
}
