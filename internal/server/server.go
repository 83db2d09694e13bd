// Package server hosts the CollegeFinder HTTP API: core routes, plugin
// route mounting, and the middleware chain.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	_ "github.com/HerbHall/collegefinder/internal/docs" // registers the OpenAPI document
	"github.com/HerbHall/collegefinder/internal/plugin"
	"github.com/HerbHall/collegefinder/internal/version"
)

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Pinger reports database reachability for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Option configures a Server.
type Option func(*Server)

// WithMiddleware adds middleware that runs after request ids are assigned
// and before routing. The first middleware given is the outermost.
func WithMiddleware(mw ...Middleware) Option {
	return func(s *Server) { s.middleware = append(s.middleware, mw...) }
}

// WithPinger makes the health endpoint check the database.
func WithPinger(p Pinger) Option {
	return func(s *Server) { s.pinger = p }
}

// Server is the main CollegeFinder server.
type Server struct {
	httpServer *http.Server
	registry   *plugin.Registry
	logger     *zap.Logger
	mux        *http.ServeMux
	middleware []Middleware
	pinger     Pinger
	handler    http.Handler
}

// New creates a new Server instance.
func New(addr string, reg *plugin.Registry, logger *zap.Logger, opts ...Option) *Server {
	mux := http.NewServeMux()

	s := &Server{
		registry: reg,
		logger:   logger,
		mux:      mux,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.registerCoreRoutes()
	s.mountPluginRoutes()

	var h http.Handler = instrument(logger, mux)
	for i := len(s.middleware) - 1; i >= 0; i-- {
		h = s.middleware[i](h)
	}
	s.handler = requestID(h)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// registerCoreRoutes sets up routes that are always available.
func (s *Server) registerCoreRoutes() {
	s.mux.HandleFunc("GET /api/v1/health", s.handleHealth)
	s.mux.HandleFunc("GET /api/v1/plugins", s.handlePlugins)
	s.mux.Handle("GET /metrics", promhttp.Handler())
	s.mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
}

// mountPluginRoutes registers all plugin routes under /api/v1/{plugin}.
func (s *Server) mountPluginRoutes() {
	allRoutes := s.registry.AllRoutes()
	for pluginName, routes := range allRoutes {
		for _, route := range routes {
			pattern := fmt.Sprintf("%s /api/v1/%s%s", route.Method, pluginName, route.Path)
			s.mux.HandleFunc(pattern, route.Handler)
			s.logger.Debug("mounted route",
				zap.String("plugin", pluginName),
				zap.String("pattern", pattern),
			)
		}
	}
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// handleHealth returns the server health status.
//
//	@Summary		Health check
//	@Description	Reports database reachability and per-plugin health.
//	@Tags			system
//	@Produce		json
//	@Success		200	{object}	map[string]any
//	@Failure		503	{object}	map[string]any
//	@Router			/health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status, code := "ok", http.StatusOK
	checks := make(map[string]plugin.HealthStatus)

	if s.pinger != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.pinger.Ping(ctx); err != nil {
			s.logger.Warn("health: database ping failed", zap.Error(err))
			checks["database"] = plugin.HealthStatus{Status: "unhealthy", Message: err.Error()}
			status, code = "unavailable", http.StatusServiceUnavailable
		} else {
			checks["database"] = plugin.HealthStatus{Status: "healthy"}
		}
	}

	for _, p := range s.registry.Enabled() {
		hc, ok := p.(plugin.HealthChecker)
		if !ok {
			continue
		}
		hs := hc.Health(r.Context())
		checks[p.Info().Name] = hs
		if hs.Status != "healthy" && code == http.StatusOK {
			status = "degraded"
		}
	}

	w.Header().Set("X-CollegeFinder-Version", version.Short())
	WriteJSON(w, code, map[string]any{
		"status":  status,
		"service": "collegefinder",
		"version": version.Map(),
		"checks":  checks,
	})
}

// handlePlugins returns the list of enabled plugins.
//
//	@Summary		List plugins
//	@Tags			system
//	@Produce		json
//	@Success		200	{array}	map[string]string
//	@Router			/plugins [get]
func (s *Server) handlePlugins(w http.ResponseWriter, r *http.Request) {
	plugins := s.registry.Enabled()
	type pluginResponse struct {
		Name        string `json:"name"`
		Version     string `json:"version"`
		Description string `json:"description"`
	}
	info := make([]pluginResponse, 0, len(plugins))
	for _, p := range plugins {
		pi := p.Info()
		info = append(info, pluginResponse{
			Name:        pi.Name,
			Version:     pi.Version,
			Description: pi.Description,
		})
	}
	w.Header().Set("X-CollegeFinder-Version", version.Short())
	WriteJSON(w, http.StatusOK, info)
}
