// Package plugin defines the module contract served by the HTTP server and
// the registry that drives module lifecycles.
package plugin

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/HerbHall/collegefinder/internal/config"
	"go.uber.org/zap"
)

// Route represents an HTTP route exposed by a plugin. Path is relative to
// /api/v1/{plugin}; an empty Path mounts the plugin root.
type Route struct {
	Method  string
	Path    string
	Handler http.HandlerFunc
}

// PluginInfo describes a plugin to the registry.
type PluginInfo struct {
	Name        string
	Version     string
	Description string
	// Dependencies lists plugins that must be initialized first.
	Dependencies []string
	// Required plugins fail validation instead of being disabled when a
	// dependency is missing.
	Required bool
}

// Dependencies are the shared services handed to a plugin at Init.
type Dependencies struct {
	Config config.Config
	Logger *zap.Logger
	Store  Store
}

// Plugin defines the interface that all CollegeFinder modules implement.
type Plugin interface {
	Info() PluginInfo
	Init(ctx context.Context, deps Dependencies) error
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// HTTPProvider is implemented by plugins that expose REST API routes.
type HTTPProvider interface {
	Routes() []Route
}

// HealthStatus is reported by plugins implementing HealthChecker.
type HealthStatus struct {
	Status  string            `json:"status"` // "healthy", "degraded", "unhealthy"
	Message string            `json:"message,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// HealthChecker is implemented by plugins that report their health status.
type HealthChecker interface {
	Health(ctx context.Context) HealthStatus
}

// Store is the persistence surface shared by plugins.
type Store interface {
	DB() *sql.DB
	Tx(ctx context.Context, fn func(tx *sql.Tx) error) error
	Migrate(ctx context.Context, pluginName string, migrations []Migration) error
}

// Migration is one forward-only schema step owned by a plugin.
type Migration struct {
	Version     int
	Description string
	Up          func(tx *sql.Tx) error
}
