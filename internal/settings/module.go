package settings

import (
	"context"

	"github.com/HerbHall/collegefinder/internal/plugin"
	"github.com/HerbHall/collegefinder/internal/services"
)

// Compile-time interface guards.
var (
	_ plugin.Plugin       = (*Module)(nil)
	_ plugin.HTTPProvider = (*Module)(nil)
)

// Module is the settings plugin.
type Module struct {
	handler *Handler
}

// New returns an uninitialized settings module.
func New() *Module {
	return &Module{}
}

func (m *Module) Info() plugin.PluginInfo {
	return plugin.PluginInfo{
		Name:         "settings",
		Version:      "1.0.0",
		Description:  "Budget bracket and stream presets for the college filter",
		Dependencies: []string{"auth"},
	}
}

func (m *Module) Init(ctx context.Context, deps plugin.Dependencies) error {
	repo, err := services.NewSQLiteSettingsRepository(ctx, deps.Store)
	if err != nil {
		return err
	}
	m.handler = NewHandler(NewBracketStore(repo), deps.Logger)
	return nil
}

func (m *Module) Start(_ context.Context) error { return nil }

func (m *Module) Stop(_ context.Context) error { return nil }

func (m *Module) Routes() []plugin.Route {
	return m.handler.Routes()
}
