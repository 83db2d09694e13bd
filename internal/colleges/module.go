// Package colleges serves the college catalog: listing with filters, admin
// create and delete, images, and each user's liked and compare lists.
package colleges

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/HerbHall/collegefinder/internal/plugin"
	"github.com/HerbHall/collegefinder/internal/services"
	"github.com/HerbHall/collegefinder/internal/settings"
	"github.com/HerbHall/collegefinder/pkg/college"
)

// Compile-time interface guards.
var (
	_ plugin.Plugin        = (*Module)(nil)
	_ plugin.HTTPProvider  = (*Module)(nil)
	_ plugin.HealthChecker = (*Module)(nil)
)

const (
	defaultMaxUploadMB  = 10
	defaultFetchTimeout = 15 * time.Second
)

// Module is the college catalog plugin.
type Module struct {
	logger    *zap.Logger
	colleges  services.CollegeRepository
	shortlist services.ShortlistRepository
	brackets  *settings.BracketStore

	httpClient *http.Client
	maxUpload  int64
	publicURL  string
}

// New returns an uninitialized college module.
func New() *Module {
	return &Module{logger: zap.NewNop()}
}

func (m *Module) Info() plugin.PluginInfo {
	return plugin.PluginInfo{
		Name:         "college",
		Version:      "1.0.0",
		Description:  "College catalog, filtering, likes, and comparisons",
		Dependencies: []string{"auth"},
		Required:     true,
	}
}

func (m *Module) Init(ctx context.Context, deps plugin.Dependencies) error {
	m.logger = deps.Logger
	cfg := deps.Config

	// users must exist before the shortlist tables reference them.
	if _, err := services.NewSQLiteUserRepository(ctx, deps.Store); err != nil {
		return err
	}
	colleges, err := services.NewSQLiteCollegeRepository(ctx, deps.Store)
	if err != nil {
		return err
	}
	shortlist, err := services.NewSQLiteShortlistRepository(ctx, deps.Store)
	if err != nil {
		return err
	}
	settingsRepo, err := services.NewSQLiteSettingsRepository(ctx, deps.Store)
	if err != nil {
		return err
	}
	m.colleges = colleges
	m.shortlist = shortlist
	m.brackets = settings.NewBracketStore(settingsRepo)

	timeout := cfg.GetDuration("college.image_fetch_timeout")
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	if m.httpClient == nil {
		m.httpClient = &http.Client{Timeout: timeout}
	}
	maxMB := cfg.GetInt64("college.max_upload_mb")
	if maxMB <= 0 {
		maxMB = defaultMaxUploadMB
	}
	m.maxUpload = maxMB << 20
	m.publicURL = strings.TrimRight(cfg.GetString("server.public_url"), "/")

	m.logger.Info("college module initialized",
		zap.Duration("image_fetch_timeout", timeout),
		zap.Int64("max_upload_bytes", m.maxUpload),
	)
	return nil
}

func (m *Module) Start(_ context.Context) error { return nil }

func (m *Module) Stop(_ context.Context) error { return nil }

func (m *Module) Health(ctx context.Context) plugin.HealthStatus {
	n, err := m.colleges.Count(ctx)
	if err != nil {
		return plugin.HealthStatus{Status: "unhealthy", Message: err.Error()}
	}
	return plugin.HealthStatus{
		Status:  "healthy",
		Details: map[string]string{"colleges": strconv.Itoa(n)},
	}
}

func (m *Module) Routes() []plugin.Route {
	return []plugin.Route{
		{Method: "GET", Path: "", Handler: m.handleList},
		{Method: "POST", Path: "", Handler: m.handleCreate},
		{Method: "GET", Path: "/{id}", Handler: m.handleGet},
		{Method: "DELETE", Path: "/{id}", Handler: m.handleDelete},
		{Method: "GET", Path: "/name/{name}", Handler: m.handleByName},
		{Method: "GET", Path: "/image/{id}", Handler: m.handleImage},
		{Method: "POST", Path: "/like/{id}", Handler: m.handleToggleLike},
		{Method: "GET", Path: "/liked/{user_id}", Handler: m.handleListLiked},
		{Method: "GET", Path: "/compare/{user_id}", Handler: m.handleListCompared},
		{Method: "GET", Path: "/compare/{user_id}/summary", Handler: m.handleCompareSummary},
		{Method: "POST", Path: "/compare/{user_id}/{college_id}", Handler: m.handleAddCompare},
		{Method: "DELETE", Path: "/compare/{user_id}/{college_id}", Handler: m.handleRemoveCompare},
	}
}

// decorate fills the derived fields of colleges about to be returned.
func (m *Module) decorate(list []college.College) []college.College {
	for i := range list {
		if list[i].HasImage {
			list[i].ImageURL = m.publicURL + "/api/v1/college/image/" + strconv.FormatInt(list[i].ID, 10)
		}
		if list[i].Courses == nil {
			list[i].Courses = []college.Course{}
		}
	}
	return list
}

// pathID parses a positive integer path value.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
