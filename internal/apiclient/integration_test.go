package apiclient

import (
	"context"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/HerbHall/collegefinder/internal/auth"
	"github.com/HerbHall/collegefinder/internal/colleges"
	"github.com/HerbHall/collegefinder/internal/config"
	"github.com/HerbHall/collegefinder/internal/plugin"
	"github.com/HerbHall/collegefinder/internal/reconcile"
	"github.com/HerbHall/collegefinder/internal/server"
	"github.com/HerbHall/collegefinder/internal/services"
	"github.com/HerbHall/collegefinder/internal/session"
	"github.com/HerbHall/collegefinder/internal/settings"
	"github.com/HerbHall/collegefinder/internal/testutil"
	"github.com/HerbHall/collegefinder/pkg/college"
)

type stack struct {
	url      string
	colleges *services.SQLiteCollegeRepository
}

// newStack runs the full server with the auth, settings, and college
// plugins over an in-memory store.
func newStack(t *testing.T) *stack {
	t.Helper()
	ctx := context.Background()

	v := viper.New()
	config.SetDefaults(v)
	v.Set("auth.jwt_secret", "integration-secret-0123456789")
	v.Set("auth.admin_email", "admin@example.com")
	v.Set("auth.admin_password", "adminpass")
	cfg := config.New(v)

	db := testutil.NewStore(t)
	logger := zap.NewNop()

	authMod := auth.New(time.Now)
	reg := plugin.NewRegistry(logger)
	for _, p := range []plugin.Plugin{authMod, settings.New(), colleges.New()} {
		require.NoError(t, reg.Register(p))
	}
	require.NoError(t, reg.Validate())
	require.NoError(t, reg.InitAll(ctx, func(name string) plugin.Dependencies {
		return plugin.Dependencies{Config: cfg, Logger: logger.Named(name), Store: db}
	}))
	require.NoError(t, reg.StartAll(ctx))
	t.Cleanup(func() { reg.StopAll(context.Background()) })

	srv := server.New(":0", reg, logger,
		server.WithMiddleware(authMod.Middleware),
		server.WithPinger(db),
	)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	repo, err := services.NewSQLiteCollegeRepository(ctx, db)
	require.NoError(t, err)
	return &stack{url: ts.URL, colleges: repo}
}

func (s *stack) seed(t *testing.T, opts ...func(*college.College)) int64 {
	t.Helper()
	c := testutil.NewCollege(opts...)
	require.NoError(t, s.colleges.Create(context.Background(), &c, nil))
	return c.ID
}

func TestEndToEndShortlist(t *testing.T) {
	st := newStack(t)
	ctx := context.Background()

	anon := New(st.url)
	catalog, err := anon.FetchCatalog(ctx)
	require.NoError(t, err)
	assert.Empty(t, catalog)

	a := st.seed(t, testutil.WithName("Alpha"), testutil.WithPriceRange("50000-90000"))
	b := st.seed(t, testutil.WithName("Beta"), testutil.WithStream("Business"))
	c := st.seed(t, testutil.WithName("Gamma"))

	catalog, err = anon.FetchCatalog(ctx)
	require.NoError(t, err)
	require.Len(t, catalog, 3)
	assert.Equal(t, "Alpha", *catalog[0].Name)

	found, err := anon.SearchCatalog(ctx, url.Values{"stream": {"Business"}})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, b, found[0].ID)

	_, err = anon.FetchLiked(ctx, 1)
	assert.ErrorIs(t, err, reconcile.ErrAuthRequired)

	require.NoError(t, anon.Register(ctx, "sam", "sam@example.com", "secret1"))
	client := New(st.url)
	sess, err := client.Login(ctx, "sam@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, session.RoleStudent, sess.Role)
	require.NotEmpty(t, client.Token())

	rec := reconcile.New(client, sess, nil)
	require.NoError(t, rec.Sync(ctx))
	assert.Equal(t, reconcile.StateOff, rec.LikeState(a))

	liked, err := rec.ToggleLike(ctx, a)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, reconcile.StateOn, rec.LikeState(a))

	// A second reconciler synced now holds a stale, empty compare view.
	stale := reconcile.New(client, sess, nil)
	require.NoError(t, stale.Sync(ctx))

	require.NoError(t, rec.AddToCompare(ctx, a))
	require.NoError(t, rec.AddToCompare(ctx, b))
	assert.ErrorIs(t, rec.AddToCompare(ctx, c), reconcile.ErrCapacityExceeded)

	err = stale.AddToCompare(ctx, c)
	assert.ErrorIs(t, err, reconcile.ErrCapacityExceeded)
	assert.False(t, stale.Compared().Has(c))

	// The server already holds b, so the stale view takes it as confirmed.
	require.NoError(t, stale.AddToCompare(ctx, b))
	assert.Equal(t, []int64{b}, stale.Compared().IDs())
	assert.Equal(t, reconcile.StateOn, stale.CompareState(b))

	require.NoError(t, rec.RemoveFromCompare(ctx, a))
	require.NoError(t, rec.AddToCompare(ctx, c))

	fresh := reconcile.New(client, sess, nil)
	require.NoError(t, fresh.Sync(ctx))
	assert.ElementsMatch(t, []int64{b, c}, fresh.Compared().IDs())
	assert.ElementsMatch(t, []int64{a}, fresh.Liked().IDs())
}

func TestEndToEndAdminAndBrackets(t *testing.T) {
	st := newStack(t)
	ctx := context.Background()

	admin := New(st.url)
	sess, err := admin.Login(ctx, "admin@example.com", "adminpass")
	require.NoError(t, err)
	assert.True(t, sess.IsAdmin())

	rec := reconcile.New(admin, sess, nil)
	assert.ErrorIs(t, rec.Sync(ctx), reconcile.ErrAuthRequired)

	brackets, err := admin.Brackets(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, brackets)

	_, err = New(st.url).Login(ctx, "admin@example.com", "wrong")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.ErrorIs(t, err, reconcile.ErrAuthRequired)
}
