package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HerbHall/collegefinder/internal/reconcile"
	"github.com/HerbHall/collegefinder/internal/server"
)

func TestStatusErrorMapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/college/liked/1":
			server.Unauthorized(w, "login required", r.URL.Path)
		case "/api/v1/college/compare/1/2":
			server.CapacityExceeded(w, "You can only compare up to 2 colleges", r.URL.Path)
		case "/api/v1/college/compare/1/3":
			server.Conflict(w, "something else", r.URL.Path)
		case "/api/v1/college/compare/1/4":
			http.Error(w, "boom", http.StatusBadGateway)
		case "/api/v1/college/compare/1/5":
			server.AlreadyPresent(w, "College already in compare list", r.URL.Path)
		case "/api/v1/college/compare/1/6":
			server.BadRequest(w, "Invalid college id", r.URL.Path)
		default:
			server.NotFound(w, "nope", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	ctx := context.Background()

	_, err := c.FetchLiked(ctx, 1)
	assert.ErrorIs(t, err, reconcile.ErrAuthRequired)

	err = c.AddToCompare(ctx, 1, 2)
	assert.ErrorIs(t, err, reconcile.ErrCapacityExceeded)

	err = c.AddToCompare(ctx, 1, 3)
	assert.NotErrorIs(t, err, reconcile.ErrCapacityExceeded)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusConflict, se.StatusCode)
	assert.Equal(t, "something else", se.Problem.Detail)

	err = c.AddToCompare(ctx, 1, 4)
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadGateway, se.StatusCode)
	assert.Contains(t, se.Error(), "502 boom")

	err = c.AddToCompare(ctx, 1, 5)
	assert.ErrorIs(t, err, reconcile.ErrAlreadyCompared)
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadRequest, se.StatusCode)

	err = c.AddToCompare(ctx, 1, 6)
	assert.NotErrorIs(t, err, reconcile.ErrAlreadyCompared)

	err = c.RemoveFromCompare(ctx, 1, 9)
	assert.True(t, IsNotFound(err))
}

func TestFetchCatalogNotFoundIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		server.NotFound(w, "No colleges found.", r.URL.Path)
	}))
	defer srv.Close()

	got, err := New(srv.URL).FetchCatalog(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestBearerTokenSent(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		server.WriteJSON(w, http.StatusOK, map[string]any{"liked": true})
	}))
	defer srv.Close()

	c := New(srv.URL+"/", WithToken("abc"))
	liked, err := c.ToggleLike(context.Background(), 5, 1)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, "Bearer abc", gotAuth)

	c.SetToken("")
	_, err = c.ToggleLike(context.Background(), 5, 1)
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := New(srv.URL, WithTimeout(50*time.Millisecond))
	_, err := c.FetchCatalog(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, reconcile.ErrAuthRequired)
}
