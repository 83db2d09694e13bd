package reconcile

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HerbHall/collegefinder/internal/session"
	"github.com/HerbHall/collegefinder/pkg/college"
)

// fakeClient is an in-memory Client that behaves like the server.
type fakeClient struct {
	mu        sync.Mutex
	liked     map[int64]bool
	compared  []int64
	calls     int
	fetchErr  error
	toggleErr error
	addErr    error
}

func newFakeClient() *fakeClient {
	return &fakeClient{liked: map[int64]bool{}}
}

func (f *fakeClient) FetchCatalog(context.Context) ([]college.RawCollege, error) {
	return nil, nil
}

func (f *fakeClient) FetchLiked(_ context.Context, _ int64) ([]college.RawCollege, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	var out []college.RawCollege
	for id, ok := range f.liked {
		if ok {
			out = append(out, college.RawCollege{ID: id})
		}
	}
	return out, nil
}

func (f *fakeClient) FetchCompared(_ context.Context, _ int64) ([]college.RawCollege, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]college.RawCollege, 0, len(f.compared))
	for _, id := range f.compared {
		out = append(out, college.RawCollege{ID: id})
	}
	return out, nil
}

func (f *fakeClient) ToggleLike(_ context.Context, collegeID, _ int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.toggleErr != nil {
		return false, f.toggleErr
	}
	f.liked[collegeID] = !f.liked[collegeID]
	return f.liked[collegeID], nil
}

func (f *fakeClient) AddToCompare(_ context.Context, _, collegeID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.addErr != nil {
		return f.addErr
	}
	for _, id := range f.compared {
		if id == collegeID {
			return ErrAlreadyCompared
		}
	}
	if len(f.compared) >= CompareCapacity {
		return ErrCapacityExceeded
	}
	f.compared = append(f.compared, collegeID)
	return nil
}

func (f *fakeClient) RemoveFromCompare(_ context.Context, _, collegeID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	for i, id := range f.compared {
		if id == collegeID {
			f.compared = append(f.compared[:i], f.compared[i+1:]...)
			return nil
		}
	}
	return errors.New("college not found in compare list")
}

func student() *session.Session {
	return &session.Session{UserID: 42, Role: session.RoleStudent}
}

func TestReconciler_AuthRequired(t *testing.T) {
	client := newFakeClient()
	ctx := context.Background()

	for _, sess := range []*session.Session{nil, {Role: session.RoleAdmin}} {
		r := New(client, sess, nil)
		assert.ErrorIs(t, r.Sync(ctx), ErrAuthRequired)
		_, err := r.ToggleLike(ctx, 1)
		assert.ErrorIs(t, err, ErrAuthRequired)
		assert.ErrorIs(t, r.AddToCompare(ctx, 1), ErrAuthRequired)
		assert.ErrorIs(t, r.RemoveFromCompare(ctx, 1), ErrAuthRequired)
	}
	assert.Zero(t, client.calls, "no request may be made without a user")
}

func TestReconciler_SyncAndStates(t *testing.T) {
	client := newFakeClient()
	client.liked[3] = true
	client.compared = []int64{7}
	r := New(client, student(), nil)

	assert.Equal(t, StateUnknown, r.LikeState(3))
	assert.Equal(t, StateUnknown, r.CompareState(7))

	require.NoError(t, r.Sync(context.Background()))

	assert.Equal(t, []int64{3}, r.Liked().IDs())
	assert.Equal(t, []int64{7}, r.Compared().IDs())
	assert.Equal(t, StateOn, r.LikeState(3))
	assert.Equal(t, StateOff, r.LikeState(4))
	assert.Equal(t, StateOn, r.CompareState(7))
}

func TestReconciler_SyncFailureKeepsState(t *testing.T) {
	client := newFakeClient()
	client.fetchErr = errors.New("boom")
	r := New(client, student(), nil)

	err := r.Sync(context.Background())
	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "fetch liked", ue.Op)
	assert.Equal(t, StateUnknown, r.LikeState(1))
}

func TestReconciler_ToggleLike(t *testing.T) {
	client := newFakeClient()
	r := New(client, student(), nil)
	ctx := context.Background()

	liked, err := r.ToggleLike(ctx, 5)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, StateOn, r.LikeState(5))
	assert.Equal(t, StateUnknown, r.LikeState(6), "untouched colleges stay unknown before sync")

	liked, err = r.ToggleLike(ctx, 5)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, StateOff, r.LikeState(5))
	assert.Equal(t, 0, r.Liked().Len())
}

func TestReconciler_ToggleLikeFailureLeavesSet(t *testing.T) {
	client := newFakeClient()
	cause := errors.New("network down")
	client.toggleErr = cause
	r := New(client, student(), nil)

	_, err := r.ToggleLike(context.Background(), 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, cause, "upstream failures pass through unchanged")
	assert.Equal(t, 0, r.Liked().Len())
	assert.Equal(t, StateUnknown, r.LikeState(5))
}

func TestReconciler_CompareCapacity(t *testing.T) {
	client := newFakeClient()
	r := New(client, student(), nil)
	ctx := context.Background()

	require.NoError(t, r.AddToCompare(ctx, 1))
	require.NoError(t, r.AddToCompare(ctx, 2))
	require.NoError(t, r.AddToCompare(ctx, 2), "re-adding a member is a no-op")

	calls := client.calls
	assert.ErrorIs(t, r.AddToCompare(ctx, 3), ErrCapacityExceeded)
	assert.Equal(t, calls, client.calls, "full list must be rejected before any request")

	require.NoError(t, r.RemoveFromCompare(ctx, 1))
	assert.Equal(t, []int64{2}, r.Compared().IDs())
	require.NoError(t, r.AddToCompare(ctx, 3))
	assert.Equal(t, []int64{2, 3}, r.Compared().IDs())
}

func TestReconciler_ServerCapacityIsAuthoritative(t *testing.T) {
	client := newFakeClient()
	// Another device already filled the list; the local view is stale.
	client.compared = []int64{10, 11}
	r := New(client, student(), nil)

	err := r.AddToCompare(context.Background(), 12)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Equal(t, 0, r.Compared().Len())
}

func TestReconciler_ServerAlreadyHoldsCompared(t *testing.T) {
	client := newFakeClient()
	// Added from another device after this view was loaded.
	client.compared = []int64{10}
	r := New(client, student(), nil)
	ctx := context.Background()

	require.NoError(t, r.AddToCompare(ctx, 10))
	assert.Equal(t, []int64{10}, r.Compared().IDs())
	assert.Equal(t, StateOn, r.CompareState(10))
	assert.Equal(t, []int64{10}, client.compared, "server list unchanged")

	require.NoError(t, r.AddToCompare(ctx, 11))
	assert.ErrorIs(t, r.AddToCompare(ctx, 12), ErrCapacityExceeded)
}

func TestCompareCapacityShared(t *testing.T) {
	assert.Equal(t, college.CompareCapacity, CompareCapacity)
}

func TestReconciler_AddUpstreamFailure(t *testing.T) {
	client := newFakeClient()
	client.addErr = errors.New("502 bad gateway")
	r := New(client, student(), nil)

	err := r.AddToCompare(context.Background(), 1)
	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "add to compare", ue.Op)
	assert.Equal(t, StateUnknown, r.CompareState(1))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "unknown", StateUnknown.String())
	assert.Equal(t, "on", StateOn.String())
	assert.Equal(t, "off", StateOff.String())
}
