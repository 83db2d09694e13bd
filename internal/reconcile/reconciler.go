package reconcile

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/HerbHall/collegefinder/internal/session"
	"github.com/HerbHall/collegefinder/pkg/college"
)

// Client is the API surface the Reconciler depends on. All methods may fail;
// failures are treated as opaque.
type Client interface {
	FetchCatalog(ctx context.Context) ([]college.RawCollege, error)
	FetchLiked(ctx context.Context, userID int64) ([]college.RawCollege, error)
	FetchCompared(ctx context.Context, userID int64) ([]college.RawCollege, error)
	ToggleLike(ctx context.Context, collegeID, userID int64) (liked bool, err error)
	AddToCompare(ctx context.Context, userID, collegeID int64) error
	RemoveFromCompare(ctx context.Context, userID, collegeID int64) error
}

// Reconciler tracks the liked and compared sets of one session.
type Reconciler struct {
	client Client
	sess   *session.Session
	logger *zap.Logger

	mu       sync.Mutex
	synced   bool
	liked    IDSet
	compared IDSet
	likeSeen IDSet // ids with a confirmed like answer before the first sync
	cmpSeen  IDSet
}

// New creates a Reconciler for sess. A nil logger disables logging.
func New(client Client, sess *session.Session, logger *zap.Logger) *Reconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconciler{client: client, sess: sess, logger: logger}
}

func (r *Reconciler) userID() (int64, error) {
	if !r.sess.HasUser() {
		return 0, ErrAuthRequired
	}
	return r.sess.UserID, nil
}

// Sync loads both sets from the server and replaces the local ones. The two
// lists are fetched concurrently; if either fails nothing is replaced.
func (r *Reconciler) Sync(ctx context.Context) error {
	uid, err := r.userID()
	if err != nil {
		return err
	}

	var liked, compared []college.RawCollege
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		liked, err = r.client.FetchLiked(gctx, uid)
		if err != nil {
			return upstream("fetch liked", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		compared, err = r.client.FetchCompared(gctx, uid)
		if err != nil {
			return upstream("fetch compared", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	likedSet, comparedSet := idsOf(liked), idsOf(compared)

	r.mu.Lock()
	r.liked, r.compared = likedSet, comparedSet
	r.synced = true
	r.mu.Unlock()

	r.logger.Debug("shortlist synced",
		zap.Int64("user_id", uid),
		zap.Int("liked", likedSet.Len()),
		zap.Int("compared", comparedSet.Len()),
	)
	return nil
}

// Liked returns the current confirmed liked set.
func (r *Reconciler) Liked() IDSet {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.liked
}

// Compared returns the current confirmed compare set.
func (r *Reconciler) Compared() IDSet {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.compared
}

// LikeState returns the confirmed like state of a college.
func (r *Reconciler) LikeState(id int64) State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return stateOf(r.liked, r.likeSeen, r.synced, id)
}

// CompareState returns the confirmed compare state of a college.
func (r *Reconciler) CompareState(id int64) State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return stateOf(r.compared, r.cmpSeen, r.synced, id)
}

// ToggleLike asks the server to flip the like on a college and applies the
// answer. It returns the confirmed liked state.
func (r *Reconciler) ToggleLike(ctx context.Context, collegeID int64) (bool, error) {
	uid, err := r.userID()
	if err != nil {
		return false, err
	}

	liked, err := r.client.ToggleLike(ctx, collegeID, uid)
	if err != nil {
		if errors.Is(err, ErrAuthRequired) {
			return false, ErrAuthRequired
		}
		return false, upstream("toggle like", err)
	}

	r.mu.Lock()
	r.liked = ToggleLike(r.liked, collegeID, liked)
	r.likeSeen = r.likeSeen.with(collegeID)
	r.mu.Unlock()

	r.logger.Debug("like confirmed",
		zap.Int64("college_id", collegeID),
		zap.Bool("liked", liked),
	)
	return liked, nil
}

// AddToCompare adds a college to the compare list. A college already in the
// list is a no-op. A full list is rejected without contacting the server.
// The server's answer wins over the local view both ways: a capacity
// rejection fails the add, and an "already present" reply confirms it.
func (r *Reconciler) AddToCompare(ctx context.Context, collegeID int64) error {
	uid, err := r.userID()
	if err != nil {
		return err
	}

	current := r.Compared()
	if current.Has(collegeID) {
		return nil
	}
	if !CanAddToCompare(current) {
		return ErrCapacityExceeded
	}

	if err := r.client.AddToCompare(ctx, uid, collegeID); err != nil {
		switch {
		case errors.Is(err, ErrCapacityExceeded):
			r.logger.Info("server rejected compare add as over capacity",
				zap.Int64("college_id", collegeID),
				zap.Int("local_size", current.Len()),
			)
			return ErrCapacityExceeded
		case errors.Is(err, ErrAuthRequired):
			return ErrAuthRequired
		case errors.Is(err, ErrAlreadyCompared):
			r.logger.Info("server already holds compared college",
				zap.Int64("college_id", collegeID),
				zap.Int("local_size", current.Len()),
			)
		default:
			return upstream("add to compare", err)
		}
	}

	r.mu.Lock()
	r.compared = ToggleCompare(r.compared, collegeID, true)
	r.cmpSeen = r.cmpSeen.with(collegeID)
	r.mu.Unlock()
	return nil
}

// RemoveFromCompare removes a college from the compare list.
func (r *Reconciler) RemoveFromCompare(ctx context.Context, collegeID int64) error {
	uid, err := r.userID()
	if err != nil {
		return err
	}

	if err := r.client.RemoveFromCompare(ctx, uid, collegeID); err != nil {
		if errors.Is(err, ErrAuthRequired) {
			return ErrAuthRequired
		}
		return upstream("remove from compare", err)
	}

	r.mu.Lock()
	r.compared = ToggleCompare(r.compared, collegeID, false)
	r.cmpSeen = r.cmpSeen.with(collegeID)
	r.mu.Unlock()
	return nil
}

func idsOf(raws []college.RawCollege) IDSet {
	ids := make([]int64, 0, len(raws))
	for i := range raws {
		ids = append(ids, raws[i].ID)
	}
	return NewIDSet(ids...)
}
