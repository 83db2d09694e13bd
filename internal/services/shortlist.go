package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/HerbHall/collegefinder/internal/plugin"
	"github.com/HerbHall/collegefinder/pkg/college"
)

// CompareCapacity is the compare-list limit enforced on insert.
const CompareCapacity = college.CompareCapacity

// ShortlistRepository tracks per-user liked and compared colleges.
type ShortlistRepository interface {
	// ToggleLike flips the like for (userID, collegeID) and reports the new
	// state. Returns ErrNotFound when the user or college does not exist.
	ToggleLike(ctx context.Context, userID, collegeID int64) (bool, error)

	// ListLiked returns the user's liked colleges in the order liked.
	ListLiked(ctx context.Context, userID int64) ([]college.College, error)

	// AddCompare adds a college to the user's compare list. Returns
	// ErrAlreadyExists if present, ErrCapacityExceeded if the list is full,
	// and ErrNotFound if the user or college does not exist.
	AddCompare(ctx context.Context, userID, collegeID int64) error

	// RemoveCompare removes a college from the compare list, returning
	// ErrNotFound if it was not there.
	RemoveCompare(ctx context.Context, userID, collegeID int64) error

	// ListCompared returns the user's compared colleges in the order added.
	ListCompared(ctx context.Context, userID int64) ([]college.College, error)
}

// Compile-time interface guard.
var _ ShortlistRepository = (*SQLiteShortlistRepository)(nil)

// SQLiteShortlistRepository implements ShortlistRepository using SQLite.
type SQLiteShortlistRepository struct {
	store plugin.Store
	db    *sql.DB
}

// NewSQLiteShortlistRepository creates a ShortlistRepository and runs the
// shortlist migrations. The users and colleges tables must be migrated
// first.
func NewSQLiteShortlistRepository(ctx context.Context, store plugin.Store) (*SQLiteShortlistRepository, error) {
	if err := store.Migrate(ctx, "shortlist", shortlistMigrations); err != nil {
		return nil, fmt.Errorf("shortlist migrations: %w", err)
	}
	return &SQLiteShortlistRepository{store: store, db: store.DB()}, nil
}

func (r *SQLiteShortlistRepository) ToggleLike(ctx context.Context, userID, collegeID int64) (bool, error) {
	var liked bool
	err := r.store.Tx(ctx, func(tx *sql.Tx) error {
		if err := ensureExists(ctx, tx, userID, collegeID); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx,
			`DELETE FROM liked_colleges WHERE user_id = ? AND college_id = ?`, userID, collegeID)
		if err != nil {
			return fmt.Errorf("unlike: %w", err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			liked = false
			return nil
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO liked_colleges (user_id, college_id) VALUES (?, ?)`, userID, collegeID); err != nil {
			return fmt.Errorf("like: %w", err)
		}
		liked = true
		return nil
	})
	return liked, err
}

func (r *SQLiteShortlistRepository) ListLiked(ctx context.Context, userID int64) ([]college.College, error) {
	return r.listJoined(ctx, "liked_colleges", userID)
}

func (r *SQLiteShortlistRepository) AddCompare(ctx context.Context, userID, collegeID int64) error {
	return r.store.Tx(ctx, func(tx *sql.Tx) error {
		if err := ensureExists(ctx, tx, userID, collegeID); err != nil {
			return err
		}
		var present, total int
		err := tx.QueryRowContext(ctx, `
			SELECT COALESCE(SUM(college_id = ?), 0), COUNT(*)
			FROM compare_colleges WHERE user_id = ?`, collegeID, userID,
		).Scan(&present, &total)
		if err != nil {
			return fmt.Errorf("count compared: %w", err)
		}
		if present > 0 {
			return ErrAlreadyExists
		}
		if total >= CompareCapacity {
			return ErrCapacityExceeded
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO compare_colleges (user_id, college_id) VALUES (?, ?)`, userID, collegeID); err != nil {
			if isUniqueViolation(err) {
				return ErrAlreadyExists
			}
			return fmt.Errorf("add compare: %w", err)
		}
		return nil
	})
}

func (r *SQLiteShortlistRepository) RemoveCompare(ctx context.Context, userID, collegeID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM compare_colleges WHERE user_id = ? AND college_id = ?`, userID, collegeID)
	if err != nil {
		return fmt.Errorf("remove compare: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLiteShortlistRepository) ListCompared(ctx context.Context, userID int64) ([]college.College, error) {
	return r.listJoined(ctx, "compare_colleges", userID)
}

// listJoined loads the colleges referenced by a per-user link table.
func (r *SQLiteShortlistRepository) listJoined(ctx context.Context, table string, userID int64) ([]college.College, error) {
	list, err := queryColleges(ctx, r.db,
		`JOIN `+table+` l ON l.college_id = c.id WHERE l.user_id = ? ORDER BY l.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list %s for user %d: %w", table, userID, err)
	}
	return list, nil
}

// ensureExists returns a wrapped ErrNotFound naming whichever of the user or
// college is missing.
func ensureExists(ctx context.Context, tx *sql.Tx, userID, collegeID int64) error {
	var one int
	err := tx.QueryRowContext(ctx, `SELECT 1 FROM users WHERE id = ?`, userID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("lookup user %d: %w", userID, err)
	}
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM colleges WHERE id = ?`, collegeID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("college %d: %w", collegeID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("lookup college %d: %w", collegeID, err)
	}
	return nil
}

// shortlistMigrations defines the liked and compare link tables.
var shortlistMigrations = []plugin.Migration{
	{
		Version:     1,
		Description: "create liked_colleges and compare_colleges tables",
		Up: func(tx *sql.Tx) error {
			for _, table := range []string{"liked_colleges", "compare_colleges"} {
				_, err := tx.Exec(`
					CREATE TABLE ` + table + ` (
						id         INTEGER PRIMARY KEY AUTOINCREMENT,
						user_id    INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
						college_id INTEGER NOT NULL REFERENCES colleges(id) ON DELETE CASCADE,
						created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
						UNIQUE (user_id, college_id)
					)`)
				if err != nil {
					return err
				}
			}
			return nil
		},
	},
}
