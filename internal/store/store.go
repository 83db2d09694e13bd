package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/HerbHall/collegefinder/internal/plugin"
	_ "modernc.org/sqlite" // Pure-Go SQLite driver
)

var _ plugin.Store = (*SQLiteStore)(nil)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Options tunes the connection. The zero value uses the defaults below.
type Options struct {
	BusyTimeout time.Duration // default 5s
	CacheKiB    int           // default 20000
}

func (o Options) pragmas(memory bool) []string {
	busy := o.BusyTimeout
	if busy <= 0 {
		busy = 5 * time.Second
	}
	cache := o.CacheKiB
	if cache <= 0 {
		cache = 20000
	}
	p := []string{
		fmt.Sprintf("PRAGMA busy_timeout=%d", busy.Milliseconds()),
		"PRAGMA foreign_keys=ON",
		fmt.Sprintf("PRAGMA cache_size=-%d", cache),
	}
	if !memory {
		// WAL has no meaning for :memory: and there is nothing to checkpoint.
		p = append(p, "PRAGMA journal_mode=WAL", "PRAGMA synchronous=NORMAL")
	}
	return p
}

// SQLiteStore is the catalog database. All access goes through one
// connection, so writes are serialized at the driver.
type SQLiteStore struct {
	db     *sql.DB
	memory bool
	mu     sync.Mutex // serializes Migrate
}

// New opens path with default Options.
func New(path string) (*SQLiteStore, error) {
	return Open(context.Background(), path, Options{})
}

// Open opens (or creates) the database at path and applies the
// connection pragmas. modernc.org/sqlite takes pragmas as statements,
// not DSN parameters.
func Open(ctx context.Context, path string, opts Options) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	// A second connection to :memory: would see a different database.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite %q: %w", path, err)
	}

	memory := isMemory(path)
	for _, p := range opts.pragmas(memory) {
		if _, err := db.ExecContext(ctx, p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec %q: %w", p, err)
		}
	}
	return &SQLiteStore{db: db, memory: memory}, nil
}

func isMemory(path string) bool {
	return path == MemoryPath || path == "" || strings.Contains(path, "mode=memory")
}

// DB returns the underlying *sql.DB.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// InMemory reports whether the store lives only in process memory.
func (s *SQLiteStore) InMemory() bool {
	return s.memory
}

// Tx runs fn in a transaction, committing on nil and rolling back otherwise.
func (s *SQLiteStore) Tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original: %w)", rbErr, err)
		}
		return err
	}
	return tx.Commit()
}

// Migrate applies the owner's migrations that schema_versions has no row
// for. Each migration commits together with its version row.
func (s *SQLiteStore) Migrate(ctx context.Context, owner string, migrations []plugin.Migration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_versions (
			owner       TEXT     NOT NULL,
			version     INTEGER  NOT NULL,
			description TEXT     NOT NULL,
			applied_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (owner, version)
		)`); err != nil {
		return fmt.Errorf("create schema_versions: %w", err)
	}

	applied, err := s.appliedVersions(ctx, owner)
	if err != nil {
		return err
	}
	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		err := s.Tx(ctx, func(tx *sql.Tx) error {
			if err := m.Up(tx); err != nil {
				return err
			}
			_, err := tx.ExecContext(ctx,
				`INSERT INTO schema_versions (owner, version, description) VALUES (?, ?, ?)`,
				owner, m.Version, m.Description)
			return err
		})
		if err != nil {
			return fmt.Errorf("migration %s/%d (%s): %w", owner, m.Version, m.Description, err)
		}
	}
	return nil
}

func (s *SQLiteStore) appliedVersions(ctx context.Context, owner string) (map[int]bool, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT version FROM schema_versions WHERE owner = ?`, owner)
	if err != nil {
		return nil, fmt.Errorf("list versions for %s: %w", owner, err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		applied[v] = true
	}
	return applied, rows.Err()
}

// Ping reports whether the database answers. The health endpoint calls it.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Checkpoint folds the WAL into the main file so a backup taken from the
// file alone is complete. It is a no-op for in-memory stores.
func (s *SQLiteStore) Checkpoint(ctx context.Context) error {
	if s.memory {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return fmt.Errorf("wal checkpoint: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
