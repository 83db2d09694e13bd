package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/HerbHall/collegefinder/internal/plugin"
	"github.com/HerbHall/collegefinder/pkg/college"
)

// Image is a stored college image.
type Image struct {
	Data []byte
	MIME string
}

// CollegeRepository provides access to the college catalog.
type CollegeRepository interface {
	// Create inserts c with its courses and optional image in a single
	// transaction and sets c.ID and each course ID.
	Create(ctx context.Context, c *college.College, img *Image) error

	// Get returns a college with its courses.
	Get(ctx context.Context, id int64) (*college.College, error)

	// List returns every college with courses, ordered by ID.
	List(ctx context.Context) ([]college.College, error)

	// ListByName returns colleges whose name matches exactly.
	ListByName(ctx context.Context, name string) ([]college.College, error)

	// Image returns the stored image for a college, or ErrNotFound when the
	// college has none.
	Image(ctx context.Context, id int64) (*Image, error)

	// Delete removes a college, cascading to courses and shortlists.
	Delete(ctx context.Context, id int64) error

	// Count returns the catalog size.
	Count(ctx context.Context) (int, error)
}

// Compile-time interface guard.
var _ CollegeRepository = (*SQLiteCollegeRepository)(nil)

// SQLiteCollegeRepository implements CollegeRepository using SQLite.
type SQLiteCollegeRepository struct {
	store plugin.Store
	db    *sql.DB
}

// NewSQLiteCollegeRepository creates a CollegeRepository and runs the
// catalog migrations.
func NewSQLiteCollegeRepository(ctx context.Context, store plugin.Store) (*SQLiteCollegeRepository, error) {
	if err := store.Migrate(ctx, "college", collegeMigrations); err != nil {
		return nil, fmt.Errorf("college migrations: %w", err)
	}
	return &SQLiteCollegeRepository{store: store, db: store.DB()}, nil
}

func (r *SQLiteCollegeRepository) Create(ctx context.Context, c *college.College, img *Image) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	var data []byte
	var mime string
	if img != nil && len(img.Data) > 0 {
		data, mime = img.Data, img.MIME
	}

	return r.store.Tx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO colleges (college_name, address, about, stream, price_range, image_data, image_mime, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			c.Name, c.Address, c.About, c.Stream, c.PriceRange, data, mime, c.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert college: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert college: last insert id: %w", err)
		}

		for i := range c.Courses {
			cc := &c.Courses[i]
			fees := cc.SemesterFees()
			res, err := tx.ExecContext(ctx, `
				INSERT INTO courses (college_id, course_name, course_about, category,
					sem1_fee, sem2_fee, sem3_fee, sem4_fee, sem5_fee, sem6_fee, sem7_fee, sem8_fee)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				id, cc.Name, cc.About, string(cc.Category),
				fees[0], fees[1], fees[2], fees[3], fees[4], fees[5], fees[6], fees[7],
			)
			if err != nil {
				return fmt.Errorf("insert course %q: %w", cc.Name, err)
			}
			if cc.ID, err = res.LastInsertId(); err != nil {
				return fmt.Errorf("insert course %q: last insert id: %w", cc.Name, err)
			}
		}

		c.ID = id
		c.HasImage = len(data) > 0
		c.ImageMIME = mime
		return nil
	})
}

func (r *SQLiteCollegeRepository) Get(ctx context.Context, id int64) (*college.College, error) {
	list, err := queryColleges(ctx, r.db, `WHERE c.id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("get college %d: %w", id, err)
	}
	if len(list) == 0 {
		return nil, ErrNotFound
	}
	return &list[0], nil
}

func (r *SQLiteCollegeRepository) List(ctx context.Context) ([]college.College, error) {
	list, err := queryColleges(ctx, r.db, `ORDER BY c.id`)
	if err != nil {
		return nil, fmt.Errorf("list colleges: %w", err)
	}
	return list, nil
}

func (r *SQLiteCollegeRepository) ListByName(ctx context.Context, name string) ([]college.College, error) {
	list, err := queryColleges(ctx, r.db, `WHERE c.college_name = ? ORDER BY c.id`, name)
	if err != nil {
		return nil, fmt.Errorf("list colleges by name: %w", err)
	}
	return list, nil
}

func (r *SQLiteCollegeRepository) Image(ctx context.Context, id int64) (*Image, error) {
	var img Image
	err := r.db.QueryRowContext(ctx,
		`SELECT image_data, image_mime FROM colleges WHERE id = ?`, id,
	).Scan(&img.Data, &img.MIME)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get image %d: %w", id, err)
	}
	if len(img.Data) == 0 {
		return nil, ErrNotFound
	}
	if img.MIME == "" {
		img.MIME = "image/jpeg"
	}
	return &img, nil
}

func (r *SQLiteCollegeRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM colleges WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete college %d: %w", id, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLiteCollegeRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM colleges`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count colleges: %w", err)
	}
	return count, nil
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

const collegeColumns = `c.id, c.college_name, c.address, c.about, c.stream, c.price_range,
	c.image_mime, length(c.image_data) > 0, c.created_at`

// queryColleges selects colleges with the given clause appended and loads
// their courses. The clause may reference the colleges table as c.
func queryColleges(ctx context.Context, q querier, clause string, args ...any) ([]college.College, error) {
	rows, err := q.QueryContext(ctx, `SELECT `+collegeColumns+` FROM colleges c `+clause, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]college.College, 0)
	index := make(map[int64]int)
	for rows.Next() {
		var c college.College
		var hasImage sql.NullBool
		if err := rows.Scan(&c.ID, &c.Name, &c.Address, &c.About, &c.Stream, &c.PriceRange,
			&c.ImageMIME, &hasImage, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan college row: %w", err)
		}
		c.HasImage = hasImage.Valid && hasImage.Bool
		c.Courses = make([]college.Course, 0)
		index[c.ID] = len(list)
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return list, nil
	}

	ids := make([]any, len(list))
	for i := range list {
		ids[i] = list[i].ID
	}
	courseRows, err := q.QueryContext(ctx, `
		SELECT id, college_id, course_name, course_about, category,
			sem1_fee, sem2_fee, sem3_fee, sem4_fee, sem5_fee, sem6_fee, sem7_fee, sem8_fee
		FROM courses WHERE college_id IN (`+placeholders(len(ids))+`) ORDER BY id`, ids...)
	if err != nil {
		return nil, fmt.Errorf("load courses: %w", err)
	}
	defer courseRows.Close()

	for courseRows.Next() {
		var cc college.Course
		var collegeID int64
		var category string
		var fees [college.MaxSemesters]sql.NullFloat64
		if err := courseRows.Scan(&cc.ID, &collegeID, &cc.Name, &cc.About, &category,
			&fees[0], &fees[1], &fees[2], &fees[3], &fees[4], &fees[5], &fees[6], &fees[7]); err != nil {
			return nil, fmt.Errorf("scan course row: %w", err)
		}
		cc.Category = college.Category(category)
		var set [college.MaxSemesters]*float64
		for i, f := range fees {
			if f.Valid {
				v := f.Float64
				set[i] = &v
			}
		}
		cc.SetSemesterFees(set)
		if i, ok := index[collegeID]; ok {
			list[i].Courses = append(list[i].Courses, cc)
		}
	}
	return list, courseRows.Err()
}

// collegeMigrations defines the catalog schema.
var collegeMigrations = []plugin.Migration{
	{
		Version:     1,
		Description: "create colleges table",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
				CREATE TABLE colleges (
					id           INTEGER PRIMARY KEY AUTOINCREMENT,
					college_name TEXT NOT NULL,
					address      TEXT NOT NULL DEFAULT '',
					about        TEXT NOT NULL DEFAULT '',
					stream       TEXT NOT NULL DEFAULT '',
					price_range  TEXT NOT NULL DEFAULT '',
					image_data   BLOB,
					image_mime   TEXT NOT NULL DEFAULT '',
					created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
				)`)
			if err != nil {
				return err
			}
			_, err = tx.Exec(`CREATE INDEX idx_colleges_name ON colleges(college_name)`)
			return err
		},
	},
	{
		Version:     2,
		Description: "create courses table",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
				CREATE TABLE courses (
					id           INTEGER PRIMARY KEY AUTOINCREMENT,
					college_id   INTEGER NOT NULL REFERENCES colleges(id) ON DELETE CASCADE,
					course_name  TEXT NOT NULL,
					course_about TEXT NOT NULL DEFAULT '',
					category     TEXT NOT NULL CHECK (category IN ('UG', 'PG', 'Engineering')),
					sem1_fee     REAL,
					sem2_fee     REAL,
					sem3_fee     REAL,
					sem4_fee     REAL,
					sem5_fee     REAL,
					sem6_fee     REAL,
					sem7_fee     REAL,
					sem8_fee     REAL
				)`)
			if err != nil {
				return err
			}
			_, err = tx.Exec(`CREATE INDEX idx_courses_college ON courses(college_id)`)
			return err
		},
	},
}
