// Package college defines the college, course, and filter types shared by
// the server, the match engine, and the API client.
package college

import (
	"fmt"
	"time"
)

// Category is the academic level a course belongs to.
type Category string

const (
	CategoryUG          Category = "UG"
	CategoryPG          Category = "PG"
	CategoryEngineering Category = "Engineering"
)

// CompareCapacity is the most colleges one user may compare at once.
const CompareCapacity = 2

// Categories lists every accepted course category in display order.
var Categories = []Category{CategoryUG, CategoryPG, CategoryEngineering}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryUG, CategoryPG, CategoryEngineering:
		return true
	}
	return false
}

// Semesters returns how many semester fees a course of this category must
// declare. Unknown categories return 0.
func (c Category) Semesters() int {
	switch c {
	case CategoryUG:
		return 6
	case CategoryPG:
		return 4
	case CategoryEngineering:
		return 8
	}
	return 0
}

// MaxSemesters is the number of semester fee columns stored per course.
const MaxSemesters = 8

// College is a college as stored by the server and returned by the API.
type College struct {
	ID         int64     `json:"id"`
	Name       string    `json:"college_name"`
	Address    string    `json:"address"`
	About      string    `json:"about"`
	Stream     string    `json:"stream"`
	PriceRange string    `json:"price_range"`
	ImageURL   string    `json:"img_url,omitempty"`
	Courses    []Course  `json:"courses"`
	CreatedAt  time.Time `json:"created_at"`

	ImageMIME string `json:"-"`
	HasImage  bool   `json:"-"`
}

// Course is a program offered by a college with per-semester fees.
type Course struct {
	ID       int64    `json:"id,omitempty"`
	Name     string   `json:"course_name"`
	About    string   `json:"course_about"`
	Category Category `json:"category"`
	Sem1Fee  *float64 `json:"sem1_fee"`
	Sem2Fee  *float64 `json:"sem2_fee"`
	Sem3Fee  *float64 `json:"sem3_fee"`
	Sem4Fee  *float64 `json:"sem4_fee"`
	Sem5Fee  *float64 `json:"sem5_fee"`
	Sem6Fee  *float64 `json:"sem6_fee"`
	Sem7Fee  *float64 `json:"sem7_fee"`
	Sem8Fee  *float64 `json:"sem8_fee"`
}

// SemesterFees returns pointers to the eight fee slots in semester order.
func (c *Course) SemesterFees() [MaxSemesters]*float64 {
	return [MaxSemesters]*float64{
		c.Sem1Fee, c.Sem2Fee, c.Sem3Fee, c.Sem4Fee,
		c.Sem5Fee, c.Sem6Fee, c.Sem7Fee, c.Sem8Fee,
	}
}

// SetSemesterFees assigns the eight fee slots from fees.
func (c *Course) SetSemesterFees(fees [MaxSemesters]*float64) {
	c.Sem1Fee, c.Sem2Fee, c.Sem3Fee, c.Sem4Fee = fees[0], fees[1], fees[2], fees[3]
	c.Sem5Fee, c.Sem6Fee, c.Sem7Fee, c.Sem8Fee = fees[4], fees[5], fees[6], fees[7]
}

// SemesterFee is one provided semester fee.
type SemesterFee struct {
	Semester int     `json:"semester"`
	Amount   float64 `json:"amount"`
}

// Semesters returns the provided semester fees in order, skipping empty slots.
func (c *Course) Semesters() []SemesterFee {
	fees := c.SemesterFees()
	out := make([]SemesterFee, 0, len(fees))
	for i, f := range fees {
		if f != nil {
			out = append(out, SemesterFee{Semester: i + 1, Amount: *f})
		}
	}
	return out
}

// TotalFee sums all provided semester fees.
func (c *Course) TotalFee() float64 {
	var total float64
	for _, s := range c.Semesters() {
		total += s.Amount
	}
	return total
}

// Validate checks the course name, category, and that the number of
// semester fees matches the category.
func (c *Course) Validate() error {
	if c.Name == "" || c.Category == "" {
		return fmt.Errorf("each course must have 'course_name' and 'category'")
	}
	if !c.Category.Valid() {
		return fmt.Errorf("invalid category %q for course %q: must be 'UG', 'PG', or 'Engineering'", c.Category, c.Name)
	}
	want := c.Category.Semesters()
	if got := len(c.Semesters()); got != want {
		return fmt.Errorf("course %q must have exactly %d semester fees, got %d", c.Name, want, got)
	}
	return nil
}
