package testutil

import (
	"github.com/HerbHall/collegefinder/pkg/college"
)

// Fee returns a pointer to v for populating semester fee fields.
func Fee(v float64) *float64 { return &v }

// NewCourse returns a course of the given category whose semester fees are
// filled with perSemester for exactly the number of semesters the category
// requires, so it always passes validation.
func NewCourse(name string, cat college.Category, perSemester float64) college.Course {
	c := college.Course{
		Name:     name,
		About:    name + " programme",
		Category: cat,
	}
	var fees [college.MaxSemesters]*float64
	for i := 0; i < cat.Semesters(); i++ {
		fees[i] = Fee(perSemester)
	}
	c.SetSemesterFees(fees)
	return c
}

// NewCollege returns a College with sensible defaults, suitable for test
// fixtures. Override individual fields with options.
func NewCollege(opts ...func(*college.College)) college.College {
	c := college.College{
		Name:       "Test College",
		Address:    "Pune",
		About:      "A college used in tests.",
		Stream:     "Computer Science",
		PriceRange: "50000-150000",
		Courses: []college.Course{
			NewCourse("BSc CS", college.CategoryUG, 25000),
		},
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithName sets the college name.
func WithName(name string) func(*college.College) {
	return func(c *college.College) { c.Name = name }
}

// WithAddress sets the college address.
func WithAddress(addr string) func(*college.College) {
	return func(c *college.College) { c.Address = addr }
}

// WithStream sets the college stream.
func WithStream(stream string) func(*college.College) {
	return func(c *college.College) { c.Stream = stream }
}

// WithPriceRange sets the free-form fee range text.
func WithPriceRange(pr string) func(*college.College) {
	return func(c *college.College) { c.PriceRange = pr }
}

// WithCourses replaces the course list.
func WithCourses(courses ...college.Course) func(*college.College) {
	return func(c *college.College) { c.Courses = courses }
}
