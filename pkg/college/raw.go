package college

// RawCollege is the college payload as decoded from the API. Every optional
// field is a pointer because the backend may send null or omit it.
type RawCollege struct {
	ID         int64       `json:"id"`
	Name       *string     `json:"college_name"`
	Address    *string     `json:"address"`
	About      *string     `json:"about"`
	Stream     *string     `json:"stream"`
	PriceRange *string     `json:"price_range"`
	ImageURL   *string     `json:"img_url"`
	Category   *string     `json:"category"`
	CourseName *string     `json:"course_name"`
	Courses    []RawCourse `json:"courses"`
}

// RawCourse is the course payload as decoded from the API.
type RawCourse struct {
	Name     *string  `json:"course_name"`
	About    *string  `json:"course_about"`
	Category *string  `json:"category"`
	Sem1Fee  *float64 `json:"sem1_fee"`
	Sem2Fee  *float64 `json:"sem2_fee"`
	Sem3Fee  *float64 `json:"sem3_fee"`
	Sem4Fee  *float64 `json:"sem4_fee"`
	Sem5Fee  *float64 `json:"sem5_fee"`
	Sem6Fee  *float64 `json:"sem6_fee"`
	Sem7Fee  *float64 `json:"sem7_fee"`
	Sem8Fee  *float64 `json:"sem8_fee"`
}

// Course converts the raw payload into a Course, treating null strings as
// empty.
func (r RawCourse) Course() Course {
	c := Course{
		Name:     deref(r.Name),
		About:    deref(r.About),
		Category: Category(deref(r.Category)),
	}
	c.SetSemesterFees([MaxSemesters]*float64{
		r.Sem1Fee, r.Sem2Fee, r.Sem3Fee, r.Sem4Fee,
		r.Sem5Fee, r.Sem6Fee, r.Sem7Fee, r.Sem8Fee,
	})
	return c
}

// Raw converts a stored college into its wire shape. Useful for feeding
// server-side data through the same projection the client uses.
func (c *College) Raw() RawCollege {
	r := RawCollege{
		ID:         c.ID,
		Name:       ptr(c.Name),
		Address:    ptr(c.Address),
		About:      ptr(c.About),
		Stream:     ptr(c.Stream),
		PriceRange: ptr(c.PriceRange),
		Courses:    make([]RawCourse, 0, len(c.Courses)),
	}
	if c.ImageURL != "" {
		r.ImageURL = ptr(c.ImageURL)
	}
	for i := range c.Courses {
		cc := &c.Courses[i]
		fees := cc.SemesterFees()
		r.Courses = append(r.Courses, RawCourse{
			Name:     ptr(cc.Name),
			About:    ptr(cc.About),
			Category: ptr(string(cc.Category)),
			Sem1Fee:  fees[0],
			Sem2Fee:  fees[1],
			Sem3Fee:  fees[2],
			Sem4Fee:  fees[3],
			Sem5Fee:  fees[4],
			Sem6Fee:  fees[5],
			Sem7Fee:  fees[6],
			Sem8Fee:  fees[7],
		})
	}
	return r
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ptr(s string) *string {
	return &s
}
