package match

import "github.com/HerbHall/collegefinder/pkg/college"

// Project normalizes a backend college payload. Missing fields become empty
// strings or empty slices, so malformed data simply fails to match any
// non-empty filter instead of breaking evaluation.
//
// Tags are the stream followed by the course names; categories are the
// distinct categories of the college and its courses.
func Project(raw college.RawCollege) college.Record {
	rec := college.Record{
		ID:          raw.ID,
		Name:        str(raw.Name),
		Location:    str(raw.Address),
		FeeRangeRaw: str(raw.PriceRange),
		Tags:        []string{},
		Categories:  []string{},
	}

	rec.Tags = appendNonEmpty(rec.Tags, str(raw.Stream))
	rec.Tags = appendNonEmpty(rec.Tags, str(raw.CourseName))
	rec.Categories = appendUnique(rec.Categories, str(raw.Category))

	for i := range raw.Courses {
		c := &raw.Courses[i]
		rec.Tags = appendNonEmpty(rec.Tags, str(c.Name))
		rec.Categories = appendUnique(rec.Categories, str(c.Category))
	}
	return rec
}

// ProjectAll projects every record in a catalog snapshot.
func ProjectAll(raws []college.RawCollege) []college.Record {
	out := make([]college.Record, 0, len(raws))
	for i := range raws {
		out = append(out, Project(raws[i]))
	}
	return out
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func appendNonEmpty(dst []string, v string) []string {
	if v == "" {
		return dst
	}
	return append(dst, v)
}

func appendUnique(dst []string, v string) []string {
	if v == "" {
		return dst
	}
	for _, d := range dst {
		if d == v {
			return dst
		}
	}
	return append(dst, v)
}
