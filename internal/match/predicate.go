package match

import (
	"strings"

	"github.com/HerbHall/collegefinder/pkg/college"
)

// Matcher is a FilterState prepared for repeated evaluation: search text is
// trimmed and lower-cased once and stream/category selections become sets.
type Matcher struct {
	text       string
	location   string
	budget     *college.BudgetBracket
	streams    map[string]struct{}
	categories map[string]struct{}
}

// NewMatcher compiles a filter state.
func NewMatcher(s college.FilterState) *Matcher {
	m := &Matcher{
		text:       strings.ToLower(strings.TrimSpace(s.Text)),
		location:   strings.ToLower(strings.TrimSpace(s.Location)),
		streams:    toSet(s.Streams),
		categories: toSet(s.Categories),
	}
	if s.Budget != nil {
		b := *s.Budget
		m.budget = &b
	}
	return m
}

// Match reports whether rec satisfies every constrained axis.
func (m *Matcher) Match(rec college.Record) bool {
	if m.text != "" &&
		!containsFold(rec.Name, m.text) && !containsFold(rec.Location, m.text) {
		return false
	}
	if m.location != "" && !containsFold(rec.Location, m.location) {
		return false
	}
	if len(m.streams) > 0 && !anyIn(rec.Tags, m.streams) {
		return false
	}
	if len(m.categories) > 0 && !anyIn(rec.Categories, m.categories) {
		return false
	}
	// Budget last: it is the only axis that parses.
	if m.budget != nil && !Overlaps(ParseFeeRange(rec.FeeRangeRaw), *m.budget) {
		return false
	}
	return true
}

// Matches reports whether a single college satisfies the filter state.
func Matches(rec college.Record, s college.FilterState) bool {
	return NewMatcher(s).Match(rec)
}

// Filter returns the colleges matching s, preserving catalog order. The
// result is never nil.
func Filter(catalog []college.Record, s college.FilterState) []college.Record {
	m := NewMatcher(s)
	out := make([]college.Record, 0, len(catalog))
	for i := range catalog {
		if m.Match(catalog[i]) {
			out = append(out, catalog[i])
		}
	}
	return out
}

// containsFold reports whether needle (already lower-case) occurs in s,
// ignoring case.
func containsFold(s, needle string) bool {
	return strings.Contains(strings.ToLower(s), needle)
}

func anyIn(values []string, set map[string]struct{}) bool {
	for _, v := range values {
		if _, ok := set[v]; ok {
			return true
		}
	}
	return false
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
