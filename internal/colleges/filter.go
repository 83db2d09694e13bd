package colleges

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/HerbHall/collegefinder/internal/match"
	"github.com/HerbHall/collegefinder/pkg/college"
)

var errBadFilter = errors.New("invalid filter")

// filterState builds the filter from query parameters: q, location,
// budget (a bracket label) or budget_min/budget_max, and repeatable stream
// and category values.
func (m *Module) filterState(ctx context.Context, q url.Values) (college.FilterState, error) {
	state := college.FilterState{
		Text:       q.Get("q"),
		Location:   q.Get("location"),
		Streams:    nonEmpty(q["stream"]),
		Categories: nonEmpty(q["category"]),
	}

	if label := q.Get("budget"); label != "" {
		brackets, _, err := m.brackets.Brackets(ctx)
		if err != nil {
			return state, err
		}
		b, ok := match.BracketByLabel(brackets, label)
		if !ok {
			return state, fmt.Errorf("%w: unknown budget %q", errBadFilter, label)
		}
		state.Budget = &b
		return state, nil
	}

	minRaw, maxRaw := q.Get("budget_min"), q.Get("budget_max")
	if minRaw == "" && maxRaw == "" {
		return state, nil
	}
	b := college.BudgetBracket{Label: "custom", Unbounded: maxRaw == ""}
	if minRaw != "" {
		v, err := strconv.ParseInt(minRaw, 10, 64)
		if err != nil || v < 0 {
			return state, fmt.Errorf("%w: budget_min must be a non-negative integer", errBadFilter)
		}
		b.Min = v
	}
	if maxRaw != "" {
		v, err := strconv.ParseInt(maxRaw, 10, 64)
		if err != nil || v < b.Min {
			return state, fmt.Errorf("%w: budget_max must be an integer not below budget_min", errBadFilter)
		}
		b.Max = v
	}
	state.Budget = &b
	return state, nil
}

// applyFilter returns the colleges whose projected records match state,
// preserving catalog order.
func applyFilter(list []college.College, state college.FilterState) []college.College {
	matcher := match.NewMatcher(state)
	out := make([]college.College, 0, len(list))
	for i := range list {
		if matcher.Match(match.Project(list[i].Raw())) {
			out = append(out, list[i])
		}
	}
	return out
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
