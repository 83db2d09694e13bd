package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HerbHall/collegefinder/pkg/college"
)

func sampleCatalog() []college.Record {
	return []college.Record{
		{ID: 1, Name: "Alpha", Location: "Delhi", FeeRangeRaw: "₹100000-₹200000", Tags: []string{"CS"}, Categories: []string{"UG"}},
		{ID: 2, Name: "Beta", Location: "Mumbai", FeeRangeRaw: "Contact for fees", Tags: []string{"MBA"}, Categories: []string{"PG"}},
	}
}

func ids(recs []college.Record) []int64 {
	out := make([]int64, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.ID)
	}
	return out
}

func TestFilter_Scenarios(t *testing.T) {
	tests := []struct {
		name  string
		state college.FilterState
		want  []int64
	}{
		{
			name:  "budget excludes unknown fees",
			state: college.FilterState{Budget: &college.BudgetBracket{Min: 100000, Max: 200000}},
			want:  []int64{1},
		},
		{
			name:  "stream tag",
			state: college.FilterState{Streams: []string{"CS"}},
			want:  []int64{1},
		},
		{
			name:  "case-insensitive name",
			state: college.FilterState{Text: "beta"},
			want:  []int64{2},
		},
		{
			name:  "text matches location",
			state: college.FilterState{Text: "DEL"},
			want:  []int64{1},
		},
		{
			name:  "location ignores name",
			state: college.FilterState{Location: "alpha"},
			want:  []int64{},
		},
		{
			name:  "location trimmed",
			state: college.FilterState{Location: "  mumbai "},
			want:  []int64{2},
		},
		{
			name:  "category",
			state: college.FilterState{Categories: []string{"PG", "Engineering"}},
			want:  []int64{2},
		},
		{
			name:  "axes are conjunctive",
			state: college.FilterState{Text: "alpha", Categories: []string{"PG"}},
			want:  []int64{},
		},
		{
			name:  "stream match is exact",
			state: college.FilterState{Streams: []string{"cs"}},
			want:  []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(sampleCatalog(), tt.state)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestMatches_EmptyStateIsIdentity(t *testing.T) {
	catalog := append(sampleCatalog(), college.Record{ID: 3})
	for _, c := range catalog {
		assert.True(t, Matches(c, college.FilterState{}), "college %d", c.ID)
	}
}

func TestFilter_Deterministic(t *testing.T) {
	state := college.FilterState{Text: "a", Budget: &college.BudgetBracket{Min: 0, Unbounded: true}}
	first := Filter(sampleCatalog(), state)
	second := Filter(sampleCatalog(), state)
	assert.Equal(t, first, second)
}

func TestNewMatcher_CopiesBudget(t *testing.T) {
	b := &college.BudgetBracket{Min: 100000, Max: 200000}
	m := NewMatcher(college.FilterState{Budget: b})
	b.Min, b.Max = 0, 1

	assert.True(t, m.Match(sampleCatalog()[0]), "matcher must not observe later edits to the state")
}

func TestFilter_ZeroValueRecord(t *testing.T) {
	state := college.FilterState{Text: "x", Streams: []string{"CS"}}
	assert.Empty(t, Filter([]college.Record{{ID: 9}}, state))
}
