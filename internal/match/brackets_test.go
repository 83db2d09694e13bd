package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HerbHall/collegefinder/pkg/college"
)

func TestDefaultBrackets(t *testing.T) {
	brackets, err := DefaultBrackets()
	require.NoError(t, err)
	require.Len(t, brackets, 4)

	assert.Equal(t, "Under ₹1 Lakh", brackets[0].Label)
	assert.Equal(t, int64(100000), brackets[0].Max)
	assert.True(t, brackets[3].Unbounded)

	// Mutating the copy must not leak into later calls.
	brackets[0].Label = "changed"
	again, err := DefaultBrackets()
	require.NoError(t, err)
	assert.Equal(t, "Under ₹1 Lakh", again[0].Label)
}

func TestDefaultStreams(t *testing.T) {
	streams, err := DefaultStreams()
	require.NoError(t, err)
	assert.Contains(t, streams, "Computer Science")
	assert.Len(t, streams, 5)
}

func TestBracketByLabel(t *testing.T) {
	brackets, err := DefaultBrackets()
	require.NoError(t, err)

	b, ok := BracketByLabel(brackets, "₹2 Lakh - ₹5 Lakh")
	require.True(t, ok)
	assert.Equal(t, int64(200000), b.Min)

	_, ok = BracketByLabel(brackets, "nope")
	assert.False(t, ok)
}

func TestValidateBrackets(t *testing.T) {
	tests := []struct {
		name     string
		brackets []college.BudgetBracket
		wantErr  error
	}{
		{"empty", nil, ErrNoBrackets},
		{"missing label", []college.BudgetBracket{{Min: 0, Max: 1}}, ErrBracketLabel},
		{"min above max", []college.BudgetBracket{{Label: "a", Min: 5, Max: 1}}, ErrBracketRange},
		{"duplicate", []college.BudgetBracket{{Label: "a", Max: 1}, {Label: "a", Min: 1, Max: 2}}, ErrBracketDuplicate},
		{"unsorted", []college.BudgetBracket{{Label: "a", Min: 10, Max: 20}, {Label: "b", Min: 0, Max: 5}}, ErrBracketOrder},
		{"overlap", []college.BudgetBracket{{Label: "a", Min: 0, Max: 20}, {Label: "b", Min: 10, Max: 30}}, ErrBracketOverlap},
		{"after unbounded", []college.BudgetBracket{{Label: "a", Min: 0, Unbounded: true}, {Label: "b", Min: 10, Max: 30}}, ErrBracketOverlap},
		{"shared boundary ok", []college.BudgetBracket{{Label: "a", Min: 0, Max: 10}, {Label: "b", Min: 10, Unbounded: true}}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBrackets(tt.brackets)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
