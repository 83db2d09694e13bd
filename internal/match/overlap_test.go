package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/HerbHall/collegefinder/pkg/college"
)

func TestOverlaps(t *testing.T) {
	oneToTwo := college.BudgetBracket{Label: "1-2", Min: 100000, Max: 200000}
	overFive := college.BudgetBracket{Label: "5+", Min: 500000, Unbounded: true}

	tests := []struct {
		name    string
		fee     college.FeeInterval
		bracket college.BudgetBracket
		want    bool
	}{
		{"invalid fee never matches", college.FeeInterval{Min: 0, Max: 100000}, oneToTwo, false},
		{"exact match", college.FeeInterval{Min: 100000, Max: 200000, Valid: true}, oneToTwo, true},
		{"starts inside", college.FeeInterval{Min: 150000, Max: 300000, Valid: true}, oneToTwo, true},
		{"ends inside", college.FeeInterval{Min: 50000, Max: 150000, Valid: true}, oneToTwo, true},
		{"covers bracket", college.FeeInterval{Min: 50000, Max: 300000, Valid: true}, oneToTwo, true},
		{"within bracket", college.FeeInterval{Min: 120000, Max: 180000, Valid: true}, oneToTwo, true},
		{"touches lower bound", college.FeeInterval{Min: 50000, Max: 100000, Valid: true}, oneToTwo, true},
		{"touches upper bound", college.FeeInterval{Min: 200000, Max: 250000, Valid: true}, oneToTwo, true},
		{"entirely below", college.FeeInterval{Min: 10000, Max: 99999, Valid: true}, oneToTwo, false},
		{"entirely above", college.FeeInterval{Min: 200001, Max: 300000, Valid: true}, oneToTwo, false},
		{"unbounded bracket", college.FeeInterval{Min: 900000, Max: 1500000, Valid: true}, overFive, true},
		{"below unbounded", college.FeeInterval{Min: 100000, Max: 499999, Valid: true}, overFive, false},
		{"reversed interval start inside", college.FeeInterval{Min: 150000, Max: 50000, Valid: true}, oneToTwo, true},
		{"reversed interval straddles bracket", college.FeeInterval{Min: 300000, Max: 50000, Valid: true}, oneToTwo, true},
		{"reversed interval above bracket", college.FeeInterval{Min: 300000, Max: 250000, Valid: true}, oneToTwo, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.fee, tt.bracket))
		})
	}
}

func TestOverlaps_InvalidAlwaysFalse(t *testing.T) {
	fee := college.FeeInterval{Min: 0, Max: 100000, Valid: false}
	brackets, err := DefaultBrackets()
	assert.NoError(t, err)
	for _, b := range brackets {
		assert.False(t, Overlaps(fee, b), "bracket %q", b.Label)
	}
}

func TestOverlaps_Pure(t *testing.T) {
	fee := college.FeeInterval{Min: 150000, Max: 250000, Valid: true}
	b := college.BudgetBracket{Min: 100000, Max: 200000}
	first := Overlaps(fee, b)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Overlaps(fee, b))
	}
}
