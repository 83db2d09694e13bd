package match

import (
	"math"

	"github.com/HerbHall/collegefinder/pkg/college"
)

// Overlaps reports whether a college fee interval touches a budget bracket.
// Colleges without a valid fee are never in budget. Bounds are inclusive.
//
// The four cases are kept separate rather than collapsed into
// min <= bracket.max && max >= bracket.min. The forms disagree for reversed
// intervals in two ways: startsIn matches "150000-50000" against 1-2 lakh on
// its start alone, and within matches "300000-50000" because the start sits
// above the bracket minimum and the end below its maximum.
func Overlaps(fee college.FeeInterval, b college.BudgetBracket) bool {
	if !fee.Valid {
		return false
	}

	bMin, bMax := b.Min, b.Max
	if b.Unbounded {
		bMax = math.MaxInt64
	}

	startsIn := fee.Min >= bMin && fee.Min <= bMax
	endsIn := fee.Max >= bMin && fee.Max <= bMax
	covers := fee.Min <= bMin && fee.Max >= bMax
	within := fee.Min >= bMin && fee.Max <= bMax

	return startsIn || endsIn || covers || within
}
