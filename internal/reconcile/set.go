// Package reconcile keeps a user's liked and compared colleges in step with
// the server. Sets only change in response to confirmed server answers and
// are replaced wholesale, never mutated in place.
package reconcile

import (
	"sort"

	"github.com/HerbHall/collegefinder/pkg/college"
)

// CompareCapacity is the compare-list limit checked before calling the server.
const CompareCapacity = college.CompareCapacity

// IDSet is an immutable set of college IDs. The zero value is an empty set.
type IDSet struct {
	ids map[int64]struct{}
}

// NewIDSet returns a set holding ids.
func NewIDSet(ids ...int64) IDSet {
	m := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return IDSet{ids: m}
}

// Has reports whether id is in the set.
func (s IDSet) Has(id int64) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of IDs in the set.
func (s IDSet) Len() int {
	return len(s.ids)
}

// IDs returns the members in ascending order.
func (s IDSet) IDs() []int64 {
	out := make([]int64, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// with returns a copy of s including id.
func (s IDSet) with(id int64) IDSet {
	m := make(map[int64]struct{}, len(s.ids)+1)
	for k := range s.ids {
		m[k] = struct{}{}
	}
	m[id] = struct{}{}
	return IDSet{ids: m}
}

// without returns a copy of s excluding id.
func (s IDSet) without(id int64) IDSet {
	m := make(map[int64]struct{}, len(s.ids))
	for k := range s.ids {
		if k != id {
			m[k] = struct{}{}
		}
	}
	return IDSet{ids: m}
}

// ToggleLike applies a confirmed like response: id is added when the server
// reports it liked and removed otherwise. set is not modified.
func ToggleLike(set IDSet, id int64, confirmedLiked bool) IDSet {
	if confirmedLiked {
		return set.with(id)
	}
	return set.without(id)
}

// ToggleCompare applies a confirmed compare add or remove.
func ToggleCompare(set IDSet, id int64, confirmedCompared bool) IDSet {
	if confirmedCompared {
		return set.with(id)
	}
	return set.without(id)
}

// CanAddToCompare reports whether another college fits in the compare list.
// Callers check this before asking the server to add one.
func CanAddToCompare(set IDSet) bool {
	return set.Len() < CompareCapacity
}
