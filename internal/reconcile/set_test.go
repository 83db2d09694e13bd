package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggleLike(t *testing.T) {
	empty := NewIDSet()

	liked := ToggleLike(empty, 5, true)
	assert.Equal(t, []int64{5}, liked.IDs())
	assert.Equal(t, 0, empty.Len(), "input set must not be mutated")

	unliked := ToggleLike(liked, 5, false)
	assert.Empty(t, unliked.IDs())
	assert.True(t, liked.Has(5), "input set must not be mutated")
}

func TestToggleLike_Idempotent(t *testing.T) {
	set := NewIDSet(1, 2)
	assert.Equal(t, []int64{1, 2}, ToggleLike(set, 2, true).IDs())
	assert.Equal(t, []int64{1, 2}, ToggleLike(set, 3, false).IDs())
}

func TestToggleCompare(t *testing.T) {
	set := ToggleCompare(IDSet{}, 8, true)
	set = ToggleCompare(set, 3, true)
	assert.Equal(t, []int64{3, 8}, set.IDs())
	assert.Equal(t, []int64{8}, ToggleCompare(set, 3, false).IDs())
}

func TestCanAddToCompare(t *testing.T) {
	assert.True(t, CanAddToCompare(IDSet{}))
	assert.True(t, CanAddToCompare(NewIDSet(1)))
	assert.False(t, CanAddToCompare(NewIDSet(1, 2)))
}

func TestZeroIDSet(t *testing.T) {
	var s IDSet
	assert.False(t, s.Has(1))
	assert.Equal(t, 0, s.Len())
	assert.NotNil(t, s.IDs())
}
