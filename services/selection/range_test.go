package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickBuildsContiguousRange(t *testing.T) {
	var r Range

	r, err := r.Pick(9)
	require.NoError(t, err)
	assert.Equal(t, []int{9}, r.Hours())

	r, err = r.Pick(10)
	require.NoError(t, err)
	assert.Equal(t, []int{9, 10}, r.Hours())

	r, err = r.Pick(11)
	require.NoError(t, err)
	assert.Equal(t, []int{9, 10, 11}, r.Hours())

	// Re-picking the last slot shrinks from the right edge.
	r, err = r.Pick(11)
	require.NoError(t, err)
	assert.Equal(t, []int{9, 10}, r.Hours())
}

func TestPickPrepends(t *testing.T) {
	r := NewRange(10)

	r, err := r.Pick(9)
	require.NoError(t, err)
	assert.Equal(t, []int{9, 10}, r.Hours())

	// Re-picking the first slot shrinks from the left edge.
	r, err = r.Pick(9)
	require.NoError(t, err)
	assert.Equal(t, []int{10}, r.Hours())
}

func TestPickInteriorRemovalRejected(t *testing.T) {
	r := NewRange(9)
	r, _ = r.Pick(10)
	r, _ = r.Pick(11)

	got, err := r.Pick(10)
	assert.ErrorIs(t, err, ErrInteriorRemoval)
	assert.Equal(t, []int{9, 10, 11}, got.Hours())
}

func TestPickNonAdjacentRejected(t *testing.T) {
	r := NewRange(9)

	got, err := r.Pick(12)
	assert.ErrorIs(t, err, ErrNotContiguous)
	assert.Equal(t, []int{9}, got.Hours())
}

func TestPickSoleSlotClearsSelection(t *testing.T) {
	r := NewRange(9)

	got, err := r.Pick(9)
	require.NoError(t, err)
	assert.True(t, got.Empty())
	assert.Empty(t, got.Hours())
}

func TestBounds(t *testing.T) {
	var empty Range
	_, _, ok := empty.Bounds()
	assert.False(t, ok)

	r := NewRange(9)
	r, _ = r.Pick(10)
	first, last, ok := r.Bounds()
	require.True(t, ok)
	assert.Equal(t, 9, first)
	assert.Equal(t, 10, last)
	assert.Equal(t, 2, r.Len())
}
