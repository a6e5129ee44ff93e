package vector_test

import (
	"testing"

	"github.com/katalvlaran/vassreach/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplySub(t *testing.T) {
	v0 := vector.FromSlice([]int64{1, 2})
	u := vector.FromSlice([]int64{-1, 3})
	applied := v0.Apply(u)
	assert.Equal(t, vector.FromSlice([]int64{0, 5}), applied)
	assert.True(t, applied.Sub(u).Equal(v0))
}

func TestCheckDimPanics(t *testing.T) {
	v0 := vector.New(2)
	v1 := vector.New(3)
	assert.Panics(t, func() { _ = v0.Apply(v1) })
}

func TestIsNonNegative(t *testing.T) {
	assert.True(t, vector.FromSlice([]int64{0, 0}).IsNonNegative())
	assert.False(t, vector.FromSlice([]int64{0, -1}).IsNonNegative())
}

func TestMinWithZeroAndAbs(t *testing.T) {
	v := vector.FromSlice([]int64{-3, 2, -1})
	require.Equal(t, vector.FromSlice([]int64{-3, 0, -1}), v.MinWithZero())
	require.Equal(t, vector.FromSlice([]int64{3, 2, 1}), v.Abs())
}

func TestRemEuclid(t *testing.T) {
	v := vector.FromSlice([]int64{-1, 5, -7})
	got := v.RemEuclid(3)
	assert.Equal(t, vector.FromSlice([]int64{2, 2, 2}), got)
}

func TestMinComponentwise(t *testing.T) {
	a := vector.FromSlice([]int64{1, 5})
	b := vector.FromSlice([]int64{3, -2})
	assert.Equal(t, vector.FromSlice([]int64{1, -2}), a.MinComponentwise(b))
}
