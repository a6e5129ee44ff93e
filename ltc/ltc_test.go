package ltc_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/vassreach/ltc"
	"github.com/katalvlaran/vassreach/smt"
	"github.com/katalvlaran/vassreach/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenario S3's first half: a single phase with a zero-effect
// transition and a loop that is never required to fire.
func trivialCandidate() ltc.Candidate {
	return ltc.Candidate{
		Dim: 2,
		Phases: []ltc.Phase{
			{
				Transition: vector.FromSlice([]int64{0, 0}),
				Loops:      []ltc.Loop{{Update: vector.FromSlice([]int64{0, 1})}},
			},
		},
	}
}

func TestReachZAndReachNTrivialSat(t *testing.T) {
	c := trivialCandidate()
	v0 := vector.FromSlice([]int64{0, 0})
	vf := vector.FromSlice([]int64{0, 0})

	z, err := ltc.ReachZ(context.Background(), smt.GiniBackend{}, c, v0, vf, 4)
	require.NoError(t, err)
	require.Equal(t, smt.Sat, z.Result)
	assert.True(t, c.Effect(z.Multiplicities).Equal(vector.FromSlice([]int64{0, 0})))

	n, err := ltc.ReachN(context.Background(), smt.GiniBackend{}, c, v0, vf, 4)
	require.NoError(t, err)
	require.Equal(t, smt.Sat, n.Result)
}

// scenario S4: parity mismatch makes both reach_z and reach_n unsat.
func TestReachZAndReachNParityUnsat(t *testing.T) {
	c := ltc.Candidate{
		Dim: 2,
		Phases: []ltc.Phase{
			{
				Transition: vector.FromSlice([]int64{0, 0}),
				Loops:      []ltc.Loop{{Update: vector.FromSlice([]int64{0, 2})}},
			},
			{
				Transition: vector.FromSlice([]int64{1, 5}),
			},
		},
	}
	v0 := vector.FromSlice([]int64{0, 0})
	vf := vector.FromSlice([]int64{0, 0})

	z, err := ltc.ReachZ(context.Background(), smt.GiniBackend{}, c, v0, vf, 8)
	require.NoError(t, err)
	assert.Equal(t, smt.Unsat, z.Result)

	n, err := ltc.ReachN(context.Background(), smt.GiniBackend{}, c, v0, vf, 8)
	require.NoError(t, err)
	assert.Equal(t, smt.Unsat, n.Result)
}

// A phase whose loop must fire to reach the target, but whose single
// firing would send a counter negative before the second phase
// restores it: reach_z allows it (no path non-negativity), reach_n
// rejects it.
func TestReachNRejectsNegativeDippingPath(t *testing.T) {
	c := ltc.Candidate{
		Dim: 1,
		Phases: []ltc.Phase{
			{
				Transition: vector.FromSlice([]int64{0}),
				Loops:      []ltc.Loop{{Update: vector.FromSlice([]int64{-1})}},
			},
			{
				Transition: vector.FromSlice([]int64{1}),
			},
		},
	}
	v0 := vector.FromSlice([]int64{0})
	vf := vector.FromSlice([]int64{0})

	z, err := ltc.ReachZ(context.Background(), smt.GiniBackend{}, c, v0, vf, 4)
	require.NoError(t, err)
	require.Equal(t, smt.Sat, z.Result)

	n, err := ltc.ReachN(context.Background(), smt.GiniBackend{}, c, v0, vf, 4)
	require.NoError(t, err)
	assert.Equal(t, smt.Unsat, n.Result)
}
