package petri_test

import (
	"testing"

	"github.com/katalvlaran/vassreach/petri"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestToVASSScenarioS2 builds spec.md scenario S2's three-place net
// and checks the conversion produces a well-formed Initialized VASS
// (the UNREACHABLE verdict itself is exercised in reach's tests).
func TestToVASSScenarioS2(t *testing.T) {
	net := &petri.Net{
		Places: 3,
		Transitions: []petri.Transition{
			{In: nil, Out: []petri.Arc{{Weight: 2, Place: 1}}},
			{In: []petri.Arc{{Weight: 1, Place: 1}, {Weight: 1, Place: 2}}, Out: []petri.Arc{{Weight: 2, Place: 2}, {Weight: 2, Place: 3}}},
			{In: []petri.Arc{{Weight: 2, Place: 3}}, Out: []petri.Arc{{Weight: 2, Place: 1}, {Weight: 1, Place: 2}}},
		},
	}

	iv, err := net.ToVASS([]int64{1, 0, 2}, []int64{1, 2, 2})
	require.NoError(t, err)
	assert.Equal(t, iv.Q0, iv.Qf)
	assert.Len(t, iv.VASS.Transitions(), 2*len(net.Transitions))
}

func TestToVASSRejectsOutOfRangePlace(t *testing.T) {
	net := &petri.Net{
		Places:      2,
		Transitions: []petri.Transition{{Out: []petri.Arc{{Weight: 1, Place: 3}}}},
	}
	_, err := net.ToVASS([]int64{0, 0}, []int64{0, 0})
	var target petri.ErrPlaceOutOfRange
	assert.ErrorAs(t, err, &target)
}

func TestToVASSRejectsZeroPlaces(t *testing.T) {
	net := &petri.Net{Places: 0}
	_, err := net.ToVASS(nil, nil)
	assert.ErrorIs(t, err, petri.ErrNoPlaces)
}
