package modulo_test

import (
	"testing"

	"github.com/katalvlaran/vassreach/automaton"
	"github.com/katalvlaran/vassreach/cfgalpha"
	"github.com/katalvlaran/vassreach/modulo"
	"github.com/katalvlaran/vassreach/vector"
	"github.com/stretchr/testify/assert"
)

// TestReachScenarioS6 exercises spec.md scenario S6: the Dyck CFG of
// S1 at modulus 3 is unreachable.
func TestReachScenarioS6(t *testing.T) {
	cfg := automaton.BuildDyckCFG()
	alphabet := cfgalpha.Alphabet(1)
	v0 := vector.FromSlice([]int64{1})
	vf := vector.FromSlice([]int64{0})

	path, ok := modulo.Reach(cfg, alphabet, 1, 3, v0, vf)
	assert.False(t, ok)
	assert.Nil(t, path)
}

func TestReachFindsTrivialPath(t *testing.T) {
	a := automaton.New[cfgalpha.Symbol]()
	s0 := a.AddState(nil)
	a.SetStart(s0)
	a.SetAccepting(s0, true)

	path, ok := modulo.Reach(a, cfgalpha.Alphabet(1), 1, 5, vector.FromSlice([]int64{2}), vector.FromSlice([]int64{2}))
	assert.True(t, ok)
	assert.Empty(t, path)
}
