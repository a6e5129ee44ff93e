package automaton_test

import (
	"testing"

	"github.com/katalvlaran/vassreach/automaton"
	"github.com/katalvlaran/vassreach/cfgalpha"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSimpleNFA() (*automaton.Automaton[rune], automaton.NIndex, automaton.NIndex) {
	a := automaton.New[rune]()
	s0 := a.AddState(nil)
	s1 := a.AddState(nil)
	a.SetStart(s0)
	a.SetAccepting(s1, true)
	a.AddTransition(s0, s1, 'a')
	a.AddTransition(s0, s0, 'a')
	return a, s0, s1
}

func TestDeterminizeAcceptsSameLanguage(t *testing.T) {
	nfa, _, _ := buildSimpleNFA()
	dfa := nfa.Determinize([]rune{'a'})

	assert.True(t, dfa.Accepts([]rune{'a'}))
	assert.True(t, dfa.Accepts([]rune{'a', 'a'}))
	assert.False(t, dfa.Accepts([]rune{}))
}

// TestDeterminizeInvariantToNodeInsertionOrder exercises spec.md
// invariant #2: building an NFA with nodes inserted in a different
// order must not change the determinized result's node/edge counts.
func TestDeterminizeInvariantToNodeInsertionOrder(t *testing.T) {
	// Order A: s0 before s1.
	a := automaton.New[rune]()
	s0 := a.AddState(nil)
	s1 := a.AddState(nil)
	a.SetStart(s0)
	a.SetAccepting(s1, true)
	a.AddTransition(s0, s1, 'a')
	a.AddTransition(s1, s1, 'a')

	// Order B: same automaton, but s1 is inserted before s0.
	b := automaton.New[rune]()
	s1b := b.AddState(nil)
	s0b := b.AddState(nil)
	b.SetStart(s0b)
	b.SetAccepting(s1b, true)
	b.AddTransition(s0b, s1b, 'a')
	b.AddTransition(s1b, s1b, 'a')

	da := a.Determinize([]rune{'a'})
	db := b.Determinize([]rune{'a'})

	assert.Equal(t, da.NumNodes(), db.NumNodes())
	assert.Equal(t, da.NumEdges(), db.NumEdges())
}

func TestCompleteAddsSink(t *testing.T) {
	a := automaton.New[rune]()
	s0 := a.AddState(nil)
	a.SetStart(s0)
	a.SetAccepting(s0, true)
	a.AddTransition(s0, s0, 'a')

	complete := a.Complete([]rune{'a', 'b'}, "sink")
	complete.AssertComplete([]rune{'a', 'b'})
	assert.False(t, complete.Accepts([]rune{'b'}))
}

func TestIntersectAcceptingIffBoth(t *testing.T) {
	alphabet := []rune{'a'}

	a := automaton.New[rune]()
	a0 := a.AddState(nil)
	a.SetStart(a0)
	a.SetAccepting(a0, true)
	a.AddTransition(a0, a0, 'a')
	a = a.Complete(alphabet, "sinkA")

	b := automaton.New[rune]()
	b0 := b.AddState(nil)
	b1 := b.AddState(nil)
	b.SetStart(b0)
	b.SetAccepting(b1, true)
	b.AddTransition(b0, b1, 'a')
	b.AddTransition(b1, b0, 'a')
	b = b.Complete(alphabet, "sinkB")

	prod := a.Intersect(b, alphabet)
	assert.True(t, prod.Accepts([]rune{'a'}))
	assert.False(t, prod.Accepts([]rune{'a', 'a'}))
	assert.True(t, prod.Accepts([]rune{'a', 'a', 'a'}))
}

func TestFindSCCSurrounding(t *testing.T) {
	a := automaton.New[rune]()
	n := make([]automaton.NIndex, 4)
	for i := range n {
		n[i] = a.AddState(i)
	}
	a.AddTransition(n[0], n[1], 'a')
	a.AddTransition(n[1], n[2], 'a')
	a.AddTransition(n[2], n[0], 'a')
	a.AddTransition(n[2], n[3], 'a')

	comp := a.FindSCCSurrounding(n[0])
	assert.ElementsMatch(t, []automaton.NIndex{n[0], n[1], n[2]}, comp)

	comp3 := a.FindSCCSurrounding(n[3])
	assert.ElementsMatch(t, []automaton.NIndex{n[3]}, comp3)
}

func TestRemoveTrappingStatesIdempotentAndLanguagePreserving(t *testing.T) {
	a := automaton.New[rune]()
	s0 := a.AddState(nil)
	s1 := a.AddState(nil)
	trap := a.AddState(nil)
	a.SetStart(s0)
	a.SetAccepting(s1, true)
	a.AddTransition(s0, s1, 'a')
	a.AddTransition(s0, trap, 'b')
	a.AddTransition(trap, trap, 'a')
	a.AddTransition(trap, trap, 'b')

	pruned := a.RemoveTrappingStates()
	require.Equal(t, 2, pruned.NumNodes())
	assert.True(t, pruned.Accepts([]rune{'a'}))

	prunedAgain := pruned.RemoveTrappingStates()
	assert.Equal(t, pruned.NumNodes(), prunedAgain.NumNodes())
	assert.Equal(t, pruned.NumEdges(), prunedAgain.NumEdges())
}

func TestBuildDyckCFGAcceptsBalancedWords(t *testing.T) {
	g := automaton.BuildDyckCFG()
	inc0 := cfgalpha.Symbol{Index: 0, Op: cfgalpha.Inc}
	dec0 := cfgalpha.Symbol{Index: 0, Op: cfgalpha.Dec}

	assert.True(t, g.Accepts(nil))
	assert.True(t, g.Accepts([]cfgalpha.Symbol{inc0, dec0, dec0, inc0}))
	assert.False(t, g.Accepts([]cfgalpha.Symbol{dec0}))
}
