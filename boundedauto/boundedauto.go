// Package boundedauto implements the bounded-counter automaton family
// of spec.md §4.C6: DFAs that accept words keeping one chosen counter
// within [0, k], plus the reverse construction used when a refinement
// bounds the *final* segment of a run instead of its head.
package boundedauto

import (
	"github.com/katalvlaran/vassreach/automaton"
	"github.com/katalvlaran/vassreach/cfgalpha"
)

// sinkData marks the automaton's unique non-accepting sink state.
type sinkData struct{}

// Build returns a complete DFA over cfgalpha.Alphabet(d) with states
// {0, ..., k} tracking counter i: symbol +i moves s -> s+1 (routed to
// a sink if s == k), symbol -i moves s -> s-1 (sink if s == 0), every
// other symbol self-loops. The automaton starts at c0 and accepts
// exactly at state cf.
//
// Build panics (via AssertComplete) if the result is not complete:
// every (state, symbol) pair above is given an explicit destination,
// so this should never fire — the assertion exists to catch a
// regression in this function itself, per spec.md §4.C6's
// "assert_complete" requirement.
func Build(d, i, k int, c0, cf int) *automaton.Automaton[cfgalpha.Symbol] {
	return build(d, i, k, c0, cf, false)
}

// BuildReverse returns the mirror automaton used when refining by a
// final-segment bound: it accepts the reverse of the words
// Build(d, i, k, cf, c0) would accept (c0 and cf exchanged; when
// c0 == cf this is the reverse of Build's own language), so that
// intersecting a CFG with it (after reversing
// the CFG, or by running words backwards as spec.md §3 describes)
// restricts the counter's value as read from the end of the run.
func BuildReverse(d, i, k int, c0, cf int) *automaton.Automaton[cfgalpha.Symbol] {
	return build(d, i, k, c0, cf, true)
}

func build(d, i, k int, c0, cf int, reverse bool) *automaton.Automaton[cfgalpha.Symbol] {
	alphabet := cfgalpha.Alphabet(d)
	g := automaton.New[cfgalpha.Symbol]()

	states := make([]automaton.NIndex, k+1)
	for s := 0; s <= k; s++ {
		states[s] = g.AddState(s)
	}
	sink := g.AddState(sinkData{})

	g.SetStart(states[c0])
	g.SetAccepting(states[cf], true)

	inc := cfgalpha.Symbol{Index: i, Op: cfgalpha.Inc}
	dec := cfgalpha.Symbol{Index: i, Op: cfgalpha.Dec}
	if reverse {
		inc, dec = dec, inc
	}

	for s := 0; s <= k; s++ {
		if s < k {
			g.AddTransition(states[s], states[s+1], inc)
		} else {
			g.AddTransition(states[s], sink, inc)
		}
		if s > 0 {
			g.AddTransition(states[s], states[s-1], dec)
		} else {
			g.AddTransition(states[s], sink, dec)
		}
		for _, sym := range alphabet {
			if sym.Index != i {
				g.AddTransition(states[s], states[s], sym)
			}
		}
	}
	for _, sym := range alphabet {
		g.AddTransition(sink, sink, sym)
	}

	g.AssertComplete(alphabet)
	return g
}
