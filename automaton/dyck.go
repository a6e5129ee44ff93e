package automaton

import "github.com/katalvlaran/vassreach/cfgalpha"

// BuildDyckCFG returns the three-state, one-counter CFG of spec.md
// scenario S1: states q0 (initial and accepting), q1, q2, with edges
//
//	q0 --+0--> q0
//	q0 --(-0)--> q1
//	q1 --(-0)--> q2
//	q2 --+0--> q0
//
// Ported from original_source's DyckVASS fixture (src/lib/automaton/dyck.rs),
// which defines acceptance directly over its packed i32 alphabet
// rather than as an explicit automaton; this constructor gives the
// same one-counter language an explicit CFG so it can be driven
// through the same CEGAR pipeline as any other input.
func BuildDyckCFG() *Automaton[cfgalpha.Symbol] {
	g := New[cfgalpha.Symbol]()
	q0 := g.AddState("q0")
	q1 := g.AddState("q1")
	q2 := g.AddState("q2")
	g.SetStart(q0)
	g.SetAccepting(q0, true)

	inc0 := cfgalpha.Symbol{Index: 0, Op: cfgalpha.Inc}
	dec0 := cfgalpha.Symbol{Index: 0, Op: cfgalpha.Dec}

	g.AddTransition(q0, q0, inc0)
	g.AddTransition(q0, q1, dec0)
	g.AddTransition(q1, q2, dec0)
	g.AddTransition(q2, q0, inc0)

	return g
}
