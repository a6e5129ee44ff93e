package reach

import (
	"github.com/katalvlaran/vassreach/automaton"
	"github.com/katalvlaran/vassreach/cfgalpha"
	"github.com/katalvlaran/vassreach/ltc"
	"github.com/katalvlaran/vassreach/parikh"
	"github.com/katalvlaran/vassreach/vector"
)

// extractLTC implements spec.md §4.C9's LTC extraction: walk the CFG
// from start following edges with a remaining Parikh firing,
// subtracting one on use, tie-breaking by edge index (automaton.OutEdges
// already lists a state's edges in insertion/index order).
//
// Re-entering a state q closes a loop: the net effect accumulated
// since q's first visit in the current segment is a Loop available at
// q, and the effect accumulated up to that first visit is the
// Transition of the Phase the loop attaches to. The walk then resumes
// from q with a fresh segment, so a state revisited a second time
// later produces its own (zero-transition) phase rather than being
// folded into the earlier one — a finer decomposition than strictly
// necessary, but an equally sound one: reach_z/reach_n only need the
// phases' total effect and per-phase entry valuation, not any
// particular grouping of loops into phases.
//
// Resolves the open question left by original_source's
// Path::to_ltc (unimplemented there; spec.md §4.C9 specifies this
// algorithm directly instead of inheriting that gap).
func extractLTC(g *automaton.Automaton[cfgalpha.Symbol], img parikh.Image, start automaton.NIndex, dim int) ltc.Candidate {
	remaining := make(parikh.Image, len(img))
	for e, c := range img {
		remaining[e] = c
	}

	var phases []ltc.Phase
	chain := vector.New(dim)
	seenAt := map[automaton.NIndex]vector.Vector{start: chain.Clone()}
	cur := start

	for {
		e, ok := pickEdge(g, cur, remaining)
		if !ok {
			break
		}
		remaining[e]--
		_, to, label, epsilon := g.Edge(e)

		delta := vector.New(dim)
		if !epsilon {
			delta[label.Index] = label.Delta()
		}
		chain = chain.Apply(delta)

		if at, seen := seenAt[to]; seen {
			phases = append(phases, ltc.Phase{
				Transition: at,
				Loops:      []ltc.Loop{{Update: chain.Sub(at)}},
			})
			chain = vector.New(dim)
			seenAt = map[automaton.NIndex]vector.Vector{to: chain.Clone()}
			cur = to
			continue
		}

		seenAt[to] = chain.Clone()
		cur = to
	}
	phases = append(phases, ltc.Phase{Transition: chain})

	return ltc.Candidate{Dim: dim, Phases: phases}
}

func pickEdge(g *automaton.Automaton[cfgalpha.Symbol], n automaton.NIndex, remaining parikh.Image) (automaton.EIndex, bool) {
	for _, e := range g.OutEdges(n) {
		if remaining[e] > 0 {
			return e, true
		}
	}
	return 0, false
}
