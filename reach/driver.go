// Package reach implements the CEGAR reachability driver of spec.md
// §4.C9 (the core's state machine: S0 -> Zcheck -> MOD -> LTC ->
// REFINE) together with its C10 validation oracle and the LTC
// extraction algorithm.
package reach

import (
	"context"
	"errors"

	"github.com/katalvlaran/vassreach/automaton"
	"github.com/katalvlaran/vassreach/boundedauto"
	"github.com/katalvlaran/vassreach/cfgalpha"
	"github.com/katalvlaran/vassreach/config"
	"github.com/katalvlaran/vassreach/ltc"
	"github.com/katalvlaran/vassreach/modulo"
	"github.com/katalvlaran/vassreach/parikh"
	"github.com/katalvlaran/vassreach/smt"
	"github.com/katalvlaran/vassreach/vass"
	"github.com/katalvlaran/vassreach/vector"
)

// ProofClass names why an UNREACHABLE outcome is sound, per spec.md §6.
type ProofClass int

const (
	ProofZ ProofClass = iota
	ProofModulo
	ProofRefinement
)

func (p ProofClass) String() string {
	switch p {
	case ProofZ:
		return "z"
	case ProofModulo:
		return "mod"
	case ProofRefinement:
		return "refinement"
	default:
		return "unknown"
	}
}

// UnknownReason names why the driver gave up without a proof.
type UnknownReason int

const (
	ReasonBudget UnknownReason = iota
	ReasonSMTTimeout
	ReasonNoRefinement
)

func (r UnknownReason) String() string {
	switch r {
	case ReasonBudget:
		return "budget"
	case ReasonSMTTimeout:
		return "smt-timeout"
	case ReasonNoRefinement:
		return "no-refinement"
	default:
		return "unknown"
	}
}

// Status is the kind of Outcome a Solve call produces.
type Status int

const (
	Reachable Status = iota
	Unreachable
	Unknown
)

// Outcome is the driver's answer, per spec.md §6.
type Outcome struct {
	Status     Status
	LTCWitness *ltc.Candidate
	Mult       [][]int64 // multiplicities realizing LTCWitness, when Status == Reachable
	ProofClass ProofClass
	Reason     UnknownReason
}

// ErrNoStartState is returned if the VASS's CFG projection has no
// reachable start node (an impossible state for a well-formed
// Initialized VASS, surfaced defensively rather than panicking since
// it would indicate a malformed caller-built automaton).
var ErrNoStartState = errors.New("reach: CFG has no start state")

// Solve runs the CEGAR loop of spec.md §4.C9 to decide whether iv's
// target valuation is N-reachable from its initial one.
func Solve(ctx context.Context, backend smt.Backend, iv *vass.Initialized, opts config.Options) (Outcome, Stats, error) {
	var stats Stats

	g := iv.ProjectCFG().Determinize(cfgalpha.Alphabet(iv.VASS.Dim()))
	g = g.Complete(cfgalpha.Alphabet(iv.VASS.Dim()), struct{}{})
	if g.Start() == automaton.NoNode {
		return Outcome{}, stats, ErrNoStartState
	}
	final, ok := findAccepting(g)
	if !ok {
		return Outcome{Status: Unreachable, ProofClass: ProofZ}, stats, nil
	}

	mu := opts.MuLimit
	alphabet := cfgalpha.Alphabet(iv.VASS.Dim())

	for {
		// Zcheck
		zq := parikh.Query{
			CFG:        g,
			V0:         iv.V0,
			Vf:         iv.Vf,
			Start:      g.Start(),
			Final:      final,
			MaxFirings: opts.MaxMagnitude,
			DepthBound: opts.MaxMagnitude,
		}
		stats.SMTCalls++
		zres, err := parikh.Reach(ctx, backend, zq)
		if err != nil {
			return Outcome{}, stats, err
		}
		if zres.Status == smt.Unknown {
			return Outcome{Status: Unknown, Reason: ReasonSMTTimeout}, stats, nil
		}
		if zres.Status != smt.Sat {
			return Outcome{Status: Unreachable, ProofClass: ProofZ}, stats, nil
		}
		if !ValidateParikh(g, iv.V0, iv.Vf, zres.Image) {
			panic("reach: Parikh image does not realize Vf - V0")
		}

		// MOD
		unreachableByMod := false
		for _, m := range opts.ModulusSchedule {
			stats.ModuliTried = append(stats.ModuliTried, m)
			if _, ok := modulo.Reach(g, alphabet, iv.VASS.Dim(), m, iv.V0, iv.Vf); !ok {
				unreachableByMod = true
				break
			}
		}
		if unreachableByMod {
			return Outcome{Status: Unreachable, ProofClass: ProofModulo}, stats, nil
		}

		// LTC
		stats.LTCCandidates++
		cand := extractLTC(g, zres.Image, g.Start(), iv.VASS.Dim())

		stats.SMTCalls++
		nres, err := ltc.ReachN(ctx, backend, cand, iv.V0, iv.Vf, opts.MaxMagnitude)
		if err != nil {
			return Outcome{}, stats, err
		}
		if nres.Result == smt.Sat {
			c := cand
			return Outcome{Status: Reachable, LTCWitness: &c, Mult: nres.Multiplicities}, stats, nil
		}

		stats.SMTCalls++
		zlres, err := ltc.ReachZ(ctx, backend, cand, iv.V0, iv.Vf, opts.MaxMagnitude)
		if err != nil {
			return Outcome{}, stats, err
		}
		if zlres.Result == smt.Unknown {
			return Outcome{Status: Unknown, Reason: ReasonSMTTimeout}, stats, nil
		}
		if zlres.Result != smt.Sat {
			return Outcome{Status: Unreachable, ProofClass: ProofRefinement}, stats, nil
		}

		// REFINE
		counter, bound, found := chooseRefinement(cand, iv.V0, zlres.Multiplicities)
		if !found {
			return Outcome{Status: Unknown, Reason: ReasonNoRefinement}, stats, nil
		}
		if mu == 0 {
			return Outcome{Status: Unknown, Reason: ReasonBudget}, stats, nil
		}
		mu--
		stats.Refinements++

		dirs := []config.RefineDirection{opts.RefineDirection}
		if opts.RefineDirection == config.Both {
			dirs = []config.RefineDirection{config.Forward, config.Backward}
		}
		for _, dir := range dirs {
			boundAuto := boundedAutomaton(iv.VASS.Dim(), counter, bound, dir)
			g = g.Intersect(boundAuto, alphabet).RemoveTrappingStates().Complete(alphabet, struct{}{})
		}
		final2, ok := findAccepting(g)
		if !ok {
			return Outcome{Status: Unreachable, ProofClass: ProofRefinement}, stats, nil
		}
		final = final2
	}
}

func findAccepting(g *automaton.Automaton[cfgalpha.Symbol]) (automaton.NIndex, bool) {
	for n := 0; n < g.NumNodes(); n++ {
		if g.IsAccepting(automaton.NIndex(n)) {
			return automaton.NIndex(n), true
		}
	}
	return automaton.NoNode, false
}

// boundedAutomaton builds the bounded-counter automaton to intersect
// with per opts.RefineDirection, anchored so the current CFG's own
// start/accepting states correspond to counter values 0: forward
// bounding starts counting from the head of the run (c0 = 0), backward
// bounding from the tail (cf = 0), matching boundedauto.Build /
// BuildReverse's own c0/cf convention of tracking counter i from the
// edge where it is first observed.
func boundedAutomaton(d, counter int, bound int64, dir config.RefineDirection) *automaton.Automaton[cfgalpha.Symbol] {
	k := int(bound)
	if dir == config.Backward {
		return boundedauto.BuildReverse(d, counter, k, 0, 0)
	}
	return boundedauto.Build(d, counter, k, 0, 0)
}

// chooseRefinement replays the LTC candidate under the multiplicities
// reach_z found — a concrete run, transitions and loops fired in
// listed order — and returns the first counter to go negative together
// with the peak (non-negative) value it attained beforehand. Per
// spec.md §4.C9, intersecting with B(d, counter, bound) excludes this
// specific witnessing run (any dip below 0 violates B's [0,k] domain
// for every k) while keeping every prefix that never exceeds the
// observed peak, a reasonable bound to retry with.
func chooseRefinement(c ltc.Candidate, v0 vector.Vector, mult [][]int64) (counter int, bound int64, found bool) {
	val := v0.Clone()
	peak := v0.Abs()

	step := func(delta vector.Vector) (int, bool) {
		val = val.Apply(delta)
		for d, x := range val {
			if x > peak[d] {
				peak[d] = x
			}
		}
		for d, x := range val {
			if x < 0 {
				return d, true
			}
		}
		return 0, false
	}

	for i, ph := range c.Phases {
		if d, bad := step(ph.Transition); bad {
			return d, peak[d], true
		}
		for l, loop := range ph.Loops {
			for it := int64(0); it < mult[i][l]; it++ {
				if d, bad := step(loop.Update); bad {
					return d, peak[d], true
				}
			}
		}
	}
	return 0, 0, false
}
