// Package vass implements the VASS data model (spec.md §3-§4.C4): a
// finite control graph whose edges carry Z^d update vectors, its
// initialized form (source/target states, initial/final valuations),
// and the projection of a VASS into a counter control-flow graph
// (CFG) whose edges are single-counter cfgalpha.Symbols instead of
// raw update vectors.
package vass

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/vassreach/automaton"
	"github.com/katalvlaran/vassreach/cfgalpha"
	"github.com/katalvlaran/vassreach/vector"
)

// Sentinel errors raised at construction time (spec.md §7 "Invalid input").
var (
	ErrDimensionMismatch  = errors.New("vass: update vector dimension does not match VASS dimension")
	ErrNegativeValuation  = errors.New("vass: initial or final valuation has a negative component")
	ErrUnknownState       = errors.New("vass: state is not one of the VASS's states")
	ErrZeroDimension      = errors.New("vass: dimension must be positive")
)

// State identifies a control state. States are opaque identifiers
// chosen by the caller (a place-conjunction name, a Petri-net
// center-state marker, ...); the VASS never interprets them.
type State string

// Label identifies a transition (spec.md's opaque "Sigma" alphabet).
// Two transitions between the same pair of states may share a Label;
// the VASS is a multigraph.
type Label string

// Transition is one element of delta subset Q x Sigma x Z^d x Q.
type Transition struct {
	From, To State
	Label    Label
	Update   vector.Vector
}

// VASS is V = (Q, Sigma, delta, d).
type VASS struct {
	dim         int
	states      map[State]struct{}
	transitions []Transition
}

// New constructs an empty VASS of dimension d with the given states.
func New(d int, states []State) (*VASS, error) {
	if d <= 0 {
		return nil, ErrZeroDimension
	}
	v := &VASS{dim: d, states: make(map[State]struct{}, len(states))}
	for _, s := range states {
		v.states[s] = struct{}{}
	}
	return v, nil
}

// Dim returns the VASS's dimension d.
func (v *VASS) Dim() int { return v.dim }

// HasState reports whether q is one of the VASS's states.
func (v *VASS) HasState(q State) bool {
	_, ok := v.states[q]
	return ok
}

// States returns the VASS's states. Order is unspecified.
func (v *VASS) States() []State {
	out := make([]State, 0, len(v.states))
	for s := range v.states {
		out = append(out, s)
	}
	return out
}

// AddTransition adds (from, label, update, to) to delta.
func (v *VASS) AddTransition(from State, label Label, update vector.Vector, to State) error {
	if !v.HasState(from) {
		return fmt.Errorf("%w: %q", ErrUnknownState, from)
	}
	if !v.HasState(to) {
		return fmt.Errorf("%w: %q", ErrUnknownState, to)
	}
	if update.Dim() != v.dim {
		return fmt.Errorf("%w: want %d, got %d", ErrDimensionMismatch, v.dim, update.Dim())
	}
	v.transitions = append(v.transitions, Transition{From: from, To: to, Label: label, Update: update.Clone()})
	return nil
}

// Transitions returns the VASS's transition relation, in insertion order.
func (v *VASS) Transitions() []Transition {
	return append([]Transition(nil), v.transitions...)
}

// Initialized pairs the VASS with source/target states and
// initial/final valuations, producing an Initialized VASS.
func (v *VASS) Initialized(q0, qf State, v0, vf vector.Vector) (*Initialized, error) {
	if !v.HasState(q0) {
		return nil, fmt.Errorf("%w: initial state %q", ErrUnknownState, q0)
	}
	if !v.HasState(qf) {
		return nil, fmt.Errorf("%w: final state %q", ErrUnknownState, qf)
	}
	if v0.Dim() != v.dim || vf.Dim() != v.dim {
		return nil, ErrDimensionMismatch
	}
	if !v0.IsNonNegative() || !vf.IsNonNegative() {
		return nil, ErrNegativeValuation
	}
	return &Initialized{
		VASS: v,
		Q0:   q0,
		Qf:   qf,
		V0:   v0.Clone(),
		Vf:   vf.Clone(),
	}, nil
}

// Initialized is an (V, q0, qf, V0, Vf) pair: a VASS plus the
// reachability question the driver answers.
type Initialized struct {
	VASS   *VASS
	Q0, Qf State
	V0, Vf vector.Vector
}

// cfgNodeData is the payload of every node in a projected CFG: the
// VASS state it was expanded from (for "real" states) or nil for an
// intermediate state introduced while chaining a multi-unit update.
type cfgNodeData struct {
	VASSState State
	Real      bool
}

// ProjectCFG expands every edge's Z^d update into a chain of
// single-counter +-1 edges, introducing one fresh intermediate state
// per unit of magnitude beyond the first, per spec.md §3's CFG
// definition. The result is deterministic only when no two
// transitions leaving one state share their first symbol (whatever
// their Labels) and no transition has a zero update. Otherwise
// ProjectCFG keeps both chains, and a zero update becomes an epsilon
// edge; the resulting automaton is then an NFA and must be run through
// Determinize before anything in this module that requires a DFA.
func (iv *Initialized) ProjectCFG() *automaton.Automaton[cfgalpha.Symbol] {
	g := automaton.New[cfgalpha.Symbol]()

	nodeOf := make(map[State]automaton.NIndex, len(iv.VASS.states))
	for q := range iv.VASS.states {
		nodeOf[q] = g.AddState(cfgNodeData{VASSState: q, Real: true})
	}
	g.SetStart(nodeOf[iv.Q0])
	g.SetAccepting(nodeOf[iv.Qf], true)

	for _, t := range iv.VASS.transitions {
		from := nodeOf[t.From]
		to := nodeOf[t.To]
		chainUpdate(g, from, to, t.Update)
	}

	return g
}

// chainUpdate adds a sequence of single-counter edges from 'from' to
// 'to' whose combined effect equals u, introducing len(symbols)-1
// fresh intermediate states.
func chainUpdate(g *automaton.Automaton[cfgalpha.Symbol], from, to automaton.NIndex, u vector.Vector) {
	symbols := expand(u)
	if len(symbols) == 0 {
		// A zero update still needs to connect from -> to; the
		// counter-update alphabet has no symbol for it, so it becomes a
		// single epsilon edge.
		g.AddEpsilon(from, to)
		return
	}
	cur := from
	for i, sym := range symbols {
		next := to
		if i != len(symbols)-1 {
			next = g.AddState(cfgNodeData{})
		}
		g.AddTransition(cur, next, sym)
		cur = next
	}
}

// expand decomposes u into a sequence of unit cfgalpha.Symbols whose
// total effect equals u: |u_i| copies of the symbol for counter i,
// incrementing or decrementing according to the sign of u_i.
//
// expand round-trips: CFGUpdatesToCounterUpdate(len(u), expand(u))
// == u for every u (spec.md invariant #1), since each produced symbol
// contributes exactly sign(u_i) to counter i and nothing else.
func expand(u vector.Vector) []cfgalpha.Symbol {
	var out []cfgalpha.Symbol
	for i, x := range u {
		op := cfgalpha.Inc
		if x < 0 {
			op = cfgalpha.Dec
			x = -x
		}
		for ; x > 0; x-- {
			out = append(out, cfgalpha.Symbol{Index: i, Op: op})
		}
	}
	return out
}

// CFGUpdatesToCounterUpdate sums a sequence of CFG symbols back into
// the Z^d update vector they encode, the inverse of expand.
func CFGUpdatesToCounterUpdate(d int, symbols []cfgalpha.Symbol) vector.Vector {
	out := vector.New(d)
	for _, s := range symbols {
		out[s.Index] += s.Delta()
	}
	return out
}
