// Package ltc implements the linear term candidate of spec.md §4.C8:
// an alternating sequence of single transition firings and loop
// phases, together with its own ℤ- and N-reachability checks against
// the SMT facade.
package ltc

import (
	"context"
	"fmt"

	"github.com/katalvlaran/vassreach/smt"
	"github.com/katalvlaran/vassreach/vector"
)

// Loop is one candidate loop body available inside a phase, taken an
// unknown non-negative number of times in a witnessing run.
type Loop struct {
	Update vector.Vector
}

// Phase is a single transition update T_i followed by a set of loops
// L_i available at the state it lands on.
type Phase struct {
	Transition vector.Vector
	Loops      []Loop
}

// Candidate is the LTC itself: [T0, L0, T1, L1, ..., Tk].
type Candidate struct {
	Dim    int
	Phases []Phase
}

func loopVar(phase, loop int) smt.VarID {
	return smt.VarID(fmt.Sprintf("x_%d_%d", phase, loop))
}

// Status is the outcome of a reach_z or reach_n query.
type Status struct {
	Result smt.Status
	// Multiplicities holds x_{i,l} when Result == smt.Sat, indexed the
	// same way as Candidate.Phases[i].Loops[l].
	Multiplicities [][]int64
}

// ReachZ implements spec.md §4.C8's reach_z: choose non-negative loop
// multiplicities such that the global effect (every transition fired
// once, every loop fired x_{i,l} times) equals Vf - V0, with no
// non-negativity constraint along the path.
func ReachZ(ctx context.Context, backend smt.Backend, c Candidate, v0, vf vector.Vector, maxIterations int64) (Status, error) {
	sys := c.systemWithVars(maxIterations)
	c.assertEffectEquation(sys, v0, vf)
	return c.solve(ctx, backend, sys)
}

// ReachN implements spec.md §4.C8's reach_n: ReachZ's system plus, for
// every phase, the sound sufficient approximation that each used loop
// can fire once without driving its entry valuation negative, and the
// phase's exit valuation (running prefix sum from V0) stays >= 0.
func ReachN(ctx context.Context, backend smt.Backend, c Candidate, v0, vf vector.Vector, maxIterations int64) (Status, error) {
	sys := c.systemWithVars(maxIterations)
	c.assertEffectEquation(sys, v0, vf)
	c.assertPrefixNonNegativity(sys, v0, maxIterations)
	return c.solve(ctx, backend, sys)
}

func (c Candidate) systemWithVars(maxIterations int64) *smt.System {
	sys := &smt.System{}
	for i, ph := range c.Phases {
		for l := range ph.Loops {
			sys.AddVar(loopVar(i, l), maxIterations)
		}
	}
	return sys
}

// assertEffectEquation asserts Σ_i (T_i + Σ_l x_{i,l}·L_{i,l}) = Vf - V0,
// dimension by dimension.
func (c Candidate) assertEffectEquation(sys *smt.System, v0, vf vector.Vector) {
	delta := vf.Sub(v0)
	perDim := make([]smt.LinExpr, c.Dim)
	constant := vector.New(c.Dim)

	for i, ph := range c.Phases {
		for d := 0; d < c.Dim; d++ {
			constant[d] += ph.Transition[d]
		}
		for l, loop := range ph.Loops {
			v := loopVar(i, l)
			for d := 0; d < c.Dim; d++ {
				if loop.Update[d] != 0 {
					perDim[d] = append(perDim[d], smt.Term{Coeff: loop.Update[d], Var: v})
				}
			}
		}
	}
	for d := 0; d < c.Dim; d++ {
		sys.Assert(perDim[d], smt.Eq, delta[d]-constant[d])
	}
}

// assertPrefixNonNegativity encodes spec.md §4.C8's reach_n
// strengthening: for the entry valuation of each phase, every loop
// used in that phase must individually be fireable without going
// negative (V_entry >= L⁻), and the phase's exit valuation V_entry +
// E_i must stay >= 0. Because x_{i,l} is a variable, "used" (x > 0) is
// linearized the same big-M way parikh.connectivity does: a 0/1
// indicator bounded above by x and below by ceil(x / maxIterations).
func (c Candidate) assertPrefixNonNegativity(sys *smt.System, v0 vector.Vector, maxIterations int64) {
	entry := make([]smt.LinExpr, c.Dim) // symbolic running valuation per dimension
	entryConst := make([]int64, c.Dim)
	for d := 0; d < c.Dim; d++ {
		entryConst[d] = v0[d]
	}

	for i, ph := range c.Phases {
		// Entry valuation of phase i must dominate every used loop's
		// negative part: V_entry >= L⁻_{i,l} whenever x_{i,l} > 0.
		for l, loop := range ph.Loops {
			neg := loop.Update.MinWithZero() // <= 0 componentwise
			u := loopUsedVar(sys, i, l, maxIterations)
			for d := 0; d < c.Dim; d++ {
				if neg[d] == 0 {
					continue
				}
				// entry_d + neg[d] >= 0 when used; relaxed by M*(1-u)
				// when not used, via big-M: entry_d + neg[d] + M*(1-u) >= 0.
				bigM := maxIterations * magnitudeBound(ph.Loops) * int64(c.Dim+1)
				expr := append(append(smt.LinExpr{}, entry[d]...), smt.Term{Coeff: -bigM, Var: u})
				sys.Assert(expr, smt.Geq, -neg[d]-bigM-entryConst[d])
			}
		}

		// Advance the running valuation by this phase's full effect and
		// require the result to stay >= 0 (the phase's exit valuation).
		for d := 0; d < c.Dim; d++ {
			entryConst[d] += ph.Transition[d]
			for l, loop := range ph.Loops {
				if loop.Update[d] != 0 {
					entry[d] = append(entry[d], smt.Term{Coeff: loop.Update[d], Var: loopVar(i, l)})
				}
			}
			exitExpr := append(append(smt.LinExpr{}, entry[d]...))
			sys.Assert(exitExpr, smt.Geq, -entryConst[d])
		}
	}
}

// magnitudeBound returns a safe upper bound on any loop update's
// magnitude in loops, used only to size the big-M constant; 1 is the
// floor so the product is never zero.
func magnitudeBound(loops []Loop) int64 {
	var m int64 = 1
	for _, l := range loops {
		for _, x := range l.Update.Abs() {
			if x > m {
				m = x
			}
		}
	}
	return m
}

// loopUsedVar lazily declares and returns the 0/1 "loop l of phase i
// fires at least once" indicator, linked to x_{i,l} by used <= x and
// x <= maxIterations*used.
func loopUsedVar(sys *smt.System, phase, loop int, maxIterations int64) smt.VarID {
	id := smt.VarID(fmt.Sprintf("used_%d_%d", phase, loop))
	for _, v := range sys.Vars {
		if v.ID == id {
			return id
		}
	}
	sys.AddVar(id, 1)
	x := loopVar(phase, loop)
	sys.Assert(smt.LinExpr{{Coeff: 1, Var: id}, {Coeff: -1, Var: x}}, smt.Leq, 0)
	sys.Assert(smt.LinExpr{{Coeff: 1, Var: x}, {Coeff: -maxIterations, Var: id}}, smt.Leq, 0)
	return id
}

func (c Candidate) solve(ctx context.Context, backend smt.Backend, sys *smt.System) (Status, error) {
	res, err := backend.Solve(ctx, sys)
	if err != nil {
		return Status{}, err
	}
	if res.Status != smt.Sat {
		return Status{Result: res.Status}, nil
	}
	mult := make([][]int64, len(c.Phases))
	for i, ph := range c.Phases {
		mult[i] = make([]int64, len(ph.Loops))
		for l := range ph.Loops {
			mult[i][l] = res.Model[loopVar(i, l)]
		}
	}
	return Status{Result: smt.Sat, Multiplicities: mult}, nil
}

// Effect returns the candidate's total effect under mult, the
// multiplicities ReachZ/ReachN returned.
func (c Candidate) Effect(mult [][]int64) vector.Vector {
	total := vector.New(c.Dim)
	for i, ph := range c.Phases {
		total = total.Apply(ph.Transition)
		for l, loop := range ph.Loops {
			total = total.Apply(loop.Update.Scale(mult[i][l]))
		}
	}
	return total
}
