package smt

import (
	"context"
	"fmt"

	"github.com/irifrance/gini"
	"github.com/irifrance/gini/logic"
	"github.com/irifrance/gini/z"
)

// GiniBackend decides bounded linear integer arithmetic Systems by
// bit-blasting: every variable becomes a fixed-width vector of
// boolean literals, every linear constraint becomes a ripple-carry
// adder/comparator circuit, and the resulting CNF is handed to
// github.com/irifrance/gini, a CDCL SAT engine.
//
// Grounded on operator-framework-operator-lifecycle-manager's
// pkg/controller/registry/resolver/solver package, the only
// constraint-solving dependency present anywhere in the retrieved
// corpus: that package builds a logic.C circuit via a variable/literal
// dictionary (litMapping/dict), compiles it with (*logic.C).ToCnf into
// a gini.Gini, and reads back a model with (*gini.Gini).Value. This
// type plays the same role for bounded LIA instead of OLM's boolean
// dependency constraints.
//
// Every variable's domain [0, Max] must be finite for bit-blasting to
// terminate; callers size Max from a configured coefficient/iteration
// ceiling (see config.Options), which is always available here since
// spec.md's Parikh firing counts and loop multiplicities are bounded
// in every query this module issues.
type GiniBackend struct{}

// Solve implements Backend.
func (GiniBackend) Solve(_ context.Context, sys *System) (Result, error) {
	enc, err := newEncoder(sys)
	if err != nil {
		return Result{}, ErrBackend{Err: err}
	}

	root := enc.circuit.Ands(enc.assertions...)
	g := gini.New()
	enc.circuit.ToCnfFrom(g, root)
	g.Assume(root)

	switch g.Solve() {
	case 1:
		return Result{Status: Sat, Model: enc.readModel(g)}, nil
	case -1:
		return Result{Status: Unsat}, nil
	default:
		return Result{Status: Unknown}, nil
	}
}

// bitvec is a value's binary expansion, least-significant bit first.
type bitvec []z.Lit

type encoder struct {
	circuit    *logic.C
	bits       map[VarID]bitvec
	assertions []z.Lit
}

func newEncoder(sys *System) (*encoder, error) {
	enc := &encoder{
		circuit: logic.NewCCap(64),
		bits:    make(map[VarID]bitvec, len(sys.Vars)),
	}

	for _, v := range sys.Vars {
		if v.Max < 0 {
			return nil, fmt.Errorf("smt: variable %q has negative upper bound %d", v.ID, v.Max)
		}
		w := bitWidth(v.Max)
		bits := make(bitvec, w)
		for i := range bits {
			bits[i] = enc.circuit.Lit()
		}
		enc.bits[v.ID] = bits
		enc.assertLeq(bits, enc.constOfWidth(v.Max, w+1))
	}

	for _, c := range sys.Constraints {
		if err := enc.assertConstraint(c); err != nil {
			return nil, err
		}
	}
	if len(enc.assertions) == 0 {
		enc.assertions = append(enc.assertions, enc.circuit.T)
	}

	return enc, nil
}

// bitWidth returns the number of bits needed to represent every value
// in [0, max].
func bitWidth(max int64) int {
	if max <= 0 {
		return 1
	}
	w := 0
	for (int64(1) << uint(w)) <= max {
		w++
	}
	return w
}

// constOfWidth returns the circuit-constant bitvec for v, zero- or
// truncated to exactly width bits (LSB first).
func (e *encoder) constOfWidth(v int64, width int) bitvec {
	bits := make(bitvec, width)
	for i := 0; i < width; i++ {
		if v&(int64(1)<<uint(i)) != 0 {
			bits[i] = e.circuit.T
		} else {
			bits[i] = e.circuit.F
		}
	}
	return bits
}

// padTo zero-extends a to at least width bits.
func padTo(c *logic.C, a bitvec, width int) bitvec {
	if len(a) >= width {
		return a
	}
	out := make(bitvec, width)
	copy(out, a)
	for i := len(a); i < width; i++ {
		out[i] = c.F
	}
	return out
}

// add returns a + b as an unsigned bitvec one bit wider than the
// longer of a, b (enough to hold the carry without overflow).
func (e *encoder) add(a, b bitvec) bitvec {
	width := max(len(a), len(b)) + 1
	a = padTo(e.circuit, a, width)
	b = padTo(e.circuit, b, width)

	out := make(bitvec, width)
	carry := e.circuit.F
	for i := 0; i < width; i++ {
		axb := e.circuit.Xor(a[i], b[i])
		out[i] = e.circuit.Xor(axb, carry)
		carry = e.circuit.Or(e.circuit.And(a[i], b[i]), e.circuit.And(axb, carry))
	}
	return out
}

// sum adds every bitvec in vs together, returning the zero constant if vs is empty.
func (e *encoder) sum(vs []bitvec) bitvec {
	if len(vs) == 0 {
		return bitvec{e.circuit.F}
	}
	acc := vs[0]
	for _, v := range vs[1:] {
		acc = e.add(acc, v)
	}
	return acc
}

// scale returns a * k for a small non-negative constant k, via
// shift-and-add: bit j of k contributes (a << j) to the total.
func (e *encoder) scale(a bitvec, k int64) bitvec {
	if k == 1 {
		return a
	}
	var parts []bitvec
	for j := 0; (int64(1) << uint(j)) <= k; j++ {
		if k&(int64(1)<<uint(j)) != 0 {
			parts = append(parts, shiftLeft(e.circuit, a, j))
		}
	}
	return e.sum(parts)
}

func shiftLeft(c *logic.C, a bitvec, n int) bitvec {
	out := make(bitvec, len(a)+n)
	for i := 0; i < n; i++ {
		out[i] = c.F
	}
	copy(out[n:], a)
	return out
}

// compare returns (lt, eq, gt) literals for a <op> b, processing bits
// from most to least significant. Both inputs are zero-extended to a
// common width first.
func (e *encoder) compare(a, b bitvec) (lt, eq, gt z.Lit) {
	width := max(len(a), len(b))
	a = padTo(e.circuit, a, width)
	b = padTo(e.circuit, b, width)

	c := e.circuit
	eqSoFar := c.T
	lt, gt = c.F, c.F
	for i := width - 1; i >= 0; i-- {
		ltHere := c.Ands(eqSoFar, a[i].Not(), b[i])
		gtHere := c.Ands(eqSoFar, a[i], b[i].Not())
		lt = c.Or(lt, ltHere)
		gt = c.Or(gt, gtHere)
		eqSoFar = c.And(eqSoFar, c.Xor(a[i], b[i]).Not())
	}
	return lt, eqSoFar, gt
}

// assertLeq asserts a <= b and records the resulting literal.
func (e *encoder) assertLeq(a, b bitvec) {
	lt, eq, _ := e.compare(a, b)
	e.assertions = append(e.assertions, e.circuit.Or(lt, eq))
}

// assertConstraint encodes expr OP rhs by splitting expr's terms into
// a positive-coefficient sum and a negative-coefficient (absolute
// value) sum, moving rhs's magnitude onto whichever side it shrinks,
// and comparing the two resulting unsigned sums. This avoids two's
// complement entirely: every quantity bit-blasted here is already
// non-negative.
func (e *encoder) assertConstraint(c Constraint) error {
	var pos, neg []bitvec
	for _, t := range c.Expr {
		bits, ok := e.bits[t.Var]
		if !ok {
			return fmt.Errorf("smt: constraint references undeclared variable %q", t.Var)
		}
		switch {
		case t.Coeff > 0:
			pos = append(pos, e.scale(bits, t.Coeff))
		case t.Coeff < 0:
			neg = append(neg, e.scale(bits, -t.Coeff))
		}
	}

	left := e.sum(pos)
	right := e.sum(neg)
	if c.RHS > 0 {
		right = e.add(right, e.constOfWidth(c.RHS, bitWidth(c.RHS)))
	} else if c.RHS < 0 {
		left = e.add(left, e.constOfWidth(-c.RHS, bitWidth(-c.RHS)))
	}

	lt, eq, gt := e.compare(left, right)
	switch c.Op {
	case Eq:
		e.assertions = append(e.assertions, eq)
	case Leq:
		e.assertions = append(e.assertions, e.circuit.Or(lt, eq))
	case Geq:
		e.assertions = append(e.assertions, e.circuit.Or(gt, eq))
	default:
		return fmt.Errorf("smt: unknown operator %v", c.Op)
	}
	return nil
}

// readModel reads each variable's bits out of a satisfying g and
// reassembles its integer value.
func (e *encoder) readModel(g *gini.Gini) Model {
	m := make(Model, len(e.bits))
	for id, bits := range e.bits {
		var v int64
		for i, b := range bits {
			if g.Value(b) {
				v |= int64(1) << uint(i)
			}
		}
		m[id] = v
	}
	return m
}
