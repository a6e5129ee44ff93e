// Package parikh builds the ℤ-reachability SMT encoding of spec.md
// §4.C7: given a counter-update CFG and a source/target valuation,
// assemble a smt.System whose satisfying models are Parikh images
// witnessing Z-reachability, and decode a solved System back into a
// per-edge firing count.
//
// Grounded on graph/builder's fluent construction style for walking
// the automaton arena, and on smt's gini-backed bounded LIA backend
// for the actual decision procedure.
package parikh

import (
	"context"
	"fmt"

	"github.com/katalvlaran/vassreach/automaton"
	"github.com/katalvlaran/vassreach/cfgalpha"
	"github.com/katalvlaran/vassreach/smt"
	"github.com/katalvlaran/vassreach/vector"
)

// Image is a Parikh image: the number of times each edge of a CFG
// fires in a witnessing run. Indexed by automaton.EIndex.
type Image map[automaton.EIndex]int64

// Query bundles the inputs to a single ℤ-reachability SMT call.
type Query struct {
	CFG         *automaton.Automaton[cfgalpha.Symbol]
	V0, Vf      vector.Vector
	Start       automaton.NIndex
	Final       automaton.NIndex
	MaxFirings  int64 // per-edge bound used to size bit-blasted variables
	DepthBound  int64 // upper bound on spanning-tree depth τ, per spec.md §4.C7.3
}

// Result is the decoded outcome of a Reach call.
type Result struct {
	Status smt.Status
	Image  Image
}

func edgeVar(e automaton.EIndex) smt.VarID {
	return smt.VarID(fmt.Sprintf("pi_%d", e))
}

func depthVar(n automaton.NIndex) smt.VarID {
	return smt.VarID(fmt.Sprintf("tau_%d", n))
}

// usedVar names the boolean-as-0/1 indicator that edge e fires at
// least once, used only inside the big-M connectivity encoding.
func usedVar(e automaton.EIndex) smt.VarID {
	return smt.VarID(fmt.Sprintf("used_%d", e))
}

// treeVar names the boolean-as-0/1 indicator that edge e is chosen as
// a spanning-tree edge rooted at Start: a subset of the used edges
// sufficient to reach every used node, used only to break cycles in
// the connectivity encoding (a used edge that closes a loop need not
// be a tree edge).
func treeVar(e automaton.EIndex) smt.VarID {
	return smt.VarID(fmt.Sprintf("tree_%d", e))
}

// nodeUsedVar names the boolean-as-0/1 indicator that node n is
// touched by at least one used edge (as its target).
func nodeUsedVar(n automaton.NIndex) smt.VarID {
	return smt.VarID(fmt.Sprintf("usedq_%d", n))
}

// Build assembles the smt.System described in spec.md §4.C7: the
// effect equation, the per-state Euler/flow balance, and the
// spanning-tree-depth big-M connectivity constraints.
func Build(q Query) *smt.System {
	g := q.CFG
	sys := &smt.System{}

	for e := 0; e < g.NumEdges(); e++ {
		sys.AddVar(edgeVar(automaton.EIndex(e)), q.MaxFirings)
		sys.AddVar(usedVar(automaton.EIndex(e)), 1)
		sys.AddVar(treeVar(automaton.EIndex(e)), 1)
	}
	for n := 0; n < g.NumNodes(); n++ {
		sys.AddVar(depthVar(automaton.NIndex(n)), q.DepthBound)
		sys.AddVar(nodeUsedVar(automaton.NIndex(n)), 1)
	}

	effectEquation(sys, g, q.V0, q.Vf)
	flowBalance(sys, g, q.Start, q.Final)
	connectivity(sys, g, q.Start, q.MaxFirings, q.DepthBound)

	return sys
}

// effectEquation asserts, dimension by dimension, Σ_e π(e)·w(e) = Vf - V0.
func effectEquation(sys *smt.System, g *automaton.Automaton[cfgalpha.Symbol], v0, vf vector.Vector) {
	d := v0.Dim()
	delta := vf.Sub(v0)

	perDim := make([]smt.LinExpr, d)
	for e := 0; e < g.NumEdges(); e++ {
		idx := automaton.EIndex(e)
		_, _, label, epsilon := g.Edge(idx)
		if epsilon {
			continue
		}
		w := label.Delta()
		if w == 0 {
			continue
		}
		perDim[label.Index] = append(perDim[label.Index], smt.Term{Coeff: w, Var: edgeVar(idx)})
	}
	for i := 0; i < d; i++ {
		sys.Assert(perDim[i], smt.Eq, delta[i])
	}
}

// flowBalance asserts spec.md §4.C7.2: at every state other than
// start/final, in-firings equal out-firings; start has one more
// out-firing than in, final one more in-firing than out (or balanced
// if start == final).
func flowBalance(sys *smt.System, g *automaton.Automaton[cfgalpha.Symbol], start, final automaton.NIndex) {
	in := make([]smt.LinExpr, g.NumNodes())
	out := make([]smt.LinExpr, g.NumNodes())
	for e := 0; e < g.NumEdges(); e++ {
		idx := automaton.EIndex(e)
		from, to, _, _ := g.Edge(idx)
		out[from] = append(out[from], smt.Term{Coeff: 1, Var: edgeVar(idx)})
		in[to] = append(in[to], smt.Term{Coeff: 1, Var: edgeVar(idx)})
	}

	for n := 0; n < g.NumNodes(); n++ {
		node := automaton.NIndex(n)
		balance := append(append(smt.LinExpr{}, out[n]...), negate(in[n])...)
		switch {
		case node == start && node == final:
			sys.Assert(balance, smt.Eq, 0)
		case node == start:
			sys.Assert(balance, smt.Eq, 1)
		case node == final:
			sys.Assert(balance, smt.Eq, -1)
		default:
			sys.Assert(balance, smt.Eq, 0)
		}
	}
}

func negate(expr smt.LinExpr) smt.LinExpr {
	out := make(smt.LinExpr, len(expr))
	for i, t := range expr {
		out[i] = smt.Term{Coeff: -t.Coeff, Var: t.Var}
	}
	return out
}

// connectivity encodes spec.md §4.C7.3's weaker connectivity
// requirement: every used node other than Start has at least one
// incoming used edge, rather than every used edge lying on a single
// strictly-increasing-depth path. A second per-edge indicator,
// tree(e), singles out a spanning subset of the used edges sufficient
// to reach every used node; only tree edges are forced to strictly
// increase depth (ruling out a tree that cycles back on itself),
// while a used edge that merely closes a loop — e.g. a Petri-net
// transition's return arc to its already-reached center state — can
// be used without being a tree edge, so it carries no depth
// obligation at all.
func connectivity(sys *smt.System, g *automaton.Automaton[cfgalpha.Symbol], start automaton.NIndex, maxFirings, depthBound int64) {
	sys.Assert(smt.LinExpr{{Coeff: 1, Var: depthVar(start)}}, smt.Eq, 0)

	incomingTree := make([]smt.LinExpr, g.NumNodes())

	for e := 0; e < g.NumEdges(); e++ {
		idx := automaton.EIndex(e)
		from, to, _, _ := g.Edge(idx)
		u := usedVar(idx)
		pi := edgeVar(idx)
		tr := treeVar(idx)

		// used(e) >= pi(e) / M, linearized as pi(e) <= M * used(e).
		sys.Assert(smt.LinExpr{{Coeff: 1, Var: pi}, {Coeff: -maxFirings, Var: u}}, smt.Leq, 0)
		// used(e) <= pi(e): an edge cannot be "used" with zero firings.
		sys.Assert(smt.LinExpr{{Coeff: 1, Var: u}, {Coeff: -1, Var: pi}}, smt.Leq, 0)

		// tree(e) <= used(e): only a used edge can be chosen as a tree edge.
		sys.Assert(smt.LinExpr{{Coeff: 1, Var: tr}, {Coeff: -1, Var: u}}, smt.Leq, 0)

		// used(e) ⇒ its target is a used node: used(e) <= usedNode(to).
		sys.Assert(smt.LinExpr{{Coeff: 1, Var: u}, {Coeff: -1, Var: nodeUsedVar(to)}}, smt.Leq, 0)

		incomingTree[to] = append(incomingTree[to], smt.Term{Coeff: 1, Var: tr})

		if from == start {
			// A tree edge leaving q0 needs no depth obligation: q0's own
			// depth is fixed at 0 and nothing upstream of it exists.
			continue
		}

		// tree(e) ⇒ τ_to = τ_from + 1, via big-M in both directions:
		// τ_to - τ_from - 1 <= M*(1 - tree(e))  and  >= -M*(1 - tree(e)).
		bigM := depthBound + 1
		lhs := smt.LinExpr{
			{Coeff: 1, Var: depthVar(to)},
			{Coeff: -1, Var: depthVar(from)},
			{Coeff: bigM, Var: tr},
		}
		sys.Assert(lhs, smt.Leq, bigM+1)
		lhs2 := smt.LinExpr{
			{Coeff: 1, Var: depthVar(to)},
			{Coeff: -1, Var: depthVar(from)},
			{Coeff: -bigM, Var: tr},
		}
		sys.Assert(lhs2, smt.Geq, -bigM+1)
	}

	for n := 0; n < g.NumNodes(); n++ {
		node := automaton.NIndex(n)
		if node == start {
			continue
		}
		// usedNode(v) ⇒ some incoming edge is a tree edge:
		// usedNode(v) <= Σ_{e: to(e)=v} tree(e).
		sum := append(smt.LinExpr{{Coeff: -1, Var: nodeUsedVar(node)}}, incomingTree[n]...)
		sys.Assert(sum, smt.Geq, 0)
	}
}

// Reach solves the Query's ℤ-reachability system against backend and
// decodes a satisfying model into a Parikh Image.
func Reach(ctx context.Context, backend smt.Backend, q Query) (Result, error) {
	sys := Build(q)
	res, err := backend.Solve(ctx, sys)
	if err != nil {
		return Result{}, err
	}
	if res.Status != smt.Sat {
		return Result{Status: res.Status}, nil
	}
	img := make(Image, q.CFG.NumEdges())
	for e := 0; e < q.CFG.NumEdges(); e++ {
		idx := automaton.EIndex(e)
		img[idx] = res.Model[edgeVar(idx)]
	}
	return Result{Status: smt.Sat, Image: img}, nil
}

// TotalEffect computes V0 + Σ_e π(e)·w(e), the quantity
// reach.ValidateParikh compares against Vf.
func TotalEffect(g *automaton.Automaton[cfgalpha.Symbol], v0 vector.Vector, img Image) vector.Vector {
	total := v0.Clone()
	for e, count := range img {
		if count == 0 {
			continue
		}
		_, _, label, epsilon := g.Edge(e)
		if epsilon {
			continue
		}
		delta := vector.New(total.Dim())
		delta[label.Index] = label.Delta() * count
		total = total.Apply(delta)
	}
	return total
}
