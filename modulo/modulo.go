// Package modulo implements the modulo abstraction of spec.md
// §4.C5: the product of a CFG with per-counter mod-m counters,
// used as a cheap filter after ℤ-reachability says "sat".
package modulo

import (
	"strconv"
	"strings"

	"github.com/katalvlaran/vassreach/automaton"
	"github.com/katalvlaran/vassreach/cfgalpha"
	"github.com/katalvlaran/vassreach/vector"
)

// modState is the payload of a state in the product automaton: the
// original CFG state paired with the current (Z_m)^d residue.
type modState struct {
	CFGState automaton.NIndex
	Residue  vector.Vector
}

// Reach decides Z_m-reachability of cfg from v0 to vf: whether a path
// exists in cfg x (Z_m)^d from (cfg.Start(), v0 mod m) to (qf,
// vf mod m) for any accepting state qf of cfg (a determinized CFG can
// have several).
//
// Returns the accepting path's symbol sequence and true on success,
// or (nil, false) if no such path exists (the VASS is then
// unreachable even in Z_m, hence unreachable in Z, hence unreachable
// in N).
func Reach(cfg *automaton.Automaton[cfgalpha.Symbol], alphabet []cfgalpha.Symbol, d int, m int64, v0, vf vector.Vector) ([]cfgalpha.Symbol, bool) {
	type key struct {
		state automaton.NIndex
		res   string
	}
	// residueKey renders each component as a decimal field rather than
	// a single byte, so it stays injective for any modulus m the
	// caller passes (config accepts arbitrary int64 moduli, not just
	// the [2, 3, 5] default schedule).
	residueKey := func(v vector.Vector) string {
		var b strings.Builder
		for _, x := range v {
			b.WriteString(strconv.FormatInt(x, 10))
			b.WriteByte(',')
		}
		return b.String()
	}

	start := cfg.Start()
	if start == automaton.NoNode {
		return nil, false
	}
	startRes := v0.RemEuclid(m)
	targetRes := vf.RemEuclid(m)

	type frame struct {
		state automaton.NIndex
		res   vector.Vector
		path  []cfgalpha.Symbol
	}

	startKey := key{start, residueKey(startRes)}
	visited := map[key]bool{startKey: true}
	queue := []frame{{state: start, res: startRes}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cfg.IsAccepting(cur.state) && cur.res.Equal(targetRes) {
			if cur.path == nil {
				return []cfgalpha.Symbol{}, true
			}
			return cur.path, true
		}

		for _, e := range cfg.OutEdges(cur.state) {
			from, to, label, epsilon := cfg.Edge(e)
			_ = from
			if epsilon {
				continue
			}
			nextRes := applySymbol(cur.res, label, m)
			k := key{to, residueKey(nextRes)}
			if visited[k] {
				continue
			}
			visited[k] = true
			path := append(append([]cfgalpha.Symbol(nil), cur.path...), label)
			queue = append(queue, frame{state: to, res: nextRes, path: path})
		}
	}

	return nil, false
}

func applySymbol(res vector.Vector, sym cfgalpha.Symbol, m int64) vector.Vector {
	out := res.Clone()
	out[sym.Index] = (out[sym.Index] + sym.Delta() + m) % m
	return out
}
