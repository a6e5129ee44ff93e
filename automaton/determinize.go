package automaton

import "sort"

// subsetKey canonicalizes a set of original states into a sorted,
// de-duplicated slice usable as a map key (via its string form) and
// as the new state's Data.
func subsetKey(states []NIndex) string {
	sorted := append([]NIndex(nil), states...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	dedup := sorted[:0]
	var last NIndex = NoNode - 1
	for _, s := range sorted {
		if s != last {
			dedup = append(dedup, s)
			last = s
		}
	}
	key := make([]byte, 0, len(dedup)*4)
	for _, s := range dedup {
		key = append(key, byte(s), byte(s>>8), byte(s>>16), byte(s>>24))
	}
	return string(key)
}

// Determinize performs subset construction with epsilon-closure over
// alphabet, producing an equivalent deterministic, epsilon-free
// Automaton.
//
// The result's states are discovered by a breadth-first walk starting
// at the epsilon-closure of a.Start(), and numbered in that discovery
// order — the result's node/edge count and shape therefore depend
// only on a's transition structure and alphabet, never on the order
// in which a's own states happened to be inserted into its arena
// (spec.md invariant #2, exercised by TestDeterminizeInvariantToNodeInsertionOrder).
func (a *Automaton[L]) Determinize(alphabet []L) *Automaton[L] {
	out := New[L]()
	if a.start == NoNode {
		return out
	}

	type pending struct {
		subset []NIndex
		idx    NIndex
	}
	seen := make(map[string]NIndex)
	var queue []pending

	startSubset := a.EpsilonClosure([]NIndex{a.start})
	startIdx := out.AddState(append([]NIndex(nil), startSubset...))
	out.SetStart(startIdx)
	seen[subsetKey(startSubset)] = startIdx
	out.SetAccepting(startIdx, containsAccepting(a, startSubset))
	queue = append(queue, pending{subset: startSubset, idx: startIdx})

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, sym := range alphabet {
			var moved []NIndex
			for _, s := range cur.subset {
				moved = append(moved, a.StepAll(s, sym)...)
			}
			if len(moved) == 0 {
				continue
			}
			closure := a.EpsilonClosure(moved)
			key := subsetKey(closure)
			dstIdx, ok := seen[key]
			if !ok {
				dstIdx = out.AddState(append([]NIndex(nil), closure...))
				out.SetAccepting(dstIdx, containsAccepting(a, closure))
				seen[key] = dstIdx
				queue = append(queue, pending{subset: closure, idx: dstIdx})
			}
			out.AddTransition(cur.idx, dstIdx, sym)
		}
	}

	return out
}

func containsAccepting[L comparable](a *Automaton[L], states []NIndex) bool {
	for _, s := range states {
		if a.IsAccepting(s) {
			return true
		}
	}
	return false
}
