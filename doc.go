// Package vassreach decides whether a target counter valuation is
// reachable from an initial one in a vector addition system with
// states (VASS), using the CEGAR loop implemented by reach.Solve: an SMT-backed
// Parikh-image feasibility check (package parikh), a cheap modulo
// abstraction filter (package modulo), linear term candidate
// extraction and its two reachability relaxations (package ltc), and
// iterative refinement by intersecting the control-flow graph with
// bounded-counter automata (package boundedauto) until the loop
// terminates with REACHABLE, UNREACHABLE, or UNKNOWN.
//
// Subpackages, roughly bottom-up:
//
//	vector/      Z^d counter arithmetic
//	automaton/   dense-index arena automata: determinize, complete, intersect, SCC
//	cfgalpha/    the single-counter +-1 alphabet a VASS projects onto
//	vass/        the VASS model and its projection to a counter CFG
//	petri/       Petri-net surface syntax, converted to a VASS
//	modulo/      the Z_m product-automaton reachability filter
//	boundedauto/ the bounded-counter automaton family used in refinement
//	smt/         the bounded linear-arithmetic solver facade and its gini-backed implementation
//	parikh/      the Z-reachability SMT encoding over a CFG's edges
//	ltc/         linear term candidates and their reach_z / reach_n checks
//	reach/       the CEGAR driver tying the above together, plus validation
//	config/      the driver's tunable knobs
//
// The package at the module root holds no code of its own; start with
// reach.Solve.
package vassreach
