package reach

// Stats records the CEGAR loop's own bookkeeping for a single Solve
// call, the shape original_source/packages/vass-reach-testing's "tool"
// abstraction reads off a solver run for reporting. The harness that
// would print these is out of scope (spec.md §1); this struct only
// surfaces the numbers so a caller-side harness has something to read.
type Stats struct {
	// Refinements counts REFINE transitions taken.
	Refinements int
	// ModuliTried lists, in order, every modulus checked in the MOD phase.
	ModuliTried []int64
	// SMTCalls counts every Backend.Solve invocation issued.
	SMTCalls int
	// LTCCandidates counts LTC candidates extracted and checked.
	LTCCandidates int
}
