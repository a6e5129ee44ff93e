package smt

import "context"

// FuncBackend adapts a plain function to Backend, the same way
// http.HandlerFunc adapts a function to http.Handler. Tests use this
// directly to mock the SMT oracle per spec.md §9: "make the solver
// testable with a mock oracle that returns fixed models."
type FuncBackend func(ctx context.Context, sys *System) (Result, error)

// Solve implements Backend.
func (f FuncBackend) Solve(ctx context.Context, sys *System) (Result, error) {
	return f(ctx, sys)
}

// Fixed returns a Backend that ignores its System and always answers
// with result.
func Fixed(result Result) Backend {
	return FuncBackend(func(context.Context, *System) (Result, error) {
		return result, nil
	})
}

// Sequence returns a Backend that answers each successive call with
// the next result in results, repeating the last one once exhausted.
// Useful for driving a fixed number of CEGAR rounds in a test without
// a real solver.
func Sequence(results ...Result) Backend {
	i := 0
	return FuncBackend(func(context.Context, *System) (Result, error) {
		r := results[i]
		if i < len(results)-1 {
			i++
		}
		return r, nil
	})
}
