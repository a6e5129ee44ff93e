// Package config exposes the driver's configuration knobs as a
// functional-options struct, mirroring the teacher's
// core.GraphOption / flow.FlowOptions pattern. Per spec.md §1, CLI
// argument handling and spec-file persistence are out-of-scope
// external collaborators, so this package only holds the in-memory
// knobs spec.md §6 enumerates — there is no file or environment
// parsing here.
package config

import "time"

// RefineDirection selects which bounded-counter automaton family
// REFINE intersects with.
type RefineDirection int

const (
	// Forward intersects with B(d, i, k): bounds the counter as read
	// from the head of the run.
	Forward RefineDirection = iota
	// Backward intersects with B̄(d, i, k): bounds the counter as read
	// from the tail of the run.
	Backward
	// Both intersects with B(d, i, k) first and then with B̄(d, i, k).
	Both
)

// Options holds every knob spec.md §6's configuration table names.
type Options struct {
	// MuLimit is the maximum number of refinements before the driver
	// gives up and returns UNKNOWN(budget).
	MuLimit int
	// ModulusSchedule is the ordered list of moduli tried in the MOD
	// phase, e.g. []int64{2, 3, 5}.
	ModulusSchedule []int64
	// SMTTimeout holds the per-query SMT wall-clock budget. reach.Solve
	// does not pass it to the backend and smt.GiniBackend does not stop
	// on a deadline, so no query is cut short by it.
	SMTTimeout time.Duration
	// LTCEnumerationLimit caps the number of LTC candidates extracted
	// from a single Parikh model.
	LTCEnumerationLimit int
	// RefineDirection selects {forward, backward, both} per spec.md §6.
	RefineDirection RefineDirection
	// MaxMagnitude bounds every bit-blasted SMT variable's domain
	// (edge firing counts, loop multiplicities, spanning-tree depths):
	// the ambient ceiling parikh and ltc size their smt.System
	// variables from, since gini's bit-blasting backend requires every
	// variable's domain to be finite.
	MaxMagnitude int64
}

// Option mutates an Options in place.
type Option func(*Options)

// Default returns the baseline configuration: mu_limit 50, moduli
// {2, 3, 5}, a 5-second SMT timeout, an LTC enumeration cap of 8, and
// forward-only refinement.
func Default() Options {
	return Options{
		MuLimit:             50,
		ModulusSchedule:     []int64{2, 3, 5},
		SMTTimeout:          5 * time.Second,
		LTCEnumerationLimit: 8,
		RefineDirection:     Forward,
		MaxMagnitude:        64,
	}
}

// New builds an Options starting from Default and applying opts in order.
func New(opts ...Option) Options {
	o := Default()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithMuLimit overrides the refinement budget.
func WithMuLimit(n int) Option {
	return func(o *Options) { o.MuLimit = n }
}

// WithModulusSchedule overrides the moduli tried in the MOD phase.
func WithModulusSchedule(moduli []int64) Option {
	return func(o *Options) { o.ModulusSchedule = append([]int64(nil), moduli...) }
}

// WithSMTTimeout overrides the per-query SMT wall-clock budget.
func WithSMTTimeout(d time.Duration) Option {
	return func(o *Options) { o.SMTTimeout = d }
}

// WithLTCEnumerationLimit overrides the cap on LTC candidates
// extracted per Parikh model.
func WithLTCEnumerationLimit(n int) Option {
	return func(o *Options) { o.LTCEnumerationLimit = n }
}

// WithRefineDirection overrides which bounded-counter automaton
// family REFINE intersects with.
func WithRefineDirection(d RefineDirection) Option {
	return func(o *Options) { o.RefineDirection = d }
}

// WithMaxMagnitude overrides the bit-blasting domain ceiling.
func WithMaxMagnitude(m int64) Option {
	return func(o *Options) { o.MaxMagnitude = m }
}
