package reach

import (
	"github.com/katalvlaran/vassreach/automaton"
	"github.com/katalvlaran/vassreach/cfgalpha"
	"github.com/katalvlaran/vassreach/ltc"
	"github.com/katalvlaran/vassreach/parikh"
	"github.com/katalvlaran/vassreach/vector"
)

// ValidateParikh implements spec.md §4.C10: given a claimed Parikh
// image over g, recompute V0 + Σ_e π(e)·w(e) and assert equality with
// Vf. Used both as a post-condition inside Solve (which panics if a
// satisfying Parikh image fails it) and as a
// reusable test oracle (per original_source/.../validation/mod.rs).
func ValidateParikh(g *automaton.Automaton[cfgalpha.Symbol], v0, vf vector.Vector, img parikh.Image) bool {
	return parikh.TotalEffect(g, v0, img).Equal(vf)
}

// ValidateLTC mirrors ValidateParikh for an accepted LTC witness: it
// checks that firing every transition once and every loop its claimed
// multiplicity of times realizes Vf - V0 exactly. Supplements spec.md
// §4.C10, which only names the Parikh-image form, with the LTC-level
// oracle original_source/.../validation/mod.rs also provides.
func ValidateLTC(c ltc.Candidate, v0, vf vector.Vector, mult [][]int64) bool {
	return v0.Apply(c.Effect(mult)).Equal(vf)
}
