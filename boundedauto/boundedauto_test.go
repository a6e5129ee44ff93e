package boundedauto_test

import (
	"testing"

	"github.com/katalvlaran/vassreach/boundedauto"
	"github.com/katalvlaran/vassreach/cfgalpha"
	"github.com/stretchr/testify/assert"
)

func TestBuildKeepsCounterInRange(t *testing.T) {
	g := boundedauto.Build(1, 0, 3, 0, 0)
	inc := cfgalpha.Symbol{Index: 0, Op: cfgalpha.Inc}
	dec := cfgalpha.Symbol{Index: 0, Op: cfgalpha.Dec}

	assert.True(t, g.Accepts([]cfgalpha.Symbol{inc, inc, dec, dec}))
	// 4 increments would push the counter to 4 > k=3: routed to the sink.
	assert.False(t, g.Accepts([]cfgalpha.Symbol{inc, inc, inc, inc, dec, dec, dec, dec}))
	// Decrementing below 0 from the start is rejected immediately.
	assert.False(t, g.Accepts([]cfgalpha.Symbol{dec}))
}

func TestBuildReverseMirrorsDirection(t *testing.T) {
	g := boundedauto.BuildReverse(1, 0, 2, 0, 0)
	inc := cfgalpha.Symbol{Index: 0, Op: cfgalpha.Inc}
	dec := cfgalpha.Symbol{Index: 0, Op: cfgalpha.Dec}

	// In the reverse automaton, Dec is the symbol that advances state.
	assert.True(t, g.Accepts([]cfgalpha.Symbol{dec, inc}))
	assert.False(t, g.Accepts([]cfgalpha.Symbol{inc}))
}
