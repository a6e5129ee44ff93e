// Package petri implements the Petri-net surface syntax of spec.md
// §6 and its conversion to a vass.Initialized VASS via the
// center-state encoding.
package petri

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/vassreach/vass"
	"github.com/katalvlaran/vassreach/vector"
)

// ErrNoPlaces indicates a net was constructed with zero places.
var ErrNoPlaces = errors.New("petri: net has no places")

// ErrPlaceOutOfRange indicates a (weight, place) pair references a
// place index outside [1, P].
type ErrPlaceOutOfRange struct {
	Place, NumPlaces int
}

func (e ErrPlaceOutOfRange) Error() string {
	return fmt.Sprintf("petri: place %d out of range [1, %d]", e.Place, e.NumPlaces)
}

// Arc is a (weight, place) pair: place is 1-indexed per spec.md §6.
type Arc struct {
	Weight int64
	Place  int
}

// Transition is t = (in, out): a list of input arcs consumed and
// output arcs produced when the transition fires.
type Transition struct {
	In, Out []Arc
}

// Net is a Petri net with P places (1-indexed) and a list of transitions.
type Net struct {
	Places      int
	Transitions []Transition
}

// vectorOf turns a transition's arc list into a places-dimensional
// vector, erroring if any place index is out of range.
func (n *Net) vectorOf(arcs []Arc) (vector.Vector, error) {
	v := vector.New(n.Places)
	for _, a := range arcs {
		if a.Place < 1 || a.Place > n.Places {
			return nil, ErrPlaceOutOfRange{Place: a.Place, NumPlaces: n.Places}
		}
		v[a.Place-1] += a.Weight
	}
	return v, nil
}

const center vass.State = "center"

// transitionState names the fresh state added for the i-th transition.
func transitionState(i int) vass.State {
	return vass.State(fmt.Sprintf("t%d", i))
}

// ToVASS converts n, together with an initial and final marking, into
// an Initialized VASS via the center-state encoding of spec.md §6:
// one fresh state c plus one fresh state s_i per transition t_i, with
// edges c -> s_i labelled -in_i and s_i -> c labelled +out_i. Both the
// initial and final control state are c.
func (n *Net) ToVASS(initialMarking, finalMarking []int64) (*vass.Initialized, error) {
	if n.Places <= 0 {
		return nil, ErrNoPlaces
	}
	if len(initialMarking) != n.Places || len(finalMarking) != n.Places {
		return nil, fmt.Errorf("petri: marking dimension must equal place count %d", n.Places)
	}

	states := make([]vass.State, 0, len(n.Transitions)+1)
	states = append(states, center)
	for i := range n.Transitions {
		states = append(states, transitionState(i))
	}

	v, err := vass.New(n.Places, states)
	if err != nil {
		return nil, err
	}

	for i, t := range n.Transitions {
		inVec, err := n.vectorOf(t.In)
		if err != nil {
			return nil, fmt.Errorf("petri: transition %d input: %w", i, err)
		}
		outVec, err := n.vectorOf(t.Out)
		if err != nil {
			return nil, fmt.Errorf("petri: transition %d output: %w", i, err)
		}
		s := transitionState(i)
		label := vass.Label(fmt.Sprintf("t%d", i))
		if err := v.AddTransition(center, label, inVec.Scale(-1), s); err != nil {
			return nil, err
		}
		if err := v.AddTransition(s, label, outVec, center); err != nil {
			return nil, err
		}
	}

	return v.Initialized(center, center, vector.FromSlice(initialMarking), vector.FromSlice(finalMarking))
}
