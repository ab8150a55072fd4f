package domain_test

import (
	"testing"

	"github.com/aretw0/fsa/pkg/domain"
	"github.com/stretchr/testify/require"
)

// fixture describes a small automaton. Initial and final states are
// marked by name; every event in edges is declared automatically.
type fixture struct {
	states  []string
	initial []string
	final   []string
	edges   [][3]string
}

func (f fixture) build(t *testing.T) *domain.Automaton {
	t.Helper()
	a := domain.New()
	in := toSet(f.initial)
	fin := toSet(f.final)
	for _, s := range f.states {
		_, err := a.AddState(s, in[s], fin[s])
		require.NoError(t, err)
	}
	for _, e := range f.edges {
		if _, ok := a.Event(e[1]); !ok {
			_, err := a.AddEvent(e[1], true, true, false)
			require.NoError(t, err)
		}
		_, err := a.AddTransition(e[0], e[1], e[2])
		require.NoError(t, err)
	}
	return a
}

// reversed swaps the direction of every edge and the roles of x0 and Xm.
func (f fixture) reversed() fixture {
	r := fixture{states: f.states, initial: f.final, final: f.initial}
	for _, e := range f.edges {
		r.edges = append(r.edges, [3]string{e[2], e[1], e[0]})
	}
	return r
}

func toSet(labels []string) map[string]bool {
	set := make(map[string]bool, len(labels))
	for _, l := range labels {
		set[l] = true
	}
	return set
}

func labelsOf(states []*domain.State) []string {
	out := make([]string, len(states))
	for i, s := range states {
		out[i] = s.Label()
	}
	return out
}

// scenarioA: s0 -a-> s1 -a-> s2, s0 initial, s2 final.
func scenarioA() fixture {
	return fixture{
		states:  []string{"s0", "s1", "s2"},
		initial: []string{"s0"},
		final:   []string{"s2"},
		edges:   [][3]string{{"s0", "a", "s1"}, {"s1", "a", "s2"}},
	}
}
