package closure_test

import (
	"testing"

	"github.com/aretw0/fsa/internal/closure"
	"github.com/stretchr/testify/assert"
)

// adjacency is a tiny Graph for tests.
type adjacency map[string][]string

func (a adjacency) Successors(label string) []string {
	return a[label]
}

func (a adjacency) Predecessors(label string) []string {
	var preds []string
	for from, tos := range a {
		for _, to := range tos {
			if to == label {
				preds = append(preds, from)
			}
		}
	}
	return preds
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name    string
		graph   adjacency
		seeds   []string
		want    []string
		notWant []string
	}{
		{
			name:  "Chain",
			graph: adjacency{"a": {"b"}, "b": {"c"}},
			seeds: []string{"a"},
			want:  []string{"a", "b", "c"},
		},
		{
			name:    "Cycle And Self Loop",
			graph:   adjacency{"a": {"a", "b"}, "b": {"a"}, "c": {"a"}},
			seeds:   []string{"a"},
			want:    []string{"a", "b"},
			notWant: []string{"c"},
		},
		{
			name:  "Multiple Seeds",
			graph: adjacency{"a": {"b"}, "x": {"y"}},
			seeds: []string{"a", "x", "a"},
			want:  []string{"a", "b", "x", "y"},
		},
		{
			name:  "No Seeds",
			graph: adjacency{"a": {"b"}},
			seeds: nil,
		},
		{
			name:    "Nondeterministic Duplicates",
			graph:   adjacency{"a": {"b", "b", "c"}, "b": {"c"}},
			seeds:   []string{"b"},
			want:    []string{"b", "c"},
			notWant: []string{"a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := closure.Compute(tt.seeds, tt.graph.Successors)
			assert.Len(t, res.Visited, len(tt.want))
			assert.Len(t, res.Order, len(tt.want))
			for _, label := range tt.want {
				assert.True(t, res.Has(label), "expected %q in closure", label)
			}
			for _, label := range tt.notWant {
				assert.False(t, res.Has(label), "did not expect %q in closure", label)
			}
		})
	}
}

func TestCompute_OrderIsBreadthFirst(t *testing.T) {
	g := adjacency{"a": {"b", "c"}, "b": {"d"}, "c": {"e"}}
	res := closure.Compute([]string{"a"}, g.Successors)

	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, res.Order)
	// a -> {b,c} -> {d,e} -> {} : three expansions, the last one adds nothing.
	assert.Equal(t, 3, res.Iterations)
}

func TestRun_Directions(t *testing.T) {
	g := adjacency{"a": {"b"}, "b": {"c"}}

	fwd := closure.Run(g, closure.Forward, []string{"b"})
	assert.ElementsMatch(t, []string{"b", "c"}, fwd.Order)

	bwd := closure.Run(g, closure.Backward, []string{"b"})
	assert.ElementsMatch(t, []string{"a", "b"}, bwd.Order)

	assert.Equal(t, "forward", closure.Forward.String())
	assert.Equal(t, "backward", closure.Backward.String())
}
