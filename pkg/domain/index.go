package domain

// Index is a read-only adjacency view of one revision of the relation.
//
// Lists keep relation order so filtered views are stable.
type Index struct {
	all      []Transition
	outgoing map[string][]Transition
	incoming map[string][]Transition
	byEvent  map[string][]Transition
}

func newIndex(relation []Transition) *Index {
	ix := &Index{
		all:      relation,
		outgoing: make(map[string][]Transition),
		incoming: make(map[string][]Transition),
		byEvent:  make(map[string][]Transition),
	}
	for _, t := range relation {
		ix.outgoing[t.Start.label] = append(ix.outgoing[t.Start.label], t)
		ix.incoming[t.End.label] = append(ix.incoming[t.End.label], t)
		ix.byEvent[t.Event.label] = append(ix.byEvent[t.Event.label], t)
	}
	return ix
}

// Outgoing returns the transitions whose start is label.
func (ix *Index) Outgoing(label string) []Transition {
	return append([]Transition(nil), ix.outgoing[label]...)
}

// Incoming returns the transitions whose end is label.
func (ix *Index) Incoming(label string) []Transition {
	return append([]Transition(nil), ix.incoming[label]...)
}

// Successors returns the end labels of the transitions leaving label.
// Duplicates are possible when the relation is nondeterministic.
func (ix *Index) Successors(label string) []string {
	out := ix.outgoing[label]
	labels := make([]string, len(out))
	for i, t := range out {
		labels[i] = t.End.label
	}
	return labels
}

// Predecessors returns the start labels of the transitions entering label.
func (ix *Index) Predecessors(label string) []string {
	in := ix.incoming[label]
	labels := make([]string, len(in))
	for i, t := range in {
		labels[i] = t.Start.label
	}
	return labels
}

// Filter returns the transitions matching f. It starts from the smallest
// candidate list among the provided fields and never mutates the index.
func (ix *Index) Filter(f TransitionFilter) []Transition {
	candidates := ix.all
	if f.Start != "" {
		candidates = shortest(candidates, ix.outgoing[f.Start])
	}
	if f.End != "" {
		candidates = shortest(candidates, ix.incoming[f.End])
	}
	if f.Event != "" {
		candidates = shortest(candidates, ix.byEvent[f.Event])
	}

	matched := make([]Transition, 0, len(candidates))
	for _, t := range candidates {
		if f.matches(t) {
			matched = append(matched, t)
		}
	}
	return matched
}

func shortest(a, b []Transition) []Transition {
	if len(b) < len(a) {
		return b
	}
	return a
}
