// Package closure computes fixed points of a labeled relation.
//
// Forward and backward traversals share one breadth-first algorithm; the
// direction only decides which neighbor function feeds it.
package closure

// Direction selects which side of a relation the traversal follows.
type Direction int

const (
	// Forward follows edges from start to end (reachability).
	Forward Direction = iota
	// Backward follows edges from end to start (co-reachability).
	Backward
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return "unknown"
	}
}

// Graph is the adjacency view a traversal needs.
type Graph interface {
	// Successors returns the end labels of edges leaving label.
	Successors(label string) []string
	// Predecessors returns the start labels of edges entering label.
	Predecessors(label string) []string
}

// Result is the outcome of a closure computation.
type Result struct {
	// Visited holds every label reached, seeds included.
	Visited map[string]bool
	// Order lists visited labels in discovery order.
	Order []string
	// Iterations counts the frontier expansions performed.
	Iterations int
}

// Has reports whether label belongs to the closure.
func (r Result) Has(label string) bool {
	return r.Visited[label]
}

// Len returns the size of the closure.
func (r Result) Len() int {
	return len(r.Visited)
}

// Run computes the closure of seeds over g in the given direction.
func Run(g Graph, dir Direction, seeds []string) Result {
	next := g.Successors
	if dir == Backward {
		next = g.Predecessors
	}
	return Compute(seeds, next)
}

// Compute expands seeds through next until an iteration adds no new label.
//
// Duplicate seeds and duplicate neighbors are tolerated. Termination is
// bounded by the number of distinct labels next can produce.
func Compute(seeds []string, next func(string) []string) Result {
	visited := make(map[string]bool, len(seeds))
	order := make([]string, 0, len(seeds))
	frontier := make([]string, 0, len(seeds))

	for _, s := range seeds {
		if visited[s] {
			continue
		}
		visited[s] = true
		order = append(order, s)
		frontier = append(frontier, s)
	}

	iterations := 0
	for len(frontier) > 0 {
		iterations++
		var expanded []string
		for _, label := range frontier {
			for _, n := range next(label) {
				if visited[n] {
					continue
				}
				visited[n] = true
				order = append(order, n)
				expanded = append(expanded, n)
			}
		}
		frontier = expanded
	}

	return Result{
		Visited:    visited,
		Order:      order,
		Iterations: iterations,
	}
}
