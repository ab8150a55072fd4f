/*
Package fsa analyzes the structure of finite-state automata.

Given an automaton G = (X, E, delta, x0, Xm) it answers structural questions:
which states are reachable from x0, which can still reach a marked state,
which are blocking or dead, whether G is trim and whether it is reversible.

# Concept

The core (pkg/domain) holds the entity model and memoizes every analysis per
revision: adding a state or transition invalidates results, asking twice
does not recompute. Everything else is an adapter around it: definition
documents (pkg/schema), a Go builder (pkg/dsl), report stores
(pkg/adapters/...), an HTTP API, an MCP server and the fsa CLI.

# Usage

	automaton, err := fsa.LoadFile("plant.yaml")
	if err != nil {
		log.Fatal(err)
	}

	analyzer := fsa.New()
	report, err := analyzer.Analyze(ctx, "plant", automaton)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("blocking states:", report.BlockingStates())

Analyses can also be called one at a time on the automaton itself:

	ok, err := automaton.Reversibility()

# Persistence

By default reports live in memory. Pass WithStore with a file, bbolt or
Redis store to keep them, and WithLocker to serialize analyses of one name
across replicas.
*/
package fsa
