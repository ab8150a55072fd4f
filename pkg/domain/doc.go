/*
Package domain contains the core model and structural analysis of a Finite
State Automaton (FSA).

It defines the entities of the automaton (States, Events, Transitions), the
Automaton aggregate that owns them, the transition index used as adjacency by
every traversal, and the evaluator that derives structural properties from
forward and backward closures. This package is kept free of I/O; loading,
persistence and presentation live in adapters.

# Key Entities

  - State: a node of the automaton, identified by its label, carrying the
    annotations computed by the analyses.
  - Event: a symbol of the alphabet with its observability, controllability
    and fault classification.
  - Transition: a (start, event, end) triple. The relation is a multiset and
    may be nondeterministic and cyclic.
  - Automaton: the aggregate (X, E, delta, x0, Xm) with its lazily built Index
    and memoized analysis results.
  - Report: an immutable snapshot of every property computed for one revision.

# Analyses

Reachability and CoReachability are independent closures. Blockingness and
Trimness depend on both. Deadness is a sink check on the index. Reversibility
depends on Reachability and on the closure of states that can return to the
initial set. Each analysis runs at most once per revision; any change to the
relation, to x0 or to Xm starts a new revision and resets every annotation.
*/
package domain
