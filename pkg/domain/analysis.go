package domain

import (
	"time"

	"github.com/aretw0/fsa/internal/closure"
)

// memo holds automaton-level results of the current revision.
type memo struct {
	reachable   Tristate
	coReachable Tristate
	blocking    Tristate
	trim        Tristate
	reversible  Tristate
	coInitial   Tristate

	deadDone bool
}

// Reachability marks every state reachable from x0 and reports whether all
// of X is reachable. Every initial state seeds the traversal.
func (a *Automaton) Reachability() (bool, error) {
	if a.memo.reachable.Known() {
		return a.memo.reachable.Bool(), nil
	}
	if len(a.initial) == 0 {
		return false, ErrDegenerateInitialSet
	}

	res := a.close(ComputeReachability, closure.Forward, labels(a.initial))
	for _, s := range a.states {
		s.reachable = TristateOf(res.Has(s.label))
	}
	a.memo.reachable = TristateOf(res.Len() == len(a.states))
	return a.memo.reachable.Bool(), nil
}

// CoReachability marks every state from which Xm can be reached and reports
// whether all of X is co-reachable. With an empty Xm nothing is co-reachable.
func (a *Automaton) CoReachability() (bool, error) {
	if a.memo.coReachable.Known() {
		return a.memo.coReachable.Bool(), nil
	}

	res := a.close(ComputeCoReachability, closure.Backward, labels(a.final))
	for _, s := range a.states {
		s.coReachable = TristateOf(res.Has(s.label))
	}
	a.memo.coReachable = TristateOf(res.Len() == len(a.states))
	return a.memo.coReachable.Bool(), nil
}

// CoReachabilityToInitial marks every state from which x0 can be reached and
// returns those states in X order.
func (a *Automaton) CoReachabilityToInitial() ([]*State, error) {
	if !a.memo.coInitial.Known() {
		if len(a.initial) == 0 {
			return nil, ErrDegenerateInitialSet
		}
		res := a.close(ComputeCoReachabilityToInitial, closure.Backward, labels(a.initial))
		for _, s := range a.states {
			s.coReachableToInitial = TristateOf(res.Has(s.label))
		}
		a.memo.coInitial = TristateOf(res.Len() == len(a.states))
	}
	return a.statesWhere(func(s *State) bool { return s.coReachableToInitial.Bool() }), nil
}

// Deadness marks every state without outgoing transitions and returns the
// dead states in X order.
func (a *Automaton) Deadness() []*State {
	if !a.memo.deadDone {
		start := time.Now()
		ix := a.Index()
		dead := 0
		for _, s := range a.states {
			isDead := len(ix.Outgoing(s.label)) == 0
			s.dead = TristateOf(isDead)
			if isDead {
				dead++
			}
		}
		a.memo.deadDone = true
		a.record(ComputeDeadness, len(a.states), dead, start)
	}
	return a.statesWhere(func(s *State) bool { return s.dead.Bool() })
}

// Blockingness marks reachable states that cannot reach Xm and reports
// whether any exists. Missing closures are computed first.
func (a *Automaton) Blockingness() (bool, error) {
	if a.memo.blocking.Known() {
		return a.memo.blocking.Bool(), nil
	}
	if _, err := a.Reachability(); err != nil {
		return false, err
	}
	if _, err := a.CoReachability(); err != nil {
		return false, err
	}

	start := time.Now()
	blocking := 0
	for _, s := range a.states {
		isBlocking := s.reachable.Bool() && !s.coReachable.Bool()
		s.blocking = TristateOf(isBlocking)
		if isBlocking {
			blocking++
		}
	}
	a.memo.blocking = TristateOf(blocking > 0)
	a.record(ComputeBlockingness, len(a.states), blocking, start)
	return a.memo.blocking.Bool(), nil
}

// Trimness reports whether the automaton is both reachable and co-reachable.
func (a *Automaton) Trimness() (bool, error) {
	if a.memo.trim.Known() {
		return a.memo.trim.Bool(), nil
	}
	reachable, err := a.Reachability()
	if err != nil {
		return false, err
	}
	coReachable, err := a.CoReachability()
	if err != nil {
		return false, err
	}

	a.memo.trim = TristateOf(reachable && coReachable)
	a.record(ComputeTrimness, 0, 0, time.Now())
	return a.memo.trim.Bool(), nil
}

// Reversibility reports whether every reachable state can return to x0.
// It stops at the first reachable state that cannot.
func (a *Automaton) Reversibility() (bool, error) {
	if a.memo.reversible.Known() {
		return a.memo.reversible.Bool(), nil
	}
	if _, err := a.Reachability(); err != nil {
		return false, err
	}
	if _, err := a.CoReachabilityToInitial(); err != nil {
		return false, err
	}

	start := time.Now()
	reversible := true
	checked := 0
	for _, s := range a.states {
		if !s.reachable.Bool() {
			continue
		}
		checked++
		if !s.coReachableToInitial.Bool() {
			reversible = false
			break
		}
	}
	a.memo.reversible = TristateOf(reversible)
	a.record(ComputeReversibility, len(a.states), checked, start)
	return reversible, nil
}

// ReachabilityFromFirstInitial returns the states reachable from the first
// initial state only. It exists for parity with single-seed tooling; it is
// not memoized and leaves annotations untouched.
func (a *Automaton) ReachabilityFromFirstInitial() ([]*State, error) {
	if len(a.initial) == 0 {
		return nil, ErrDegenerateInitialSet
	}
	res := closure.Run(a.Index(), closure.Forward, []string{a.initial[0].label})
	return a.statesWhere(func(s *State) bool { return res.Has(s.label) }), nil
}

// Analyze runs every analysis and snapshots the result.
func (a *Automaton) Analyze() (*Report, error) {
	if _, err := a.Reachability(); err != nil {
		return nil, err
	}
	if _, err := a.CoReachability(); err != nil {
		return nil, err
	}
	if _, err := a.Blockingness(); err != nil {
		return nil, err
	}
	if _, err := a.Trimness(); err != nil {
		return nil, err
	}
	a.Deadness()
	if _, err := a.Reversibility(); err != nil {
		return nil, err
	}
	return a.snapshot(), nil
}

func (a *Automaton) close(kind Computation, dir closure.Direction, seeds []string) closure.Result {
	start := time.Now()
	res := closure.Run(a.Index(), dir, seeds)
	a.record(kind, len(seeds), res.Len(), start)
	return res
}

func (a *Automaton) record(kind Computation, seeds, visited int, start time.Time) {
	a.counts[kind]++
	a.hooks.emit(&ComputeEvent{
		Kind:     kind,
		Revision: a.revision,
		Seeds:    seeds,
		Visited:  visited,
		Duration: time.Since(start),
	})
}

func (a *Automaton) statesWhere(pred func(*State) bool) []*State {
	var out []*State
	for _, s := range a.states {
		if pred(s) {
			out = append(out, s)
		}
	}
	return out
}
