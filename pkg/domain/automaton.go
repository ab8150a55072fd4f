package domain

import "fmt"

// Automaton is the aggregate (X, E, delta, x0, Xm).
//
// It owns its States, Events and relation; annotations on its States are
// written only by its own analyses. An Automaton is not safe for concurrent
// use: mutate first, then analyze.
type Automaton struct {
	states   []*State
	stateIdx map[string]*State
	events   []*Event
	eventIdx map[string]*Event
	delta    []Transition
	initial  []*State
	final    []*State

	revision uint64
	index    *Index
	memo     memo
	counts   map[Computation]int
	hooks    AnalysisHooks
}

// Option configures an Automaton.
type Option func(*Automaton)

// WithHooks registers analysis observability hooks.
func WithHooks(hooks AnalysisHooks) Option {
	return func(a *Automaton) {
		a.hooks = hooks
	}
}

// New creates an empty automaton.
func New(opts ...Option) *Automaton {
	a := &Automaton{
		stateIdx: make(map[string]*State),
		eventIdx: make(map[string]*Event),
		counts:   make(map[Computation]int),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// SetHooks replaces the analysis hooks. It does not invalidate results.
func (a *Automaton) SetHooks(hooks AnalysisHooks) {
	a.hooks = hooks
}

// Hooks returns the installed analysis hooks.
func (a *Automaton) Hooks() AnalysisHooks {
	return a.hooks
}

// AddState inserts a state and, per its flags, adds it to x0 and Xm.
func (a *Automaton) AddState(label string, initial, final bool) (*State, error) {
	if _, exists := a.stateIdx[label]; exists {
		return nil, &DuplicateLabelError{Kind: KindState, Label: label}
	}
	s := &State{label: label, initial: initial, final: final}
	a.states = append(a.states, s)
	a.stateIdx[label] = s
	if initial {
		a.initial = append(a.initial, s)
	}
	if final {
		a.final = append(a.final, s)
	}
	// X grew: automaton-level reachability compares against the full set.
	a.invalidate()
	return s, nil
}

// AddEvent inserts an event into the alphabet. The alphabet takes no part
// in any analysis, so results stay valid.
func (a *Automaton) AddEvent(label string, observable, controllable, fault bool) (*Event, error) {
	if _, exists := a.eventIdx[label]; exists {
		return nil, &DuplicateLabelError{Kind: KindEvent, Label: label}
	}
	e := &Event{label: label, observable: observable, controllable: controllable, fault: fault}
	a.events = append(a.events, e)
	a.eventIdx[label] = e
	return e, nil
}

// AddTransition appends (start, event, end) to the relation. Identical
// triples are kept as separate entries.
func (a *Automaton) AddTransition(start, event, end string) (Transition, error) {
	s, ok := a.stateIdx[start]
	if !ok {
		return Transition{}, &UnknownStateError{Label: start}
	}
	e, ok := a.eventIdx[event]
	if !ok {
		return Transition{}, &UnknownEventError{Label: event}
	}
	d, ok := a.stateIdx[end]
	if !ok {
		return Transition{}, &UnknownStateError{Label: end}
	}
	t := Transition{Start: s, Event: e, End: d}
	a.delta = append(a.delta, t)
	a.invalidate()
	return t, nil
}

// State looks up a state by label.
func (a *Automaton) State(label string) (*State, bool) {
	s, ok := a.stateIdx[label]
	return s, ok
}

// Event looks up an event by label.
func (a *Automaton) Event(label string) (*Event, bool) {
	e, ok := a.eventIdx[label]
	return e, ok
}

// States returns X in insertion order.
func (a *Automaton) States() []*State {
	return append([]*State(nil), a.states...)
}

// Events returns E in insertion order.
func (a *Automaton) Events() []*Event {
	return append([]*Event(nil), a.events...)
}

// InitialStates returns x0 in insertion order.
func (a *Automaton) InitialStates() []*State {
	return append([]*State(nil), a.initial...)
}

// FinalStates returns Xm in insertion order.
func (a *Automaton) FinalStates() []*State {
	return append([]*State(nil), a.final...)
}

// Transitions returns the whole relation in insertion order.
func (a *Automaton) Transitions() []Transition {
	return append([]Transition(nil), a.delta...)
}

// Filter returns the entries of the relation matching f. Labels in f must
// name existing states and events.
func (a *Automaton) Filter(f TransitionFilter) ([]Transition, error) {
	if f.Start != "" {
		if _, ok := a.stateIdx[f.Start]; !ok {
			return nil, &UnknownStateError{Label: f.Start}
		}
	}
	if f.Event != "" {
		if _, ok := a.eventIdx[f.Event]; !ok {
			return nil, &UnknownEventError{Label: f.Event}
		}
	}
	if f.End != "" {
		if _, ok := a.stateIdx[f.End]; !ok {
			return nil, &UnknownStateError{Label: f.End}
		}
	}
	return a.Index().Filter(f), nil
}

// Index returns the adjacency view of the current revision, building it on
// first use after a mutation.
func (a *Automaton) Index() *Index {
	if a.index == nil {
		a.mustOwnRelation()
		a.index = newIndex(a.delta)
	}
	return a.index
}

// Revision increments on every mutation that can change an analysis.
func (a *Automaton) Revision() uint64 {
	return a.revision
}

// ComputeCount returns how many times an analysis actually ran over the
// lifetime of the automaton.
func (a *Automaton) ComputeCount(kind Computation) int {
	return a.counts[kind]
}

func (a *Automaton) invalidate() {
	a.revision++
	a.index = nil
	a.memo = memo{}
	for _, s := range a.states {
		s.resetAnnotations()
	}
}

// mustOwnRelation panics if an entry of the relation points outside the
// automaton. Only an unchecked write can cause that.
func (a *Automaton) mustOwnRelation() {
	for i, t := range a.delta {
		if t.Start == nil || t.Event == nil || t.End == nil ||
			a.stateIdx[t.Start.label] != t.Start ||
			a.eventIdx[t.Event.label] != t.Event ||
			a.stateIdx[t.End.label] != t.End {
			panic(fmt.Sprintf("domain: relation entry %d references an entity outside the automaton", i))
		}
	}
}

func labels(states []*State) []string {
	out := make([]string, len(states))
	for i, s := range states {
		out[i] = s.label
	}
	return out
}
