package dsl

import "github.com/aretw0/fsa/pkg/schema"

type edge struct {
	event  string
	target string
}

// StateBuilder provides a fluent API for configuring a state.
type StateBuilder struct {
	entry   schema.StateEntry
	edges   []edge
	builder *Builder
}

// Initial marks the state as a member of x0.
func (s *StateBuilder) Initial() *StateBuilder {
	s.entry.IsInit = true
	return s
}

// Final marks the state as marked (a member of Xm).
func (s *StateBuilder) Final() *StateBuilder {
	s.entry.IsFinal = true
	return s
}

// On adds a transition from this state on event to target.
// Repeating an (event, target) pair adds a parallel transition.
func (s *StateBuilder) On(event, target string) *StateBuilder {
	s.builder.Event(event)
	s.edges = append(s.edges, edge{event: event, target: target})
	return s
}

// Loop adds a self-loop on event.
func (s *StateBuilder) Loop(event string) *StateBuilder {
	return s.On(event, s.entry.Label)
}

// EventBuilder provides a fluent API for configuring an event.
type EventBuilder struct {
	entry schema.EventEntry
}

func (e *EventBuilder) Observable() *EventBuilder {
	e.entry.IsObservable = true
	return e
}

func (e *EventBuilder) Controllable() *EventBuilder {
	e.entry.IsControllable = true
	return e
}

func (e *EventBuilder) Fault() *EventBuilder {
	e.entry.IsFault = true
	return e
}
