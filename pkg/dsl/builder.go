package dsl

import (
	"fmt"

	"github.com/aretw0/fsa/pkg/domain"
	"github.com/aretw0/fsa/pkg/schema"
)

// Builder manages the automaton construction.
type Builder struct {
	states   []*StateBuilder
	stateIdx map[string]*StateBuilder
	events   []*EventBuilder
	eventIdx map[string]*EventBuilder
}

// New creates a new automaton builder.
func New() *Builder {
	return &Builder{
		stateIdx: make(map[string]*StateBuilder),
		eventIdx: make(map[string]*EventBuilder),
	}
}

// State declares a state.
// If the state already exists, it returns the existing builder.
func (b *Builder) State(label string) *StateBuilder {
	if sb, ok := b.stateIdx[label]; ok {
		return sb
	}
	sb := &StateBuilder{entry: schema.StateEntry{Label: label}, builder: b}
	b.stateIdx[label] = sb
	b.states = append(b.states, sb)
	return sb
}

// Event declares an event.
// If the event already exists, it returns the existing builder.
func (b *Builder) Event(label string) *EventBuilder {
	if eb, ok := b.eventIdx[label]; ok {
		return eb
	}
	eb := &EventBuilder{entry: schema.EventEntry{Label: label}}
	b.eventIdx[label] = eb
	b.events = append(b.events, eb)
	return eb
}

// Definition returns the declarations as a definition document, in
// declaration order. Transition keys are t0, t1, ...
func (b *Builder) Definition() *schema.Definition {
	def := &schema.Definition{}
	for _, sb := range b.states {
		def.States = append(def.States, sb.entry)
	}
	for _, eb := range b.events {
		def.Events = append(def.Events, eb.entry)
	}
	for _, sb := range b.states {
		for _, e := range sb.edges {
			def.Transitions = append(def.Transitions, schema.TransitionEntry{
				Key:   fmt.Sprintf("t%d", len(def.Transitions)),
				Start: sb.entry.Label,
				Name:  e.event,
				Ends:  e.target,
			})
		}
	}
	return def
}

// Build compiles the declarations into an automaton.
func (b *Builder) Build(opts ...domain.Option) (*domain.Automaton, error) {
	a, err := b.Definition().Build(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build automaton: %w", err)
	}
	return a, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild(opts ...domain.Option) *domain.Automaton {
	a, err := b.Build(opts...)
	if err != nil {
		panic(err)
	}
	return a
}
