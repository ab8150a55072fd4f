package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/fsa/pkg/domain"
)

// Section names of a definition document.
const (
	SectionStates      = "X"
	SectionEvents      = "E"
	SectionTransitions = "delta"
)

// Format is the encoding of a definition document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" and "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported definition format %q", s)
	}
}

// FormatOf guesses the format from a file extension. Anything that is not
// YAML is read as JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// StateEntry is one entry of X.
type StateEntry struct {
	Label   string
	IsInit  bool
	IsFinal bool
}

// EventEntry is one entry of E.
type EventEntry struct {
	Label          string
	IsObservable   bool
	IsControllable bool
	IsFault        bool
}

// TransitionEntry is one entry of delta. Name is the event label and Ends
// the end state label, as spelled in the document.
type TransitionEntry struct {
	Key   string
	Start string
	Name  string
	Ends  string
}

// Definition is a decoded document, entries in document order.
type Definition struct {
	States      []StateEntry
	Events      []EventEntry
	Transitions []TransitionEntry
}

// ReadFile reads and decodes a definition, picking the format from the
// file extension.
func ReadFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition: %w", err)
	}
	def, err := Decode(data, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// Build constructs the automaton described by the definition.
//
// Entities are added in document order. The first transition with a
// dangling reference fails the whole construction.
func (d *Definition) Build(opts ...domain.Option) (*domain.Automaton, error) {
	a := domain.New(opts...)

	for _, s := range d.States {
		if _, err := a.AddState(s.Label, s.IsInit, s.IsFinal); err != nil {
			return nil, fmt.Errorf("%s: %w", SectionStates, err)
		}
	}
	for _, e := range d.Events {
		if _, err := a.AddEvent(e.Label, e.IsObservable, e.IsControllable, e.IsFault); err != nil {
			return nil, fmt.Errorf("%s: %w", SectionEvents, err)
		}
	}
	for _, t := range d.Transitions {
		if err := checkReferences(a, t); err != nil {
			return nil, err
		}
		if _, err := a.AddTransition(t.Start, t.Name, t.Ends); err != nil {
			return nil, fmt.Errorf("%s.%s: %w", SectionTransitions, t.Key, err)
		}
	}
	return a, nil
}

func checkReferences(a *domain.Automaton, t TransitionEntry) error {
	if _, ok := a.State(t.Start); !ok {
		return &domain.InvalidTransitionReferenceError{
			Key: t.Key, Field: domain.FieldStart, Label: t.Start,
			Err: &domain.UnknownStateError{Label: t.Start},
		}
	}
	if _, ok := a.Event(t.Name); !ok {
		return &domain.InvalidTransitionReferenceError{
			Key: t.Key, Field: domain.FieldEvent, Label: t.Name,
			Err: &domain.UnknownEventError{Label: t.Name},
		}
	}
	if _, ok := a.State(t.Ends); !ok {
		return &domain.InvalidTransitionReferenceError{
			Key: t.Key, Field: domain.FieldEnd, Label: t.Ends,
			Err: &domain.UnknownStateError{Label: t.Ends},
		}
	}
	return nil
}

// FromAutomaton describes an automaton as a definition. Transition keys are
// generated as t0, t1, ... in relation order.
func FromAutomaton(a *domain.Automaton) *Definition {
	d := &Definition{}
	for _, s := range a.States() {
		d.States = append(d.States, StateEntry{Label: s.Label(), IsInit: s.IsInitial(), IsFinal: s.IsFinal()})
	}
	for _, e := range a.Events() {
		d.Events = append(d.Events, EventEntry{
			Label:          e.Label(),
			IsObservable:   e.IsObservable(),
			IsControllable: e.IsControllable(),
			IsFault:        e.IsFault(),
		})
	}
	for i, t := range a.Transitions() {
		d.Transitions = append(d.Transitions, TransitionEntry{
			Key:   fmt.Sprintf("t%d", i),
			Start: t.Start.Label(),
			Name:  t.Event.Label(),
			Ends:  t.End.Label(),
		})
	}
	return d
}
