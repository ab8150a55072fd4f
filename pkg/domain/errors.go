package domain

import (
	"errors"
	"fmt"
)

// ErrDegenerateInitialSet is returned when a closure seeded by x0 is
// requested while x0 is empty.
var ErrDegenerateInitialSet = errors.New("automaton has no initial state")

// ErrReportNotFound is returned when a report cannot be found in a store.
var ErrReportNotFound = errors.New("report not found")

// EntityKind names the kind of labeled entity an error refers to.
type EntityKind string

const (
	KindState EntityKind = "state"
	KindEvent EntityKind = "event"
)

// DuplicateLabelError is returned when a state or event label is already
// taken. The automaton is left unchanged.
type DuplicateLabelError struct {
	Kind  EntityKind
	Label string
}

func (e *DuplicateLabelError) Error() string {
	return fmt.Sprintf("duplicate %s label %q", e.Kind, e.Label)
}

// UnknownStateError is returned when a label does not name a state of the
// automaton.
type UnknownStateError struct {
	Label string
}

func (e *UnknownStateError) Error() string {
	return fmt.Sprintf("unknown state %q", e.Label)
}

// UnknownEventError is returned when a label does not name an event of the
// alphabet.
type UnknownEventError struct {
	Label string
}

func (e *UnknownEventError) Error() string {
	return fmt.Sprintf("unknown event %q", e.Label)
}

// ReferenceField names the component of a transition entry.
type ReferenceField string

const (
	FieldStart ReferenceField = "start"
	FieldEvent ReferenceField = "event"
	FieldEnd   ReferenceField = "end"
)

// InvalidTransitionReferenceError is the bulk-load variant of
// UnknownStateError and UnknownEventError. Key identifies the source entry.
type InvalidTransitionReferenceError struct {
	Key   string
	Field ReferenceField
	Label string
	Err   error
}

func (e *InvalidTransitionReferenceError) Error() string {
	return fmt.Sprintf("transition %q: invalid %s reference %q", e.Key, e.Field, e.Label)
}

func (e *InvalidTransitionReferenceError) Unwrap() error {
	return e.Err
}
