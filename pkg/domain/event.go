package domain

// Event is a symbol of the alphabet.
//
// The classification flags are carried for collaborators such as diagnosers
// and supervisors; no structural analysis reads them.
type Event struct {
	label        string
	observable   bool
	controllable bool
	fault        bool
}

// Label returns the identity of the event.
func (e *Event) Label() string { return e.label }

// IsObservable reports whether occurrences of the event can be observed.
func (e *Event) IsObservable() bool { return e.observable }

// IsControllable reports whether the event can be disabled by a supervisor.
func (e *Event) IsControllable() bool { return e.controllable }

// IsFault reports whether the event models a fault.
func (e *Event) IsFault() bool { return e.fault }

func (e *Event) String() string { return e.label }
