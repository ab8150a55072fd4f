package domain

// Transition is one entry (start, event, end) of the transition relation.
type Transition struct {
	Start *State
	Event *Event
	End   *State
}

func (t Transition) String() string {
	return t.Start.label + " -" + t.Event.label + "-> " + t.End.label
}

// TransitionFilter selects entries of the relation. Empty fields match
// everything; provided fields must all match.
type TransitionFilter struct {
	Start string
	Event string
	End   string
}

// IsZero reports whether no field is set.
func (f TransitionFilter) IsZero() bool {
	return f.Start == "" && f.Event == "" && f.End == ""
}

func (f TransitionFilter) matches(t Transition) bool {
	if f.Start != "" && t.Start.label != f.Start {
		return false
	}
	if f.Event != "" && t.Event.label != f.Event {
		return false
	}
	if f.End != "" && t.End.label != f.End {
		return false
	}
	return true
}
