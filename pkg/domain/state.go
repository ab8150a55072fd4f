package domain

// State is a node of the automaton.
//
// Initial and Final are fixed at creation. The remaining fields are
// annotations written by the analyses of the owning Automaton and are Unknown
// until the corresponding analysis runs for the current revision.
type State struct {
	label   string
	initial bool
	final   bool

	reachable            Tristate
	coReachable          Tristate
	blocking             Tristate
	dead                 Tristate
	coReachableToInitial Tristate
}

// Label returns the identity of the state.
func (s *State) Label() string { return s.label }

// IsInitial reports whether the state belongs to x0.
func (s *State) IsInitial() bool { return s.initial }

// IsFinal reports whether the state belongs to Xm.
func (s *State) IsFinal() bool { return s.final }

// IsReachable is True when some path leads from x0 to the state.
func (s *State) IsReachable() Tristate { return s.reachable }

// IsCoReachable is True when some path leads from the state to Xm.
func (s *State) IsCoReachable() Tristate { return s.coReachable }

// IsBlocking is True when the state is reachable but not co-reachable.
func (s *State) IsBlocking() Tristate { return s.blocking }

// IsDead is True when the state has no outgoing transition.
func (s *State) IsDead() Tristate { return s.dead }

// IsCoReachableToInitial is True when some path leads from the state back to x0.
func (s *State) IsCoReachableToInitial() Tristate { return s.coReachableToInitial }

func (s *State) String() string { return s.label }

func (s *State) resetAnnotations() {
	s.reachable = Unknown
	s.coReachable = Unknown
	s.blocking = Unknown
	s.dead = Unknown
	s.coReachableToInitial = Unknown
}
