package domain

// Report is a snapshot of every analysis of one revision of an Automaton.
type Report struct {
	Name        string `json:"name,omitempty"`
	Revision    uint64 `json:"revision"`
	States      int    `json:"states"`
	Events      int    `json:"events"`
	Transitions int    `json:"transitions"`

	Reachable   bool `json:"reachable"`
	CoReachable bool `json:"co_reachable"`
	Blocking    bool `json:"blocking"`
	Trim        bool `json:"trim"`
	Reversible  bool `json:"reversible"`

	// CoReachableToInitial is true when x0 can be reached from every state.
	CoReachableToInitial bool `json:"co_reachable_to_initial"`

	StateReports []StateReport `json:"state_reports"`
}

// StateReport holds the annotations of one state.
type StateReport struct {
	Label                string   `json:"label"`
	Initial              bool     `json:"initial,omitempty"`
	Final                bool     `json:"final,omitempty"`
	Reachable            Tristate `json:"reachable"`
	CoReachable          Tristate `json:"co_reachable"`
	Blocking             Tristate `json:"blocking"`
	Dead                 Tristate `json:"dead"`
	CoReachableToInitial Tristate `json:"co_reachable_to_initial"`
}

// BlockingStates returns the labels of blocking states.
func (r *Report) BlockingStates() []string {
	return r.labelsWhere(func(s StateReport) bool { return s.Blocking.Bool() })
}

// UnreachableStates returns the labels of states not reachable from x0.
func (r *Report) UnreachableStates() []string {
	return r.labelsWhere(func(s StateReport) bool { return s.Reachable == False })
}

// DeadStates returns the labels of states without outgoing transitions.
func (r *Report) DeadStates() []string {
	return r.labelsWhere(func(s StateReport) bool { return s.Dead.Bool() })
}

// State returns the report of one state.
func (r *Report) State(label string) (StateReport, bool) {
	for _, s := range r.StateReports {
		if s.Label == label {
			return s, true
		}
	}
	return StateReport{}, false
}

func (r *Report) labelsWhere(pred func(StateReport) bool) []string {
	var out []string
	for _, s := range r.StateReports {
		if pred(s) {
			out = append(out, s.Label)
		}
	}
	return out
}

func (a *Automaton) snapshot() *Report {
	r := &Report{
		Revision:             a.revision,
		States:               len(a.states),
		Events:               len(a.events),
		Transitions:          len(a.delta),
		Reachable:            a.memo.reachable.Bool(),
		CoReachable:          a.memo.coReachable.Bool(),
		Blocking:             a.memo.blocking.Bool(),
		Trim:                 a.memo.trim.Bool(),
		Reversible:           a.memo.reversible.Bool(),
		CoReachableToInitial: a.memo.coInitial.Bool(),
		StateReports:         make([]StateReport, len(a.states)),
	}
	for i, s := range a.states {
		r.StateReports[i] = StateReport{
			Label:                s.label,
			Initial:              s.initial,
			Final:                s.final,
			Reachable:            s.reachable,
			CoReachable:          s.coReachable,
			Blocking:             s.blocking,
			Dead:                 s.dead,
			CoReachableToInitial: s.coReachableToInitial,
		}
	}
	return r
}

// Clone returns a deep copy of the report.
func (r *Report) Clone() *Report {
	c := *r
	c.StateReports = append([]StateReport(nil), r.StateReports...)
	return &c
}
