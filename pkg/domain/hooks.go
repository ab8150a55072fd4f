package domain

import "time"

// Computation names one memoized analysis of an Automaton.
type Computation string

const (
	ComputeReachability            Computation = "reachability"
	ComputeCoReachability          Computation = "co_reachability"
	ComputeCoReachabilityToInitial Computation = "co_reachability_to_initial"
	ComputeDeadness                Computation = "deadness"
	ComputeBlockingness            Computation = "blockingness"
	ComputeTrimness                Computation = "trimness"
	ComputeReversibility           Computation = "reversibility"
)

// Computations lists every analysis in dependency order.
var Computations = []Computation{
	ComputeReachability,
	ComputeCoReachability,
	ComputeDeadness,
	ComputeCoReachabilityToInitial,
	ComputeBlockingness,
	ComputeTrimness,
	ComputeReversibility,
}

// ComputeEvent describes one analysis that actually ran (memoized hits are
// not reported).
type ComputeEvent struct {
	Kind     Computation   `json:"kind"`
	Revision uint64        `json:"revision"`
	Seeds    int           `json:"seeds"`
	Visited  int           `json:"visited"`
	Duration time.Duration `json:"duration"`
}

// AnalysisHooks defines callbacks for analysis observability.
type AnalysisHooks struct {
	OnCompute func(*ComputeEvent)
}

// ChainHooks returns hooks that call every non-nil callback in order.
func ChainHooks(hooks ...AnalysisHooks) AnalysisHooks {
	return AnalysisHooks{
		OnCompute: func(e *ComputeEvent) {
			for _, h := range hooks {
				if h.OnCompute != nil {
					h.OnCompute(e)
				}
			}
		},
	}
}

func (h AnalysisHooks) emit(e *ComputeEvent) {
	if h.OnCompute != nil {
		h.OnCompute(e)
	}
}
