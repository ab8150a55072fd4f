package observability

import (
	"errors"
	"fmt"

	"github.com/aretw0/fsa/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Analysis outcomes used as the "result" label of fsa_analyses_total.
const (
	ResultOK         = "ok"
	ResultDegenerate = "degenerate"
	ResultError      = "error"
)

// Metrics holds the analyzer's Prometheus collectors.
type Metrics struct {
	Computations *prometheus.CounterVec
	Visited      *prometheus.HistogramVec
	Duration     *prometheus.HistogramVec
	Analyses     *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Computations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fsa_closure_computations_total",
				Help: "Total number of analyses actually computed (memo misses)",
			},
			[]string{"kind"},
		),
		Visited: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fsa_closure_visited_states",
				Help:    "States visited or marked per computation",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
			[]string{"kind"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fsa_closure_duration_seconds",
				Help:    "Duration of computations",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
			[]string{"kind"},
		),
		Analyses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fsa_analyses_total",
				Help: "Total number of full analyses by outcome",
			},
			[]string{"result"},
		),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{m.Computations, m.Visited, m.Duration, m.Analyses} {
			if err := reg.Register(c); err != nil {
				return nil, fmt.Errorf("failed to register metrics: %w", err)
			}
		}
	}
	return m, nil
}

// Hooks returns analysis hooks that record every computation.
func (m *Metrics) Hooks() domain.AnalysisHooks {
	return domain.AnalysisHooks{
		OnCompute: func(e *domain.ComputeEvent) {
			kind := string(e.Kind)
			m.Computations.WithLabelValues(kind).Inc()
			m.Visited.WithLabelValues(kind).Observe(float64(e.Visited))
			m.Duration.WithLabelValues(kind).Observe(e.Duration.Seconds())
		},
	}
}

// ObserveAnalysis counts one full analysis. Its signature matches
// workspace.Observer.
func (m *Metrics) ObserveAnalysis(_ string, _ *domain.Report, err error) {
	m.Analyses.WithLabelValues(Result(err)).Inc()
}

// Result classifies an analysis error into a result label.
func Result(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, domain.ErrDegenerateInitialSet):
		return ResultDegenerate
	default:
		return ResultError
	}
}
