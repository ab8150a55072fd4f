// Package observability exposes analysis activity as Prometheus metrics and
// structured log lines.
//
// Both are delivered through domain.AnalysisHooks, so any automaton (or a
// workspace.Manager via WithHooks) can be instrumented without the core
// knowing about Prometheus or slog.
package observability
