package observability

import (
	"log/slog"

	"github.com/aretw0/fsa/pkg/domain"
)

// LoggingHooks logs each computation at debug level.
func LoggingHooks(logger *slog.Logger) domain.AnalysisHooks {
	return domain.AnalysisHooks{
		OnCompute: func(e *domain.ComputeEvent) {
			logger.Debug("computation",
				"kind", e.Kind,
				"revision", e.Revision,
				"seeds", e.Seeds,
				"visited", e.Visited,
				"duration", e.Duration,
			)
		},
	}
}
