package ports

import (
	"context"

	"github.com/aretw0/fsa/pkg/domain"
)

// ReportStore defines the interface for persisting analysis reports.
// Reports are keyed by automaton name; saving under an existing name
// replaces the previous report.
type ReportStore interface {
	// Save persists the report under name.
	Save(ctx context.Context, name string, report *domain.Report) error

	// Load retrieves the report stored under name.
	// Returns domain.ErrReportNotFound if there is none.
	Load(ctx context.Context, name string) (*domain.Report, error)

	// Delete removes the report. Deleting a missing report is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the names of every stored report, sorted.
	List(ctx context.Context) ([]string, error)
}
