package fsa

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/fsa/internal/logging"
	"github.com/aretw0/fsa/pkg/adapters/memory"
	"github.com/aretw0/fsa/pkg/domain"
	"github.com/aretw0/fsa/pkg/observability"
	"github.com/aretw0/fsa/pkg/ports"
	"github.com/aretw0/fsa/pkg/schema"
	"github.com/aretw0/fsa/pkg/workspace"
)

// Analyzer is the high-level entry point for the library.
// It runs analyses through a workspace so reports are persisted and
// concurrent analyses of one name are serialized.
type Analyzer struct {
	manager *workspace.Manager
	store   ports.ReportStore
	locker  ports.DistributedLocker
	hooks   []domain.AnalysisHooks
	metrics *observability.Metrics
	logger  *slog.Logger
}

// Option defines a functional option for configuring the Analyzer.
type Option func(*Analyzer)

// WithStore sets the report store (default: in memory).
func WithStore(store ports.ReportStore) Option {
	return func(a *Analyzer) {
		a.store = store
	}
}

// WithLocker enables distributed locking of automaton names.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(a *Analyzer) {
		a.locker = locker
	}
}

// WithAnalysisHooks registers observability hooks. May be given more than once.
func WithAnalysisHooks(hooks domain.AnalysisHooks) Option {
	return func(a *Analyzer) {
		a.hooks = append(a.hooks, hooks)
	}
}

// WithMetrics records computations and analysis outcomes on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(a *Analyzer) {
		a.metrics = m
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// New initializes a new Analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(a)
	}
	if a.store == nil {
		a.store = memory.NewStore()
	}

	hooks := append([]domain.AnalysisHooks{observability.LoggingHooks(a.logger)}, a.hooks...)
	wsOpts := []workspace.Option{workspace.WithLogger(a.logger)}
	if a.locker != nil {
		wsOpts = append(wsOpts, workspace.WithLocker(a.locker))
	}
	if a.metrics != nil {
		hooks = append(hooks, a.metrics.Hooks())
		wsOpts = append(wsOpts, workspace.WithObserver(a.metrics.ObserveAnalysis))
	}
	wsOpts = append(wsOpts, workspace.WithHooks(domain.ChainHooks(hooks...)))

	a.manager = workspace.NewManager(a.store, wsOpts...)
	return a
}

// Analyze runs every analysis on automaton and stores the report under name.
func (a *Analyzer) Analyze(ctx context.Context, name string, automaton *domain.Automaton) (*domain.Report, error) {
	return a.manager.Analyze(ctx, name, automaton)
}

// AnalyzeDefinition builds the automaton described by def and analyzes it.
func (a *Analyzer) AnalyzeDefinition(ctx context.Context, name string, def *schema.Definition) (*domain.Report, error) {
	automaton, err := def.Build()
	if err != nil {
		return nil, err
	}
	return a.Analyze(ctx, name, automaton)
}

// Report returns the last report stored under name.
// Returns domain.ErrReportNotFound if there is none.
func (a *Analyzer) Report(ctx context.Context, name string) (*domain.Report, error) {
	return a.manager.Report(ctx, name)
}

// Reports lists the names of stored reports.
func (a *Analyzer) Reports(ctx context.Context) ([]string, error) {
	return a.manager.List(ctx)
}

// Delete removes the report stored under name.
func (a *Analyzer) Delete(ctx context.Context, name string) error {
	return a.manager.Delete(ctx, name)
}

// Manager exposes the underlying workspace.
func (a *Analyzer) Manager() *workspace.Manager {
	return a.manager
}

// Parse decodes a definition document and builds its automaton.
func Parse(data []byte, format schema.Format, opts ...domain.Option) (*domain.Automaton, error) {
	def, err := schema.Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to decode definition: %w", err)
	}
	return def.Build(opts...)
}

// LoadFile reads a definition file (format from its extension) and builds
// its automaton.
func LoadFile(path string, opts ...domain.Option) (*domain.Automaton, error) {
	def, err := schema.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return def.Build(opts...)
}
