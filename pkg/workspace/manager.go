package workspace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/fsa/internal/logging"
	"github.com/aretw0/fsa/pkg/domain"
	"github.com/aretw0/fsa/pkg/ports"
)

// DefaultLockTTL bounds how long a distributed lock survives a crashed holder.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Observer is notified after every Analyze call, successful or not.
type Observer func(name string, report *domain.Report, err error)

// Manager orchestrates analyses, ensuring safe concurrent operations.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	store ports.ReportStore

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	locker   ports.DistributedLocker // Optional distributed locker
	lockTTL  time.Duration
	hooks    *domain.AnalysisHooks
	observer Observer
	logger   *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL sets the distributed lock TTL (default DefaultLockTTL).
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.lockTTL = ttl
	}
}

// WithHooks installs analysis hooks on every automaton the Manager analyzes.
func WithHooks(hooks domain.AnalysisHooks) Option {
	return func(m *Manager) {
		m.hooks = &hooks
	}
}

// WithObserver registers a callback run after every analysis.
func WithObserver(fn Observer) Option {
	return func(m *Manager) {
		m.observer = fn
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a new Manager over the given report store.
func NewManager(store ports.ReportStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(name) after unlocking.
func (m *Manager) acquire(name string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[name]
	if !exists {
		entry = &lockEntry{}
		m.locks[name] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[name]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, name)
	}
}

// Analyze runs every analysis on a under the lock for name, then persists
// the report under name. The automaton must not be used by other goroutines
// while Analyze runs.
func (m *Manager) Analyze(ctx context.Context, name string, a *domain.Automaton) (*domain.Report, error) {
	if name == "" {
		return nil, errors.New("automaton name cannot be empty")
	}

	var report *domain.Report
	err := m.WithLock(ctx, name, func(ctx context.Context) error {
		if m.hooks != nil {
			prev := a.Hooks()
			a.SetHooks(domain.ChainHooks(prev, *m.hooks))
			defer a.SetHooks(prev)
		}

		start := time.Now()
		r, err := a.Analyze()
		if err != nil {
			return fmt.Errorf("analysis of %q failed: %w", name, err)
		}
		r.Name = name
		m.logger.Debug("analysis complete",
			"name", name,
			"revision", r.Revision,
			"states", r.States,
			"duration", time.Since(start),
		)

		if err := m.store.Save(ctx, name, r); err != nil {
			m.logger.Error("failed to persist report", "name", name, "err", err)
			return fmt.Errorf("failed to save report %q: %w", name, err)
		}
		report = r
		return nil
	})

	if m.observer != nil {
		m.observer(name, report, err)
	}
	return report, err
}

// Report loads the last report stored under name.
func (m *Manager) Report(ctx context.Context, name string) (*domain.Report, error) {
	var report *domain.Report
	err := m.WithLock(ctx, name, func(ctx context.Context) error {
		var err error
		report, err = m.store.Load(ctx, name)
		return err
	})
	return report, err
}

// Delete removes the report stored under name.
func (m *Manager) Delete(ctx context.Context, name string) error {
	return m.WithLock(ctx, name, func(ctx context.Context) error {
		return m.store.Delete(ctx, name)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying report store.
func (m *Manager) Store() ports.ReportStore {
	return m.store
}

// WithLock executes a function while holding the lock for name.
func (m *Manager) WithLock(ctx context.Context, name string, fn func(context.Context) error) error {
	entry := m.acquire(name)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(name)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, name, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"name", name,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
