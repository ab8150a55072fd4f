package workspace_test

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/fsa/pkg/adapters/redis"
	"github.com/aretw0/fsa/pkg/domain"
	"github.com/aretw0/fsa/pkg/dsl"
	"github.com/aretw0/fsa/pkg/workspace"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SlowStore simulates latency and records overlapping writes per name.
type SlowStore struct {
	mu       sync.Mutex
	data     map[string]*domain.Report
	inFlight map[string]int
	overlaps int32
}

func (s *SlowStore) Save(ctx context.Context, name string, r *domain.Report) error {
	s.mu.Lock()
	if s.inFlight == nil {
		s.inFlight = map[string]int{}
		s.data = map[string]*domain.Report{}
	}
	s.inFlight[name]++
	if s.inFlight[name] > 1 {
		atomic.AddInt32(&s.overlaps, 1)
	}
	s.mu.Unlock()

	time.Sleep(5 * time.Millisecond) // Simulate IO

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight[name]--
	s.data[name] = r.Clone()
	return nil
}

func (s *SlowStore) Load(ctx context.Context, name string) (*domain.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.data[name]; ok {
		return r.Clone(), nil
	}
	return nil, domain.ErrReportNotFound
}

func (s *SlowStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

func (s *SlowStore) List(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.data))
	for n := range s.data {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

func plant(t *testing.T) *domain.Automaton {
	t.Helper()
	b := dsl.New()
	b.State("s0").Initial().Final().On("a", "s1")
	b.State("s1").On("b", "s0").On("f", "s2")
	b.State("s2")
	return b.MustBuild()
}

func TestManager_AnalyzePersists(t *testing.T) {
	store := &SlowStore{}
	var observed []string
	m := workspace.NewManager(store, workspace.WithObserver(func(name string, r *domain.Report, err error) {
		assert.NoError(t, err)
		observed = append(observed, name)
	}))
	ctx := context.Background()

	report, err := m.Analyze(ctx, "plant", plant(t))
	require.NoError(t, err)
	assert.Equal(t, "plant", report.Name)
	assert.True(t, report.Blocking)

	loaded, err := m.Report(ctx, "plant")
	require.NoError(t, err)
	assert.Equal(t, report, loaded)

	names, err := m.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"plant"}, names)
	assert.Equal(t, []string{"plant"}, observed)

	require.NoError(t, m.Delete(ctx, "plant"))
	_, err = m.Report(ctx, "plant")
	assert.ErrorIs(t, err, domain.ErrReportNotFound)
}

func TestManager_AnalyzeErrors(t *testing.T) {
	m := workspace.NewManager(&SlowStore{})
	ctx := context.Background()

	_, err := m.Analyze(ctx, "", plant(t))
	assert.Error(t, err)

	_, err = m.Analyze(ctx, "empty", domain.New())
	assert.ErrorIs(t, err, domain.ErrDegenerateInitialSet)

	names, err := m.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, names, "failed analyses are not persisted")
}

func TestManager_Hooks(t *testing.T) {
	var kinds []domain.Computation
	m := workspace.NewManager(&SlowStore{}, workspace.WithHooks(domain.AnalysisHooks{
		OnCompute: func(e *domain.ComputeEvent) { kinds = append(kinds, e.Kind) },
	}))

	_, err := m.Analyze(context.Background(), "plant", plant(t))
	require.NoError(t, err)
	assert.ElementsMatch(t, domain.Computations, kinds)
}

func TestManager_KeepsAutomatonHooks(t *testing.T) {
	var own, managed int
	m := workspace.NewManager(&SlowStore{}, workspace.WithHooks(domain.AnalysisHooks{
		OnCompute: func(*domain.ComputeEvent) { managed++ },
	}))

	a := plant(t)
	a.SetHooks(domain.AnalysisHooks{OnCompute: func(*domain.ComputeEvent) { own++ }})

	_, err := m.Analyze(context.Background(), "plant", a)
	require.NoError(t, err)
	assert.Equal(t, len(domain.Computations), own)
	assert.Equal(t, len(domain.Computations), managed)

	// Outside the manager only the automaton's own hooks fire.
	_, err = a.AddState("extra", false, false)
	require.NoError(t, err)
	_, err = a.Reachability()
	require.NoError(t, err)
	assert.Equal(t, len(domain.Computations)+1, own)
	assert.Equal(t, len(domain.Computations), managed)
}

func TestManager_SerializesPerName(t *testing.T) {
	store := &SlowStore{}
	m := workspace.NewManager(store)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Each goroutine owns its automaton; only the name is shared.
			_, err := m.Analyze(ctx, "shared", plant(t))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Zero(t, atomic.LoadInt32(&store.overlaps), "saves for one name must not overlap")
}

func TestManager_DistributedLock(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	defer client.Close()

	store := redis.NewFromClient(client)
	// Two managers stand in for two replicas.
	m1 := workspace.NewManager(store, workspace.WithLocker(redis.NewLocker(client, "fsa:")))
	m2 := workspace.NewManager(store, workspace.WithLocker(redis.NewLocker(client, "fsa:")))
	ctx := context.Background()

	release := make(chan struct{})
	held := make(chan struct{})
	go func() {
		_ = m1.WithLock(ctx, "plant", func(ctx context.Context) error {
			close(held)
			<-release
			return nil
		})
	}()
	<-held

	short, cancel := context.WithTimeout(ctx, 250*time.Millisecond)
	defer cancel()
	_, err = m2.Analyze(short, "plant", plant(t))
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
	_, err = m2.Analyze(ctx, "plant", plant(t))
	assert.NoError(t, err)
}
