package ports

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/fsa/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunReportStoreContract runs a suite of tests to verify that a ReportStore implementation
// adheres to the defined interface contract.
func RunReportStoreContract(t *testing.T, store ReportStore) {
	ctx := context.Background()
	name := "contract-" + time.Now().Format("20060102150405")

	sample := func(n string) *domain.Report {
		return &domain.Report{
			Name:        n,
			Revision:    3,
			States:      2,
			Events:      1,
			Transitions: 1,
			Reachable:   true,
			Blocking:    true,
			StateReports: []domain.StateReport{
				{Label: "s0", Initial: true, Reachable: domain.True, CoReachable: domain.False, Blocking: domain.True, Dead: domain.False},
				{Label: "s1", Reachable: domain.True, CoReachable: domain.False, Blocking: domain.True, Dead: domain.True},
			},
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		report := sample(name)
		require.NoError(t, store.Save(ctx, name, report), "Save should not return error")

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, report, loaded)
		// Unknown annotations must survive the round trip as Unknown.
		assert.Equal(t, domain.Unknown, loaded.StateReports[0].CoReachableToInitial)
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		report := sample(name)
		report.Revision = 9
		require.NoError(t, store.Save(ctx, name, report))

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, uint64(9), loaded.Revision)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, domain.ErrReportNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, name, sample(name)))

		require.NoError(t, store.Delete(ctx, name), "Delete should not return error")

		_, err := store.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrReportNotFound, "Load after Delete should return ErrReportNotFound")

		assert.NoError(t, store.Delete(ctx, name), "Deleting twice should not fail")
	})

	t.Run("List", func(t *testing.T) {
		id1 := name + "-a"
		id2 := name + "-b"
		require.NoError(t, store.Save(ctx, id2, sample(id2)))
		require.NoError(t, store.Save(ctx, id1, sample(id1)))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, id1)
		assert.Contains(t, names, id2)
		assert.IsNonDecreasing(t, names)
	})

	t.Run("Concurrent Saves", func(t *testing.T) {
		key := name + "-concurrent"
		defer func() { _ = store.Delete(ctx, key) }()

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(rev int) {
				defer wg.Done()
				r := sample(key)
				r.Revision = uint64(rev)
				assert.NoError(t, store.Save(ctx, key, r))
			}(i)
		}
		wg.Wait()

		loaded, err := store.Load(ctx, key)
		require.NoError(t, err)
		assert.Less(t, loaded.Revision, uint64(8))
	})
}
