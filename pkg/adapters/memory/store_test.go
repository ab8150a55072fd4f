package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/fsa/pkg/adapters/memory"
	"github.com/aretw0/fsa/pkg/domain"
	"github.com/aretw0/fsa/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunReportStoreContract(t, store)
}

func TestMemoryStore_Isolation(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	report := &domain.Report{Name: "p", StateReports: []domain.StateReport{{Label: "s0"}}}
	require.NoError(t, store.Save(ctx, "p", report))
	report.StateReports[0].Label = "mutated"

	loaded, err := store.Load(ctx, "p")
	require.NoError(t, err)
	assert.Equal(t, "s0", loaded.StateReports[0].Label)

	loaded.StateReports[0].Label = "mutated again"
	again, err := store.Load(ctx, "p")
	require.NoError(t, err)
	assert.Equal(t, "s0", again.StateReports[0].Label)
}
