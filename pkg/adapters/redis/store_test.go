package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/fsa/pkg/adapters/redis"
	"github.com/aretw0/fsa/pkg/domain"
	"github.com/aretw0/fsa/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := setup(t)
	store := redis.NewFromClient(client)
	ports.RunReportStoreContract(t, store)
}

func TestRedisStore_TTL(t *testing.T) {
	mr, client := setup(t)
	ctx := context.Background()
	store := redis.NewFromClient(client, redis.WithPrefix("test:"), redis.WithTTL(time.Minute))

	require.NoError(t, store.Save(ctx, "plant", &domain.Report{Name: "plant"}))
	assert.True(t, mr.Exists("test:plant"))
	assert.Equal(t, time.Minute, mr.TTL("test:plant"))

	mr.FastForward(2 * time.Minute)
	_, err := store.Load(ctx, "plant")
	assert.ErrorIs(t, err, domain.ErrReportNotFound)
}
