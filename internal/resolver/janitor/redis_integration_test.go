//go:build integration

package janitor_test

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"arbiter/internal/resolver/janitor"
	"arbiter/pkg/domain"
	"arbiter/pkg/testutil/containers"
)

func TestRedisIndex(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	rc := containers.GetManager().GetRedis(t)
	ctx := context.Background()

	t.Run("shared behaviour", func(t *testing.T) {
		exerciseIndex(t, janitor.NewRedisIndex(rc.Client, rc.IndexKey(t, "shared")))
	})

	t.Run("foreign members are dropped", func(t *testing.T) {
		key := rc.IndexKey(t, "foreign")
		idx := janitor.NewRedisIndex(rc.Client, key)
		require.NoError(t, rc.Client.ZAdd(ctx, key, redisZ("not-an-address", 5)).Err())
		require.NoError(t, idx.Schedule(ctx, domain.Address{0x09}, 6))

		due, err := idx.Due(ctx, 10, 10)
		require.NoError(t, err)
		require.Equal(t, []domain.Address{{0x09}}, due)

		n, err := idx.Len(ctx)
		require.NoError(t, err)
		require.Equal(t, 1, n)
	})

	t.Run("keys are isolated", func(t *testing.T) {
		one := janitor.NewRedisIndex(rc.Client, rc.IndexKey(t, "one"))
		two := janitor.NewRedisIndex(rc.Client, rc.IndexKey(t, "two"))
		require.NoError(t, one.Schedule(ctx, domain.Address{0x01}, 1))

		n, err := two.Len(ctx)
		require.NoError(t, err)
		require.Zero(t, n)
	})
}

func redisZ(member string, score float64) redis.Z {
	return redis.Z{Member: member, Score: score}
}
