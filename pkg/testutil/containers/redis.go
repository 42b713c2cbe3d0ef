//go:build integration

package containers

import (
	"context"
	"strings"
	"testing"

	"github.com/redis/go-redis/v9"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// RedisContainer backs the deadline index tests. Suites share one instance
// and isolate themselves by key.
type RedisContainer struct {
	Container *tcredis.RedisContainer
	Client    *redis.Client
}

func NewRedisContainer(t *testing.T) *RedisContainer {
	t.Helper()
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		t.Fatalf("start redis: %v", err)
	}
	uri, err := container.ConnectionString(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("redis connection string: %v", err)
	}
	opts, err := redis.ParseURL(uri)
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("parse redis url %q: %v", uri, err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		_ = container.Terminate(ctx)
		t.Fatalf("ping redis: %v", err)
	}
	return &RedisContainer{Container: container, Client: client}
}

// IndexKey returns a deadline index key unique to t and deletes it when t
// finishes.
func (r *RedisContainer) IndexKey(t *testing.T, name string) string {
	t.Helper()
	key := "arbiter:test:" + strings.ReplaceAll(t.Name(), "/", ":") + ":" + name
	t.Cleanup(func() { _ = r.Client.Del(context.Background(), key).Err() })
	return key
}
