package janitor

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"arbiter/pkg/domain"
)

const defaultIndexKey = "arbiter:janitor:deadlines"

// RedisIndex keeps the deadline index in a sorted set scored by slot, so
// several replicas share one view. Slots stay far below 2^53, where float
// scores are exact.
type RedisIndex struct {
	client *redis.Client
	key    string
}

func NewRedisIndex(client *redis.Client, key string) *RedisIndex {
	if key == "" {
		key = defaultIndexKey
	}
	return &RedisIndex{client: client, key: key}
}

func (r *RedisIndex) Schedule(ctx context.Context, proposal domain.Address, deleteDeadline uint64) error {
	err := r.client.ZAdd(ctx, r.key, redis.Z{Score: float64(deleteDeadline), Member: proposal.String()}).Err()
	if err != nil {
		return fmt.Errorf("schedule %s: %w", proposal, err)
	}
	return nil
}

func (r *RedisIndex) Remove(ctx context.Context, proposal domain.Address) error {
	if err := r.client.ZRem(ctx, r.key, proposal.String()).Err(); err != nil {
		return fmt.Errorf("remove %s: %w", proposal, err)
	}
	return nil
}

func (r *RedisIndex) Due(ctx context.Context, slot uint64, limit int) ([]domain.Address, error) {
	members, err := r.client.ZRangeByScore(ctx, r.key, &redis.ZRangeBy{
		Min:   "-inf",
		Max:   strconv.FormatUint(slot, 10),
		Count: int64(limit),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("range due proposals: %w", err)
	}
	out := make([]domain.Address, 0, len(members))
	for _, m := range members {
		addr, err := domain.ParseAddress(m)
		if err != nil {
			// A foreign member cannot be deleted; drop it so it stops
			// showing up.
			_ = r.client.ZRem(ctx, r.key, m).Err()
			continue
		}
		out = append(out, addr)
	}
	return out, nil
}

func (r *RedisIndex) Len(ctx context.Context) (int, error) {
	n, err := r.client.ZCard(ctx, r.key).Result()
	if err != nil {
		return 0, fmt.Errorf("count deadline index: %w", err)
	}
	return int(n), nil
}
