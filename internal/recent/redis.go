package recent

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisNamespace = "recent_orders"

// RedisRepository stores each list as a Redis list under recent_orders:{owner}.
type RedisRepository struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisRepository builds the repository. A zero ttl keeps lists forever;
// otherwise every write renews the expiry.
func NewRedisRepository(client redis.UniversalClient, ttl time.Duration) *RedisRepository {
	return &RedisRepository{client: client, ttl: ttl}
}

func (r *RedisRepository) key(owner string) string {
	return redisNamespace + ":" + owner
}

func (r *RedisRepository) List(ctx context.Context, owner string) ([]int64, error) {
	values, err := r.client.LRange(ctx, r.key(owner), 0, MaxEntries-1).Result()
	if err != nil {
		return nil, err
	}
	return parseValues(values), nil
}

func (r *RedisRepository) Add(ctx context.Context, owner string, id int64) ([]int64, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	key := r.key(owner)
	member := strconv.FormatInt(id, 10)

	var listCmd *redis.StringSliceCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LRem(ctx, key, 0, member)
		pipe.LPush(ctx, key, member)
		pipe.LTrim(ctx, key, 0, MaxEntries-1)
		if r.ttl > 0 {
			pipe.Expire(ctx, key, r.ttl)
		}
		listCmd = pipe.LRange(ctx, key, 0, MaxEntries-1)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return parseValues(listCmd.Val()), nil
}

func (r *RedisRepository) Remove(ctx context.Context, owner string, id int64) ([]int64, error) {
	key := r.key(owner)

	var listCmd *redis.StringSliceCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LRem(ctx, key, 0, strconv.FormatInt(id, 10))
		listCmd = pipe.LRange(ctx, key, 0, MaxEntries-1)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return parseValues(listCmd.Val()), nil
}

func (r *RedisRepository) Clear(ctx context.Context, owner string) error {
	return r.client.Del(ctx, r.key(owner)).Err()
}

// parseValues ignores entries that are not positive integers.
func parseValues(values []string) []int64 {
	ids := make([]int64, 0, len(values))
	for _, v := range values {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return Normalize(ids)
}
