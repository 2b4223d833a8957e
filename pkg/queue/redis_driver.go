package queue

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisJobsKey    = "warungsaji:queue:jobs"
	redisDelayedKey = "warungsaji:queue:delayed"
)

// RedisDriver backs the queue with Redis so jobs survive a restart and
// a separate `warungsaji queue:work` process can drain them. Ready
// jobs live in a list (LPUSH/BRPOP); delayed jobs sit in a sorted set
// scored by their due time and are promoted by a background ticker.
type RedisDriver struct {
	rdb *redis.Client
	ctx context.Context
}

// NewRedisDriver wraps the shared *redis.Client from pkg/cache and
// starts the delayed-job promoter.
func NewRedisDriver(rdb *redis.Client) *RedisDriver {
	d := &RedisDriver{rdb: rdb, ctx: context.Background()}
	go d.promote()
	return d
}

func (d *RedisDriver) Push(payload []byte) error {
	if err := d.rdb.LPush(d.ctx, redisJobsKey, payload).Err(); err != nil {
		return fmt.Errorf("queue/redis: push: %w", err)
	}
	return nil
}

// Pop blocks up to 5s for a ready job. A timeout returns (nil, nil) so
// the worker loop can check its context and try again.
func (d *RedisDriver) Pop(ctx context.Context) ([]byte, error) {
	result, err := d.rdb.BRPop(ctx, 5*time.Second, redisJobsKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("queue/redis: pop: %w", err)
	}
	if len(result) < 2 {
		return nil, nil
	}
	return []byte(result[1]), nil
}

// PushDelayed parks the payload in the sorted set until its due time.
func (d *RedisDriver) PushDelayed(payload []byte, delay time.Duration) error {
	due := float64(time.Now().Add(delay).Unix())
	err := d.rdb.ZAdd(d.ctx, redisDelayedKey, redis.Z{
		Score:  due,
		Member: string(payload),
	}).Err()
	if err != nil {
		return fmt.Errorf("queue/redis: push delayed: %w", err)
	}
	return nil
}

// promote moves due delayed jobs onto the ready list once a second.
func (d *RedisDriver) promote() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for range ticker.C {
		now := strconv.FormatInt(time.Now().Unix(), 10)
		due, err := d.rdb.ZRangeByScore(d.ctx, redisDelayedKey, &redis.ZRangeBy{
			Min: "-inf",
			Max: now,
		}).Result()
		if err != nil || len(due) == 0 {
			continue
		}
		pipe := d.rdb.Pipeline()
		for _, job := range due {
			pipe.ZRem(d.ctx, redisDelayedKey, job)
			pipe.LPush(d.ctx, redisJobsKey, []byte(job))
		}
		pipe.Exec(d.ctx) //nolint:errcheck
	}
}
