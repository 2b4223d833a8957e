// Package cache is a thin Redis wrapper. Redis is optional: when
// Connect fails every helper no-ops, so cached reads fall through to
// the database and sessions stay cookie-only.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/putrawardana/warungsaji/config"
)

// RDB is the shared client, nil when Redis is unreachable. The queue
// driver reuses it.
var RDB *redis.Client

var Ctx = context.Background()

// Connect dials Redis and pings it. On failure RDB stays nil and the
// helpers degrade to no-ops.
func Connect() error {
	client := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
		DB:       0,
	})

	if err := client.Ping(Ctx).Err(); err != nil {
		return fmt.Errorf("cache: redis ping: %w", err)
	}
	RDB = client
	return nil
}

// Get unmarshals the cached value into dest. False means miss,
// unreachable Redis, or a decode failure.
func Get(key string, dest interface{}) bool {
	if RDB == nil {
		return false
	}
	raw, err := RDB.Get(Ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

// Set stores value as JSON under key for ttl.
func Set(key string, value interface{}, ttl time.Duration) error {
	if RDB == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return RDB.Set(Ctx, key, raw, ttl).Err()
}

// Del removes keys.
func Del(keys ...string) error {
	if RDB == nil {
		return nil
	}
	return RDB.Del(Ctx, keys...).Err()
}

// Forget drops a single key. The menu repository calls it whenever a
// write invalidates the cached menu.
func Forget(key string) error {
	return Del(key)
}
