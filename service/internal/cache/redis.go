// internal/cache/redis.go
package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Rdb is the shared Redis client. It stays nil when Redis is not configured,
// and callers treat a nil client as "action logging disabled".
var Rdb *redis.Client

// ConnectRedis creates the shared client and verifies it with a PING.
func ConnectRedis(ctx context.Context, addr, password string, db int) error {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("redis ping %s: %w", addr, err)
	}
	Rdb = client
	return nil
}

// Close shuts the shared client down, if any.
func Close() error {
	if Rdb == nil {
		return nil
	}
	err := Rdb.Close()
	Rdb = nil
	return err
}
