//go:build integration

package mock

import (
	"context"
	"sync"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// Redis is a process-wide miniredis instance plus a client bound to it.
// Server is exposed so steps can move key expiry forward.
type Redis struct {
	Server *miniredis.Miniredis
	Client *redis.Client
}

var (
	redisOnce     sync.Once
	redisInstance *Redis
)

// NewRedis starts miniredis on first use and returns the shared instance.
func NewRedis() *Redis {
	redisOnce.Do(func() {
		server, err := miniredis.Run()
		if err != nil {
			panic(err)
		}
		redisInstance = &Redis{
			Server: server,
			Client: redis.NewClient(&redis.Options{Addr: server.Addr()}),
		}
	})
	return redisInstance
}

// Clear drops every key between scenarios.
func (r *Redis) Clear() error {
	return r.Client.FlushAll(context.Background()).Err()
}

// Elapse expires keys as if d had passed.
func (r *Redis) Elapse(d time.Duration) {
	r.Server.FastForward(d)
}
