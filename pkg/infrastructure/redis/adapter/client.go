package adapter

import (
	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds a client for the given address. An empty address
// falls back to the conventional local instance.
func NewRedisClient(addr string) redis.UniversalClient {
	if addr == "" {
		addr = "localhost:6379"
	}
	return redis.NewClient(&redis.Options{
		Addr: addr,
	})
}
