package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client is the subset of go-redis the repositories are written against.
// Tests point it at miniredis.
type Client interface {
	redis.UniversalClient
}
