package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client wraps redis.UniversalClient so repositories depend on an interface
// that miniredis-backed tests can satisfy.
type Client interface {
	redis.UniversalClient
}
