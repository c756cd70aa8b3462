package interfaces

import (
	"context"

	"github.com/go-redis/redis_rate/v10"
)

// Limiter gates the write-heavy entry points (booking intake per hotel,
// reward redemption per member). Allow returns an error when the key is over
// its limit.
type Limiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) error
}
