package goCred

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// resetRequestLimiter throttles reset-token issuance per identifier with a
// Redis fixed window (INCR + EXPIRE). It protects the mail pipeline behind
// RequestPasswordReset from being driven by an attacker probing identifiers.
type resetRequestLimiter struct {
	redis  *redis.Client
	prefix string
	config ResetConfig
}

func newResetRequestLimiter(redisClient *redis.Client, prefix string, cfg ResetConfig) *resetRequestLimiter {
	if prefix == "" {
		prefix = "gc"
	}
	return &resetRequestLimiter{
		redis:  redisClient,
		prefix: prefix,
		config: cfg,
	}
}

func (l *resetRequestLimiter) key(identifier string) string {
	return l.prefix + ":rstrl:" + identifier
}

// CheckRequest counts one request against the identifier's window and
// returns ErrResetRateLimited once the window budget is spent.
func (l *resetRequestLimiter) CheckRequest(ctx context.Context, identifier string) error {
	key := l.key(identifier)

	count, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if count == 1 {
		if err := l.redis.Expire(ctx, key, l.config.ThrottleWindow).Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	}

	if count > int64(l.config.MaxRequests) {
		return ErrResetRateLimited
	}

	return nil
}
