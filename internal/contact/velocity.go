package contact

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/propline/propline/pkg/logging"
)

// VelocityChecker rate-limits raw submissions on the public contact endpoint
// so form bots burn out here instead of against the quota counter.
type VelocityChecker struct {
	redis  *redis.Client
	logger *logging.Logger
	max    int
	window time.Duration
}

// NewVelocityChecker creates a velocity checker. A nil Redis client disables
// the check (Allow always returns true).
func NewVelocityChecker(redisClient *redis.Client, max int, window time.Duration, logger *logging.Logger) *VelocityChecker {
	if logger == nil {
		logger = logging.Default()
	}
	if max <= 0 {
		max = 10
	}
	if window <= 0 {
		window = time.Hour
	}
	return &VelocityChecker{
		redis:  redisClient,
		logger: logger,
		max:    max,
		window: window,
	}
}

// Allow reports whether the identity is within the submission velocity limit.
// Fail open: if Redis is unavailable the attempt proceeds to the quota gate.
func (v *VelocityChecker) Allow(ctx context.Context, identityID string) bool {
	if v == nil || v.redis == nil {
		return true
	}

	key := fmt.Sprintf("velocity:contact:%s", identityID)
	count, err := v.redis.Incr(ctx, key).Result()
	if err != nil {
		v.logger.Error("velocity check failed", "error", err, "key", key)
		return true
	}

	// Set expiry only on first increment.
	if count == 1 {
		v.redis.Expire(ctx, key, v.window)
	}

	if count > int64(v.max) {
		v.logger.Warn("contact velocity exceeded",
			"identity", identityID,
			"count", count,
			"max", v.max,
		)
		return false
	}
	return true
}

// Reset clears the velocity counter for an identity (admin use).
func (v *VelocityChecker) Reset(ctx context.Context, identityID string) error {
	if v == nil || v.redis == nil {
		return nil
	}
	key := fmt.Sprintf("velocity:contact:%s", identityID)
	return v.redis.Del(ctx, key).Err()
}
