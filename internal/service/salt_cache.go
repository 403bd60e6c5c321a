package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const saltCacheTTL = 10 * time.Minute

// SaltCache is a Redis read-through cache for customer salts, so a
// customer draining a large leak does not hit the customers collection
// on every page. A nil SaltCache is valid and always misses; cache
// failures only cost a log line, never the request.
type SaltCache struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewSaltCache(rdb *redis.Client, logger *zap.Logger) *SaltCache {
	return &SaltCache{rdb: rdb, logger: logger}
}

func saltKey(customerID int32) string {
	return fmt.Sprintf("salt:%d", customerID)
}

// Get returns the cached salt for a customer, if present.
func (c *SaltCache) Get(ctx context.Context, customerID int32) (string, bool) {
	if c == nil || c.rdb == nil {
		return "", false
	}

	salt, err := c.rdb.Get(ctx, saltKey(customerID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false
	}
	if err != nil {
		c.logger.Warn("reading salt cache failed",
			zap.Int32("customer_id", customerID),
			zap.Error(err))
		return "", false
	}
	return salt, true
}

// Set stores a salt for later lookups.
func (c *SaltCache) Set(ctx context.Context, customerID int32, salt string) {
	if c == nil || c.rdb == nil {
		return
	}

	if err := c.rdb.Set(ctx, saltKey(customerID), salt, saltCacheTTL).Err(); err != nil {
		c.logger.Warn("writing salt cache failed",
			zap.Int32("customer_id", customerID),
			zap.Error(err))
	}
}
