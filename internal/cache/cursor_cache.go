// Package cache holds live database cursors between paging requests so a
// customer draining a leak does not pay the query cost again on every
// page. Entries are keyed by "{customer_id}:{leak_id}" and disappear on
// size pressure or after a fixed time-to-live.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"

	"github.com/kristi-balla/leakchef/internal/repository"
)

// CursorCache is a take/put cache: Take removes the cursor so at most one
// caller holds it at any instant, Put hands it back and restarts its
// time-to-live. Cursors evicted while parked are closed by the cache.
type CursorCache struct {
	mu     sync.Mutex
	lru    *expirable.LRU[string, *cursorEntry]
	logger *zap.Logger
}

// cursorEntry boxes a cursor so that a taken cursor survives an eviction
// of its entry. take empties the box; eviction closes only what is still
// inside.
type cursorEntry struct {
	mu  sync.Mutex
	cur repository.IdentityCursor
}

func (e *cursorEntry) take() repository.IdentityCursor {
	e.mu.Lock()
	defer e.mu.Unlock()
	cur := e.cur
	e.cur = nil
	return cur
}

// New builds a CursorCache with the given capacity and entry lifetime.
func New(logger *zap.Logger, size int, ttl time.Duration) *CursorCache {
	c := &CursorCache{logger: logger}
	c.lru = expirable.NewLRU[string, *cursorEntry](size, c.onEvict, ttl)
	return c
}

// onEvict runs on the expiry goroutine as well as under Add, Remove and
// Purge. On the Remove path inside Take the box is already empty, so the
// only closes that happen under the cache lock are capacity evictions.
func (c *CursorCache) onEvict(key string, entry *cursorEntry) {
	cur := entry.take()
	if cur == nil {
		return
	}
	c.logger.Debug("closing evicted cursor", zap.String("key", key))
	if err := cur.Close(context.Background()); err != nil {
		c.logger.Warn("closing evicted cursor failed", zap.String("key", key), zap.Error(err))
	}
}

// Key builds the cache key for one (customer, leak) pair.
func Key(customerID int32, leakID string) string {
	return fmt.Sprintf("%d:%s", customerID, leakID)
}

// Take removes and returns the parked cursor for the pair. The caller
// owns it until handing it back with Put or closing it.
func (c *CursorCache) Take(customerID int32, leakID string) (repository.IdentityCursor, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := Key(customerID, leakID)
	entry, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}

	cur := entry.take()
	c.lru.Remove(key)
	if cur == nil {
		// The entry expired between Get and take; the expiry
		// goroutine already closed the cursor.
		return nil, false
	}
	return cur, true
}

// Put parks a cursor for the pair and restarts its time-to-live. A
// cursor displaced by the insert is closed, outside the critical section.
func (c *CursorCache) Put(customerID int32, leakID string, cur repository.IdentityCursor) {
	key := Key(customerID, leakID)

	c.mu.Lock()
	var displaced repository.IdentityCursor
	if prev, ok := c.lru.Get(key); ok {
		// Add replaces the boxed value without running the eviction
		// callback, so the displaced cursor is handled here.
		displaced = prev.take()
	}
	c.lru.Add(key, &cursorEntry{cur: cur})
	c.mu.Unlock()

	if displaced == nil {
		return
	}
	if err := displaced.Close(context.Background()); err != nil {
		c.logger.Warn("closing displaced cursor failed", zap.String("key", key), zap.Error(err))
	}
}

// Len reports how many cursors are currently parked.
func (c *CursorCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Close evicts and closes every parked cursor.
func (c *CursorCache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Purge()
}
