// Package cache holds match results in memory for later retrieval by
// session ID. Entries expire after a configurable TTL; expired entries
// are dropped on read and swept periodically.
package cache

import (
	"sync"
	"time"

	"cv-match-go/internal/logger"
	"cv-match-go/internal/types"
)

type entry struct {
	result    *types.MatchResult
	expiresAt time.Time
}

// ResultCache is a TTL map of session ID to match result, safe for
// concurrent use.
type ResultCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	stop    chan struct{}
	once    sync.Once
}

// New creates a cache whose entries live for ttl, with a background
// sweep at ttl intervals. Close stops the sweep.
func New(ttl time.Duration) *ResultCache {
	c := &ResultCache{
		entries: make(map[string]entry),
		ttl:     ttl,
		stop:    make(chan struct{}),
	}
	go c.janitor()
	return c
}

// Put stores a result under its session ID.
func (c *ResultCache) Put(result *types.MatchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[result.SessionID] = entry{
		result:    result,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Get returns the result for a session ID, or false when the session
// is unknown or has expired.
func (c *ResultCache) Get(sessionID string) (*types.MatchResult, bool) {
	c.mu.RLock()
	e, ok := c.entries[sessionID]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, sessionID)
		c.mu.Unlock()
		return nil, false
	}
	return e.result, true
}

// Len returns the number of stored entries, expired ones included
// until the next sweep.
func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close stops the background sweep. Safe to call more than once.
func (c *ResultCache) Close() {
	c.once.Do(func() { close(c.stop) })
}

func (c *ResultCache) janitor() {
	ticker := time.NewTicker(c.ttl)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.sweep()
		case <-c.stop:
			return
		}
	}
}

func (c *ResultCache) sweep() {
	now := time.Now()
	c.mu.Lock()
	removed := 0
	for id, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, id)
			removed++
		}
	}
	c.mu.Unlock()
	if removed > 0 {
		logger.Debug().Int("removed", removed).Msg("expired match results swept")
	}
}
