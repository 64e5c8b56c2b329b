package token

import (
	"sync"
	"time"
)

// DefaultRevocationCapacity bounds how many revoked tokens are remembered.
const DefaultRevocationCapacity = 10000

// RevokedTokenCache remembers revoked token ids until the tokens would have
// expired anyway.
type RevokedTokenCache interface {
	Add(jti string, exp time.Time)
	IsRevoked(jti string) bool
	Cleanup()
}

var _ RevokedTokenCache = (*InMemoryRevokedTokenCache)(nil)

// InMemoryRevokedTokenCache is a bounded revocation list. When full, expired
// entries are swept first and then the entry closest to expiry is dropped.
type InMemoryRevokedTokenCache struct {
	nowTime  func() time.Time
	capacity int

	mu      sync.RWMutex
	revoked map[string]time.Time
}

type RevocationOption func(*InMemoryRevokedTokenCache)

// WithCapacity overrides DefaultRevocationCapacity.
func WithCapacity(n int) RevocationOption {
	return func(c *InMemoryRevokedTokenCache) {
		if n > 0 {
			c.capacity = n
		}
	}
}

func NewInMemoryRevokedTokenCache(nowTime func() time.Time, opts ...RevocationOption) *InMemoryRevokedTokenCache {
	if nowTime == nil {
		nowTime = time.Now
	}
	c := &InMemoryRevokedTokenCache{
		nowTime:  nowTime,
		capacity: DefaultRevocationCapacity,
		revoked:  make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Add records jti as revoked. Tokens already expired are not recorded.
func (c *InMemoryRevokedTokenCache) Add(jti string, exp time.Time) {
	if jti == "" || !exp.After(c.nowTime()) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.revoked[jti]; !exists && len(c.revoked) >= c.capacity {
		c.sweepLocked()
		if len(c.revoked) >= c.capacity {
			c.evictSoonestLocked()
		}
	}
	c.revoked[jti] = exp
}

// IsRevoked reports whether jti is revoked and not yet past its expiry.
func (c *InMemoryRevokedTokenCache) IsRevoked(jti string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	exp, exists := c.revoked[jti]
	return exists && c.nowTime().Before(exp)
}

// Cleanup drops entries whose tokens have expired.
func (c *InMemoryRevokedTokenCache) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sweepLocked()
}

// Len reports how many tokens are currently tracked.
func (c *InMemoryRevokedTokenCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.revoked)
}

func (c *InMemoryRevokedTokenCache) sweepLocked() {
	now := c.nowTime()
	for jti, exp := range c.revoked {
		if !now.Before(exp) {
			delete(c.revoked, jti)
		}
	}
}

func (c *InMemoryRevokedTokenCache) evictSoonestLocked() {
	var (
		victim string
		soonest time.Time
	)
	for jti, exp := range c.revoked {
		if victim == "" || exp.Before(soonest) {
			victim, soonest = jti, exp
		}
	}
	delete(c.revoked, victim)
}
