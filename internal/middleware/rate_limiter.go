package middleware

import (
	"sync"
	"time"
)

// RateLimiter implements a simple in-memory rate limiter keyed by
// caller identity (email) and by IP.
type RateLimiter struct {
	userLimits map[string]*windowLimit
	ipLimits   map[string]*windowLimit
	mu         sync.RWMutex

	userMaxRequests int
	ipMaxRequests   int
	window          time.Duration
}

type windowLimit struct {
	requests  int
	resetTime time.Time
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(userMaxRequests, ipMaxRequests int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		userLimits:      make(map[string]*windowLimit),
		ipLimits:        make(map[string]*windowLimit),
		userMaxRequests: userMaxRequests,
		ipMaxRequests:   ipMaxRequests,
		window:          window,
	}

	// Start cleanup goroutine
	go rl.cleanup()

	return rl
}

// CheckUserLimit checks if a caller identity has exceeded its rate limit
func (rl *RateLimiter) CheckUserLimit(identity string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	return allow(rl.userLimits, identity, rl.userMaxRequests, rl.window)
}

// CheckIPLimit checks if an IP has exceeded its rate limit
func (rl *RateLimiter) CheckIPLimit(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	return allow(rl.ipLimits, ip, rl.ipMaxRequests, rl.window)
}

func allow(limits map[string]*windowLimit, key string, max int, window time.Duration) bool {
	now := time.Now()

	limit, exists := limits[key]
	if !exists || now.After(limit.resetTime) {
		limits[key] = &windowLimit{
			requests:  1,
			resetTime: now.Add(window),
		}
		return true
	}

	if limit.requests >= max {
		return false
	}

	limit.requests++
	return true
}

// GetUserRemaining returns remaining requests for a caller identity
func (rl *RateLimiter) GetUserRemaining(identity string) int {
	rl.mu.RLock()
	defer rl.mu.RUnlock()

	return remaining(rl.userLimits, identity, rl.userMaxRequests)
}

// GetIPRemaining returns remaining requests for an IP
func (rl *RateLimiter) GetIPRemaining(ip string) int {
	rl.mu.RLock()
	defer rl.mu.RUnlock()

	return remaining(rl.ipLimits, ip, rl.ipMaxRequests)
}

func remaining(limits map[string]*windowLimit, key string, max int) int {
	limit, exists := limits[key]
	if !exists || time.Now().After(limit.resetTime) {
		return max
	}

	left := max - limit.requests
	if left < 0 {
		return 0
	}
	return left
}

// cleanup removes expired entries
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()

		for key, limit := range rl.userLimits {
			if now.After(limit.resetTime) {
				delete(rl.userLimits, key)
			}
		}

		for key, limit := range rl.ipLimits {
			if now.After(limit.resetTime) {
				delete(rl.ipLimits, key)
			}
		}

		rl.mu.Unlock()
	}
}

// Reset clears all rate limits (useful for testing)
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.userLimits = make(map[string]*windowLimit)
	rl.ipLimits = make(map[string]*windowLimit)
}
