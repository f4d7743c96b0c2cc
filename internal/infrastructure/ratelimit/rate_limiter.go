package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	ActionStartChat   = "start_chat"
	ActionSendMessage = "send_message"
)

// Policy is a sustained rate plus the burst allowed on top of it.
type Policy struct {
	Every time.Duration
	Burst int
}

// DefaultPolicies are per user and per action.
var DefaultPolicies = map[string]Policy{
	// 10 messages per minute
	ActionSendMessage: {Every: 6 * time.Second, Burst: 10},
	// 5 new conversations up front, then one every 12 minutes
	ActionStartChat: {Every: 12 * time.Minute, Burst: 5},
}

var fallbackPolicy = Policy{Every: 3 * time.Second, Burst: 20}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per user and action.
type RateLimiter struct {
	policies map[string]Policy
	limiters map[string]*limiterEntry
	mutex    sync.Mutex
	now      func() time.Time
}

func NewRateLimiter() *RateLimiter {
	return NewRateLimiterWithPolicies(DefaultPolicies)
}

func NewRateLimiterWithPolicies(policies map[string]Policy) *RateLimiter {
	return &RateLimiter{
		policies: policies,
		limiters: make(map[string]*limiterEntry),
		now:      time.Now,
	}
}

// Allow consumes a token for userID's action. When the bucket is empty it
// reports how long until the next token.
func (rl *RateLimiter) Allow(userID, action string) (bool, time.Duration) {
	key := userID + ":" + action
	now := rl.now()

	rl.mutex.Lock()
	entry, exists := rl.limiters[key]
	if !exists {
		policy, ok := rl.policies[action]
		if !ok {
			policy = fallbackPolicy
		}
		entry = &limiterEntry{limiter: rate.NewLimiter(rate.Every(policy.Every), policy.Burst)}
		rl.limiters[key] = entry
	}
	entry.lastSeen = now
	rl.mutex.Unlock()

	reservation := entry.limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return false, 0
	}
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// Cleanup drops limiters idle for longer than maxIdle.
func (rl *RateLimiter) Cleanup(maxIdle time.Duration) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := rl.now()
	for key, entry := range rl.limiters {
		if now.Sub(entry.lastSeen) > maxIdle {
			delete(rl.limiters, key)
		}
	}
}

func (rl *RateLimiter) StartCleanupRoutine(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(30 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				rl.Cleanup(time.Hour)
			case <-ctx.Done():
				return
			}
		}
	}()
}
