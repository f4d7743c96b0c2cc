package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedClock(rl *RateLimiter, at *time.Time) {
	rl.now = func() time.Time { return *at }
}

func TestRateLimiter_Allow(t *testing.T) {
	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiterWithPolicies(map[string]Policy{
		ActionStartChat: {Every: time.Minute, Burst: 2},
	})
	fixedClock(rl, &now)

	t.Run("burst then wait", func(t *testing.T) {
		ok, _ := rl.Allow("u1", ActionStartChat)
		assert.True(t, ok)
		ok, _ = rl.Allow("u1", ActionStartChat)
		assert.True(t, ok)

		ok, wait := rl.Allow("u1", ActionStartChat)
		assert.False(t, ok)
		assert.Equal(t, time.Minute, wait)
	})

	t.Run("refused calls do not consume tokens", func(t *testing.T) {
		now = now.Add(time.Minute)
		ok, _ := rl.Allow("u1", ActionStartChat)
		assert.True(t, ok)
		ok, _ = rl.Allow("u1", ActionStartChat)
		assert.False(t, ok)
	})

	t.Run("buckets are per user", func(t *testing.T) {
		ok, _ := rl.Allow("u2", ActionStartChat)
		assert.True(t, ok)
	})

	t.Run("unknown actions use the fallback policy", func(t *testing.T) {
		for i := 0; i < fallbackPolicy.Burst; i++ {
			ok, _ := rl.Allow("u1", "upload")
			assert.True(t, ok)
		}
		ok, _ := rl.Allow("u1", "upload")
		assert.False(t, ok)
	})
}

func TestRateLimiter_DefaultSendMessagePolicy(t *testing.T) {
	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter()
	fixedClock(rl, &now)

	for i := 0; i < 10; i++ {
		ok, _ := rl.Allow("u1", ActionSendMessage)
		assert.True(t, ok, "message %d", i+1)
	}
	ok, wait := rl.Allow("u1", ActionSendMessage)
	assert.False(t, ok)
	assert.Equal(t, 6*time.Second, wait)
}

func TestRateLimiter_Cleanup(t *testing.T) {
	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter()
	fixedClock(rl, &now)

	rl.Allow("idle", ActionSendMessage)
	now = now.Add(30 * time.Minute)
	rl.Allow("active", ActionSendMessage)
	now = now.Add(45 * time.Minute)

	rl.Cleanup(time.Hour)

	assert.NotContains(t, rl.limiters, "idle:"+ActionSendMessage)
	assert.Contains(t, rl.limiters, "active:"+ActionSendMessage)
}
