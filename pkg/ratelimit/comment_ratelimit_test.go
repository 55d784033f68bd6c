package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCommentLimiterAllowsUpToMax(t *testing.T) {
	rl := NewCommentRateLimiter(3, time.Minute, time.Minute)
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("u1"), "comment %d", i+1)
	}
	assert.False(t, rl.Allow("u1"))

	// Cooldown sırasında Retry-After değeri pozitif
	assert.Positive(t, rl.CooldownSeconds("u1"))

	// Başka kullanıcı etkilenmez
	assert.True(t, rl.Allow("u2"))
	assert.Zero(t, rl.CooldownSeconds("u2"))
}

func TestCommentLimiterCooldownBlocksEverything(t *testing.T) {
	rl := NewCommentRateLimiter(1, time.Minute, time.Minute)
	defer rl.Stop()

	assert.True(t, rl.Allow("u1"))
	assert.False(t, rl.Allow("u1"))

	// Cooldown bitmeden tekrar denemek de reddedilir
	assert.False(t, rl.Allow("u1"))
}

func TestCommentLimiterRecoversAfterCooldown(t *testing.T) {
	rl := NewCommentRateLimiter(1, 10*time.Millisecond, 10*time.Millisecond)
	defer rl.Stop()

	assert.True(t, rl.Allow("u1"))
	assert.False(t, rl.Allow("u1"))

	time.Sleep(20 * time.Millisecond)

	assert.True(t, rl.Allow("u1"))
	assert.Zero(t, rl.CooldownSeconds("u1"))
}
