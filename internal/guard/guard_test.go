package guard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterAllowsWithinLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		res := rl.Check(ctx, "session-1")
		assert.True(t, res.Allowed, "request %d", i)
	}

	res := rl.Check(ctx, "session-1")
	assert.False(t, res.Allowed)
	assert.Equal(t, "rate_limiter", res.Guard)
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	ctx := context.Background()

	assert.True(t, rl.Check(ctx, "session-1").Allowed)
	assert.False(t, rl.Check(ctx, "session-1").Allowed)
	assert.True(t, rl.Check(ctx, "session-2").Allowed)
}

func TestRateLimiterWindowSlides(t *testing.T) {
	rl := NewRateLimiter(1, 10*time.Millisecond)
	ctx := context.Background()

	assert.True(t, rl.Check(ctx, "session-1").Allowed)
	assert.False(t, rl.Check(ctx, "session-1").Allowed)

	time.Sleep(20 * time.Millisecond)
	assert.True(t, rl.Check(ctx, "session-1").Allowed)
}

func TestCircuitBreakerOpensAfterThreshold(t *testing.T) {
	cb := NewCircuitBreaker(3, time.Minute)
	ctx := context.Background()

	require.True(t, cb.Check(ctx, "facebook").Allowed)
	for i := 0; i < 3; i++ {
		cb.RecordFailure("facebook")
	}

	res := cb.Check(ctx, "facebook")
	assert.False(t, res.Allowed)
	assert.Equal(t, "circuit_breaker", res.Guard)

	// Other platforms are unaffected.
	assert.True(t, cb.Check(ctx, "tiktok").Allowed)
}

func TestCircuitBreakerHalfOpenRecovery(t *testing.T) {
	cb := NewCircuitBreaker(1, 10*time.Millisecond)
	ctx := context.Background()

	require.True(t, cb.Check(ctx, "snapchat").Allowed)
	cb.RecordFailure("snapchat")
	assert.False(t, cb.Check(ctx, "snapchat").Allowed)

	time.Sleep(20 * time.Millisecond)

	// One probe allowed in half-open; a success closes the circuit.
	assert.True(t, cb.Check(ctx, "snapchat").Allowed)
	cb.RecordSuccess("snapchat")
	assert.True(t, cb.Check(ctx, "snapchat").Allowed)
}

func TestCircuitBreakerReopensOnHalfOpenFailure(t *testing.T) {
	cb := NewCircuitBreaker(1, 10*time.Millisecond)
	ctx := context.Background()

	require.True(t, cb.Check(ctx, "kwai").Allowed)
	cb.RecordFailure("kwai")

	time.Sleep(20 * time.Millisecond)
	assert.True(t, cb.Check(ctx, "kwai").Allowed)
	cb.RecordFailure("kwai")

	assert.False(t, cb.Check(ctx, "kwai").Allowed)
}

func TestIdempotencyGuardBlocksDuplicates(t *testing.T) {
	ig := NewIdempotencyGuard()
	ctx := context.Background()

	assert.True(t, ig.Check(ctx, "key-1").Allowed)

	res := ig.Check(ctx, "key-1")
	assert.False(t, res.Allowed)
	assert.Equal(t, "idempotency", res.Guard)
}

func TestIdempotencyGuardEmptyKeyPassesThrough(t *testing.T) {
	ig := NewIdempotencyGuard()
	ctx := context.Background()

	assert.True(t, ig.Check(ctx, "").Allowed)
	assert.True(t, ig.Check(ctx, "").Allowed)
}

func TestIdempotencyGuardRecordAndResult(t *testing.T) {
	ig := NewIdempotencyGuard()
	ctx := context.Background()

	require.True(t, ig.Check(ctx, "key-1").Allowed)
	ig.Record("key-1", "order-1001")

	id, ok := ig.Result("key-1")
	assert.True(t, ok)
	assert.Equal(t, "order-1001", id)
}

func TestIdempotencyGuardRemoveAllowsRetry(t *testing.T) {
	ig := NewIdempotencyGuard()
	ctx := context.Background()

	require.True(t, ig.Check(ctx, "key-1").Allowed)
	ig.Remove("key-1")
	assert.True(t, ig.Check(ctx, "key-1").Allowed)
}
