package redis_session

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/anthanhphan/go-media-transfer/pkg/resilience"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParts(t *testing.T) {
	parts, err := parseParts(map[string]string{"0": "3670016", "1": "42"})
	require.NoError(t, err)
	assert.Equal(t, map[int]int64{0: 3670016, 1: 42}, parts)

	_, err = parseParts(map[string]string{"x": "1"})
	assert.ErrorContains(t, err, "corrupt part field")

	_, err = parseParts(map[string]string{"0": "big"})
	assert.ErrorContains(t, err, "corrupt size for part 0")
}

func TestSessionKey(t *testing.T) {
	assert.Equal(t, "media:upload:abc:parts", sessionKey("abc"))
}

func TestSessionTracker_BreakerOpensOnUnreachableRedis(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	breaker := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		Name:             "redis",
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
	})
	tracker := NewSessionTracker(client, time.Minute, breaker)
	ctx := context.Background()
	id := uuid.NewString()

	require.Error(t, tracker.RecordPart(ctx, id, 0, 10))
	_, err := tracker.Parts(ctx, id)
	require.Error(t, err)
	assert.NotErrorIs(t, err, resilience.ErrCircuitOpen)

	err = tracker.Clear(ctx, id)
	assert.ErrorIs(t, err, resilience.ErrCircuitOpen)
	assert.Contains(t, err.Error(), "redis clear session")
}

// Runs against a live server when REDIS_ADDR is set.
func TestSessionTracker_Redis(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err())

	tracker := NewSessionTracker(client, time.Minute, nil)
	id := uuid.NewString()
	t.Cleanup(func() { _ = tracker.Clear(ctx, id) })

	require.NoError(t, tracker.RecordPart(ctx, id, 0, 100))
	require.NoError(t, tracker.RecordPart(ctx, id, 1, 50))

	parts, err := tracker.Parts(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, map[int]int64{0: 100, 1: 50}, parts)

	ttl, err := client.TTL(ctx, sessionKey(id)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, tracker.Clear(ctx, id))
	parts, err = tracker.Parts(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, parts)
}
