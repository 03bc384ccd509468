package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTracker_RecordAndClear(t *testing.T) {
	ctx := context.Background()
	tracker := NewSessionTracker(time.Hour)

	require.NoError(t, tracker.RecordPart(ctx, "u1", 0, 10))
	require.NoError(t, tracker.RecordPart(ctx, "u1", 1, 4))
	// a resent part overwrites the earlier size
	require.NoError(t, tracker.RecordPart(ctx, "u1", 1, 5))

	parts, err := tracker.Parts(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, map[int]int64{0: 10, 1: 5}, parts)

	// returned map is a copy
	parts[7] = 1
	again, _ := tracker.Parts(ctx, "u1")
	assert.Len(t, again, 2)

	require.NoError(t, tracker.Clear(ctx, "u1"))
	parts, err = tracker.Parts(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, parts)
	assert.NotNil(t, parts)
}

func TestSessionTracker_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tracker := NewSessionTracker(time.Minute)
	tracker.now = func() time.Time { return now }

	require.NoError(t, tracker.RecordPart(ctx, "old", 0, 1))
	now = now.Add(30 * time.Second)
	require.NoError(t, tracker.RecordPart(ctx, "new", 0, 1))
	assert.Equal(t, 2, tracker.Len())

	now = now.Add(45 * time.Second)
	parts, err := tracker.Parts(ctx, "old")
	require.NoError(t, err)
	assert.Empty(t, parts)
	assert.Equal(t, 1, tracker.Len())

	parts, _ = tracker.Parts(ctx, "new")
	assert.Len(t, parts, 1)
}
