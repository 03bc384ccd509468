package service

import (
	"errors"
	"testing"

	"github.com/anthanhphan/go-media-transfer/internal/uploader/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTrackedJob(t *testing.T) (*BatchState, *progressTracker, *[]int) {
	t.Helper()

	state := NewBatchState()
	job := domain.NewUploadJob(0, "g", domain.NewMemoryFile("a.wav", "audio/wav", []byte("x")), true)
	require.NoError(t, state.begin([]*domain.UploadJob{job}))

	var seen []int
	state.Subscribe(func(s domain.AggregateState) {
		seen = append(seen, s.Files[0].Percent)
	})
	return state, newProgressTracker(state, 0), &seen
}

func TestProgressTracker_WithoutTranscode(t *testing.T) {
	state, tracker, seen := newTrackedJob(t)

	tracker.beginUpload("u-1")
	tracker.chunkProgress(0, 0.5, 3)
	tracker.chunkProgress(0, 1, 3)
	tracker.chunkProgress(1, 1, 3)
	tracker.chunkProgress(2, 1, 3)
	assert.Equal(t, 90, state.Snapshot().Files[0].Percent)

	tracker.complete("https://cdn/a.mp3")

	snap := state.Snapshot()
	assert.Equal(t, 100, snap.Files[0].Percent)
	assert.Equal(t, domain.PhaseComplete, snap.Files[0].Status)
	assert.Equal(t, []int{0, 15, 30, 60, 90, 100}, *seen)
}

func TestProgressTracker_WithTranscode(t *testing.T) {
	state, tracker, _ := newTrackedJob(t)

	tracker.beginTranscode()
	assert.Equal(t, domain.PhaseTranscoding, state.Snapshot().Files[0].Status)

	tracker.transcodeProgress(50)
	assert.Equal(t, 20, state.Snapshot().Files[0].Percent)
	tracker.transcodeProgress(100)
	assert.Equal(t, 40, state.Snapshot().Files[0].Percent)

	tracker.beginUpload("u-1")
	tracker.chunkProgress(0, 0.5, 1)
	assert.Equal(t, 67, state.Snapshot().Files[0].Percent)
	tracker.chunkProgress(0, 1, 1)
	assert.Equal(t, 94, state.Snapshot().Files[0].Percent)

	tracker.complete("https://cdn/a.mp3")
	assert.Equal(t, 100, state.Snapshot().Files[0].Percent)
}

func TestProgressTracker_FallbackKeepsTranscodeBand(t *testing.T) {
	state, tracker, _ := newTrackedJob(t)

	tracker.beginTranscode()
	tracker.transcodeProgress(10)
	// engine failed here; the original file is transferred instead
	tracker.beginUpload("u-1")
	assert.Equal(t, 40, state.Snapshot().Files[0].Percent)

	tracker.chunkProgress(0, 0, 2)
	assert.Equal(t, 40, state.Snapshot().Files[0].Percent)
	tracker.chunkProgress(1, 1, 2)
	assert.Equal(t, 94, state.Snapshot().Files[0].Percent)
}

func TestProgressTracker_NeverDecreases(t *testing.T) {
	_, tracker, seen := newTrackedJob(t)

	tracker.beginUpload("u-1")
	tracker.chunkProgress(1, 0.5, 2)
	tracker.chunkProgress(0, 0.9, 2) // stale notification
	tracker.chunkProgress(1, 0.2, 2)
	tracker.chunkProgress(1, 1, 2)
	tracker.complete("url")

	for i := 1; i < len(*seen); i++ {
		assert.GreaterOrEqual(t, (*seen)[i], (*seen)[i-1])
	}
	assert.Equal(t, 100, (*seen)[len(*seen)-1])
}

func TestProgressTracker_TerminalIgnoresUpdates(t *testing.T) {
	state, tracker, _ := newTrackedJob(t)

	tracker.beginUpload("u-1")
	tracker.chunkProgress(0, 0.5, 2)
	tracker.fail(errors.New("connection reset"))

	tracker.chunkProgress(1, 1, 2)
	tracker.complete("url")
	tracker.fail(errors.New("second failure"))

	snap := state.Snapshot().Files[0]
	assert.Equal(t, domain.PhaseError, snap.Status)
	assert.Equal(t, 22, snap.Percent)
	assert.Equal(t, "connection reset", snap.Error)
}
