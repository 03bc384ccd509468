package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/anthanhphan/go-media-transfer/internal/receiver/port"
)

var _ port.SessionTracker = (*SessionTracker)(nil)

type session struct {
	parts   map[int]int64
	touched time.Time
}

// SessionTracker keeps upload sessions in process memory. Sessions expire
// ttl after their last recorded part.
type SessionTracker struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]*session
}

func NewSessionTracker(ttl time.Duration) *SessionTracker {
	return &SessionTracker{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*session),
	}
}

func (t *SessionTracker) RecordPart(_ context.Context, uploadID string, partNumber int, size int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	t.evictExpiredLocked(now)

	s, ok := t.sessions[uploadID]
	if !ok {
		s = &session{parts: make(map[int]int64)}
		t.sessions[uploadID] = s
	}
	s.parts[partNumber] = size
	s.touched = now
	return nil
}

func (t *SessionTracker) Parts(_ context.Context, uploadID string) (map[int]int64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.sessions[uploadID]
	if !ok || t.expired(s, t.now()) {
		return map[int]int64{}, nil
	}
	return maps.Clone(s.parts), nil
}

func (t *SessionTracker) Clear(_ context.Context, uploadID string) error {
	t.mu.Lock()
	delete(t.sessions, uploadID)
	t.mu.Unlock()
	return nil
}

// Len returns the number of live sessions.
func (t *SessionTracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.evictExpiredLocked(t.now())
	return len(t.sessions)
}

func (t *SessionTracker) expired(s *session, now time.Time) bool {
	return t.ttl > 0 && now.Sub(s.touched) > t.ttl
}

func (t *SessionTracker) evictExpiredLocked(now time.Time) {
	for id, s := range t.sessions {
		if t.expired(s, now) {
			delete(t.sessions, id)
		}
	}
}
