package service

import (
	"sync"

	"github.com/anthanhphan/go-media-transfer/internal/uploader/domain"
)

// BatchState holds the jobs of the current batch and publishes an
// AggregateState to subscribers after every accepted change.
type BatchState struct {
	// publishMu serializes mutate+deliver so subscribers observe changes in order.
	publishMu sync.Mutex

	mu          sync.Mutex
	status      domain.BatchStatus
	jobs        []*domain.UploadJob
	err         error
	subscribers map[int]func(domain.AggregateState)
	nextSubID   int
}

// NewBatchState creates an idle state store.
func NewBatchState() *BatchState {
	return &BatchState{
		status:      domain.BatchIdle,
		subscribers: make(map[int]func(domain.AggregateState)),
	}
}

// Snapshot returns a copy of the current aggregate state.
func (s *BatchState) Snapshot() domain.AggregateState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers fn for every subsequent change. fn runs synchronously
// on the publishing goroutine and must not mutate the state.
func (s *BatchState) Subscribe(fn func(domain.AggregateState)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subscribers, id)
			s.mu.Unlock()
		})
	}
}

// MarkProcessing flags that the caller is persisting records for a
// completed batch. It has no effect unless the batch is complete.
func (s *BatchState) MarkProcessing() {
	s.mutate(func() bool {
		if s.status != domain.BatchComplete {
			return false
		}
		s.status = domain.BatchProcessing
		return true
	})
}

// MarkComplete ends the processing phase.
func (s *BatchState) MarkComplete() {
	s.mutate(func() bool {
		if s.status != domain.BatchProcessing {
			return false
		}
		s.status = domain.BatchComplete
		return true
	})
}

// Reset discards all jobs. A running batch cannot be reset.
func (s *BatchState) Reset() {
	s.mutate(func() bool {
		if s.status == domain.BatchUploading {
			return false
		}
		s.status = domain.BatchIdle
		s.jobs = nil
		s.err = nil
		return true
	})
}

// begin installs a fresh set of jobs and moves to uploading.
func (s *BatchState) begin(jobs []*domain.UploadJob) error {
	var busy bool
	s.mutate(func() bool {
		if s.status == domain.BatchUploading {
			busy = true
			return false
		}
		s.status = domain.BatchUploading
		s.jobs = jobs
		s.err = nil
		return true
	})
	if busy {
		return domain.ErrBatchInProgress
	}
	return nil
}

// finish resolves the batch to complete, or to error when err is set.
func (s *BatchState) finish(err error) {
	s.mutate(func() bool {
		s.err = err
		if err != nil {
			s.status = domain.BatchError
		} else {
			s.status = domain.BatchComplete
		}
		return true
	})
}

// updateJob applies fn to job index; fn reports whether anything changed.
func (s *BatchState) updateJob(index int, fn func(job *domain.UploadJob) bool) {
	s.mutate(func() bool {
		if index < 0 || index >= len(s.jobs) {
			return false
		}
		return fn(s.jobs[index])
	})
}

func (s *BatchState) mutate(fn func() bool) {
	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	s.mu.Lock()
	if !fn() {
		s.mu.Unlock()
		return
	}
	snapshot := s.snapshotLocked()
	subscribers := make([]func(domain.AggregateState), 0, len(s.subscribers))
	for _, sub := range s.subscribers {
		subscribers = append(subscribers, sub)
	}
	s.mu.Unlock()

	for _, sub := range subscribers {
		sub(snapshot.Clone())
	}
}

func (s *BatchState) snapshotLocked() domain.AggregateState {
	files := make([]domain.FileProgress, 0, len(s.jobs))
	for _, job := range s.jobs {
		files = append(files, job.Progress())
	}

	state := domain.AggregateState{
		Status:         s.status,
		OverallPercent: domain.OverallPercent(files),
		Files:          files,
	}
	if s.err != nil {
		state.Error = s.err.Error()
	}
	return state
}
