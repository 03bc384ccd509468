package lazy

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// LoadFunc builds the resource. It runs at most once per in-flight load.
type LoadFunc[T any] func(ctx context.Context) (T, error)

// Value is a lazily-initialized, process-shared resource.
//
// The first Get triggers the load; concurrent callers join the same in-flight
// load instead of starting another one. A successful result is cached for the
// lifetime of the Value, a failed one is dropped so the next Get retries.
type Value[T any] struct {
	load  LoadFunc[T]
	group singleflight.Group

	mu     sync.RWMutex
	value  T
	loaded bool
}

// New creates a Value backed by load.
func New[T any](load LoadFunc[T]) *Value[T] {
	return &Value[T]{load: load}
}

// Get returns the cached resource or waits for (and possibly starts) its load.
func (v *Value[T]) Get(ctx context.Context) (T, error) {
	if value, ok := v.cached(); ok {
		return value, nil
	}

	ch := v.group.DoChan("load", func() (interface{}, error) {
		if value, ok := v.cached(); ok {
			return value, nil
		}

		// Detached so one caller's cancellation does not poison the shared load.
		value, err := v.load(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}

		v.mu.Lock()
		v.value = value
		v.loaded = true
		v.mu.Unlock()
		return value, nil
	})

	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

// Loaded reports whether a successful load has been cached.
func (v *Value[T]) Loaded() bool {
	_, ok := v.cached()
	return ok
}

// Reset drops the cached resource so the next Get loads again.
func (v *Value[T]) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()

	var zero T
	v.value = zero
	v.loaded = false
}

func (v *Value[T]) cached() (T, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.value, v.loaded
}
