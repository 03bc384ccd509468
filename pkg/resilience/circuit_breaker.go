package resilience

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitOpenError reports circuit-open status with a concrete retry delay.
type CircuitOpenError struct {
	Name       string
	RetryAfter time.Duration
}

func (e *CircuitOpenError) Error() string {
	retryAfter := max(e.RetryAfter, 0)
	if e.Name == "" {
		return fmt.Sprintf("%v: retry in %s", ErrCircuitOpen, retryAfter)
	}
	return fmt.Sprintf("%v for %s: retry in %s", ErrCircuitOpen, e.Name, retryAfter)
}

func (e *CircuitOpenError) Is(target error) bool {
	return target == ErrCircuitOpen
}

type CircuitBreakerState string

const (
	CircuitClosed   CircuitBreakerState = "closed"
	CircuitOpen     CircuitBreakerState = "open"
	CircuitHalfOpen CircuitBreakerState = "half_open"
)

// Level orders states by severity: closed 0, half-open 1, open 2.
func (s CircuitBreakerState) Level() int {
	switch s {
	case CircuitHalfOpen:
		return 1
	case CircuitOpen:
		return 2
	default:
		return 0
	}
}

type CircuitBreakerConfig struct {
	Name              string
	FailureThreshold  int
	SuccessThreshold  int
	OpenTimeout       time.Duration
	HalfOpenMaxFlight int

	// IsFailure decides whether an error counts against the breaker.
	// Nil counts every non-cancellation error.
	IsFailure func(error) bool

	// OnStateChange is invoked outside the lock after every transition.
	OnStateChange func(name string, from, to CircuitBreakerState)

	// Now overrides the clock; nil uses time.Now.
	Now func() time.Time
}

// outcome classifies a finished call.
type outcome int

const (
	outcomeSuccess outcome = iota
	outcomeFailure
	// outcomeAbandoned frees a half-open slot without judging the remote.
	outcomeAbandoned
)

type CircuitBreaker struct {
	mu  sync.Mutex
	cfg CircuitBreakerConfig

	state     CircuitBreakerState
	failures  int
	successes int
	inFlight  int
	openUntil time.Time
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 3
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = 1
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 10 * time.Second
	}
	if cfg.HalfOpenMaxFlight <= 0 {
		cfg.HalfOpenMaxFlight = 1
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &CircuitBreaker{
		cfg:   cfg,
		state: CircuitClosed,
	}
}

func (cb *CircuitBreaker) State() CircuitBreakerState {
	var state CircuitBreakerState
	cb.transition(func(now time.Time) {
		state = cb.state
	})
	return state
}

// Execute runs fn unless the circuit is open. Context cancellation and errors
// rejected by IsFailure never trip the breaker. A nil breaker runs fn directly.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	if cb == nil {
		return fn(ctx)
	}
	if err := cb.admit(); err != nil {
		return err
	}

	err := fn(ctx)
	cb.record(cb.classify(err))
	return err
}

// Ready returns the error Execute would fail with while the circuit is open,
// without taking a half-open slot. Callers use it to skip expensive setup.
func (cb *CircuitBreaker) Ready() error {
	if cb == nil {
		return nil
	}
	var err error
	cb.transition(func(now time.Time) {
		if cb.state == CircuitOpen {
			err = cb.openErrorLocked(now)
		}
	})
	return err
}

func (cb *CircuitBreaker) openErrorLocked(now time.Time) error {
	return &CircuitOpenError{
		Name:       cb.cfg.Name,
		RetryAfter: max(cb.openUntil.Sub(now), 0),
	}
}

func (cb *CircuitBreaker) classify(err error) outcome {
	switch {
	case err == nil:
		return outcomeSuccess
	case errors.Is(err, context.Canceled):
		return outcomeAbandoned
	case cb.cfg.IsFailure == nil || cb.cfg.IsFailure(err):
		return outcomeFailure
	default:
		// The remote answered; a rejected request is still a healthy round trip.
		return outcomeSuccess
	}
}

// transition runs fn under the lock after expiring an elapsed open period,
// then reports any state change.
func (cb *CircuitBreaker) transition(fn func(now time.Time)) {
	cb.mu.Lock()
	from := cb.state
	now := cb.cfg.Now()
	if cb.state == CircuitOpen && !now.Before(cb.openUntil) {
		cb.enterLocked(CircuitHalfOpen, now)
	}
	fn(now)
	to := cb.state
	cb.mu.Unlock()

	if from != to && cb.cfg.OnStateChange != nil {
		cb.cfg.OnStateChange(cb.cfg.Name, from, to)
	}
}

func (cb *CircuitBreaker) admit() error {
	var err error
	cb.transition(func(now time.Time) {
		switch {
		case cb.state == CircuitOpen,
			cb.state == CircuitHalfOpen && cb.inFlight >= cb.cfg.HalfOpenMaxFlight:
			err = cb.openErrorLocked(now)
		case cb.state == CircuitHalfOpen:
			cb.inFlight++
		}
	})
	return err
}

func (cb *CircuitBreaker) record(o outcome) {
	cb.transition(func(now time.Time) {
		if cb.state == CircuitHalfOpen && cb.inFlight > 0 {
			cb.inFlight--
		}

		switch o {
		case outcomeSuccess:
			if cb.state != CircuitHalfOpen {
				cb.failures = 0
				return
			}
			cb.successes++
			if cb.successes >= cb.cfg.SuccessThreshold {
				cb.enterLocked(CircuitClosed, now)
			}
		case outcomeFailure:
			cb.failures++
			if cb.state == CircuitHalfOpen || cb.failures >= cb.cfg.FailureThreshold {
				cb.enterLocked(CircuitOpen, now)
			}
		}
	})
}

func (cb *CircuitBreaker) enterLocked(state CircuitBreakerState, now time.Time) {
	cb.state = state
	cb.failures = 0
	cb.successes = 0
	cb.inFlight = 0
	if state == CircuitOpen {
		cb.openUntil = now.Add(cb.cfg.OpenTimeout)
	}
}
