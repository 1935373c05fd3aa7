package clients

import (
	"sync"
	"time"
)

// State represents the current state of the circuit breaker.
type State int

const (
	// StateClosed lets every request through.
	StateClosed State = iota

	// StateOpen rejects requests until the cool-down elapses.
	StateOpen

	// StateHalfOpen lets a limited number of trial requests through.
	StateHalfOpen
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreakerConfig configures the circuit breaker behavior.
type CircuitBreakerConfig struct {
	// MaxFailures is the number of consecutive failures that opens the circuit.
	// Zero or negative disables the breaker.
	MaxFailures int

	// Timeout is the cool-down spent in the open state.
	Timeout time.Duration

	// HalfOpenLimit caps in-flight trial requests and is also the number of
	// consecutive trial successes needed to close the circuit.
	HalfOpenLimit int
}

// CircuitBreaker fails requests fast while the Quotes API keeps failing.
//
//	closed    --MaxFailures consecutive failures-->  open
//	open      --Timeout elapsed-->                   half-open
//	half-open --HalfOpenLimit successes-->           closed
//	half-open --any failure-->                       open
type CircuitBreaker struct {
	mu        sync.Mutex
	cfg       CircuitBreakerConfig
	state     State
	failures  int
	successes int
	inFlight  int
	openedAt  time.Time

	onStateChange func(from, to State)
	now           func() time.Time
}

// NewCircuitBreaker creates a closed circuit breaker.
func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	if cfg.HalfOpenLimit <= 0 {
		cfg.HalfOpenLimit = 1
	}

	return &CircuitBreaker{
		cfg:   cfg,
		state: StateClosed,
		now:   time.Now,
	}
}

// OnStateChange registers a callback invoked after every transition.
// The callback runs outside the breaker's lock.
func (cb *CircuitBreaker) OnStateChange(fn func(from, to State)) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.onStateChange = fn
}

// Allow reports whether a request may be sent now.
func (cb *CircuitBreaker) Allow() bool {
	if cb.cfg.MaxFailures <= 0 {
		return true
	}

	cb.mu.Lock()

	var (
		allowed bool
		from    = cb.state
	)

	switch cb.state {
	case StateClosed:
		allowed = true

	case StateOpen:
		if cb.now().Sub(cb.openedAt) >= cb.cfg.Timeout {
			cb.setState(StateHalfOpen)
			cb.inFlight = 1
			allowed = true
		}

	case StateHalfOpen:
		if cb.inFlight < cb.cfg.HalfOpenLimit {
			cb.inFlight++
			allowed = true
		}
	}

	notify := cb.transitionHook(from)
	cb.mu.Unlock()

	notify()

	return allowed
}

// RecordSuccess records a request that got a non-5xx response.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()

	from := cb.state

	switch cb.state {
	case StateClosed:
		cb.failures = 0

	case StateHalfOpen:
		cb.inFlight--
		cb.successes++

		if cb.successes >= cb.cfg.HalfOpenLimit {
			cb.setState(StateClosed)
		}
	}

	notify := cb.transitionHook(from)
	cb.mu.Unlock()

	notify()
}

// RecordFailure records a transport failure or 5xx response.
func (cb *CircuitBreaker) RecordFailure() {
	if cb.cfg.MaxFailures <= 0 {
		return
	}

	cb.mu.Lock()

	from := cb.state

	switch cb.state {
	case StateClosed:
		cb.failures++
		if cb.failures >= cb.cfg.MaxFailures {
			cb.open()
		}

	case StateHalfOpen:
		cb.inFlight--
		cb.open()
	}

	notify := cb.transitionHook(from)
	cb.mu.Unlock()

	notify()
}

// RecordAbandoned records a request the caller gave up on, such as a
// cancelled or expired context. It says nothing about the downstream: the
// failure count is untouched and a half-open trial slot is returned.
func (cb *CircuitBreaker) RecordAbandoned() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateHalfOpen && cb.inFlight > 0 {
		cb.inFlight--
	}
}

// State returns the current state of the circuit breaker.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return cb.state
}

// Reset forces the breaker back to closed.
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()

	from := cb.state
	cb.setState(StateClosed)
	cb.inFlight = 0

	notify := cb.transitionHook(from)
	cb.mu.Unlock()

	notify()
}

// open moves to StateOpen and stamps the cool-down start. Caller holds mu.
func (cb *CircuitBreaker) open() {
	cb.openedAt = cb.now()
	cb.setState(StateOpen)
}

// setState changes state and clears the counters. Caller holds mu.
func (cb *CircuitBreaker) setState(s State) {
	if cb.state == s {
		return
	}

	cb.state = s
	cb.failures = 0
	cb.successes = 0
}

// transitionHook returns a func that reports the from->current transition,
// or a no-op when nothing changed. Caller holds mu; the returned func must
// run after unlocking.
func (cb *CircuitBreaker) transitionHook(from State) func() {
	to := cb.state
	fn := cb.onStateChange

	if from == to || fn == nil {
		return func() {}
	}

	return func() { fn(from, to) }
}
