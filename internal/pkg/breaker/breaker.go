// Package breaker provides a per-dependency circuit breaker registry. Each
// named dependency gets its own breaker tracking closed / open / half-open
// state from observed call outcomes.
package breaker

import (
	"sync"
	"time"
)

// State represents the current state of a circuit breaker.
type State int

const (
	// StateClosed allows calls to pass through.
	StateClosed State = iota
	// StateOpen blocks all calls until the recovery timeout elapses.
	StateOpen
	// StateHalfOpen allows trial calls to test whether the dependency has
	// recovered.
	StateHalfOpen
)

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

// Settings controls breaker thresholds. Zero values fall back to defaults.
type Settings struct {
	// FailureThreshold is the number of consecutive failures that opens
	// the circuit. Default 5.
	FailureThreshold int
	// SuccessThreshold is the number of consecutive half-open successes
	// needed to close the circuit again. Default 2.
	SuccessThreshold int
	// RecoveryTimeout is how long the circuit stays open before allowing
	// a trial call. Default 30s.
	RecoveryTimeout time.Duration
}

func (s Settings) withDefaults() Settings {
	if s.FailureThreshold <= 0 {
		s.FailureThreshold = 5
	}
	if s.SuccessThreshold <= 0 {
		s.SuccessThreshold = 2
	}
	if s.RecoveryTimeout <= 0 {
		s.RecoveryTimeout = 30 * time.Second
	}
	return s
}

// Breaker is a single circuit breaker. Safe for concurrent use.
type Breaker struct {
	mu       sync.Mutex
	settings Settings

	state           State
	failures        int
	successes       int
	lastFailureTime time.Time
}

func newBreaker(settings Settings) *Breaker {
	return &Breaker{settings: settings.withDefaults(), state: StateClosed}
}

// Allow reports whether a call may proceed. An open circuit transitions to
// half-open once the recovery timeout has elapsed.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed, StateHalfOpen:
		return true
	case StateOpen:
		if time.Since(b.lastFailureTime) > b.settings.RecoveryTimeout {
			b.state = StateHalfOpen
			b.successes = 0
			return true
		}
		return false
	default:
		return false
	}
}

// RecordSuccess notes a successful call and may close a half-open circuit.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		b.failures = 0
	case StateHalfOpen:
		b.successes++
		if b.successes >= b.settings.SuccessThreshold {
			b.state = StateClosed
			b.failures = 0
			b.successes = 0
		}
	}
}

// RecordFailure notes a failed call. A half-open circuit reopens immediately;
// a closed one opens once the failure threshold is reached.
func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.lastFailureTime = time.Now()

	switch b.state {
	case StateHalfOpen:
		b.state = StateOpen
		b.successes = 0
	case StateClosed:
		b.failures++
		if b.failures >= b.settings.FailureThreshold {
			b.state = StateOpen
		}
	}
}

// State returns the breaker's current state without side effects.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Registry hands out one breaker per dependency name. Safe for concurrent
// use; breakers are created lazily on first access.
type Registry struct {
	mu       sync.Mutex
	settings Settings
	breakers map[string]*Breaker
}

// NewRegistry creates a Registry whose breakers share the given settings.
func NewRegistry(settings Settings) *Registry {
	return &Registry{settings: settings, breakers: make(map[string]*Breaker)}
}

// Get returns the breaker for the named dependency, creating it when absent.
func (r *Registry) Get(name string) *Breaker {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.breakers[name]
	if !ok {
		b = newBreaker(r.settings)
		r.breakers[name] = b
	}
	return b
}
