// Package circuitbreaker wraps sony/gobreaker with a typed result.
package circuitbreaker

import (
	"time"

	"github.com/sony/gobreaker/v2"
)

// Config aliases gobreaker.Settings so callers can tune OnStateChange,
// thresholds and intervals without importing gobreaker directly.
type Config = gobreaker.Settings

// DefaultConfig returns settings suitable for an outbound HTTP dependency:
// trip after 5 consecutive failures, probe again after 10 seconds.
func DefaultConfig(name string) Config {
	return Config{
		Name:        name,
		MaxRequests: 1,
		Interval:    30 * time.Second,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
}

// CircuitBreaker executes calls returning T under breaker protection.
type CircuitBreaker[T any] struct {
	cb *gobreaker.CircuitBreaker[T]
}

// New creates a breaker from the given config.
func New[T any](cfg Config) *CircuitBreaker[T] {
	return &CircuitBreaker[T]{cb: gobreaker.NewCircuitBreaker[T](cfg)}
}

// Execute runs fn if the breaker is closed or probing.
// When open it fails fast with gobreaker.ErrOpenState.
func (c *CircuitBreaker[T]) Execute(fn func() (T, error)) (T, error) {
	return c.cb.Execute(fn)
}

// State reports the current breaker state.
func (c *CircuitBreaker[T]) State() gobreaker.State {
	return c.cb.State()
}
