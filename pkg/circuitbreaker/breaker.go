// Package circuitbreaker wraps sony/gobreaker with logrus logging and state
// listeners for calls to the remote patient store.
package circuitbreaker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

// ErrCircuitOpen is returned without calling through while the breaker is open
// or saturated in half-open state.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// State represents the circuit breaker state
type State string

const (
	StateClosed   State = "closed"
	StateOpen     State = "open"
	StateHalfOpen State = "half-open"
)

// Value is the gauge encoding of the state (0=closed, 1=open, 2=half-open).
func (s State) Value() float64 {
	switch s {
	case StateOpen:
		return 1
	case StateHalfOpen:
		return 2
	default:
		return 0
	}
}

// Config holds circuit breaker configuration
type Config struct {
	Name string
	// MaxRequests is max requests allowed in half-open state
	MaxRequests uint32
	// Interval is the cyclic period for clearing counts in closed state
	Interval time.Duration
	// Timeout is how long to wait before transitioning from open to half-open
	Timeout time.Duration
	// FailureThreshold is the number of consecutive failures before opening
	FailureThreshold uint32
	// IsSuccessful decides which errors do not count as failures. Defaults to err == nil.
	IsSuccessful func(err error) bool
}

func DefaultConfig(name string) Config {
	return Config{
		Name:             name,
		MaxRequests:      3,
		Interval:         60 * time.Second,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
	}
}

// StateListener is called after every state transition.
type StateListener func(name string, from, to State)

type CircuitBreaker struct {
	cb        *gobreaker.CircuitBreaker
	name      string
	log       *logrus.Logger
	listeners []StateListener

	mu    sync.RWMutex
	state State
}

func New(cfg Config, log *logrus.Logger, listeners ...StateListener) *CircuitBreaker {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = DefaultConfig(cfg.Name).FailureThreshold
	}

	c := &CircuitBreaker{
		name:      cfg.Name,
		log:       log,
		listeners: listeners,
		state:     StateClosed,
	}

	isSuccessful := cfg.IsSuccessful
	if isSuccessful == nil {
		isSuccessful = func(err error) bool { return err == nil }
	}

	c.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(_ string, from gobreaker.State, to gobreaker.State) {
			c.onStateChange(mapState(from), mapState(to))
		},
		IsSuccessful: isSuccessful,
	})

	return c
}

// Execute runs fn through the breaker. A cancelled ctx short-circuits before
// fn is called and is not counted against the breaker.
func (c *CircuitBreaker) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := c.cb.Execute(func() (interface{}, error) {
		return nil, fn(ctx)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %s", ErrCircuitOpen, c.name)
	}
	return err
}

func (c *CircuitBreaker) Name() string {
	return c.name
}

func (c *CircuitBreaker) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *CircuitBreaker) Counts() gobreaker.Counts {
	return c.cb.Counts()
}

func (c *CircuitBreaker) onStateChange(from, to State) {
	c.mu.Lock()
	c.state = to
	c.mu.Unlock()

	c.log.WithFields(logrus.Fields{
		"breaker": c.name,
		"from":    string(from),
		"to":      string(to),
	}).Warn("Circuit breaker state changed")

	for _, l := range c.listeners {
		l(c.name, from, to)
	}
}

func mapState(s gobreaker.State) State {
	switch s {
	case gobreaker.StateOpen:
		return StateOpen
	case gobreaker.StateHalfOpen:
		return StateHalfOpen
	default:
		return StateClosed
	}
}
