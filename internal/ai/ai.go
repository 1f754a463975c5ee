// Package ai defines the contract between the analyzer and language-model backends together
// with the availability breaker and the retry policy that guard every call.
package ai

import (
	"context"
	"sync"
	"sync/atomic"
)

// Shape names the JSON document a call is expected to return.
type Shape int

const (
	ShapeJobDescription Shape = iota
	ShapeMatch
	ShapeQuestions
)

func (s Shape) String() string {
	switch s {
	case ShapeJobDescription:
		return "job_description"
	case ShapeMatch:
		return "match"
	case ShapeQuestions:
		return "questions"
	default:
		return "unknown"
	}
}

// Generator sends one prompt to one model and returns the raw text answer.
// Implementations report failures as *ServiceError so they can be classified.
type Generator interface {
	Generate(ctx context.Context, model, prompt string, shape Shape) (string, error)
	Provider() string
}

// Availability is a one-way circuit breaker for the AI backend. Once disabled it stays
// disabled for the life of the process. Concurrent callers may still observe the old state
// for a short time and must tolerate a failed call afterwards.
type Availability struct {
	disabled atomic.Bool

	mu     sync.Mutex
	reason string
}

// NewAvailability returns a breaker in the given initial state.
func NewAvailability(enabled bool, reason string) *Availability {
	a := &Availability{}
	if !enabled {
		a.Disable(reason)
	}
	return a
}

// Available reports whether calls to the backend may be attempted.
func (a *Availability) Available() bool {
	if a == nil {
		return false
	}
	return !a.disabled.Load()
}

// Disable flips the breaker. It returns true only for the call that performed the flip.
func (a *Availability) Disable(reason string) bool {
	if a == nil {
		return false
	}
	if !a.disabled.CompareAndSwap(false, true) {
		return false
	}

	a.mu.Lock()
	a.reason = reason
	a.mu.Unlock()
	return true
}

// Reason returns why the breaker was disabled.
func (a *Availability) Reason() string {
	if a == nil {
		return "ai backend is not configured"
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.reason
}
