package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spigell/autohire/internal/utils"
)

const (
	DefaultPrimaryModel  = "gemini-2.5-pro"
	DefaultFallbackModel = "gemini-2.5-flash"
	DefaultBackoff       = time.Second
)

// State is a step of a guarded AI call.
type State int

const (
	StateAttemptPrimary State = iota
	StateAttemptFallbackModel
	StateStructured
	StateHeuristic
)

func (s State) String() string {
	switch s {
	case StateAttemptPrimary:
		return "attempt_primary"
	case StateAttemptFallbackModel:
		return "attempt_fallback_model"
	case StateStructured:
		return "structured"
	default:
		return "heuristic"
	}
}

// RetryPolicy walks the ordered model list. A retryable failure moves to the next model after
// a fixed backoff; any other failure, or running out of models, ends in StateHeuristic.
type RetryPolicy struct {
	Models  []string
	Backoff time.Duration
	// Wait blocks between attempts. Defaults to utils.WaitFor.
	Wait func(ctx context.Context, d time.Duration) error
}

// DefaultPolicy tries the primary model and then the cheaper fallback model once.
func DefaultPolicy() RetryPolicy {
	return RetryPolicy{
		Models:  []string{DefaultPrimaryModel, DefaultFallbackModel},
		Backoff: DefaultBackoff,
	}
}

// Attempt performs one call against model.
type Attempt func(ctx context.Context, model string) error

// Outcome reports how a guarded call ended.
type Outcome struct {
	State    State
	Model    string
	Attempts int
	Decision Decision
	Err      error
}

// Structured reports whether an attempt succeeded.
func (o Outcome) Structured() bool {
	return o.State == StateStructured
}

// Run drives attempt through the policy. The breaker is consulted before every attempt and
// flipped when an attempt fails with an authentication error.
func (p RetryPolicy) Run(ctx context.Context, availability *Availability, attempt Attempt) Outcome {
	if len(p.Models) == 0 {
		return Outcome{State: StateHeuristic, Err: errors.New("no models configured")}
	}

	wait := p.Wait
	if wait == nil {
		wait = utils.WaitFor
	}

	var (
		state   = StateAttemptPrimary
		lastErr error
		tries   int
	)

	for i, model := range p.Models {
		if i > 0 {
			state = StateAttemptFallbackModel
			if err := wait(ctx, p.Backoff); err != nil {
				return Outcome{State: StateHeuristic, Attempts: tries, Decision: FailFast, Err: err}
			}
		}

		if !availability.Available() {
			return Outcome{State: StateHeuristic, Attempts: tries, Decision: FailFast, Err: ErrUnavailable}
		}

		tries++
		err := attempt(ctx, model)
		if err == nil {
			return Outcome{State: StateStructured, Model: model, Attempts: tries}
		}

		decision := Classify(err)
		switch decision {
		case Retry:
			lastErr = err
			continue
		case Disable:
			availability.Disable(err.Error())
		}

		return Outcome{State: StateHeuristic, Model: model, Attempts: tries, Decision: decision, Err: fmt.Errorf("%s: %w", state, err)}
	}

	return Outcome{
		State:    StateHeuristic,
		Model:    p.Models[len(p.Models)-1],
		Attempts: tries,
		Decision: Retry,
		Err:      fmt.Errorf("retries exhausted: %w", lastErr),
	}
}
