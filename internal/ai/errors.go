package ai

import (
	"errors"
	"fmt"
)

// ErrorKind groups backend failures by how the caller should react.
type ErrorKind int

const (
	KindOther ErrorKind = iota
	KindRateLimit
	KindConnectivity
	KindAuth
)

func (k ErrorKind) String() string {
	switch k {
	case KindRateLimit:
		return "rate_limit"
	case KindConnectivity:
		return "connectivity"
	case KindAuth:
		return "auth"
	default:
		return "other"
	}
}

// ErrUnavailable is reported when the breaker is open or no generator is configured.
var ErrUnavailable = errors.New("ai backend unavailable")

// ServiceError is a failed backend call.
type ServiceError struct {
	Kind  ErrorKind
	Model string
	Err   error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("ai service error (%s, model %s): %v", e.Kind, e.Model, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// MalformedResponseError means the backend answered but the payload does not have the
// expected shape.
type MalformedResponseError struct {
	Shape  Shape
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed %s response: %s: %v", e.Shape, e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed %s response: %s", e.Shape, e.Reason)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// Decision is what the retry policy does after a failed attempt.
type Decision int

const (
	FailFast Decision = iota
	Retry
	Disable
)

func (d Decision) String() string {
	switch d {
	case Retry:
		return "retry"
	case Disable:
		return "disable"
	default:
		return "fail_fast"
	}
}

// Classify maps an attempt error to a decision. Only rate limits are retried and only
// authentication failures open the breaker.
func Classify(err error) Decision {
	var serviceErr *ServiceError
	if !errors.As(err, &serviceErr) {
		return FailFast
	}

	switch serviceErr.Kind {
	case KindRateLimit:
		return Retry
	case KindAuth:
		return Disable
	default:
		return FailFast
	}
}
