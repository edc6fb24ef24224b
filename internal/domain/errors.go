package domain

import (
	"errors"
	"fmt"
)

// InputError reports malformed or out-of-range request data. It names
// the offending field and is never retried.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

// InfeasibleError reports that no sequence satisfies the hard
// constraints. StopID names the binding stop where one is known, so the
// caller can relax that constraint.
type InfeasibleError struct {
	Reason string
	StopID string
}

func (e *InfeasibleError) Error() string {
	if e.StopID != "" {
		return fmt.Sprintf("infeasible route: stop %s: %s", e.StopID, e.Reason)
	}
	return "infeasible route: " + e.Reason
}

// ErrBudgetExceeded signals that the exact search ran out of its
// wall-clock budget. It is an internal fallback trigger and must never
// reach the caller.
var ErrBudgetExceeded = errors.New("optimization budget exceeded")

// IsInput reports whether err is an InputError.
func IsInput(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}

// IsInfeasible reports whether err is an InfeasibleError.
func IsInfeasible(err error) bool {
	var fe *InfeasibleError
	return errors.As(err, &fe)
}
