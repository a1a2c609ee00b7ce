package state

import (
	"errors"
	"fmt"
)

// ErrPreconditionViolation marks a transition called in the wrong phase.
// It is a programmer error and never shown to users.
var ErrPreconditionViolation = errors.New("precondition violation")

type PreconditionError struct {
	Op     string
	Phase  Phase
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s while %s: %s", e.Op, e.Phase, e.Reason)
}

func (e *PreconditionError) Unwrap() error { return ErrPreconditionViolation }
