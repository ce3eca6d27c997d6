package qstate

import "errors"

var (
	// ErrInvalidState indicates a state with zero, NaN or Inf norm.
	ErrInvalidState = errors.New("qstate: invalid state (zero, NaN or Inf amplitude)")

	// ErrUnknownState indicates a state name Parse does not recognise.
	ErrUnknownState = errors.New("qstate: unknown state name")
)
