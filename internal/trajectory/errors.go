package trajectory

import (
	"errors"
	"fmt"
)

var (
	// ErrDuration indicates a non-positive or non-finite segment duration.
	ErrDuration = errors.New("trajectory: duration must be positive")

	// ErrResolution indicates fewer than one sample per segment.
	ErrResolution = errors.New("trajectory: resolution must be at least 1")
)

// SegmentError wraps a failure while evolving one pulse of a sequence.
type SegmentError struct {
	Index   int
	Pulse   Pulse
	Wrapped error
}

func (e *SegmentError) Error() string {
	return fmt.Sprintf("segment %d %s: %v", e.Index, e.Pulse, e.Wrapped)
}

func (e *SegmentError) Unwrap() error {
	return e.Wrapped
}
