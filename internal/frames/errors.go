package frames

import (
	"errors"
	"fmt"
)

var (
	// ErrDirBusy indicates another export holds the frame directory lock.
	ErrDirBusy = errors.New("frames: directory locked by another export")

	// ErrReleased indicates use of a Dir after Release or Detach.
	ErrReleased = errors.New("frames: directory already released")
)

// MissingFrameError reports a frame file that could not be read.
type MissingFrameError struct {
	Index   int
	Path    string
	Wrapped error
}

func (e *MissingFrameError) Error() string {
	return fmt.Sprintf("frame %d (%s): %v", e.Index, e.Path, e.Wrapped)
}

func (e *MissingFrameError) Unwrap() error {
	return e.Wrapped
}
