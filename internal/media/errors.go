package media

import "errors"

var (
	// ErrNoFrames indicates there was nothing to encode.
	ErrNoFrames = errors.New("media: no frames to encode")

	// ErrEncoder indicates the external video encoder failed or wrote nothing.
	ErrEncoder = errors.New("media: encoder failed")

	// ErrFormat indicates an unknown output format or GIF variant.
	ErrFormat = errors.New("media: unknown format")
)
