package sphere

import "errors"

var (
	// ErrColor indicates a color that is neither a known letter code nor #rrggbb.
	ErrColor = errors.New("sphere: invalid color")

	// ErrMarker indicates an unsupported point marker.
	ErrMarker = errors.New("sphere: invalid marker")

	// ErrSize indicates an image or point size outside its allowed range.
	ErrSize = errors.New("sphere: size out of range")
)
