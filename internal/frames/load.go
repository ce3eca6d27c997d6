package frames

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"strings"
)

// Policy decides what Collect does with a missing frame.
type Policy int

const (
	// SkipAndWarn logs each missing frame and continues without it.
	SkipAndWarn Policy = iota
	// FailFast returns the first missing frame as an error.
	FailFast
)

func (p Policy) String() string {
	if p == FailFast {
		return "fail"
	}
	return "skip"
}

// ParsePolicy accepts "skip" or "fail".
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "skip", "warn", "skip-and-warn":
		return SkipAndWarn, nil
	case "fail", "fail-fast", "strict":
		return FailFast, nil
	}
	return SkipAndWarn, fmt.Errorf("unknown missing-frame policy %q", s)
}

// FrameResult is the outcome of reading one frame: Image on success, a
// *MissingFrameError in Err otherwise.
type FrameResult struct {
	Index int
	Path  string
	Image image.Image
	Err   error
}

// Load decodes frame_0.png through frame_{n-1}.png from dir.
func Load(dir *Dir, n int) []FrameResult {
	results := make([]FrameResult, n)
	for i := 0; i < n; i++ {
		path := dir.FramePath(i)
		img, err := readPNG(path)
		results[i] = FrameResult{Index: i, Path: path, Image: img}
		if err != nil {
			results[i].Image = nil
			results[i].Err = &MissingFrameError{Index: i, Path: path, Wrapped: err}
		}
	}
	return results
}

func readPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return png.Decode(f)
}

// Collect applies policy to results and returns the readable images in order
// together with the indices that were skipped.
func Collect(results []FrameResult, policy Policy, logger *slog.Logger) ([]image.Image, []int, error) {
	if logger == nil {
		logger = slog.Default()
	}

	images := make([]image.Image, 0, len(results))
	var skipped []int
	for _, r := range results {
		if r.Err == nil {
			images = append(images, r.Image)
			continue
		}
		if policy == FailFast {
			return nil, skipped, r.Err
		}
		logger.Warn("frame not found, skipping",
			"index", r.Index,
			"path", r.Path,
			"error", r.Err,
		)
		skipped = append(skipped, r.Index)
	}
	return images, skipped, nil
}
