package media

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/san-kum/blochsim/internal/frames"
	"github.com/san-kum/blochsim/internal/qstate"
	"github.com/san-kum/blochsim/internal/sphere"
)

// Format is the kind of output a render produces.
type Format string

const (
	FormatGIF    Format = "gif"
	FormatMP4    Format = "mp4"
	FormatFrames Format = "frames"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatGIF, nil
	case FormatGIF, FormatMP4, FormatFrames:
		return f, nil
	case "video":
		return FormatMP4, nil
	}
	return "", fmt.Errorf("%w: %q", ErrFormat, s)
}

// AssembleResult describes a finished assembly.
type AssembleResult struct {
	Output  string
	Dir     string
	Frames  int
	Skipped []int
	Cleanup frames.Cleanup
}

// FrameOptions control the frame directory shared by every assembler.
type FrameOptions struct {
	// Dir is the frame directory; empty means frames.DefaultDir.
	Dir string
	// Style is applied to the point history of every frame.
	Style sphere.PointStyle
	// AlwaysClean removes frames even when the assembly fails.
	AlwaysClean bool
	// KeepFrames leaves frames in place after a successful assembly.
	KeepFrames bool
	Logger     *slog.Logger
}

func (o FrameOptions) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

func (o FrameOptions) style() sphere.PointStyle {
	if o.Style == (sphere.PointStyle{}) {
		return sphere.DefaultPointStyle()
	}
	return o.Style
}

// exportFrames locks the frame directory and renders every state into it.
// The returned Dir must be settled by the caller, even on error.
func exportFrames(ctx context.Context, states []qstate.State, sp *sphere.Sphere, o FrameOptions) (*frames.Dir, error) {
	dirOpts := []frames.DirOption{frames.WithLogger(o.logger())}
	if o.AlwaysClean {
		dirOpts = append(dirOpts, frames.WithAlwaysClean())
	}
	dir, err := frames.Acquire(o.Dir, dirOpts...)
	if err != nil {
		return nil, err
	}

	if _, err := frames.NewExporter(o.style(), o.logger()).Export(ctx, states, sp, dir); err != nil {
		return dir, fmt.Errorf("export frames: %w", err)
	}
	return dir, nil
}

// settle commits and releases dir when err is nil, releases it uncommitted
// otherwise, and records the cleanup status on res.
func settle(dir *frames.Dir, res *AssembleResult, o FrameOptions, err error) error {
	if dir == nil {
		return err
	}
	if err == nil && o.KeepFrames {
		res.Cleanup = frames.CleanupRetained
		o.logger().Info("frames kept", "dir", dir.Path())
		return dir.Detach()
	}
	if err == nil {
		dir.Commit()
	}
	status, relErr := dir.Release()
	if res != nil {
		res.Cleanup = status
	}
	return errors.Join(err, relErr)
}

// SaveFrames exports the frames only and leaves them in place.
func SaveFrames(ctx context.Context, states []qstate.State, sp *sphere.Sphere, opts FrameOptions) (*AssembleResult, error) {
	if len(states) == 0 {
		return nil, ErrNoFrames
	}
	dir, err := exportFrames(ctx, states, sp, opts)
	if err != nil {
		return nil, settle(dir, nil, opts, err)
	}
	res := &AssembleResult{
		Output:  dir.Path(),
		Dir:     dir.Path(),
		Frames:  len(states),
		Cleanup: frames.CleanupRetained,
	}
	opts.logger().Info("frames saved", "dir", dir.Path(), "frames", len(states))
	return res, dir.Detach()
}
