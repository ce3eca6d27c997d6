package media

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/san-kum/blochsim/internal/qstate"
	"github.com/san-kum/blochsim/internal/sphere"
)

var commandContext = exec.CommandContext

const (
	FFmpegBinary = "ffmpeg"

	Codec       = "libx264"
	Bitrate     = "3000k"
	PixelFormat = "yuv420p"

	DefaultFPS           = 10
	DefaultVideoFilename = "bloch.mp4"
)

type VideoOptions struct {
	Filename string
	FPS      int
	// Binary overrides the ffmpeg executable.
	Binary string
	FrameOptions
}

// AssembleVideo exports one frame per state and encodes them with ffmpeg.
func AssembleVideo(ctx context.Context, states []qstate.State, sp *sphere.Sphere, opts VideoOptions) (res *AssembleResult, err error) {
	if len(states) == 0 {
		return nil, ErrNoFrames
	}
	if opts.Filename == "" {
		opts.Filename = DefaultVideoFilename
	}
	if opts.FPS <= 0 {
		opts.FPS = DefaultFPS
	}
	if opts.Binary == "" {
		opts.Binary = FFmpegBinary
	}
	logger := opts.logger()

	dir, err := exportFrames(ctx, states, sp, opts.FrameOptions)
	if dir != nil {
		res = &AssembleResult{Output: opts.Filename, Dir: dir.Path(), Frames: len(states)}
		defer func() { err = settle(dir, res, opts.FrameOptions, err) }()
	}
	if err != nil {
		return res, err
	}

	pattern := filepath.Join(dir.Path(), "frame_%d.png")
	if err := encodeVideo(ctx, opts.Binary, pattern, opts.Filename, opts.FPS, len(states)); err != nil {
		return res, err
	}

	logger.Info("video saved",
		"path", opts.Filename,
		"frames", len(states),
		"fps", opts.FPS,
	)
	return res, nil
}

// videoArgs bounds the input to frames images so the frame_%d pattern never
// reads past the current export.
func videoArgs(pattern, output string, fps, frames int) []string {
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-framerate", strconv.Itoa(fps),
		"-start_number", "0",
		"-i", pattern,
		"-frames:v", strconv.Itoa(frames),
		"-vf", "scale=trunc(iw/2)*2:trunc(ih/2)*2",
		"-c:v", Codec,
		"-b:v", Bitrate,
		"-pix_fmt", PixelFormat,
		output,
	}
}

func encodeVideo(ctx context.Context, binary, pattern, output string, fps, frames int) error {
	cmd := commandContext(ctx, binary, videoArgs(pattern, output, fps, frames)...) //nolint:gosec
	if out, err := cmd.CombinedOutput(); err != nil {
		msg := strings.TrimSpace(string(out))
		if msg == "" {
			return fmt.Errorf("%w: ffmpeg encode: %v", ErrEncoder, err)
		}
		return fmt.Errorf("%w: ffmpeg encode: %v: %s", ErrEncoder, err, msg)
	}

	info, err := os.Stat(output)
	if err != nil {
		return fmt.Errorf("%w: ffmpeg wrote no output: %v", ErrEncoder, err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("%w: ffmpeg wrote an empty file %s", ErrEncoder, output)
	}
	return nil
}
