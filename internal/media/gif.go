package media

import (
	"context"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/san-kum/blochsim/internal/frames"
	"github.com/san-kum/blochsim/internal/qstate"
	"github.com/san-kum/blochsim/internal/sphere"
)

// Variant selects how frames become a GIF.
type Variant int

const (
	// VariantLossySafe skips unreadable frames and ignores FrameDelay.
	VariantLossySafe Variant = iota
	// VariantFramePreserving requires every frame and applies FrameDelay
	// uniformly, writing each frame whole.
	VariantFramePreserving
)

const (
	DefaultGIFFilename = "bloch.gif"
	DefaultFrameDelay  = 100 * time.Millisecond

	// lossyDelay is the per-frame delay in 1/100 s used by the lossy-safe
	// variant regardless of the requested delay.
	lossyDelay = 10
)

func (v Variant) String() string {
	if v == VariantFramePreserving {
		return "preserve"
	}
	return "lossy"
}

func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lossy", "lossy-safe", "safe":
		return VariantLossySafe, nil
	case "preserve", "frame-preserving", "pillow", "exact":
		return VariantFramePreserving, nil
	}
	return VariantLossySafe, fmt.Errorf("%w: gif variant %q", ErrFormat, s)
}

type GIFOptions struct {
	Filename   string
	FrameDelay time.Duration
	Variant    Variant
	// Policy applies to VariantLossySafe only; the frame-preserving variant
	// always fails on the first missing frame.
	Policy frames.Policy
	FrameOptions
}

// AssembleGIF exports one frame per state and encodes them as an animated GIF.
func AssembleGIF(ctx context.Context, states []qstate.State, sp *sphere.Sphere, opts GIFOptions) (res *AssembleResult, err error) {
	if len(states) == 0 {
		return nil, ErrNoFrames
	}
	if opts.Filename == "" {
		opts.Filename = DefaultGIFFilename
	}
	logger := opts.logger()

	dir, err := exportFrames(ctx, states, sp, opts.FrameOptions)
	if dir != nil {
		res = &AssembleResult{Output: opts.Filename, Dir: dir.Path()}
		defer func() { err = settle(dir, res, opts.FrameOptions, err) }()
	}
	if err != nil {
		return res, err
	}

	anim, skipped, err := BuildGIF(frames.Load(dir, len(states)), opts, logger)
	res.Skipped = skipped
	if err != nil {
		return res, err
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}
	if err := writeGIF(opts.Filename, anim); err != nil {
		return res, err
	}
	res.Frames = len(anim.Image)

	logger.Info("gif saved",
		"path", opts.Filename,
		"frames", res.Frames,
		"skipped", len(skipped),
		"variant", opts.Variant.String(),
	)
	return res, nil
}

// BuildGIF encodes loaded frames according to opts.Variant and returns the
// indices of skipped frames.
func BuildGIF(results []frames.FrameResult, opts GIFOptions, logger *slog.Logger) (*gif.GIF, []int, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		anim    *gif.GIF
		skipped []int
	)
	switch opts.Variant {
	case VariantFramePreserving:
		images, _, err := frames.Collect(results, frames.FailFast, logger)
		if err != nil {
			return nil, nil, err
		}
		anim = preservingGIF(images, opts.FrameDelay)
	default:
		if opts.FrameDelay != 0 {
			logger.Debug("frame delay not applied by lossy-safe gif", "delay", opts.FrameDelay)
		}
		images, missing, err := frames.Collect(results, opts.Policy, logger)
		if err != nil {
			return nil, missing, err
		}
		skipped = missing
		anim = lossyGIF(images)
	}

	if len(anim.Image) == 0 {
		return nil, skipped, ErrNoFrames
	}
	return anim, skipped, nil
}

// lossyGIF dithers every frame onto the web-safe palette with default timing.
func lossyGIF(images []image.Image) *gif.GIF {
	anim := &gif.GIF{LoopCount: 0}
	for _, img := range images {
		b := img.Bounds()
		pm := image.NewPaletted(b, palette.WebSafe)
		draw.FloydSteinberg.Draw(pm, b, img, b.Min)
		anim.Image = append(anim.Image, pm)
		anim.Delay = append(anim.Delay, lossyDelay)
	}
	return anim
}

// preservingGIF converts every frame to RGBA, maps it onto a fixed palette
// without dithering, and writes it whole with a uniform delay.
func preservingGIF(images []image.Image, delay time.Duration) *gif.GIF {
	cs := delayCentis(delay)
	anim := &gif.GIF{LoopCount: 0}
	for _, img := range images {
		b := img.Bounds()
		rgba := image.NewRGBA(b)
		draw.Draw(rgba, b, img, b.Min, draw.Src)

		pm := image.NewPaletted(b, palette.Plan9)
		draw.Draw(pm, b, rgba, b.Min, draw.Src)

		anim.Image = append(anim.Image, pm)
		anim.Delay = append(anim.Delay, cs)
		anim.Disposal = append(anim.Disposal, gif.DisposalNone)
	}
	return anim
}

func delayCentis(d time.Duration) int {
	if d <= 0 {
		d = DefaultFrameDelay
	}
	return max(1, int(d/(10*time.Millisecond)))
}

func writeGIF(path string, anim *gif.GIF) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create gif: %w", err)
	}
	if err := gif.EncodeAll(f, anim); err != nil {
		f.Close()
		return fmt.Errorf("encode gif: %w", err)
	}
	return f.Close()
}
