package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/blochsim/internal/frames"
	"github.com/san-kum/blochsim/internal/media"
	"github.com/san-kum/blochsim/internal/qstate"
	"github.com/san-kum/blochsim/internal/solver"
	"github.com/san-kum/blochsim/internal/sphere"
	"github.com/san-kum/blochsim/internal/trajectory"
)

const (
	DefaultDuration     = 1.0
	DefaultResolution   = trajectory.DefaultResolution
	DefaultInit         = "0"
	DefaultSolver       = "exact"
	DefaultFormat       = "gif"
	DefaultVariant      = "lossy"
	DefaultPolicy       = "skip"
	DefaultFPS          = media.DefaultFPS
	DefaultFrameDelayMs = 100
)

var (
	// ErrInvalid indicates a config value outside its allowed range.
	ErrInvalid = errors.New("config: invalid value")

	// ErrFileType indicates a config file extension Load cannot read.
	ErrFileType = errors.New("config: unsupported file type")
)

// Config describes one render: the pulse sequence, how it is sampled, and
// how the result is drawn and encoded.
type Config struct {
	Pulses     []trajectory.Pulse `yaml:"pulses" toml:"pulses"`
	Duration   float64            `yaml:"duration" toml:"duration"`
	Resolution int                `yaml:"resolution" toml:"resolution"`
	Init       string             `yaml:"init" toml:"init"`
	Solver     string             `yaml:"solver" toml:"solver"`
	Output     OutputConfig       `yaml:"output" toml:"output"`
	Sphere     sphere.Options     `yaml:"sphere" toml:"sphere"`
	Style      sphere.PointStyle  `yaml:"style" toml:"style"`
}

type OutputConfig struct {
	Format       string `yaml:"format" toml:"format"`
	Filename     string `yaml:"filename" toml:"filename"`
	FPS          int    `yaml:"fps" toml:"fps"`
	FrameDelayMs int    `yaml:"frame_delay_ms" toml:"frame_delay_ms"`
	Variant      string `yaml:"variant" toml:"variant"`
	Policy       string `yaml:"policy" toml:"policy"`
	FramesDir    string `yaml:"frames_dir" toml:"frames_dir"`
	KeepFrames   bool   `yaml:"keep_frames" toml:"keep_frames"`
	FFmpeg       string `yaml:"ffmpeg,omitempty" toml:"ffmpeg,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Duration:   DefaultDuration,
		Resolution: DefaultResolution,
		Init:       DefaultInit,
		Solver:     DefaultSolver,
		Output: OutputConfig{
			Format:       DefaultFormat,
			FPS:          DefaultFPS,
			FrameDelayMs: DefaultFrameDelayMs,
			Variant:      DefaultVariant,
			Policy:       DefaultPolicy,
			FramesDir:    frames.DefaultDir,
		},
		Sphere: sphere.DefaultOptions(),
		Style:  sphere.DefaultPointStyle(),
	}
}

// Load reads a YAML (.yaml, .yml) or TOML (.toml) file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	switch ext(path) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("%w: %s", ErrFileType, path)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	var (
		data []byte
		err  error
	)
	switch ext(path) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(cfg)
	case ".toml":
		data, err = toml.Marshal(cfg)
	default:
		return fmt.Errorf("%w: %s", ErrFileType, path)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if !(c.Duration > 0) || math.IsInf(c.Duration, 0) {
		invalid("duration must be positive, got %v", c.Duration)
	}
	if c.Resolution < 1 {
		invalid("resolution must be at least 1, got %d", c.Resolution)
	}
	for i, p := range c.Pulses {
		if !finite(p.X) || !finite(p.Y) || !finite(p.Z) {
			invalid("pulse %d has a non-finite angle %s", i, p)
		}
	}
	if _, err := qstate.Parse(c.Init); err != nil {
		errs = append(errs, err)
	}
	if _, err := solver.New(c.Solver); err != nil {
		errs = append(errs, err)
	}

	if _, err := media.ParseFormat(c.Output.Format); err != nil {
		errs = append(errs, err)
	}
	if _, err := media.ParseVariant(c.Output.Variant); err != nil {
		errs = append(errs, err)
	}
	if _, err := frames.ParsePolicy(c.Output.Policy); err != nil {
		errs = append(errs, err)
	}
	if c.Output.FPS < 0 {
		invalid("fps must not be negative, got %d", c.Output.FPS)
	}
	if c.Output.FrameDelayMs < 0 {
		invalid("frame_delay_ms must not be negative, got %d", c.Output.FrameDelayMs)
	}

	if c.Sphere.Size <= 0 || c.Sphere.Size > sphere.MaxSize {
		invalid("sphere size must be in [1, %d], got %d", sphere.MaxSize, c.Sphere.Size)
	}
	if c.Sphere.Theme != "" && !slices.Contains(sphere.ThemeNames(), c.Sphere.Theme) {
		invalid("unknown theme %q", c.Sphere.Theme)
	}
	if err := c.Style.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// InitState parses Init into a state.
func (c *Config) InitState() (qstate.State, error) {
	return qstate.Parse(c.Init)
}

func (c *Config) FrameDelay() time.Duration {
	return time.Duration(c.Output.FrameDelayMs) * time.Millisecond
}

// OutputFilename returns Filename or the default name for the format.
func (c *Config) OutputFilename() string {
	if c.Output.Filename != "" {
		return c.Output.Filename
	}
	format, _ := media.ParseFormat(c.Output.Format)
	switch format {
	case media.FormatMP4:
		return media.DefaultVideoFilename
	case media.FormatFrames:
		return c.Output.FramesDir
	}
	return media.DefaultGIFFilename
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
