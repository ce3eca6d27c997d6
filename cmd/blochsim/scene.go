package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/blochsim/internal/config"
	"github.com/san-kum/blochsim/internal/metrics"
	"github.com/san-kum/blochsim/internal/solver"
	"github.com/san-kum/blochsim/internal/trajectory"
)

// loadScene builds the config for a command: preset or scene file first,
// then any flag the user set explicitly.
func loadScene(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if len(args) > 0 {
		scene := args[0]
		switch {
		case isSceneFile(scene):
			loaded, err := config.Load(scene)
			if err != nil {
				return nil, fmt.Errorf("failed to load scene: %w", err)
			}
			cfg = loaded
		case config.GetPreset(scene) != nil:
			cfg = config.GetPreset(scene)
		default:
			return nil, fmt.Errorf("scene %q is neither a scene file nor a preset (available: %v)", scene, config.ListPresets())
		}
	}

	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func isSceneFile(arg string) bool {
	switch strings.ToLower(filepath.Ext(arg)) {
	case ".yaml", ".yml", ".toml":
		return true
	}
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		return true
	}
	return false
}

// applyFlags overrides cfg with flags the user set explicitly.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	changed := func(name string) bool {
		f := flags.Lookup(name)
		return f != nil && f.Changed
	}

	if changed("duration") {
		cfg.Duration = duration
	}
	if changed("resolution") {
		cfg.Resolution = resolution
	}
	if changed("init") {
		cfg.Init = initName
	}
	if changed("solver") {
		cfg.Solver = solverName
	}
	if changed("pulse") {
		pulses := make([]trajectory.Pulse, 0, len(pulseSpecs))
		for _, spec := range pulseSpecs {
			p, err := parsePulse(spec)
			if err != nil {
				return err
			}
			pulses = append(pulses, p)
		}
		cfg.Pulses = pulses
	}

	if changed("format") {
		cfg.Output.Format = format
	}
	if changed("out") {
		cfg.Output.Filename = outFile
	}
	if changed("fps") {
		cfg.Output.FPS = fps
	}
	if changed("delay") {
		cfg.Output.FrameDelayMs = delayMs
	}
	if changed("variant") {
		cfg.Output.Variant = variant
	}
	if changed("policy") {
		cfg.Output.Policy = policy
	}
	if changed("frames-dir") {
		cfg.Output.FramesDir = framesDir
	}
	if changed("keep-frames") {
		cfg.Output.KeepFrames = keepFrames
	}
	if changed("theme") {
		cfg.Sphere.Theme = theme
	}
	if changed("size") {
		cfg.Sphere.Size = size
	}
	if changed("color") {
		cfg.Style.Color = color
	}
	if changed("marker") {
		cfg.Style.Marker = marker
	}
	if changed("point-size") {
		cfg.Style.Size = pointSize
	}
	return nil
}

// parsePulse reads "x,y,z" where each angle is a number or a multiple of pi
// such as "pi", "-pi/2" or "3pi/4".
func parsePulse(spec string) (trajectory.Pulse, error) {
	parts := strings.Split(spec, ",")
	if len(parts) != 3 {
		return trajectory.Pulse{}, fmt.Errorf("pulse %q: expected x,y,z", spec)
	}
	var angles [3]float64
	for i, part := range parts {
		a, err := parseAngle(part)
		if err != nil {
			return trajectory.Pulse{}, fmt.Errorf("pulse %q: %w", spec, err)
		}
		angles[i] = a
	}
	return trajectory.Pulse{X: angles[0], Y: angles[1], Z: angles[2]}, nil
}

func parseAngle(s string) (float64, error) {
	s = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	if s == "" {
		return 0, nil
	}
	if !strings.Contains(s, "pi") {
		return strconv.ParseFloat(s, 64)
	}

	num, den, hasDen := strings.Cut(s, "/")
	divisor := 1.0
	if hasDen {
		d, err := strconv.ParseFloat(den, 64)
		if err != nil || d == 0 {
			return 0, fmt.Errorf("invalid angle %q", s)
		}
		divisor = d
	}

	coeff := strings.TrimSuffix(strings.TrimSuffix(num, "pi"), "*")
	var k float64
	switch coeff {
	case "", "+":
		k = 1
	case "-":
		k = -1
	default:
		v, err := strconv.ParseFloat(coeff, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid angle %q", s)
		}
		k = v
	}
	return k * math.Pi / divisor, nil
}

// simulate evolves cfg's pulse sequence with the configured solver.
func simulate(ctx context.Context, cfg *config.Config, solverOverride string) (*trajectory.Result, error) {
	name := cfg.Solver
	if solverOverride != "" {
		name = solverOverride
	}
	s, err := solver.New(name)
	if err != nil {
		return nil, err
	}
	init, err := cfg.InitState()
	if err != nil {
		return nil, err
	}

	gen := trajectory.New(s, logger)
	for _, m := range metrics.Defaults() {
		gen.AddMetric(m)
	}
	return gen.Generate(ctx, cfg.Pulses, init, cfg.Duration, cfg.Resolution)
}
