package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/blochsim/internal/qstate"
	"github.com/san-kum/blochsim/internal/trajectory"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 20, cfg.Resolution)
	assert.Equal(t, "gif", cfg.Output.Format)
	assert.Equal(t, "frames", cfg.Output.FramesDir)
	assert.Equal(t, 400, cfg.Sphere.Size)
	assert.Equal(t, 100*time.Millisecond, cfg.FrameDelay())
	assert.Equal(t, "bloch.gif", cfg.OutputFilename())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	for _, name := range []string{"scene.yaml", "scene.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			cfg := GetPreset("ramsey")
			require.NotNil(t, cfg)
			cfg.Output.Format = "mp4"
			cfg.Output.FPS = 24
			cfg.Style.Color = "#ff8800"

			require.NoError(t, Save(path, cfg))
			loaded, err := Load(path)
			require.NoError(t, err)

			assert.Equal(t, cfg.Pulses, loaded.Pulses)
			assert.Equal(t, "mp4", loaded.Output.Format)
			assert.Equal(t, 24, loaded.Output.FPS)
			assert.Equal(t, "#ff8800", loaded.Style.Color)
			assert.Equal(t, "bloch.mp4", loaded.OutputFilename())
		})
	}
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flip.yml")
	scene := `
pulses:
  - x: 3.141592653589793
init: "+"
output:
  variant: preserve
`
	require.NoError(t, os.WriteFile(path, []byte(scene), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, []trajectory.Pulse{{X: math.Pi}}, cfg.Pulses)
	assert.Equal(t, "preserve", cfg.Output.Variant)
	assert.Equal(t, DefaultResolution, cfg.Resolution)
	assert.Equal(t, DefaultFrameDelayMs, cfg.Output.FrameDelayMs)

	st, err := cfg.InitState()
	require.NoError(t, err)
	assert.InDelta(t, 1, qstate.Fidelity(st, qstate.Plus()), 1e-12)
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.toml")
	scene := `
duration = 2.0
resolution = 5

[[pulses]]
y = 1.5

[sphere]
theme = "ocean"
size = 200
`
	require.NoError(t, os.WriteFile(path, []byte(scene), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2.0, cfg.Duration)
	assert.Equal(t, 5, cfg.Resolution)
	assert.Equal(t, []trajectory.Pulse{{Y: 1.5}}, cfg.Pulses)
	assert.Equal(t, "ocean", cfg.Sphere.Theme)
	assert.Equal(t, 200, cfg.Sphere.Size)
}

func TestLoadUnsupportedType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))

	_, err := Load(path)
	require.ErrorIs(t, err, ErrFileType)
	require.ErrorIs(t, Save(path, DefaultConfig()), ErrFileType)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero duration", func(c *Config) { c.Duration = 0 }},
		{"nan duration", func(c *Config) { c.Duration = math.NaN() }},
		{"zero resolution", func(c *Config) { c.Resolution = 0 }},
		{"infinite pulse", func(c *Config) { c.Pulses = []trajectory.Pulse{{X: math.Inf(1)}} }},
		{"bad init", func(c *Config) { c.Init = "2" }},
		{"bad solver", func(c *Config) { c.Solver = "euler" }},
		{"bad format", func(c *Config) { c.Output.Format = "avi" }},
		{"bad variant", func(c *Config) { c.Output.Variant = "webp" }},
		{"bad policy", func(c *Config) { c.Output.Policy = "ignore" }},
		{"negative fps", func(c *Config) { c.Output.FPS = -1 }},
		{"negative delay", func(c *Config) { c.Output.FrameDelayMs = -5 }},
		{"zero size", func(c *Config) { c.Sphere.Size = 0 }},
		{"huge size", func(c *Config) { c.Sphere.Size = 1 << 20 }},
		{"huge point size", func(c *Config) { c.Style.Size = 1 << 20 }},
		{"unknown theme", func(c *Config) { c.Sphere.Theme = "neon" }},
		{"bad marker", func(c *Config) { c.Style.Marker = "x" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidateReportsAll(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Duration = -1
	cfg.Resolution = 0

	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalid)

	var joined interface{ Unwrap() []error }
	require.True(t, errors.As(err, &joined))
	assert.Len(t, joined.Unwrap(), 2)
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("x-flip")
	require.NotNil(t, cfg)
	assert.Equal(t, []trajectory.Pulse{{X: math.Pi}}, cfg.Pulses)
	require.NoError(t, cfg.Validate())

	// presets hand out copies
	cfg.Pulses[0].X = 0
	assert.Equal(t, math.Pi, Presets["x-flip"].Pulses[0].X)

	assert.Nil(t, GetPreset("nonexistent"))
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	assert.Equal(t, []string{"hadamard", "ramsey", "spin-echo", "tour", "x-flip"}, names)
	for _, name := range names {
		assert.NoError(t, GetPreset(name).Validate(), name)
	}
}
