package config

import (
	"math"
	"sort"

	"github.com/san-kum/blochsim/internal/trajectory"
)

// Preset is a named pulse sequence with its starting state.
type Preset struct {
	Description string
	Init        string
	Pulses      []trajectory.Pulse
	Duration    float64
}

const halfPi = math.Pi / 2

var Presets = map[string]Preset{
	"x-flip": {
		Description: "π rotation about x, |0⟩ to |1⟩",
		Init:        "0",
		Pulses:      []trajectory.Pulse{{X: math.Pi}},
		Duration:    1,
	},
	"hadamard": {
		Description: "π rotation about (x+z)/√2, |0⟩ to |+⟩",
		Init:        "0",
		Pulses:      []trajectory.Pulse{{X: math.Pi / math.Sqrt2, Z: math.Pi / math.Sqrt2}},
		Duration:    1,
	},
	"spin-echo": {
		Description: "π/2 x, free precession, π x refocus, free precession",
		Init:        "0",
		Pulses: []trajectory.Pulse{
			{X: halfPi},
			{Z: halfPi},
			{X: math.Pi},
			{Z: halfPi},
		},
		Duration: 1,
	},
	"ramsey": {
		Description: "π/2 x, π phase accumulation about z, π/2 x",
		Init:        "0",
		Pulses: []trajectory.Pulse{
			{X: halfPi},
			{Z: math.Pi},
			{X: halfPi},
		},
		Duration: 1,
	},
	"tour": {
		Description: "visit +x, +y and return to the north pole",
		Init:        "0",
		Pulses: []trajectory.Pulse{
			{Y: halfPi},
			{Z: halfPi},
			{X: halfPi},
		},
		Duration: 1,
	},
}

// GetPreset returns a default config carrying the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Init = p.Init
	cfg.Duration = p.Duration
	cfg.Pulses = append([]trajectory.Pulse(nil), p.Pulses...)
	return cfg
}

// ListPresets returns the preset names in order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
