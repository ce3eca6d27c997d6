package sphere

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Supported point markers.
const (
	MarkerCircle   = "o"
	MarkerSquare   = "s"
	MarkerDiamond  = "d"
	MarkerTriangle = "^"
)

// PointStyle is the color, marker and size applied to every point on a sphere.
type PointStyle struct {
	Color  string `yaml:"color" toml:"color"`
	Marker string `yaml:"marker" toml:"marker"`
	Size   int    `yaml:"size" toml:"size"`
}

// MaxPointSize bounds PointStyle.Size; marker fill cost grows with its square.
const MaxPointSize = 100

func DefaultPointStyle() PointStyle {
	return PointStyle{Color: "b", Marker: MarkerCircle, Size: 5}
}

// single-letter codes as understood by matplotlib
var letterColors = map[string]lipgloss.Color{
	"b": "#0000ff",
	"g": "#008000",
	"r": "#ff0000",
	"c": "#00bfbf",
	"m": "#bf00bf",
	"y": "#bfbf00",
	"k": "#000000",
	"w": "#ffffff",
}

// ParseColor accepts a letter code (b g r c m y k w) or #rrggbb.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := letterColors[s]; ok {
		return RGBA(c), nil
	}
	if len(s) == 7 && s[0] == '#' {
		for _, ch := range s[1:] {
			if !strings.ContainsRune("0123456789abcdef", ch) {
				return color.RGBA{}, fmt.Errorf("%w: %q", ErrColor, s)
			}
		}
		return RGBA(lipgloss.Color(s)), nil
	}
	return color.RGBA{}, fmt.Errorf("%w: %q", ErrColor, s)
}

func (p PointStyle) Validate() error {
	if _, err := ParseColor(p.Color); err != nil {
		return err
	}
	if markerShape(p.Marker) == nil {
		return fmt.Errorf("%w: %q", ErrMarker, p.Marker)
	}
	if p.Size <= 0 || p.Size > MaxPointSize {
		return fmt.Errorf("%w: point size %d (max %d)", ErrSize, p.Size, MaxPointSize)
	}
	return nil
}

func markerShape(m string) func(dx, dy, r int) bool {
	switch m {
	case MarkerCircle:
		return inCircle
	case MarkerSquare:
		return inSquare
	case MarkerDiamond:
		return inDiamond
	case MarkerTriangle:
		return inTriangle
	}
	return nil
}
