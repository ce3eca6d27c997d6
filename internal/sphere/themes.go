package sphere

import (
	"image/color"
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color scheme of a rendered sphere
type Theme struct {
	Name       string
	Background lipgloss.Color
	Frame      lipgloss.Color
	Axis       lipgloss.Color
	Vector     lipgloss.Color
}

// Available themes
var (
	ThemeLight = Theme{
		Name:       "light",
		Background: lipgloss.Color("#ffffff"),
		Frame:      lipgloss.Color("#9a9a9a"),
		Axis:       lipgloss.Color("#404040"),
		Vector:     lipgloss.Color("#cc3333"),
	}

	ThemeCyberpunk = Theme{
		Name:       "cyberpunk",
		Background: lipgloss.Color("#0a0a0a"),
		Frame:      lipgloss.Color("#00ffff"), // Cyan
		Axis:       lipgloss.Color("#ffff00"), // Yellow
		Vector:     lipgloss.Color("#ff00ff"), // Magenta
	}

	ThemeRetroGreen = Theme{
		Name:       "retro",
		Background: lipgloss.Color("#001100"),
		Frame:      lipgloss.Color("#005500"),
		Axis:       lipgloss.Color("#00cc00"),
		Vector:     lipgloss.Color("#88ff88"),
	}

	ThemeMinimal = Theme{
		Name:       "minimal",
		Background: lipgloss.Color("#000000"),
		Frame:      lipgloss.Color("#888888"),
		Axis:       lipgloss.Color("#cccccc"),
		Vector:     lipgloss.Color("#0088ff"),
	}

	ThemeOcean = Theme{
		Name:       "ocean",
		Background: lipgloss.Color("#001a33"),
		Frame:      lipgloss.Color("#4488aa"),
		Axis:       lipgloss.Color("#00a8cc"),
		Vector:     lipgloss.Color("#ffd700"),
	}

	ThemeSunset = Theme{
		Name:       "sunset",
		Background: lipgloss.Color("#2d1b2e"),
		Frame:      lipgloss.Color("#8b6b8c"),
		Axis:       lipgloss.Color("#feca57"),
		Vector:     lipgloss.Color("#ff6b6b"), // Coral
	}

	// All available themes
	Themes = []Theme{
		ThemeLight,
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to light.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeLight
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// RGBA converts a #rrggbb lipgloss color; anything else maps to white.
func RGBA(c lipgloss.Color) color.RGBA {
	r, g, b := parseHex(string(c))
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xff}
}

func parseHex(hex string) (r, g, b int) {
	if len(hex) != 7 || hex[0] != '#' {
		return 255, 255, 255
	}
	rv, err1 := strconv.ParseUint(hex[1:3], 16, 8)
	gv, err2 := strconv.ParseUint(hex[3:5], 16, 8)
	bv, err3 := strconv.ParseUint(hex[5:7], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return 255, 255, 255
	}
	return int(rv), int(gv), int(bv)
}

// fade mixes c toward bg by amount in [0, 1].
func fade(c, bg color.RGBA, amount float64) color.RGBA {
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a)*(1-amount) + float64(b)*amount + 0.5)
	}
	return color.RGBA{R: mix(c.R, bg.R), G: mix(c.G, bg.G), B: mix(c.B, bg.B), A: 0xff}
}
