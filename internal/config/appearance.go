package config

import (
	"fmt"
	"strings"
)

// AppearanceConfig holds the colors for the three item styles: normal,
// selected and previously accepted.
type AppearanceConfig struct {
	NormalFG   string `toml:"normal_fg"`
	NormalBG   string `toml:"normal_bg"`
	SelectedFG string `toml:"selected_fg"`
	SelectedBG string `toml:"selected_bg"`
	LastFG     string `toml:"last_fg"`
	LastBG     string `toml:"last_bg"`

	// Disable all colors, e.g. for monochrome terminals
	NoColor bool `toml:"no_color"`
}

// DefaultAppearance returns the classic green-on-black scheme.
func DefaultAppearance() AppearanceConfig {
	return AppearanceConfig{
		NormalFG:   "#00FF00",
		NormalBG:   "#000000",
		SelectedFG: "#000000",
		SelectedBG: "#00FF00",
		LastFG:     "#00FF00",
		LastBG:     "#008800",
	}
}

// NamedColors maps the color names accepted in the config to hex codes.
var NamedColors = map[string]string{
	"black":   "#000000",
	"red":     "#FF0000",
	"green":   "#00FF00",
	"yellow":  "#FFFF00",
	"blue":    "#0000FF",
	"magenta": "#FF00FF",
	"cyan":    "#00FFFF",
	"white":   "#FFFFFF",
	"gray":    "#888888",
}

// ResolveColor turns a color name or hex code into a hex code. It returns
// false for anything it does not recognise.
func ResolveColor(color string) (string, bool) {
	if hex, ok := NamedColors[strings.ToLower(color)]; ok {
		return hex, true
	}
	if isHexColor(color) {
		return strings.ToUpper(color), true
	}
	return "", false
}

func isHexColor(s string) bool {
	if len(s) != 4 && len(s) != 7 {
		return false
	}
	if s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// Validate checks every configured color.
func (a AppearanceConfig) Validate() error {
	fields := []struct {
		name, value string
	}{
		{"normal_fg", a.NormalFG},
		{"normal_bg", a.NormalBG},
		{"selected_fg", a.SelectedFG},
		{"selected_bg", a.SelectedBG},
		{"last_fg", a.LastFG},
		{"last_bg", a.LastBG},
	}
	for _, f := range fields {
		if _, ok := ResolveColor(f.value); !ok {
			return fmt.Errorf("appearance.%s: invalid color %q", f.name, f.value)
		}
	}
	return nil
}

func (a *AppearanceConfig) applyDefaults() {
	d := DefaultAppearance()
	if a.NormalFG == "" {
		a.NormalFG = d.NormalFG
	}
	if a.NormalBG == "" {
		a.NormalBG = d.NormalBG
	}
	if a.SelectedFG == "" {
		a.SelectedFG = d.SelectedFG
	}
	if a.SelectedBG == "" {
		a.SelectedBG = d.SelectedBG
	}
	if a.LastFG == "" {
		a.LastFG = d.LastFG
	}
	if a.LastBG == "" {
		a.LastBG = d.LastBG
	}
}
