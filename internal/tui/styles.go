package tui

import (
	"io"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/NeverVane/pickline/internal/config"
)

// styles holds the three item styles and the chrome around them.
type styles struct {
	normal    lipgloss.Style
	selected  lipgloss.Style
	last      lipgloss.Style
	prompt    lipgloss.Style
	indicator lipgloss.Style
	counter   lipgloss.Style
}

func newStyles(w io.Writer, a config.AppearanceConfig) styles {
	r := lipgloss.NewRenderer(w)
	if a.NoColor {
		plain := r.NewStyle()
		return styles{
			normal:    plain,
			selected:  plain.Reverse(true),
			last:      plain.Underline(true),
			prompt:    plain.Bold(true),
			indicator: plain,
			counter:   plain,
		}
	}

	color := func(c string) lipgloss.Color {
		hex, _ := config.ResolveColor(c)
		return lipgloss.Color(hex)
	}
	normal := r.NewStyle().Foreground(color(a.NormalFG)).Background(color(a.NormalBG))
	return styles{
		normal:    normal,
		selected:  r.NewStyle().Foreground(color(a.SelectedFG)).Background(color(a.SelectedBG)),
		last:      r.NewStyle().Foreground(color(a.LastFG)).Background(color(a.LastBG)),
		prompt:    r.NewStyle().Foreground(color(a.SelectedFG)).Background(color(a.SelectedBG)),
		indicator: normal,
		counter:   normal,
	}
}

// cellWidth is the width of text in terminal cells.
func cellWidth(s string) int {
	return runewidth.StringWidth(s)
}

// itemWidth is the cost of an item in the horizontal bar: its text plus one
// cell of padding on either side.
func itemWidth(s string) int {
	return cellWidth(s) + 2
}

// fit truncates s to width cells and pads it to exactly width.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if cellWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}

// tail keeps the last width cells of s.
func tail(s string, width int) string {
	if width <= 0 {
		return ""
	}
	for cellWidth(s) > width {
		_, size := utf8.DecodeRuneInString(s)
		s = s[size:]
	}
	return s
}
