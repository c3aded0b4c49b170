package output

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/NeverVane/pickline/internal/config"
	"github.com/NeverVane/pickline/internal/menu"
)

// StatusType represents different types of CLI output status
type StatusType string

const (
	StatusSuccess StatusType = "success"
	StatusError   StatusType = "error"
	StatusWarning StatusType = "warning"
	StatusInfo    StatusType = "info"
	StatusTip     StatusType = "tip"
	StatusDone    StatusType = "done"
)

var indicators = map[StatusType]string{
	StatusSuccess: "[OK]",
	StatusError:   "[FAIL]",
	StatusWarning: "[WARN]",
	StatusInfo:    "[INFO]",
	StatusTip:     "[TIP]",
	StatusDone:    "[DONE]",
}

var statusColors = map[StatusType]string{
	StatusSuccess: "#00FF00",
	StatusError:   "#FF0000",
	StatusWarning: "#FF8800",
	StatusInfo:    "#0088FF",
	StatusTip:     "#00FFFF",
	StatusDone:    "#00FF00",
}

// ColorFormatter styles short status strings for one output stream.
type ColorFormatter struct {
	renderer *lipgloss.Renderer
	enabled  bool
	styles   map[StatusType]lipgloss.Style
	tiers    map[menu.Tier]lipgloss.Style
	bold     lipgloss.Style
}

// NewColorFormatter creates a formatter for w. Colors are used only when w
// is a terminal, appearance allows it and NO_COLOR is unset.
func NewColorFormatter(w io.Writer, appearance config.AppearanceConfig) *ColorFormatter {
	cf := &ColorFormatter{
		renderer: lipgloss.NewRenderer(w),
		enabled:  IsTerminal(w) && !appearance.NoColor && os.Getenv("NO_COLOR") == "",
	}
	cf.loadStyles(appearance)
	return cf
}

func (cf *ColorFormatter) loadStyles(appearance config.AppearanceConfig) {
	cf.styles = make(map[StatusType]lipgloss.Style, len(statusColors))
	for status, hex := range statusColors {
		cf.styles[status] = cf.renderer.NewStyle().Foreground(lipgloss.Color(hex))
	}

	color := func(c string) lipgloss.Color {
		hex, _ := config.ResolveColor(c)
		return lipgloss.Color(hex)
	}
	cf.tiers = map[menu.Tier]lipgloss.Style{
		menu.TierExact:     cf.renderer.NewStyle().Foreground(color(appearance.SelectedBG)).Bold(true),
		menu.TierPrefix:    cf.renderer.NewStyle().Foreground(color(appearance.NormalFG)),
		menu.TierSubstring: cf.renderer.NewStyle().Foreground(color(appearance.LastBG)),
	}
	cf.bold = cf.renderer.NewStyle().Bold(true)
}

// SetNoColor disables color output (for --no-color flag)
func (cf *ColorFormatter) SetNoColor(noColor bool) {
	if noColor {
		cf.enabled = false
	}
}

// IsEnabled returns whether colors are currently enabled
func (cf *ColorFormatter) IsEnabled() bool {
	return cf.enabled
}

// Status prefixes message with the indicator for status.
func (cf *ColorFormatter) Status(status StatusType, message string) string {
	indicator := indicators[status]
	if !cf.enabled {
		return indicator + " " + message
	}
	return cf.styles[status].Render(indicator) + " " + message
}

// Tier renders text in the color of its match tier.
func (cf *ColorFormatter) Tier(text string, tier menu.Tier) string {
	style, ok := cf.tiers[tier]
	if !cf.enabled || !ok {
		return text
	}
	return style.Render(text)
}

// Bold makes text bold (if colors are enabled)
func (cf *ColorFormatter) Bold(text string) string {
	if !cf.enabled {
		return text
	}
	return cf.bold.Render(text)
}

// Section creates a section header with separator
func (cf *ColorFormatter) Section(title string) string {
	return cf.Bold(title) + "\n" + strings.Repeat("=", lipgloss.Width(title))
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// TerminalSize returns the size of the terminal behind w. Each dimension
// falls back to the given value when w is not a terminal or reports zero.
func TerminalSize(w io.Writer, fallbackWidth, fallbackHeight int) (int, int) {
	f, ok := w.(*os.File)
	if !ok {
		return fallbackWidth, fallbackHeight
	}
	width, height, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return fallbackWidth, fallbackHeight
	}
	if width <= 0 {
		width = fallbackWidth
	}
	if height <= 0 {
		height = fallbackHeight
	}
	return width, height
}
