package output

import (
	"fmt"
	"io"

	"github.com/NeverVane/pickline/internal/config"
	"github.com/NeverVane/pickline/internal/menu"
)

// Formatter prints subcommand results to out and status messages to errOut.
// stdout stays machine-readable: only Item and Line write to it.
type Formatter struct {
	out         io.Writer
	errOut      io.Writer
	colors      *ColorFormatter
	errColors   *ColorFormatter
	verboseMode bool
	quietMode   bool
}

// NewFormatter creates a new formatter instance from config
func NewFormatter(cfg *config.Config, out, errOut io.Writer) *Formatter {
	appearance := config.DefaultAppearance()
	if cfg != nil {
		appearance = cfg.Appearance
	}
	return &Formatter{
		out:       out,
		errOut:    errOut,
		colors:    NewColorFormatter(out, appearance),
		errColors: NewColorFormatter(errOut, appearance),
	}
}

// SetFlags configures the formatter based on command line flags
func (f *Formatter) SetFlags(verbose, quiet, noColor bool) {
	f.verboseMode = verbose
	f.quietMode = quiet
	f.colors.SetNoColor(noColor)
	f.errColors.SetNoColor(noColor)
}

// Success prints a success message (always shown unless quiet)
func (f *Formatter) Success(format string, args ...interface{}) {
	f.status(StatusSuccess, format, args...)
}

// Error prints an error message (always shown)
func (f *Formatter) Error(format string, args ...interface{}) {
	fmt.Fprintln(f.errOut, f.errColors.Status(StatusError, fmt.Sprintf(format, args...)))
}

// Warning prints a warning message (always shown unless quiet)
func (f *Formatter) Warning(format string, args ...interface{}) {
	f.status(StatusWarning, format, args...)
}

// Info prints an info message
func (f *Formatter) Info(format string, args ...interface{}) {
	f.status(StatusInfo, format, args...)
}

// Verbose prints a message only in verbose mode
func (f *Formatter) Verbose(format string, args ...interface{}) {
	if f.verboseMode {
		f.status(StatusInfo, format, args...)
	}
}

// Tip prints a tip message (shown unless quiet)
func (f *Formatter) Tip(format string, args ...interface{}) {
	f.status(StatusTip, format, args...)
}

// Done prints a completion message
func (f *Formatter) Done(format string, args ...interface{}) {
	f.status(StatusDone, format, args...)
}

func (f *Formatter) status(status StatusType, format string, args ...interface{}) {
	if f.quietMode {
		return
	}
	fmt.Fprintln(f.errOut, f.errColors.Status(status, fmt.Sprintf(format, args...)))
}

// Header prints a formatted section header
func (f *Formatter) Header(title string) {
	if !f.quietMode {
		fmt.Fprintln(f.errOut, f.errColors.Section(title))
	}
}

// Line writes text to out followed by a newline.
func (f *Formatter) Line(text string) {
	fmt.Fprintln(f.out, text)
}

// Item writes one ranked result. With showTier the tier name precedes the
// text, separated by a tab.
func (f *Formatter) Item(text string, tier menu.Tier, showTier bool) {
	if showTier {
		fmt.Fprintf(f.out, "%s\t%s\n", f.colors.Tier(fmt.Sprintf("%-9s", tier), tier), text)
		return
	}
	fmt.Fprintln(f.out, f.colors.Tier(text, tier))
}

// Numbered writes text prefixed by its 1-based position.
func (f *Formatter) Numbered(n int, text string) {
	fmt.Fprintf(f.out, "%s %s\n", f.colors.Bold(fmt.Sprintf("%3d", n)), text)
}
