package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/NeverVane/pickline/internal/config"
	"github.com/NeverVane/pickline/internal/history"
	"github.com/NeverVane/pickline/internal/logger"
	"github.com/NeverVane/pickline/internal/output"
	"github.com/NeverVane/pickline/internal/sentry"
	"github.com/NeverVane/pickline/internal/source"
	"github.com/NeverVane/pickline/internal/tui"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

// app carries what every command needs once flags are parsed.
type app struct {
	configPath string
	verbose    bool
	noColor    bool

	cfg *config.Config
	out *output.Formatter
}

// reportPanic sends a recovered panic to error monitoring.
var reportPanic = sentry.CapturePanic

func main() {
	os.Exit(guard(run))
}

// guard runs fn and then shuts down error reporting and logging. A panic in
// fn is reported while Sentry is still up and turns into exit code 1.
func guard(fn func() int) (code int) {
	defer shutdown()

	// Add panic recovery for better error reporting
	defer func() {
		if r := recover(); r != nil {
			reportPanic(r, "main")
			sentry.Flush(2 * time.Second)
			fmt.Fprintf(os.Stderr, "pickline encountered a fatal error: %v\n", r)
			code = 1
		}
	}()

	return fn()
}

func shutdown() {
	if sentry.IsEnabled() {
		sentry.Flush(2 * time.Second)
	}
	sentry.Close()
	_ = logger.Close()
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{}
	rootCmd := a.rootCmd()

	err := rootCmd.ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, tui.ErrCancelled):
		return 1
	}

	logger.WithError(err).Warn().Msg("Command failed")
	if a.out != nil {
		a.out.Error("%v", err)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return 1
}

func (a *app) rootCmd() *cobra.Command {
	flags := &pickerFlags{}

	cmd := &cobra.Command{
		Use:   "pickline",
		Short: "Pick a line from standard input",
		Long: `pickline reads candidate lines from standard input, narrows them while you
type and prints the chosen line on standard output.

Items that equal the query come first, then items starting with it, then items
containing it. With tokenizing on, every space separated word must match.

Examples:
  ls | pickline -p "open:"
  git branch --format='%(refname:short)' | pickline -l 10 --hist ~/.cache/branches
  pickline filter foo < words.txt`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.apply(a.cfg); err != nil {
				return err
			}
			return a.runPicker(cmd.Context(), flags)
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default: ~/.config/pickline/config.toml)")
	cmd.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "Enable verbose output")
	cmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	flags.register(cmd)

	cmd.CompletionOptions.DisableDefaultCmd = true

	cmd.AddCommand(a.filterCmd())
	cmd.AddCommand(a.historyCmd())
	cmd.AddCommand(a.configCmd())
	cmd.AddCommand(a.versionCmd())

	return cmd
}

// setup loads configuration and brings up logging and error reporting.
func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.verbose {
		cfg.Logging.Level = "debug"
	}
	if a.noColor {
		cfg.Appearance.NoColor = true
	}
	a.cfg = cfg

	a.out = output.NewFormatter(cfg, os.Stdout, os.Stderr)
	a.out.SetFlags(a.verbose, false, a.noColor)

	if err := logger.Init(&cfg.Logging); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := sentry.Initialize(cfg, version); err != nil {
		// Don't fail the application if Sentry initialization fails
		a.out.Warning("Failed to initialize error monitoring: %v", err)
	}
	logger.AddHook(sentry.Hook(zerolog.ErrorLevel))

	logger.WithComponent("main").Debug().
		Str("version", version).
		Str("data_dir", cfg.DataDir).
		Bool("history", cfg.History.Path != "").
		Msg("Configuration loaded")
	return nil
}

// pickerFlags mirrors the classic dmenu switches. Unset flags leave the
// configuration untouched.
type pickerFlags struct {
	caseInsensitive bool
	bottom          bool
	lines           int
	prompt          string
	histPath        string
	hitCounter      bool
	multiselect     bool
	markLast        bool
	noIndicators    bool
	newline         bool
	resize          bool
	tokenize        bool
	width           int

	normFG, normBG string
	selFG, selBG   string
	lastFG, lastBG string

	changed func(name string) bool
}

func (f *pickerFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.BoolVarP(&f.caseInsensitive, "case-insensitive", "i", false, "Match case-insensitively")
	fs.BoolVarP(&f.bottom, "bottom", "b", false, "Draw the prompt below the list")
	fs.IntVarP(&f.lines, "lines", "l", 0, "List items vertically in N lines (0 fills the terminal)")
	fs.StringVarP(&f.prompt, "prompt", "p", "", "Prompt drawn left of the query")
	fs.StringVar(&f.histPath, "hist", "", "History file of recent selections")
	fs.BoolVarP(&f.hitCounter, "hit-counter", "c", false, "Show the number of matches")
	fs.BoolVar(&f.multiselect, "ms", false, "Keep running after a selection")
	fs.BoolVar(&f.markLast, "ml", false, "Highlight the previously selected item")
	fs.BoolVar(&f.noIndicators, "ni", false, "Hide the scroll indicators")
	fs.BoolVar(&f.newline, "nl", false, "Print a newline after each selection")
	fs.BoolVar(&f.resize, "rs", false, "Shrink the vertical list to the number of matches")
	fs.BoolVar(&f.tokenize, "xs", false, "Split the query into space separated words")
	fs.IntVarP(&f.width, "width", "w", 0, "Limit the width in cells")
	fs.StringVar(&f.normFG, "nf", "", "Normal foreground color")
	fs.StringVar(&f.normBG, "nb", "", "Normal background color")
	fs.StringVar(&f.selFG, "sf", "", "Selected foreground color")
	fs.StringVar(&f.selBG, "sb", "", "Selected background color")
	fs.StringVar(&f.lastFG, "lf", "", "Last selection foreground color")
	fs.StringVar(&f.lastBG, "lb", "", "Last selection background color")

	f.changed = fs.Changed
}

// apply overlays the flags onto cfg and revalidates it.
func (f *pickerFlags) apply(cfg *config.Config) error {
	m := &cfg.Menu
	if f.caseInsensitive {
		m.CaseInsensitive = true
	}
	if f.bottom {
		m.Topbar = false
	}
	if f.changed("lines") {
		m.Lines = f.lines
		m.Vertical = true
	}
	if f.changed("prompt") {
		m.Prompt = f.prompt
	}
	if f.changed("hist") {
		cfg.History.Path = f.histPath
	}
	if f.hitCounter {
		m.HitCounter = true
	}
	if f.multiselect {
		m.Multiselect = true
	}
	if f.markLast {
		m.MarkLast = true
	}
	if f.noIndicators {
		m.Indicators = false
	}
	if f.newline {
		m.Newline = true
	}
	if f.resize {
		m.Resize = true
	}
	if f.tokenize {
		m.Tokenize = true
	}

	colors := []struct {
		value  string
		target *string
	}{
		{f.normFG, &cfg.Appearance.NormalFG},
		{f.normBG, &cfg.Appearance.NormalBG},
		{f.selFG, &cfg.Appearance.SelectedFG},
		{f.selBG, &cfg.Appearance.SelectedBG},
		{f.lastFG, &cfg.Appearance.LastFG},
		{f.lastBG, &cfg.Appearance.LastBG},
	}
	for _, c := range colors {
		if c.value != "" {
			*c.target = c.value
		}
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}

func (a *app) historyStore() *history.Store {
	if a.cfg.History.Path == "" {
		return nil
	}
	return history.NewStore(a.cfg.History.Path, a.cfg.History.Capacity)
}

// stdinInput returns stdin unless it is a terminal, in which case nothing
// was piped and only history feeds the picker.
func stdinInput() io.Reader {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return nil
	}
	return os.Stdin
}

func (a *app) runPicker(ctx context.Context, flags *pickerFlags) error {
	log := logger.GetLogger().WithComponent("picker")
	store := a.historyStore()

	pool, err := source.Load(ctx, stdinInput(), store)
	if err != nil {
		sentry.CaptureError(err, "picker", "load")
		return err
	}

	opts := tui.OptionsFromConfig(a.cfg)
	opts.MaxWidth = flags.width

	res, err := tui.Run(ctx, pool, opts, os.Stdout, store)
	if err != nil {
		if !errors.Is(err, tui.ErrCancelled) {
			log.Error().Err(err).Msg("Picker failed")
		}
		return err
	}

	log.Debug().Int("accepted", len(res.Accepted)).Msg("Picker finished")
	return nil
}
