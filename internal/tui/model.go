package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/NeverVane/pickline/internal/config"
	"github.com/NeverVane/pickline/internal/history"
	"github.com/NeverVane/pickline/internal/logger"
	"github.com/NeverVane/pickline/internal/menu"
)

// Options configures a picker session.
type Options struct {
	Menu        menu.Options
	Prompt      string
	Vertical    bool
	Lines       int
	Indicators  bool
	HitCounter  bool
	Multiselect bool
	Newline     bool
	Resize      bool
	Topbar      bool
	Appearance  config.AppearanceConfig

	// Spacing is the width of each horizontal scroll indicator slot.
	Spacing int

	// Initial terminal size, used until the first resize message.
	Width  int
	Height int

	// MaxWidth caps the layout width; 0 uses the whole terminal.
	MaxWidth int
}

// OptionsFromConfig maps the [menu] and [appearance] sections onto Options.
func OptionsFromConfig(cfg *config.Config) Options {
	m := cfg.Menu
	opts := Options{
		Menu: menu.Options{
			MaxTokens:       m.MaxTokens,
			LegacyTierCarry: m.LegacyTierCarry,
			MarkLast:        m.MarkLast,
		},
		Prompt:      m.Prompt,
		Vertical:    m.Vertical || m.Lines > 0,
		Lines:       m.Lines,
		Indicators:  m.Indicators,
		HitCounter:  m.HitCounter,
		Spacing:     m.ItemSpacing,
		Multiselect: m.Multiselect,
		Newline:     m.Newline,
		Resize:      m.Resize,
		Topbar:      m.Topbar,
		Appearance:  cfg.Appearance,
	}
	if m.CaseInsensitive {
		opts.Menu.Case = menu.CaseInsensitive
	}
	if m.Tokenize {
		opts.Menu.Tokens = menu.MultiToken
	}
	return opts
}

// model is the bubbletea model around a menu.State.
type model struct {
	state  menu.State
	opts   Options
	keys   keyMap
	help   help.Model
	styles styles

	out   io.Writer
	store *history.Store
	log   *logger.Logger

	width    int
	height   int
	showHelp bool

	accepted  []string
	cancelled bool
	err       error
}

func newModel(pool *menu.Pool, opts Options, out, render io.Writer, store *history.Store) model {
	if opts.Width <= 0 {
		opts.Width = 80
	}
	if opts.Height <= 0 {
		opts.Height = 24
	}

	m := model{
		opts:   opts,
		keys:   keys,
		help:   help.New(),
		styles: newStyles(render, opts.Appearance),
		out:    out,
		store:  store,
		log:    logger.GetLogger().WithComponent("tui"),
		width:  clampWidth(opts.Width, opts.MaxWidth),
		height: opts.Height,
	}
	m.state = menu.New(pool, opts.Menu, m.budget(pool))
	return m
}

// budget derives the window budget from the terminal size.
func (m model) budget(pool *menu.Pool) menu.Budget {
	if m.opts.Vertical {
		return menu.VerticalBudget(m.listLines(), m.opts.Indicators)
	}

	promptWidth := 0
	if m.opts.Prompt != "" {
		promptWidth = cellWidth(m.opts.Prompt) + 1
	}
	queryWidth := minQueryWidth
	if pool.Len() > 0 {
		queryWidth = max(queryWidth, pool.Widest(cellWidth)+1)
	}
	indicatorWidth := 0
	if m.opts.Indicators {
		indicatorWidth = m.opts.Spacing
	}
	return menu.HorizontalBudget(m.width, promptWidth, queryWidth, indicatorWidth, itemWidth)
}

const minQueryWidth = 8

func clampWidth(width, limit int) int {
	if limit > 0 && width > limit {
		return limit
	}
	return width
}

// listLines is the number of item rows in the vertical layout.
func (m model) listLines() int {
	chrome := 1
	if m.opts.Indicators {
		chrome += 2
	}
	if m.showHelp {
		chrome++
	}
	avail := m.height - chrome
	lines := m.opts.Lines
	if lines <= 0 || lines > avail {
		lines = avail
	}
	if lines < 1 {
		lines = 1
	}
	return lines
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = clampWidth(msg.Width, m.opts.MaxWidth)
		m.height = msg.Height
		m.help.Width = msg.Width
		m.state = m.state.Resize(m.budget(m.state.Pool()))
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	act, cmd, text := m.keys.decode(msg)

	switch act {
	case actNavigate:
		m.state = m.state.Navigate(cmd)
	case actInsert:
		m.state = m.state.Insert(text)
	case actBackspace:
		m.state = m.state.Backspace()
	case actClearAll:
		m.state = m.state.ClearAll()
	case actDeleteWord:
		m.state = m.state.DeleteWordBack()
	case actComplete:
		m.state = m.state.Complete()
	case actHelp:
		m.showHelp = !m.showHelp
		m.state = m.state.Resize(m.budget(m.state.Pool()))
	case actCancel:
		m.cancelled = true
		return m, tea.Quit
	case actAccept, actAcceptQuery:
		return m.accept(act == actAcceptQuery)
	}
	return m, nil
}

func (m model) accept(override bool) (tea.Model, tea.Cmd) {
	var res menu.Result
	m.state, res = m.state.Accept(override)

	if res.Emitted {
		if err := m.emit(res.Text); err != nil {
			m.err = err
			return m, tea.Quit
		}
		m.accepted = append(m.accepted, res.Text)
		m.record(res.Text)
	}

	if m.opts.Multiselect {
		return m, nil
	}
	return m, tea.Quit
}

func (m model) emit(text string) error {
	if m.opts.Newline {
		text += "\n"
	}
	if _, err := io.WriteString(m.out, text); err != nil {
		return fmt.Errorf("failed to write selection: %w", err)
	}
	return nil
}

func (m model) record(text string) {
	if m.store == nil || m.store.Path() == "" {
		return
	}
	if err := m.store.Record(text); err != nil {
		m.log.WithError(err).Warn().Msg("Failed to record history")
	}
}
