// Package tui draws the picker in the terminal and turns key presses into
// engine commands. The interface is drawn on stderr and reads keys from the
// controlling terminal, so stdin stays free for candidates and stdout for
// the result.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/NeverVane/pickline/internal/history"
	"github.com/NeverVane/pickline/internal/logger"
	"github.com/NeverVane/pickline/internal/menu"
	"github.com/NeverVane/pickline/internal/output"
	"github.com/NeverVane/pickline/internal/sentry"
)

// ErrCancelled is returned when the user leaves with Escape. In multiselect
// mode the texts accepted before that are still reported.
var ErrCancelled = errors.New("selection cancelled")

// Result is the outcome of a picker session.
type Result struct {
	// Accepted holds every emitted text in order. Outside multiselect it has
	// at most one element.
	Accepted []string
}

// Run shows the picker over pool and writes accepted texts to out. store
// may be nil to disable history recording.
func Run(ctx context.Context, pool *menu.Pool, opts Options, out io.Writer, store *history.Store) (Result, error) {
	log := logger.GetLogger().WithComponent("tui")

	opts.Width, opts.Height = output.TerminalSize(os.Stderr, opts.Width, opts.Height)

	m := newModel(pool, opts, out, os.Stderr, store)
	program := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInputTTY(),
		tea.WithOutput(os.Stderr),
	)

	log.Debug().
		Int("items", pool.Len()).
		Bool("vertical", opts.Vertical).
		Bool("multiselect", opts.Multiselect).
		Msg("Starting picker")
	sentry.AddBreadcrumb("tui", "picker started", map[string]interface{}{
		"items":    pool.Len(),
		"vertical": opts.Vertical,
	})

	final, err := program.Run()
	if err != nil {
		return Result{}, fmt.Errorf("picker failed: %w", err)
	}

	fm, ok := final.(model)
	if !ok {
		return Result{}, fmt.Errorf("picker returned unexpected model %T", final)
	}
	return fm.result()
}

func (m model) result() (Result, error) {
	res := Result{Accepted: m.accepted}
	if m.err != nil {
		return res, m.err
	}
	if m.cancelled {
		return res, ErrCancelled
	}
	return res, nil
}
