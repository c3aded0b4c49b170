package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/NeverVane/pickline/internal/menu"
)

// action is what a key press asks the model to do.
type action int

const (
	actNone action = iota
	actNavigate
	actInsert
	actBackspace
	actClearAll
	actDeleteWord
	actComplete
	actAccept
	actAcceptQuery
	actCancel
	actHelp
)

type keyMap struct {
	Left        key.Binding
	Right       key.Binding
	Up          key.Binding
	Down        key.Binding
	Home        key.Binding
	End         key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Accept      key.Binding
	AcceptQuery key.Binding
	Complete    key.Binding
	Backspace   key.Binding
	ClearAll    key.Binding
	DeleteWord  key.Binding
	Cancel      key.Binding
	Help        key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Accept, k.AcceptQuery, k.Complete, k.Cancel, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.Home, k.End, k.PageUp, k.PageDown},
		{k.Accept, k.AcceptQuery, k.Complete},
		{k.Backspace, k.ClearAll, k.DeleteWord, k.Cancel, k.Help},
	}
}

var keys = keyMap{
	Left: key.NewBinding(
		key.WithKeys("left", "alt+h"),
		key.WithHelp("←/alt+h", "previous"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "alt+l"),
		key.WithHelp("→/alt+l", "next"),
	),
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next"),
	),
	Home: key.NewBinding(
		key.WithKeys("home", "alt+g"),
		key.WithHelp("home/alt+g", "first"),
	),
	End: key.NewBinding(
		key.WithKeys("end", "alt+G"),
		key.WithHelp("end/alt+G", "last"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup", "alt+k"),
		key.WithHelp("pgup/alt+k", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown", "alt+j"),
		key.WithHelp("pgdn/alt+j", "page down"),
	),
	Accept: key.NewBinding(
		key.WithKeys("enter", "ctrl+j"),
		key.WithHelp("enter", "select"),
	),
	AcceptQuery: key.NewBinding(
		key.WithKeys("alt+enter", "shift+enter"),
		key.WithHelp("alt+enter", "use input"),
	),
	Complete: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "complete"),
	),
	Backspace: key.NewBinding(
		key.WithKeys("backspace", "ctrl+h"),
		key.WithHelp("bksp", "delete char"),
	),
	ClearAll: key.NewBinding(
		key.WithKeys("ctrl+u"),
		key.WithHelp("ctrl+u", "clear"),
	),
	DeleteWord: key.NewBinding(
		key.WithKeys("ctrl+w"),
		key.WithHelp("ctrl+w", "delete word"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "cancel"),
	),
	Help: key.NewBinding(
		key.WithKeys("f1"),
		key.WithHelp("f1", "help"),
	),
}

// decode maps a key press to an action. For actNavigate the command is set;
// for actInsert the text is set.
func (k keyMap) decode(msg tea.KeyMsg) (action, menu.Command, string) {
	switch {
	case key.Matches(msg, k.AcceptQuery):
		return actAcceptQuery, 0, ""
	case key.Matches(msg, k.Accept):
		return actAccept, 0, ""
	case key.Matches(msg, k.Cancel):
		return actCancel, 0, ""
	case key.Matches(msg, k.Left):
		return actNavigate, menu.CmdLeft, ""
	case key.Matches(msg, k.Right):
		return actNavigate, menu.CmdRight, ""
	case key.Matches(msg, k.Up):
		return actNavigate, menu.CmdUp, ""
	case key.Matches(msg, k.Down):
		return actNavigate, menu.CmdDown, ""
	case key.Matches(msg, k.Home):
		return actNavigate, menu.CmdHome, ""
	case key.Matches(msg, k.End):
		return actNavigate, menu.CmdEnd, ""
	case key.Matches(msg, k.PageUp):
		return actNavigate, menu.CmdPageUp, ""
	case key.Matches(msg, k.PageDown):
		return actNavigate, menu.CmdPageDown, ""
	case key.Matches(msg, k.Complete):
		return actComplete, 0, ""
	case key.Matches(msg, k.Backspace):
		return actBackspace, 0, ""
	case key.Matches(msg, k.ClearAll):
		return actClearAll, 0, ""
	case key.Matches(msg, k.DeleteWord):
		return actDeleteWord, 0, ""
	case key.Matches(msg, k.Help):
		return actHelp, 0, ""
	}

	// Unbound alt and control combinations are ignored.
	if msg.Alt {
		return actNone, 0, ""
	}
	switch msg.Type {
	case tea.KeyRunes:
		return actInsert, 0, string(msg.Runes)
	case tea.KeySpace:
		return actInsert, 0, " "
	}
	return actNone, 0, ""
}
