package menu

// Command is a logical navigation command produced by the key decoder.
type Command int

const (
	CmdLeft Command = iota
	CmdRight
	CmdUp
	CmdDown
	CmdHome
	CmdEnd
	CmdPageUp
	CmdPageDown
)

var commandNames = map[Command]string{
	CmdLeft:     "left",
	CmdRight:    "right",
	CmdUp:       "up",
	CmdDown:     "down",
	CmdHome:     "home",
	CmdEnd:      "end",
	CmdPageUp:   "page_up",
	CmdPageDown: "page_down",
}

func (c Command) String() string {
	if s, ok := commandNames[c]; ok {
		return s
	}
	return "unknown"
}

// Navigate moves the selection. Every command is a no-op on an empty chain.
// When the selection leaves the window the window shifts: a full page in the
// horizontal layout, a single line in the vertical one.
func (s State) Navigate(cmd Command) State {
	n := s.chain.Len()
	if n == 0 {
		return s
	}

	switch cmd {
	case CmdLeft, CmdUp:
		if s.sel <= 0 {
			return s
		}
		s.sel--
		if s.sel < s.win.Curr {
			s = s.shiftBack()
		}

	case CmdRight, CmdDown:
		if s.sel >= n-1 {
			return s
		}
		s.sel++
		if s.win.Next != NoPos && s.sel >= s.win.Next {
			s = s.shiftForward()
		}

	case CmdHome:
		s.sel = 0
		s = s.anchorAt(0)

	case CmdEnd:
		// Each step strictly advances the anchor, so this terminates.
		for s.win.Next != NoPos {
			s.sel = s.win.Next
			s = s.anchorAt(s.win.Next)
		}
		s.sel = n - 1

	case CmdPageDown:
		if s.win.Next == NoPos {
			return s
		}
		s.sel = s.win.Next
		s = s.anchorAt(s.win.Next)

	case CmdPageUp:
		if s.win.Prev == NoPos {
			return s
		}
		s.sel = s.win.Prev
		s = s.anchorAt(s.win.Prev)
	}

	return s
}

func (s State) shiftBack() State {
	anchor := s.win.Prev
	if s.budget.Layout == Vertical {
		anchor = s.win.Curr - 1
	}
	if anchor > s.sel || anchor == NoPos {
		anchor = s.sel
	}
	return s.anchorAt(anchor)
}

func (s State) shiftForward() State {
	anchor := s.win.Next
	if s.budget.Layout == Vertical {
		anchor = s.win.Curr + 1
	}
	s = s.anchorAt(anchor)
	if !s.win.Contains(s.sel, s.chain.Len()) {
		s = s.anchorAt(s.sel)
	}
	return s
}

func (s State) anchorAt(anchor int) State {
	s.win = Recompute(s.pool, s.chain, s.budget, anchor)
	return s
}
