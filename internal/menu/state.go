package menu

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Options fixes the matching capabilities for a session.
type Options struct {
	Case            CaseMode
	Tokens          TokenMode
	MaxTokens       int
	LegacyTierCarry bool

	// MarkLast flags items equal to the last accepted text.
	MarkLast bool
}

// State is the whole engine context for one picker session. It is a value:
// every operation returns the updated state and leaves the receiver untouched,
// so recomputation is a function of pool, query, budget and the prior
// selection intent. The pool and the chain are shared read-only between copies.
type State struct {
	pool      *Pool
	opts      Options
	tokenizer Tokenizer
	matcher   Matcher
	budget    Budget

	query string
	chain Chain
	win   Window
	sel   int

	lastAccepted string
	hasLast      bool
}

// View is one visible item as the renderer needs it.
type View struct {
	Position     int
	Text         string
	Tier         Tier
	Selected     bool
	LastAccepted bool
}

// Result is the outcome of an accept.
type Result struct {
	Text string
	// Emitted is false when there was nothing to emit: no selection and an
	// empty query.
	Emitted bool
	// FromSelection is true when Text came from the selected item rather than
	// the typed query.
	FromSelection bool
}

// New creates a session over pool and matches the empty query.
func New(pool *Pool, opts Options, budget Budget) State {
	s := State{
		pool:      pool,
		opts:      opts,
		tokenizer: NewTokenizer(opts.Tokens, opts.MaxTokens),
		matcher:   Matcher{Case: opts.Case, LegacyTierCarry: opts.LegacyTierCarry},
		budget:    budget,
		sel:       NoPos,
		win:       emptyWindow,
	}
	return s.rematch()
}

// SetQuery replaces the query and rebuilds the chain. Queries longer than
// MaxQueryLen are cut at the last full rune that fits.
func (s State) SetQuery(q string) State {
	s.query = truncateQuery(q)
	return s.rematch()
}

// Insert appends typed text. Text that would push the query past
// MaxQueryLen is rejected and the state is returned unchanged.
func (s State) Insert(text string) State {
	if text == "" || len(s.query)+len(text) > MaxQueryLen {
		return s
	}
	s.query += text
	return s.rematch()
}

// Backspace removes the last rune of the query.
func (s State) Backspace() State {
	if s.query == "" {
		return s
	}
	_, size := utf8.DecodeLastRuneInString(s.query)
	s.query = s.query[:len(s.query)-size]
	return s.rematch()
}

// ClearAll empties the query.
func (s State) ClearAll() State {
	s.query = ""
	return s.rematch()
}

// DeleteWordBack drops trailing spaces and then the word before them.
func (s State) DeleteWordBack() State {
	if s.query == "" {
		return s
	}
	q := strings.TrimRight(s.query, " ")
	if i := strings.LastIndexByte(q, ' '); i >= 0 {
		q = q[:i+1]
	} else {
		q = ""
	}
	s.query = q
	return s.rematch()
}

// Complete copies the selected item into the query and rematches.
func (s State) Complete() State {
	text, ok := s.Selected()
	if !ok {
		return s
	}
	return s.SetQuery(text)
}

// Resize swaps the budget and recomputes the window from the current anchor,
// moving the anchor to the selection if it fell out of view.
func (s State) Resize(b Budget) State {
	s.budget = b
	if s.chain.Len() == 0 {
		return s
	}
	s = s.anchorAt(s.win.Curr)
	if s.sel != NoPos && !s.win.Contains(s.sel, s.chain.Len()) {
		s = s.anchorAt(s.sel)
	}
	return s
}

// Accept resolves what to emit. With override set and a non-empty query the
// raw query wins; otherwise the selected item, then the raw query. Accepting a
// selected item remembers its text for the mark-last highlight.
func (s State) Accept(override bool) (State, Result) {
	switch {
	case override && s.query != "":
		return s, Result{Text: s.query, Emitted: true}
	case s.sel != NoPos:
		text := s.pool.Text(s.chain.At(s.sel).Index)
		s.lastAccepted = text
		s.hasLast = true
		return s, Result{Text: text, Emitted: true, FromSelection: true}
	case s.query != "":
		return s, Result{Text: s.query, Emitted: true}
	}
	return s, Result{}
}

// rematch runs the full pipeline for the current query and resets the anchor
// and selection to the head of the new chain.
func (s State) rematch() State {
	tokens := s.tokenizer.Tokenize(s.query)
	s.chain = s.matcher.Match(s.pool, tokens)
	if s.chain.Len() == 0 {
		s.sel = NoPos
		s.win = emptyWindow
		return s
	}
	s.sel = 0
	return s.anchorAt(0)
}

// Query returns the typed query.
func (s State) Query() string { return s.query }

// Pool returns the candidate pool.
func (s State) Pool() *Pool { return s.pool }

// Chain returns the current chain.
func (s State) Chain() Chain { return s.chain }

// Window returns the current window.
func (s State) Window() Window { return s.win }

// Budget returns the current budget.
func (s State) Budget() Budget { return s.budget }

// Options returns the session options.
func (s State) Options() Options { return s.opts }

// Selection returns the selected chain position or NoPos.
func (s State) Selection() int { return s.sel }

// Hits returns the number of matching items.
func (s State) Hits() int { return s.chain.Hits() }

// HitText is the counter shown next to the query.
func (s State) HitText() string { return fmt.Sprintf("(%d)", s.chain.Hits()) }

// Empty reports whether nothing matches.
func (s State) Empty() bool { return s.chain.Len() == 0 }

// HasLeft reports whether items precede the window.
func (s State) HasLeft() bool { return s.win.Curr > 0 }

// HasRight reports whether items follow the window.
func (s State) HasRight() bool { return s.win.Next != NoPos }

// LastAccepted returns the last accepted item text, if any.
func (s State) LastAccepted() (string, bool) { return s.lastAccepted, s.hasLast }

// Selected returns the text of the selected item.
func (s State) Selected() (string, bool) {
	if s.sel == NoPos {
		return "", false
	}
	return s.pool.Text(s.chain.At(s.sel).Index), true
}

// Visible returns the items in the window in chain order.
func (s State) Visible() []View {
	n := s.chain.Len()
	if n == 0 {
		return nil
	}
	end := s.win.End(n)
	views := make([]View, 0, end-s.win.Curr)
	for pos := s.win.Curr; pos < end; pos++ {
		e := s.chain.At(pos)
		text := s.pool.Text(e.Index)
		selected := pos == s.sel
		views = append(views, View{
			Position:     pos,
			Text:         text,
			Tier:         e.Tier,
			Selected:     selected,
			LastAccepted: !selected && s.opts.MarkLast && s.hasLast && text == s.lastAccepted,
		})
	}
	return views
}

// Texts returns every chain member's text in chain order.
func (s State) Texts() []string {
	out := make([]string, 0, s.chain.Len())
	for _, e := range s.chain.Entries() {
		out = append(out, s.pool.Text(e.Index))
	}
	return out
}

func truncateQuery(q string) string {
	if len(q) <= MaxQueryLen {
		return q
	}
	cut := MaxQueryLen
	for cut > 0 && !utf8.RuneStart(q[cut]) {
		cut--
	}
	return q[:cut]
}
