package menu

// NoPos marks an absent chain position.
const NoPos = -1

// Layout selects how the chain is laid out and therefore what the budget counts.
type Layout int

const (
	// Horizontal lays items out on one line; the budget is a width in cells.
	Horizontal Layout = iota
	// Vertical lays items out one per line; the budget is a line count.
	Vertical
)

func (l Layout) String() string {
	if l == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// WidthFunc measures the rendered width of a string.
type WidthFunc func(string) int

// Budget is the space available to the visible slice of the chain.
type Budget struct {
	Layout Layout

	// Horizontal layout.
	Width          int
	PromptWidth    int
	QueryWidth     int
	IndicatorWidth int
	Measure        WidthFunc

	// Vertical layout.
	Lines      int
	Indicators bool
}

// HorizontalBudget builds a linear budget. The prompt is capped at a fifth of
// the width and the query slot at a third, like item widths.
func HorizontalBudget(width, promptWidth, queryWidth, indicatorWidth int, measure WidthFunc) Budget {
	if promptWidth > width/5 {
		promptWidth = width / 5
	}
	if queryWidth > width/3 {
		queryWidth = width / 3
	}
	return Budget{
		Layout:         Horizontal,
		Width:          width,
		PromptWidth:    promptWidth,
		QueryWidth:     queryWidth,
		IndicatorWidth: indicatorWidth,
		Measure:        measure,
	}
}

// VerticalBudget builds a count budget of lines visible items.
func VerticalBudget(lines int, indicators bool) Budget {
	return Budget{Layout: Vertical, Lines: lines, Indicators: indicators}
}

// Capacity is the total size of the container.
func (b Budget) Capacity() int {
	if b.Layout == Vertical {
		return b.Lines + b.Overhead()
	}
	return b.Width
}

// Overhead is the part of the capacity reserved before any item is placed:
// prompt, query and scroll indicators horizontally; the input line and the
// indicator lines vertically.
func (b Budget) Overhead() int {
	if b.Layout == Vertical {
		if b.Indicators {
			return 3
		}
		return 1
	}
	return b.PromptWidth + b.QueryWidth + 2*b.IndicatorWidth
}

// Cost is what one item consumes.
func (b Budget) Cost(text string) int {
	if b.Layout == Vertical {
		return 1
	}
	w := len(text)
	if b.Measure != nil {
		w = b.Measure(text)
	}
	if limit := b.Width / 3; w > limit {
		w = limit
	}
	return w
}

// Window delimits the renderable slice [Curr, Next) of the chain. Next is NoPos
// when the slice runs to the end of the chain; Prev is the anchor one page back.
type Window struct {
	Curr int
	Next int
	Prev int
}

// emptyWindow is the window of an empty chain.
var emptyWindow = Window{Curr: NoPos, Next: NoPos, Prev: NoPos}

// End returns the exclusive end of the visible slice for a chain of n items.
func (w Window) End(n int) int {
	if w.Curr == NoPos {
		return 0
	}
	if w.Next == NoPos {
		return n
	}
	return w.Next
}

// Contains reports whether chain position pos is visible.
func (w Window) Contains(pos, n int) bool {
	return w.Curr != NoPos && pos >= w.Curr && pos < w.End(n)
}

// Recompute derives the window anchored at anchor. The forward walk greedily
// includes items until the next one would overflow the budget; the anchor
// itself is always included. The backward walk is independent and finds the
// furthest anchor whose page ends at the current one.
func Recompute(pool *Pool, chain Chain, b Budget, anchor int) Window {
	n := chain.Len()
	if n == 0 || anchor < 0 {
		return emptyWindow
	}
	if anchor >= n {
		anchor = n - 1
	}

	capacity := b.Capacity()
	cost := func(pos int) int {
		return b.Cost(pool.Text(chain.At(pos).Index))
	}

	next := anchor
	used := b.Overhead()
	for next < n {
		used += cost(next)
		if used > capacity {
			if next == anchor {
				next++
			}
			break
		}
		next++
	}
	if next >= n {
		next = NoPos
	}

	prev := anchor
	used = b.Overhead()
	for prev > 0 {
		used += cost(prev - 1)
		if used > capacity {
			break
		}
		prev--
	}

	return Window{Curr: anchor, Next: next, Prev: prev}
}
