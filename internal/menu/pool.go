// Package menu implements the ranking engine behind the picker: tokenizing the
// query, classifying pool items into match tiers, windowing the resulting chain
// against a rendering budget and moving the selection cursor through it.
//
// Everything in this package is synchronous and allocation-light. The pool is
// frozen once built and shared by every recomputation.
package menu

import "strings"

// Item is a single candidate line. Text is never mutated after creation.
type Item struct {
	Text  string
	Order int
}

// Pool is the frozen, insertion-ordered arena of candidates. Chains refer to
// items by their index in the pool.
type Pool struct {
	items []Item
}

// Len returns the number of items in the pool.
func (p *Pool) Len() int {
	if p == nil {
		return 0
	}
	return len(p.items)
}

// At returns the item at index i.
func (p *Pool) At(i int) Item {
	return p.items[i]
}

// Text returns the text of the item at index i.
func (p *Pool) Text(i int) string {
	return p.items[i].Text
}

// Widest returns the largest width among the items as measured by measure,
// or 0 for an empty pool. A nil measure counts bytes, like Budget.Cost. The
// horizontal layout sizes the query slot from it.
func (p *Pool) Widest(measure WidthFunc) int {
	widest := 0
	for i := 0; i < p.Len(); i++ {
		w := len(p.items[i].Text)
		if measure != nil {
			w = measure(p.items[i].Text)
		}
		if w > widest {
			widest = w
		}
	}
	return widest
}

// Texts returns a copy of every item text in pool order.
func (p *Pool) Texts() []string {
	out := make([]string, 0, p.Len())
	for _, it := range p.items {
		out = append(out, it.Text)
	}
	return out
}

// PoolBuilder accumulates items during load. History entries are added first,
// then freshly supplied lines.
type PoolBuilder struct {
	items []Item
	built bool
}

// NewPoolBuilder creates a builder with room for sizeHint items.
func NewPoolBuilder(sizeHint int) *PoolBuilder {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &PoolBuilder{items: make([]Item, 0, sizeHint)}
}

// Add appends a line. Trailing line terminators are stripped; duplicate texts
// are kept as distinct items.
func (b *PoolBuilder) Add(text string) {
	if b.built {
		panic("menu: add to a frozen pool")
	}
	text = strings.TrimRight(text, "\r\n")
	b.items = append(b.items, Item{Text: text, Order: len(b.items)})
}

// AddAll appends every line in order.
func (b *PoolBuilder) AddAll(lines []string) {
	for _, l := range lines {
		b.Add(l)
	}
}

// Len returns the number of items added so far.
func (b *PoolBuilder) Len() int {
	return len(b.items)
}

// Build freezes the builder and returns the pool.
func (b *PoolBuilder) Build() *Pool {
	b.built = true
	return &Pool{items: b.items}
}

// NewPool builds a pool straight from a slice of lines.
func NewPool(lines []string) *Pool {
	b := NewPoolBuilder(len(lines))
	b.AddAll(lines)
	return b.Build()
}
