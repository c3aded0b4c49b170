package menu

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tier is the strength of a match. Lower is stronger; TierNone excludes the item.
type Tier int

const (
	TierNone Tier = iota
	TierExact
	TierPrefix
	TierSubstring
)

func (t Tier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierPrefix:
		return "prefix"
	case TierSubstring:
		return "substring"
	default:
		return "none"
	}
}

// CaseMode selects the string comparison used by the matcher.
type CaseMode int

const (
	CaseSensitive CaseMode = iota
	CaseInsensitive
)

func (c CaseMode) String() string {
	if c == CaseInsensitive {
		return "insensitive"
	}
	return "sensitive"
}

// Entry is one chain member: an index into the pool plus the tier it matched at.
type Entry struct {
	Index int
	Tier  Tier
}

// Chain is the ranked list of pool items matching the current query: every
// exact match in pool order, then every prefix match, then every substring
// match. It is rebuilt on every query change and never patched.
type Chain struct {
	entries []Entry
}

// Len returns the number of chain members.
func (c Chain) Len() int {
	return len(c.entries)
}

// At returns the chain member at position i.
func (c Chain) At(i int) Entry {
	return c.entries[i]
}

// Entries returns the chain members. The slice must not be modified.
func (c Chain) Entries() []Entry {
	return c.entries
}

// Hits is the number of matched items regardless of tier.
func (c Chain) Hits() int {
	return len(c.entries)
}

// Matcher classifies pool items against a token list.
type Matcher struct {
	Case CaseMode

	// LegacyTierCarry reproduces the tier aggregation of older releases,
	// where the running tier is never reset between items. Off by default.
	LegacyTierCarry bool
}

// Match builds the chain for tokens over pool. The pool is only read.
func (m Matcher) Match(pool *Pool, tokens []string) Chain {
	if len(tokens) == 0 {
		tokens = []string{""}
	}

	n := pool.Len()
	var exact, prefix, substr []Entry

	classify := m.classify
	if m.LegacyTierCarry {
		classify = newLegacyClassifier(m).classify
	}

	for i := 0; i < n; i++ {
		tier := classify(pool.Text(i), tokens)
		switch tier {
		case TierExact:
			exact = append(exact, Entry{Index: i, Tier: tier})
		case TierPrefix:
			prefix = append(prefix, Entry{Index: i, Tier: tier})
		case TierSubstring:
			substr = append(substr, Entry{Index: i, Tier: tier})
		}
	}

	entries := make([]Entry, 0, len(exact)+len(prefix)+len(substr))
	entries = append(entries, exact...)
	entries = append(entries, prefix...)
	entries = append(entries, substr...)
	return Chain{entries: entries}
}

// classify returns the weakest tier reached by any token, or TierNone if a
// token does not match at all. It starts fresh for every item.
func (m Matcher) classify(text string, tokens []string) Tier {
	tier := TierNone
	for _, tok := range tokens {
		t := m.TierOf(text, tok)
		if t == TierNone {
			return TierNone
		}
		if t > tier {
			tier = t
		}
	}
	return tier
}

// TierOf classifies a single token against text.
func (m Matcher) TierOf(text, token string) Tier {
	if m.Case == CaseInsensitive {
		switch {
		case strings.EqualFold(text, token):
			return TierExact
		case hasPrefixFold(text, token):
			return TierPrefix
		case containsFold(text, token):
			return TierSubstring
		}
		return TierNone
	}

	switch {
	case text == token:
		return TierExact
	case strings.HasPrefix(text, token):
		return TierPrefix
	case strings.Contains(text, token):
		return TierSubstring
	}
	return TierNone
}

// hasPrefixFold reports whether s begins with prefix under simple Unicode case
// folding. It walks runes so that folds with different UTF-8 lengths still line up.
func hasPrefixFold(s, prefix string) bool {
	for prefix != "" {
		if s == "" {
			return false
		}
		pr, pn := utf8.DecodeRuneInString(prefix)
		sr, sn := utf8.DecodeRuneInString(s)
		if !equalFoldRune(sr, pr) {
			return false
		}
		prefix = prefix[pn:]
		s = s[sn:]
	}
	return true
}

func containsFold(s, sub string) bool {
	if sub == "" {
		return true
	}
	for i := range s {
		if hasPrefixFold(s[i:], sub) {
			return true
		}
	}
	return false
}

func equalFoldRune(a, b rune) bool {
	if a == b {
		return true
	}
	if a < utf8.RuneSelf && b < utf8.RuneSelf {
		if 'A' <= a && a <= 'Z' {
			a += 'a' - 'A'
		}
		if 'A' <= b && b <= 'Z' {
			b += 'a' - 'A'
		}
		return a == b
	}
	for f := unicode.SimpleFold(a); f != a; f = unicode.SimpleFold(f) {
		if f == b {
			return true
		}
	}
	return false
}
