package menu

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chainTexts(pool *Pool, c Chain) []string {
	out := make([]string, 0, c.Len())
	for _, e := range c.Entries() {
		out = append(out, pool.Text(e.Index))
	}
	return out
}

func TestTokenizer_MultiToken(t *testing.T) {
	tests := []struct {
		name  string
		query string
		max   int
		want  []string
	}{
		{"two words", "abc def", 16, []string{"abc", "def"}},
		{"runs of spaces", "  abc   def  ", 16, []string{"abc", "def"}},
		{"only spaces", "   ", 16, []string{""}},
		{"empty", "", 16, []string{""}},
		{"truncated", "a b c d", 2, []string{"a", "b"}},
		{"tabs are not separators", "a\tb", 16, []string{"a\tb"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := NewTokenizer(MultiToken, tt.max)
			assert.Equal(t, tt.want, tok.Tokenize(tt.query))
		})
	}
}

func TestTokenizer_SingleToken(t *testing.T) {
	tok := NewTokenizer(SingleToken, 16)
	assert.Equal(t, []string{"abc def"}, tok.Tokenize("abc def"))
	assert.Equal(t, []string{""}, tok.Tokenize(""))
	assert.Equal(t, []string{"   "}, tok.Tokenize("   "))
}

func TestTokenizer_DefaultMax(t *testing.T) {
	tok := NewTokenizer(MultiToken, 0)
	assert.Equal(t, DefaultMaxTokens, tok.MaxTokens)
}

func TestMatcher_TierOf(t *testing.T) {
	m := Matcher{Case: CaseSensitive}
	assert.Equal(t, TierExact, m.TierOf("foo", "foo"))
	assert.Equal(t, TierPrefix, m.TierOf("foobar", "foo"))
	assert.Equal(t, TierSubstring, m.TierOf("barfoo", "foo"))
	assert.Equal(t, TierNone, m.TierOf("bar", "foo"))
	assert.Equal(t, TierNone, m.TierOf("FOO", "foo"))
	assert.Equal(t, TierPrefix, m.TierOf("foo", ""))

	ci := Matcher{Case: CaseInsensitive}
	assert.Equal(t, TierExact, ci.TierOf("FOO", "foo"))
	assert.Equal(t, TierPrefix, ci.TierOf("FooBar", "fOO"))
	assert.Equal(t, TierSubstring, ci.TierOf("barFOO", "foo"))
	assert.Equal(t, TierNone, ci.TierOf("bar", "foo"))
	assert.Equal(t, TierPrefix, ci.TierOf("Ärger", "är"))
	assert.Equal(t, TierSubstring, ci.TierOf("STRASSE", "asse"))
}

func TestMatcher_TierOrdering(t *testing.T) {
	pool := NewPool([]string{"xfoo", "foobar", "foo", "bar", "foox", "afoo", "foo"})
	c := Matcher{}.Match(pool, []string{"foo"})

	assert.Equal(t, []string{"foo", "foo", "foobar", "foox", "xfoo", "afoo"}, chainTexts(pool, c))
	assert.Equal(t, 6, c.Hits())

	last := TierNone
	for _, e := range c.Entries() {
		assert.GreaterOrEqual(t, int(e.Tier), int(last), "tiers must not decrease along the chain")
		last = e.Tier
	}
}

func TestMatcher_SubsetInvariant(t *testing.T) {
	pool := NewPool([]string{"alpha", "beta", "alphabet", "gamma", "beta"})
	c := Matcher{}.Match(pool, []string{"a"})

	seen := make(map[int]bool)
	for _, e := range c.Entries() {
		require.GreaterOrEqual(t, e.Index, 0)
		require.Less(t, e.Index, pool.Len())
		assert.False(t, seen[e.Index], "pool item listed twice")
		seen[e.Index] = true
	}
}

func TestMatcher_EmptyQueryTotality(t *testing.T) {
	lines := []string{"one", "two", "", "three", "two"}
	pool := NewPool(lines)

	for _, mode := range []TokenMode{SingleToken, MultiToken} {
		tokens := NewTokenizer(mode, 16).Tokenize("")
		c := Matcher{}.Match(pool, tokens)
		assert.Equal(t, lines[2:3], chainTexts(pool, c)[:1], "the empty item is an exact match")
		assert.Equal(t, pool.Len(), c.Hits())
	}

	// Only the empty line is an exact match; everything else keeps pool order.
	c := Matcher{}.Match(pool, []string{""})
	assert.Equal(t, []string{"", "one", "two", "three", "two"}, chainTexts(pool, c))
}

func TestMatcher_EmptyQueryPoolOrder(t *testing.T) {
	lines := []string{"c", "a", "b"}
	pool := NewPool(lines)
	c := Matcher{}.Match(pool, []string{""})
	assert.Equal(t, lines, chainTexts(pool, c))
}

func TestMatcher_MultiTokenWeakestTier(t *testing.T) {
	pool := NewPool([]string{"git status", "git", "status git", "gitk", "log"})
	m := Matcher{}

	c := m.Match(pool, []string{"git", "status"})
	require.Equal(t, 2, c.Hits())
	// "git status": git is prefix, status substring -> substring.
	// "status git": git substring, status prefix -> substring.
	assert.Equal(t, []string{"git status", "status git"}, chainTexts(pool, c))
	assert.Equal(t, TierSubstring, c.At(0).Tier)

	c = m.Match(pool, []string{"git", "gi"})
	// "git": exact + prefix -> prefix. "gitk": prefix + prefix -> prefix.
	assert.Equal(t, []string{"git status", "git", "gitk", "status git"}, chainTexts(pool, c))
	assert.Equal(t, TierPrefix, c.At(1).Tier)
}

func TestMatcher_FreshTierPerItem(t *testing.T) {
	pool := NewPool([]string{"foo", "xfoo", "foo"})
	c := Matcher{}.Match(pool, []string{"foo"})
	assert.Equal(t, []Tier{TierExact, TierExact, TierSubstring}, tiers(c))
}

func TestMatcher_LegacyTierCarry(t *testing.T) {
	// After an exact match the legacy path keeps "exact" for the next item
	// whose only token matches as a substring.
	pool := NewPool([]string{"foo", "xfoo", "bar", "yfoo"})

	fresh := Matcher{}.Match(pool, []string{"foo"})
	assert.Equal(t, []string{"foo", "xfoo", "yfoo"}, chainTexts(pool, fresh))
	assert.Equal(t, []Tier{TierExact, TierSubstring, TierSubstring}, tiers(fresh))

	legacy := Matcher{LegacyTierCarry: true}.Match(pool, []string{"foo"})
	// "bar" fails and zeroes the carry, so "yfoo" is classified cleanly.
	assert.Equal(t, []string{"foo", "xfoo", "yfoo"}, chainTexts(pool, legacy))
	assert.Equal(t, []Tier{TierExact, TierExact, TierSubstring}, tiers(legacy))
}

func TestMatcher_Idempotent(t *testing.T) {
	pool := NewPool([]string{"abc", "ab", "cab", "b", "bab"})
	tokens := NewTokenizer(MultiToken, 16).Tokenize("ab b")

	first := Matcher{}.Match(pool, tokens)
	second := Matcher{}.Match(pool, tokens)
	assert.Equal(t, first.Entries(), second.Entries())
}

func TestMatcher_CaseInsensitive(t *testing.T) {
	pool := NewPool([]string{"Firefox", "firefox-esr", "THUNDERBIRD", "mozilla FIREFOX"})
	c := Matcher{Case: CaseInsensitive}.Match(pool, []string{"FIREFOX"})
	assert.Equal(t, []string{"Firefox", "firefox-esr", "mozilla FIREFOX"}, chainTexts(pool, c))
	assert.Equal(t, []Tier{TierExact, TierPrefix, TierSubstring}, tiers(c))
}

func TestPoolBuilder(t *testing.T) {
	b := NewPoolBuilder(2)
	b.Add("hist\n")
	b.AddAll([]string{"a", "longest line\r\n", "a"})
	pool := b.Build()

	require.Equal(t, 4, pool.Len())
	assert.Equal(t, []string{"hist", "a", "longest line", "a"}, pool.Texts())
	assert.Equal(t, 3, pool.At(3).Order)

	assert.Panics(t, func() { b.Add("late") })
}

func TestPool_Widest(t *testing.T) {
	pool := NewPool([]string{"abcd", "日本語", "x"})
	runes := func(s string) int { return utf8.RuneCountInString(s) }

	assert.Equal(t, 4, pool.Widest(runes), "measured width, not byte length")
	assert.Equal(t, 9, pool.Widest(nil), "nil measure counts bytes")
	assert.Equal(t, 0, NewPool(nil).Widest(runes))
}

func tiers(c Chain) []Tier {
	out := make([]Tier, 0, c.Len())
	for _, e := range c.Entries() {
		out = append(out, e.Tier)
	}
	return out
}
