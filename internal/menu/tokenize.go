package menu

import "strings"

const (
	// DefaultMaxTokens is the number of query tokens considered in
	// multi-token mode. Tokens past it are ignored.
	DefaultMaxTokens = 16

	// MaxQueryLen caps the query buffer in bytes. Inserts past it are rejected.
	MaxQueryLen = 4095
)

// TokenMode selects how the query is split.
type TokenMode int

const (
	// SingleToken treats the whole query as one token.
	SingleToken TokenMode = iota
	// MultiToken splits the query on runs of spaces.
	MultiToken
)

func (m TokenMode) String() string {
	if m == MultiToken {
		return "multi"
	}
	return "single"
}

// Tokenizer splits a query into match tokens.
type Tokenizer struct {
	Mode      TokenMode
	MaxTokens int
}

// NewTokenizer returns a tokenizer. A non-positive maxTokens falls back to
// DefaultMaxTokens.
func NewTokenizer(mode TokenMode, maxTokens int) Tokenizer {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return Tokenizer{Mode: mode, MaxTokens: maxTokens}
}

// Tokenize always returns at least one token. An empty or all-space query in
// multi-token mode yields a single empty token, which matches everything.
func (t Tokenizer) Tokenize(query string) []string {
	if t.Mode == SingleToken {
		return []string{query}
	}

	limit := t.MaxTokens
	if limit <= 0 {
		limit = DefaultMaxTokens
	}

	tokens := make([]string, 0, 4)
	for _, f := range strings.Split(query, " ") {
		if f == "" {
			continue
		}
		tokens = append(tokens, f)
		if len(tokens) == limit {
			break
		}
	}
	if len(tokens) == 0 {
		return []string{""}
	}
	return tokens
}
