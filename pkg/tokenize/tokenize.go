// Package tokenize defines the tokenizer contract used by the corpus
// transformers and a default regular-expression implementation.
package tokenize

import "regexp"

// Token is a single token with its byte span in the source text.
type Token struct {
	Text  string
	Start int
	End   int
}

// Tokens is the ordered output of a Tokenizer.
type Tokens []Token

// Strings returns the token texts in order.
func (ts Tokens) Strings() []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Text
	}
	return out
}

// Tokenizer splits a line of text into ordered tokens.
// Implementations must be safe for reuse across lines.
type Tokenizer interface {
	Tokenize(text string) Tokens
}

// Func adapts a plain function to the Tokenizer interface.
type Func func(text string) Tokens

// Tokenize calls f(text).
func (f Func) Tokenize(text string) Tokens { return f(text) }

// Words are letter/digit runs, optionally joined by an apostrophe or hyphen
// (Elsass-Lothringe, d'Kinder) and optionally ending in an elided apostrophe
// (s', d’). Any other non-space rune is a token of its own.
var defaultPattern = regexp.MustCompile(
	`[\p{L}\p{M}\p{N}]+(?:['’\-][\p{L}\p{M}\p{N}]+)*['’]?|[^\s\p{L}\p{M}\p{N}]`,
)

// RegExp is a tokenizer driven by a single regular expression: every
// non-overlapping match is a token.
type RegExp struct {
	re *regexp.Regexp
}

// NewRegExp returns the default Alsatian tokenizer.
func NewRegExp() *RegExp {
	return &RegExp{re: defaultPattern}
}

// NewRegExpPattern returns a tokenizer using a custom pattern.
func NewRegExpPattern(pattern string) (*RegExp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &RegExp{re: re}, nil
}

// Tokenize returns the matches of the tokenizer pattern in text.
func (t *RegExp) Tokenize(text string) Tokens {
	locs := t.re.FindAllStringIndex(text, -1)
	out := make(Tokens, 0, len(locs))
	for _, loc := range locs {
		if loc[0] == loc[1] {
			continue
		}
		out = append(out, Token{Text: text[loc[0]:loc[1]], Start: loc[0], End: loc[1]})
	}
	return out
}
