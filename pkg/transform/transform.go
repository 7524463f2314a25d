// Package transform applies a rule table or a vocabulary table to the tokens
// of one line and reassembles the line.
package transform

import (
	"strings"

	"github.com/hazyhaar/alsatian-transform/pkg/dict"
)

// TokenTransformer rewrites a single token.
type TokenTransformer interface {
	Token(tok string) string
}

// Rules substitutes rule matches inside each token, then folds accents.
type Rules struct {
	table *dict.RuleTable
	fold  dict.Normalizer
}

// NewRules returns a rule-based transformer. A nil fold means
// dict.NormalizeAccents.
func NewRules(table *dict.RuleTable, fold dict.Normalizer) *Rules {
	if fold == nil {
		fold = dict.NormalizeAccents
	}
	return &Rules{table: table, fold: fold}
}

// Token tries every rule in table order against the token as modified so far.
// On a match, every occurrence of the matched text (not only the matched
// position) is replaced with the rule's target form.
func (r *Rules) Token(tok string) string {
	out := tok
	for _, rule := range r.table.Rules() {
		for _, re := range rule.Matchers() {
			loc := re.FindStringIndex(out)
			if loc == nil {
				continue
			}
			out = strings.ReplaceAll(out, out[loc[0]:loc[1]], rule.Target)
		}
	}
	return r.fold(out)
}

// Vocabulary replaces known words with their stored translation; unknown
// words are accent-folded.
type Vocabulary struct {
	table *dict.VocabTable
	fold  dict.Normalizer
}

// NewVocabulary returns a vocabulary-based transformer. A nil table never
// matches. A nil fold means dict.NormalizeAccents.
func NewVocabulary(table *dict.VocabTable, fold dict.Normalizer) *Vocabulary {
	if fold == nil {
		fold = dict.NormalizeAccents
	}
	return &Vocabulary{table: table, fold: fold}
}

// Token returns the translation of tok verbatim when the lowercased token is
// in the table, or tok with folded accents otherwise.
func (v *Vocabulary) Token(tok string) string {
	if tr, ok := v.table.Lookup(tok); ok {
		return tr.Text
	}
	return v.fold(tok)
}

// Apply transforms each token into a fresh slice.
func Apply(t TokenTransformer, tokens []string) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = t.Token(tok)
	}
	return out
}

// Join joins tokens with single spaces and glues a final one-rune token to
// the previous one ("do ." -> "do.").
func Join(tokens []string) string {
	return TrimTrailingSpace(strings.Join(tokens, " "))
}

// TrimTrailingSpace drops the space before the last rune, if there is one.
// Strings shorter than two runes are returned unchanged.
func TrimTrailingSpace(s string) string {
	r := []rune(s)
	if len(r) < 2 || r[len(r)-2] != ' ' {
		return s
	}
	return string(r[:len(r)-2]) + string(r[len(r)-1])
}
