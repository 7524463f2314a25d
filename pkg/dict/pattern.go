package dict

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// DefaultMinRuleCount is the occurrence count a mined link needs to become a rule.
const DefaultMinRuleCount = 10

// Rule maps the source variants of one target form to that form.
// Patterns always holds a single alternation "(form1|form2|...)"; it stays a
// slice so callers can range over the patterns of a target.
type Rule struct {
	Target   string
	Patterns []string
	matchers []*regexp.Regexp
}

// Matchers returns the compiled Patterns, in the same order.
func (r Rule) Matchers() []*regexp.Regexp {
	return r.matchers
}

// RuleTable is the ordered set of rules, keyed by target form in the order the
// targets were first seen in the source file. It is immutable once built.
type RuleTable struct {
	rules    []Rule
	index    map[string]int
	foldCase bool
}

// NewRuleTable returns an empty rule table.
func NewRuleTable() *RuleTable {
	return &RuleTable{index: make(map[string]int)}
}

// Rules returns the rules in table order.
func (t *RuleTable) Rules() []Rule {
	if t == nil {
		return nil
	}
	return t.rules
}

// Patterns returns the pattern set for a target form.
func (t *RuleTable) Patterns(target string) ([]string, bool) {
	if t == nil {
		return nil, false
	}
	i, ok := t.index[target]
	if !ok {
		return nil, false
	}
	return t.rules[i].Patterns, true
}

// Len returns the number of target forms.
func (t *RuleTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rules)
}

// FoldCase reports whether patterns were compiled case-insensitively.
func (t *RuleTable) FoldCase() bool {
	return t != nil && t.foldCase
}

func (t *RuleTable) add(target string, patterns ...string) error {
	matchers := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		expr := p
		if t.foldCase {
			expr = "(?i)" + p
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return fmt.Errorf("rule %q: %w", target, err)
		}
		matchers = append(matchers, re)
	}
	r := Rule{Target: target, Patterns: patterns, matchers: matchers}
	if i, ok := t.index[target]; ok {
		t.rules[i] = r
		return nil
	}
	t.index[target] = len(t.rules)
	t.rules = append(t.rules, r)
	return nil
}

// RuleOptions controls how a rule file is turned into a table.
type RuleOptions struct {
	// MinCount drops links seen fewer times. Zero means DefaultMinRuleCount.
	MinCount int
	// FoldCase matches source forms case-insensitively.
	FoldCase bool
	Logger   *zerolog.Logger
}

func (o RuleOptions) minCount() int {
	if o.MinCount <= 0 {
		return DefaultMinRuleCount
	}
	return o.MinCount
}

// LoadRuleTable builds a rule table from a TSV rule file or a compiled table
// directory. A missing file is logged and yields an empty table.
func LoadRuleTable(path string, opts RuleOptions) (*RuleTable, error) {
	logger := loggerOrNop(opts.Logger)
	if isCompiledDir(path) {
		return loadCompiledRules(path, opts)
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn().Str("path", path).Msg("rule file not found, using an empty rule table")
			t := NewRuleTable()
			t.foldCase = opts.FoldCase
			return t, nil
		}
		return nil, fmt.Errorf("open rule file: %w", err)
	}
	defer f.Close()

	return ParseRuleTable(f, opts)
}

// ParseRuleTable reads "source\ttarget\tcount" lines. For each target, the
// distinct sources with count >= MinCount are joined, in first-seen order,
// into one alternation pattern.
func ParseRuleTable(r io.Reader, opts RuleOptions) (*RuleTable, error) {
	logger := loggerOrNop(opts.Logger)
	minCount := opts.minCount()

	var targets []string
	sources := make(map[string][]string)
	seen := make(map[string]map[string]struct{})
	var kept, dropped, malformed int

	err := scanTSV(r, func(lineNum int, cols []string) {
		if len(cols) < 3 {
			malformed++
			logger.Debug().Int("line", lineNum).Int("columns", len(cols)).Msg("rule line skipped")
			return
		}
		count, err := strconv.Atoi(strings.TrimSpace(cols[2]))
		if err != nil {
			malformed++
			logger.Debug().Int("line", lineNum).Str("count", cols[2]).Msg("rule line skipped: bad count")
			return
		}
		if count < minCount {
			dropped++
			return
		}
		source, target := cols[0], cols[1]
		if source == "" {
			malformed++
			return
		}

		forms, ok := seen[target]
		if !ok {
			forms = make(map[string]struct{})
			seen[target] = forms
			targets = append(targets, target)
		}
		if _, dup := forms[source]; dup {
			return
		}
		forms[source] = struct{}{}
		sources[target] = append(sources[target], source)
		kept++
	})
	if err != nil {
		return nil, fmt.Errorf("read rule file: %w", err)
	}

	t := NewRuleTable()
	t.foldCase = opts.FoldCase
	for _, target := range targets {
		pattern := "(" + strings.Join(sources[target], "|") + ")"
		if err := t.add(target, pattern); err != nil {
			logger.Warn().Err(err).Msg("rule skipped: invalid pattern")
		}
	}

	if malformed > 0 {
		logger.Warn().Int("lines", malformed).Msg("malformed rule lines skipped")
	}
	logger.Debug().
		Int("targets", t.Len()).
		Int("links", kept).
		Int("below_min_count", dropped).
		Msg("rule table built")
	return t, nil
}
