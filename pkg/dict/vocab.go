package dict

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Translation is the target-language form stored for an Alsatian word.
type Translation struct {
	Text string
	POS  string
}

// VocabTable maps lowercased Alsatian words to their closest translation.
// A nil *VocabTable is an empty table.
type VocabTable struct {
	Language Language
	entries  map[string]Translation
}

// NewVocabTable returns an empty table for lang.
func NewVocabTable(lang Language) *VocabTable {
	return &VocabTable{Language: lang, entries: make(map[string]Translation)}
}

// Lookup finds the translation of word, case-insensitively.
func (v *VocabTable) Lookup(word string) (Translation, bool) {
	if v == nil {
		return Translation{}, false
	}
	tr, ok := v.entries[LookupKey(word)]
	return tr, ok
}

// Len returns the number of entries.
func (v *VocabTable) Len() int {
	if v == nil {
		return 0
	}
	return len(v.entries)
}

func (v *VocabTable) set(word string, tr Translation) {
	v.entries[LookupKey(word)] = tr
}

// VocabOptions controls how an aligned lexicon is turned into a table.
type VocabOptions struct {
	Language Language
	// Threshold, when > 0, rejects words whose best candidate has a lower
	// Ratio. Zero keeps the best candidate unconditionally.
	Threshold float64
	Logger    *zerolog.Logger
}

// Column of the aligned lexicon holding the candidates for each language.
// Layout: ltz \t pos \t alsatian1;alsatian2 \t de
func translationColumn(lang Language) (int, error) {
	switch lang {
	case German:
		return 3, nil
	case Luxembourgish:
		return 0, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}
}

// LoadVocabTable builds a vocabulary table from an aligned lexicon file or a
// compiled table directory. An unsupported language returns
// ErrUnsupportedLanguage and no table; a missing file is logged and yields an
// empty table.
func LoadVocabTable(path string, opts VocabOptions) (*VocabTable, error) {
	logger := loggerOrNop(opts.Logger)
	if _, err := translationColumn(opts.Language); err != nil {
		return nil, err
	}
	if isCompiledDir(path) {
		return loadCompiledVocab(path, opts)
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn().Str("path", path).Msg("vocabulary file not found, using an empty vocabulary")
			return NewVocabTable(opts.Language), nil
		}
		return nil, fmt.Errorf("open vocabulary file: %w", err)
	}
	defer f.Close()

	return ParseVocabTable(f, opts)
}

// ParseVocabTable reads an aligned lexicon. Every semicolon-separated
// Alsatian form of a row gets the semicolon-separated candidate closest to it
// by Ratio, with the row's part of speech. Later rows overwrite earlier ones.
func ParseVocabTable(r io.Reader, opts VocabOptions) (*VocabTable, error) {
	logger := loggerOrNop(opts.Logger)
	col, err := translationColumn(opts.Language)
	if err != nil {
		return nil, err
	}

	t := NewVocabTable(opts.Language)
	var malformed, rejected int

	err = scanTSV(r, func(lineNum int, cols []string) {
		if len(cols) < 3 || col >= len(cols) {
			malformed++
			logger.Debug().Int("line", lineNum).Int("columns", len(cols)).Msg("vocabulary line skipped")
			return
		}
		candidates := splitList(cols[col])
		if len(candidates) == 0 {
			malformed++
			return
		}
		pos := strings.TrimSpace(cols[1])

		for _, word := range splitList(cols[2]) {
			best, ratio := BestMatch(word, candidates)
			if opts.Threshold > 0 && ratio < opts.Threshold {
				rejected++
				logger.Debug().
					Str("word", word).
					Str("candidate", best).
					Float64("ratio", ratio).
					Msg("translation below similarity threshold")
				continue
			}
			t.set(word, Translation{Text: best, POS: pos})
		}
	})
	if err != nil {
		return nil, fmt.Errorf("read vocabulary file: %w", err)
	}

	if malformed > 0 {
		logger.Warn().Int("lines", malformed).Msg("malformed vocabulary lines skipped")
	}
	logger.Debug().
		Str("language", string(opts.Language)).
		Int("entries", t.Len()).
		Int("below_threshold", rejected).
		Msg("vocabulary table built")
	return t, nil
}

// splitList splits a semicolon-joined field, dropping empty items.
func splitList(s string) []string {
	parts := strings.Split(s, ";")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
