// Package dict builds the lookup tables used to move Alsatian text toward
// German or Luxembourgish spelling: the rule table mined from aligned-link
// counts and the aligned bilingual vocabulary table.
package dict

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Language selects the target orthography.
type Language string

const (
	German        Language = "de"
	Luxembourgish Language = "ltz"
)

// ErrUnsupportedLanguage is returned for a target language other than de or ltz.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// ParseLanguage validates a language selector.
func ParseLanguage(s string) (Language, error) {
	switch l := Language(strings.ToLower(strings.TrimSpace(s))); l {
	case German, Luxembourgish:
		return l, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s)
	}
}

// maxLineSize bounds a single line of a table source file.
const maxLineSize = 1 << 20

// scanTSV calls fn with the tab-separated columns of every non-blank line.
// Lines are trimmed first, so leading and trailing tabs are dropped.
func scanTSV(r io.Reader, fn func(lineNum int, cols []string)) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fn(lineNum, strings.Split(line, "\t"))
	}
	return sc.Err()
}

// isCompiledDir reports whether path is a directory produced by SaveRuleTable
// or SaveVocabTable.
func isCompiledDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return false
	}
	_, err = os.Stat(filepath.Join(path, manifestFile))
	return err == nil
}

var nop = zerolog.Nop()

func loggerOrNop(l *zerolog.Logger) *zerolog.Logger {
	if l == nil {
		return &nop
	}
	return l
}
